package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Survey-specific ───────────────────────────────────────────────
	ErrSessionNotFound      ErrCode = "SESSION_NOT_FOUND"
	ErrSessionSubmitted     ErrCode = "SESSION_SUBMITTED"
	ErrEmptyCatalog         ErrCode = "EMPTY_CATALOG"
	ErrInvalidRespondent    ErrCode = "INVALID_RESPONDENT_NAME"
	ErrUnknownQuestion      ErrCode = "UNKNOWN_QUESTION"
	ErrUnknownChoice        ErrCode = "UNKNOWN_CHOICE"
	ErrQuestionType         ErrCode = "QUESTION_TYPE_MISMATCH"
	ErrChoiceNotSelected    ErrCode = "CHOICE_NOT_SELECTED"
	ErrNoElaboration        ErrCode = "NO_ELABORATION"
	ErrMaxSelectionsReached ErrCode = "MAX_SELECTIONS_REACHED"
	ErrIncompleteSurvey     ErrCode = "INCOMPLETE_SURVEY"
	ErrResponseNotFound     ErrCode = "RESPONSE_NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal           ErrCode = "INTERNAL_ERROR"
	ErrServiceUnavailable ErrCode = "SERVICE_UNAVAILABLE"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."

	// ─── Survey-specific ───────────────────────────────────────────────
	case ErrSessionNotFound:
		return "Survey session not found or expired."
	case ErrSessionSubmitted:
		return "This survey session has already been submitted."
	case ErrEmptyCatalog:
		return "No questions available."
	case ErrInvalidRespondent:
		return "Name must be 2 to 50 characters and contain only letters and spaces."
	case ErrUnknownQuestion:
		return "Question not found in this survey."
	case ErrUnknownChoice:
		return "Choice not found for this question."
	case ErrQuestionType:
		return "This action does not apply to the question type."
	case ErrChoiceNotSelected:
		return "Select the choice before adding text to it."
	case ErrNoElaboration:
		return "This choice does not accept written text."
	case ErrMaxSelectionsReached:
		return "Maximum number of selections reached."
	case ErrIncompleteSurvey:
		return "Please answer all questions before submitting."
	case ErrResponseNotFound:
		return "Response not found."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	case ErrServiceUnavailable:
		return "Service temporarily unavailable."
	default:
		return "An unexpected error occurred."
	}
}
