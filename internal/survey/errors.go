package survey

import (
	"errors"
	"fmt"
)

// Domain errors returned by the interaction reducers and the session.
var (
	ErrUnknownQuestion       = errors.New("question is not in the catalog")
	ErrUnknownChoice         = errors.New("choice does not belong to the question")
	ErrQuestionType          = errors.New("operation does not match the question type")
	ErrChoiceNotSelected     = errors.New("choice is not selected")
	ErrNoElaboration         = errors.New("choice does not take elaboration text")
	ErrMaxSelectionsExceeded = errors.New("maximum selections exceeded")
	ErrIncomplete            = errors.New("survey is incomplete")
	ErrEmptyCatalog          = errors.New("no questions available")
	ErrInvalidRespondentName = errors.New("invalid respondent name")
	ErrInvalidCatalog        = errors.New("invalid catalog")
)

// MaxSelectionsError carries the bound that a multi-choice toggle would have exceeded.
type MaxSelectionsError struct {
	QuestionID string
	Max        int
}

func (e *MaxSelectionsError) Error() string {
	return fmt.Sprintf("maximum %d selections allowed for question %s", e.Max, e.QuestionID)
}

// Unwrap lets callers match the error with errors.Is(err, ErrMaxSelectionsExceeded).
func (e *MaxSelectionsError) Unwrap() error {
	return ErrMaxSelectionsExceeded
}

// IncompleteError carries the completeness report of a rejected submission.
type IncompleteError struct {
	Report Report
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%d of %d questions unanswered", len(e.Report.Unanswered), e.Report.Total)
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncomplete
}
