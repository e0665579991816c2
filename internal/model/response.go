package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/exstem-survey/internal/survey"
)

// StoredResponse is a persisted submission. It is also the payload queued on
// persist_responses_queue.
type StoredResponse struct {
	ID          uuid.UUID     `json:"id"`
	UserName    string        `json:"user_name"`
	SubmittedAt time.Time     `json:"submitted_at"`
	Answers     []survey.Line `json:"answers"`
}

// NewStoredResponse stamps a fresh id and submission time on sub.
func NewStoredResponse(sub survey.Submission) StoredResponse {
	answers := sub.Answers
	if answers == nil {
		answers = []survey.Line{}
	}
	return StoredResponse{
		ID:          uuid.New(),
		UserName:    sub.UserName,
		SubmittedAt: time.Now().UTC(),
		Answers:     answers,
	}
}

// QuestionCount is how many stored responses answered one question.
type QuestionCount struct {
	QuestionID  string `json:"question_id"`
	AnswerCount int    `json:"answer_count"`
}

// ResponseStats summarises stored responses for the listing endpoint.
type ResponseStats struct {
	TotalResponses  int             `json:"total_responses"`
	TotalPages      int             `json:"total_pages"`
	CurrentPage     int             `json:"current_page"`
	HasNextPage     bool            `json:"has_next_page"`
	HasPreviousPage bool            `json:"has_previous_page"`
	QuestionCounts  []QuestionCount `json:"question_counts"`
}

// ResponseList is the GET /api/v1/responses payload.
type ResponseList struct {
	Responses []StoredResponse `json:"responses"`
	Stats     ResponseStats    `json:"stats"`
}

// SubmitResult is returned when a submission is accepted.
type SubmitResult struct {
	ResponseID uuid.UUID         `json:"response_id"`
	Submission survey.Submission `json:"submission"`
	Report     survey.Report     `json:"report"`
}
