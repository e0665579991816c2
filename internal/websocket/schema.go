package websocket

import (
	"github.com/stemsi/exstem-survey/internal/model"
	"github.com/stemsi/exstem-survey/internal/survey"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer   Action = "answer"
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionSubmit   Action = "submit"
	ActionPing     Action = "ping"
)

// Request is every client frame. Answer fields are only read for
// ActionAnswer.
type Request struct {
	Action     Action `json:"action"`
	Kind       string `json:"kind,omitempty"`
	QuestionID string `json:"question_id,omitempty"`
	ChoiceID   string `json:"choice_id,omitempty"`
	Text       string `json:"text,omitempty"`
}

// Event converts an answer request into a session event.
func (r Request) Event() survey.Event {
	return survey.Event{
		Kind:       survey.EventKind(r.Kind),
		QuestionID: r.QuestionID,
		ChoiceID:   r.ChoiceID,
		Text:       r.Text,
	}
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventState       Event = "state"
	EventError       Event = "error"
	EventMaxExceeded Event = "max_exceeded"
	EventIncomplete  Event = "incomplete"
	EventSubmitted   Event = "submitted"
	EventPong        Event = "pong"
)

// StateResponse carries the session after a successful action.
type StateResponse struct {
	Event   Event             `json:"event"`
	Session model.SessionView `json:"session"`
}

// MaxExceededResponse is sent when a selection would go over the limit.
// The selection is not applied.
type MaxExceededResponse struct {
	Event      Event  `json:"event"`
	QuestionID string `json:"question_id"`
	Max        int    `json:"max_selections"`
	Message    string `json:"message"`
}

// IncompleteResponse lists the questions still missing on submit.
type IncompleteResponse struct {
	Event  Event         `json:"event"`
	Report survey.Report `json:"report"`
}

// SubmittedResponse confirms the submission was accepted.
type SubmittedResponse struct {
	Event  Event              `json:"event"`
	Result model.SubmitResult `json:"result"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
