package model

import (
	"github.com/stemsi/exstem-survey/internal/survey"
)

// StartSessionRequest is the payload for opening a survey session.
type StartSessionRequest struct {
	UserName string `json:"user_name" binding:"required,respondent_name"`
}

// AnswerRequest is the payload for one interaction with a question.
// ChoiceID is required for toggle_choice and other_text.
type AnswerRequest struct {
	Kind     string `json:"kind" binding:"required,oneof=toggle_choice other_text text clear"`
	ChoiceID string `json:"choice_id" binding:"required_if=Kind toggle_choice,required_if=Kind other_text,max=100"`
	Text     string `json:"text" binding:"max=2000"`
}

// Event converts the request into a session event for questionID.
func (r AnswerRequest) Event(questionID string) survey.Event {
	return survey.Event{
		Kind:       survey.EventKind(r.Kind),
		QuestionID: questionID,
		ChoiceID:   r.ChoiceID,
		Text:       r.Text,
	}
}

// SessionView is what clients see of a session.
type SessionView struct {
	ID         string             `json:"id"`
	UserName   string             `json:"user_name"`
	Navigation survey.Navigation  `json:"navigation"`
	Question   *survey.Question   `json:"question"`
	Answers    survey.AnswerStore `json:"answers"`
	Report     survey.Report      `json:"report"`
}

// NewSessionView snapshots s. Callers must hold the session lock.
func NewSessionView(s *survey.Session) SessionView {
	v := SessionView{
		ID:         s.ID,
		UserName:   s.Respondent,
		Navigation: s.Nav,
		Answers:    s.Answers,
		Report:     s.Report(),
	}
	if q, ok := s.Current(); ok {
		v.Question = &q
	}
	return v
}
