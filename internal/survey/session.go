package survey

import (
	"errors"
	"strings"
)

// EventKind names a respondent interaction applied to a session.
type EventKind string

const (
	EventToggleChoice EventKind = "toggle_choice"
	EventOtherText    EventKind = "other_text"
	EventText         EventKind = "text"
	EventClear        EventKind = "clear"
)

// ErrUnknownEvent is returned by Session.Apply for an unsupported event kind.
var ErrUnknownEvent = errors.New("unknown event kind")

// Event is one interaction with the question identified by QuestionID.
type Event struct {
	Kind       EventKind `json:"kind"`
	QuestionID string    `json:"question_id"`
	ChoiceID   string    `json:"choice_id,omitempty"`
	Text       string    `json:"text,omitempty"`
}

// SubmissionOrder selects how submission lines are ordered.
type SubmissionOrder string

const (
	OrderInsertion SubmissionOrder = "insertion"
	OrderCatalog   SubmissionOrder = "catalog"
)

// Session is the state of one respondent working through one catalog
// snapshot. Navigation and validation both read Catalog, so they cannot
// disagree about the number of steps.
type Session struct {
	ID         string
	Respondent string
	Catalog    Catalog
	Answers    AnswerStore
	Nav        Navigation
}

// NewSession validates the respondent name and sizes navigation to the catalog.
func NewSession(id, respondent string, catalog Catalog) (*Session, error) {
	if err := ValidateRespondentName(respondent); err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	return &Session{
		ID:         id,
		Respondent: strings.TrimSpace(respondent),
		Catalog:    catalog,
		Answers:    NewAnswerStore(),
		Nav:        Navigation{}.SetTotalSteps(len(catalog)),
	}, nil
}

// Current returns the question at the current step.
func (s *Session) Current() (Question, bool) {
	return s.Catalog.At(s.Nav.CurrentStep)
}

// Next moves to the following step, staying put on the last one.
func (s *Session) Next() {
	s.Nav = s.Nav.Next()
}

// Previous moves to the preceding step, staying put on the first one.
func (s *Session) Previous() {
	s.Nav = s.Nav.Previous()
}

// Apply runs an interaction event against the answer store. On error the
// store is unchanged.
func (s *Session) Apply(ev Event) error {
	q, ok := s.Catalog.Question(ev.QuestionID)
	if !ok {
		return ErrUnknownQuestion
	}

	var (
		next AnswerStore
		err  error
	)
	switch ev.Kind {
	case EventToggleChoice:
		switch q.Type {
		case QuestionTypeSingle:
			next, err = ToggleSingle(s.Answers, q, ev.ChoiceID)
		case QuestionTypeMulti:
			next, err = ToggleMulti(s.Answers, q, ev.ChoiceID)
		default:
			err = ErrQuestionType
		}
	case EventOtherText:
		next, err = SetOtherText(s.Answers, q, ev.ChoiceID, ev.Text)
	case EventText:
		next, err = SetText(s.Answers, q, ev.Text)
	case EventClear:
		next = s.Answers.Clear(q.ID)
	default:
		err = ErrUnknownEvent
	}
	if err != nil {
		return err
	}

	s.Answers = next
	return nil
}

// Report validates the session's answers against its own catalog.
func (s *Session) Report() Report {
	return Validate(s.Catalog, s.Answers)
}

// Submit returns the assembled submission when every question is answered,
// or an *IncompleteError carrying the report otherwise.
func (s *Session) Submit(order SubmissionOrder) (Submission, Report, error) {
	report := s.Report()
	if !report.IsComplete {
		return Submission{}, report, &IncompleteError{Report: report}
	}

	sub := Assemble(s.Respondent, s.Answers.Retain(s.Catalog))
	if order == OrderCatalog {
		sub = OrderByCatalog(sub, s.Catalog)
	}
	return sub, report, nil
}
