package survey

// QuestionType decides which answer shape and validity rule apply to a question.
type QuestionType string

const (
	QuestionTypeSingle QuestionType = "single"
	QuestionTypeMulti  QuestionType = "multi"
	QuestionTypeText   QuestionType = "text"
)

// Choice is one selectable option of a single- or multi-choice question.
type Choice struct {
	ID      string `json:"id" yaml:"id"`
	Text    string `json:"choice_text" yaml:"text"`
	IsOther bool   `json:"is_other" yaml:"is_other"`
}

// Question is an immutable catalog record.
type Question struct {
	ID            string       `json:"id" yaml:"id"`
	Text          string       `json:"question_text" yaml:"text"`
	Type          QuestionType `json:"question_type" yaml:"type"`
	Choices       []Choice     `json:"choices,omitempty" yaml:"choices,omitempty"`
	MaxSelections *int         `json:"max_selections,omitempty" yaml:"max_selections,omitempty"`
}

// Choice looks up a choice by id.
func (q Question) Choice(id string) (Choice, bool) {
	for _, c := range q.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// SelectionLimit returns the multi-select bound, or 0 when unbounded.
func (q Question) SelectionLimit() int {
	if q.Type != QuestionTypeMulti || q.MaxSelections == nil || *q.MaxSelections <= 0 {
		return 0
	}
	return *q.MaxSelections
}

// Catalog is the ordered question set of a survey session.
// It is treated as a read-only snapshot once loaded.
type Catalog []Question

// Question returns the question with the given id.
func (c Catalog) Question(id string) (Question, bool) {
	for _, q := range c {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Position returns the 1-based position of a question, or 0 if absent.
func (c Catalog) Position(id string) int {
	for i, q := range c {
		if q.ID == id {
			return i + 1
		}
	}
	return 0
}

// At returns the question displayed at a zero-based step.
func (c Catalog) At(step int) (Question, bool) {
	if step < 0 || step >= len(c) {
		return Question{}, false
	}
	return c[step], true
}
