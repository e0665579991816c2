package survey

import "strings"

// Unanswered identifies a question that blocks completeness.
type Unanswered struct {
	ID       string `json:"id"`
	Text     string `json:"question_text"`
	Position int    `json:"question_number"`
}

// Report is the completeness report produced by Validate.
type Report struct {
	IsComplete bool         `json:"is_complete"`
	Unanswered []Unanswered `json:"unanswered_questions"`
	Total      int          `json:"total_questions"`
	Answered   int          `json:"answered_questions"`
}

// Validate walks the catalog in order and reports every question whose stored
// answer is missing or not valid for its type. Position is the 1-based index
// in the supplied catalog. Answers for ids outside the catalog are ignored.
//
// The catalog must be the same snapshot that drives navigation; a partial or
// stale catalog under- or over-reports completeness.
func Validate(catalog Catalog, answers AnswerStore) Report {
	unanswered := make([]Unanswered, 0)
	for i, q := range catalog {
		a, ok := answers.Get(q.ID)
		if ok && IsAnswered(q, a) {
			continue
		}
		unanswered = append(unanswered, Unanswered{
			ID:       q.ID,
			Text:     q.Text,
			Position: i + 1,
		})
	}

	return Report{
		IsComplete: len(unanswered) == 0,
		Unanswered: unanswered,
		Total:      len(catalog),
		Answered:   len(catalog) - len(unanswered),
	}
}

// IsAnswered applies the per-type validity rule to a single stored answer.
// Whether a selection needs elaboration is decided by the catalog choice's
// IsOther flag, looked up by choice id. Unknown types, unknown choices and
// shape mismatches are never valid.
func IsAnswered(q Question, a Answer) bool {
	switch q.Type {
	case QuestionTypeSingle:
		v, ok := a.(SingleAnswer)
		if !ok || v.ChoiceID == "" {
			return false
		}
		return selectionComplete(q, v.Selection)

	case QuestionTypeMulti:
		v, ok := a.(MultiAnswer)
		if !ok || len(v) == 0 {
			return false
		}
		if limit := q.SelectionLimit(); limit > 0 && len(v) > limit {
			return false
		}
		seen := make(map[string]struct{}, len(v))
		for _, sel := range v {
			if _, dup := seen[sel.ChoiceID]; dup {
				return false
			}
			seen[sel.ChoiceID] = struct{}{}
			if !selectionComplete(q, sel) {
				return false
			}
		}
		return true

	case QuestionTypeText:
		v, ok := a.(TextAnswer)
		return ok && strings.TrimSpace(string(v)) != ""

	default:
		return false
	}
}

func selectionComplete(q Question, sel Selection) bool {
	choice, ok := q.Choice(sel.ChoiceID)
	if !ok {
		return false
	}
	if choice.IsOther && strings.TrimSpace(sel.OtherText) == "" {
		return false
	}
	return true
}
