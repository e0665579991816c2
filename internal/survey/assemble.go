package survey

import "sort"

// Line is one row of a submission payload.
type Line struct {
	QuestionID    string `json:"question_id"`
	AnswerText    string `json:"answer_text"`
	WrittenAnswer string `json:"written_answer,omitempty"`
}

// Submission is the flat payload accepted by the response-intake service.
type Submission struct {
	UserName string `json:"user_name"`
	Answers  []Line `json:"answers"`
}

// Assemble flattens the store into a submission, walking answers in insertion
// order. A multi-choice answer yields one line per selection; single-choice
// and text answers yield one line each. WrittenAnswer is only set for choice
// selections that carry elaboration text.
//
// Assemble does not check completeness; callers run Validate first. Values of
// an unexpected shape degrade to a line with an empty answer text.
func Assemble(userName string, answers AnswerStore) Submission {
	lines := make([]Line, 0, answers.Len())
	for _, id := range answers.IDs() {
		a, _ := answers.Get(id)
		switch v := a.(type) {
		case MultiAnswer:
			for _, sel := range v {
				lines = append(lines, selectionLine(id, sel))
			}
		case SingleAnswer:
			lines = append(lines, selectionLine(id, v.Selection))
		case TextAnswer:
			lines = append(lines, Line{QuestionID: id, AnswerText: string(v)})
		default:
			lines = append(lines, Line{QuestionID: id})
		}
	}

	return Submission{UserName: userName, Answers: lines}
}

// OrderByCatalog returns a copy of the submission with lines sorted by the
// catalog position of their question. Lines of one question keep their
// relative order; questions outside the catalog go last.
func OrderByCatalog(sub Submission, catalog Catalog) Submission {
	lines := make([]Line, len(sub.Answers))
	copy(lines, sub.Answers)

	rank := func(id string) int {
		if p := catalog.Position(id); p > 0 {
			return p
		}
		return len(catalog) + 1
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return rank(lines[i].QuestionID) < rank(lines[j].QuestionID)
	})

	return Submission{UserName: sub.UserName, Answers: lines}
}

func selectionLine(questionID string, sel Selection) Line {
	return Line{
		QuestionID:    questionID,
		AnswerText:    sel.ChoiceText,
		WrittenAnswer: sel.OtherText,
	}
}
