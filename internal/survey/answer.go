package survey

// Selection is a chosen option together with its optional elaboration.
type Selection struct {
	ChoiceID   string `json:"choice_id"`
	ChoiceText string `json:"choice_text"`
	OtherText  string `json:"other_text,omitempty"`
}

// Answer is the structured partial answer held for one question.
// The concrete shape is SingleAnswer, MultiAnswer or TextAnswer.
type Answer interface {
	answerType() QuestionType
}

// SingleAnswer is the answer shape of a single-choice question.
type SingleAnswer struct {
	Selection
}

// MultiAnswer holds selections in the order they were made.
type MultiAnswer []Selection

// TextAnswer is a free-text answer, possibly empty.
type TextAnswer string

func (SingleAnswer) answerType() QuestionType { return QuestionTypeSingle }
func (MultiAnswer) answerType() QuestionType  { return QuestionTypeMulti }
func (TextAnswer) answerType() QuestionType   { return QuestionTypeText }

// Index returns the position of a choice within the selections, or -1.
func (m MultiAnswer) Index(choiceID string) int {
	for i, s := range m {
		if s.ChoiceID == choiceID {
			return i
		}
	}
	return -1
}

// ShapeOf reports the question type an answer value is shaped for.
func ShapeOf(a Answer) QuestionType {
	if a == nil {
		return ""
	}
	return a.answerType()
}
