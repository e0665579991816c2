package survey

// The reducers below turn respondent interactions into store updates. Each
// returns the next store; on error the returned store is the input unchanged.

// ToggleSingle selects a choice of a single-choice question. Selecting the
// choice that is already selected clears the answer. Elaboration text typed
// for the previous selection carries over only when the new choice takes
// elaboration itself.
func ToggleSingle(store AnswerStore, q Question, choiceID string) (AnswerStore, error) {
	if q.Type != QuestionTypeSingle {
		return store, ErrQuestionType
	}
	choice, ok := q.Choice(choiceID)
	if !ok {
		return store, ErrUnknownChoice
	}

	current, _ := store.Get(q.ID)
	prev, hasPrev := current.(SingleAnswer)
	if hasPrev && prev.ChoiceID == choice.ID {
		return store.Clear(q.ID), nil
	}

	next := SingleAnswer{Selection: Selection{ChoiceID: choice.ID, ChoiceText: choice.Text}}
	if choice.IsOther && hasPrev {
		next.OtherText = prev.OtherText
	}
	return store.Set(q.ID, next), nil
}

// ToggleMulti adds or removes a choice of a multi-choice question, keeping
// selection order. A toggle that would push the selection count past the
// question's MaxSelections is rejected with a *MaxSelectionsError and the
// store is left as it was.
func ToggleMulti(store AnswerStore, q Question, choiceID string) (AnswerStore, error) {
	if q.Type != QuestionTypeMulti {
		return store, ErrQuestionType
	}
	choice, ok := q.Choice(choiceID)
	if !ok {
		return store, ErrUnknownChoice
	}

	current, _ := store.Get(q.ID)
	prev, _ := current.(MultiAnswer)

	var next MultiAnswer
	if idx := prev.Index(choice.ID); idx >= 0 {
		next = make(MultiAnswer, 0, len(prev)-1)
		next = append(next, prev[:idx]...)
		next = append(next, prev[idx+1:]...)
	} else {
		next = make(MultiAnswer, 0, len(prev)+1)
		next = append(next, prev...)
		next = append(next, Selection{ChoiceID: choice.ID, ChoiceText: choice.Text})
	}

	if limit := q.SelectionLimit(); limit > 0 && len(next) > limit {
		return store, &MaxSelectionsError{QuestionID: q.ID, Max: limit}
	}
	if len(next) == 0 {
		return store.Clear(q.ID), nil
	}
	return store.Set(q.ID, next), nil
}

// SetOtherText stores elaboration text for a selected other-elaboration choice.
func SetOtherText(store AnswerStore, q Question, choiceID, text string) (AnswerStore, error) {
	choice, ok := q.Choice(choiceID)
	if !ok {
		return store, ErrUnknownChoice
	}
	if !choice.IsOther {
		return store, ErrNoElaboration
	}

	current, _ := store.Get(q.ID)
	switch q.Type {
	case QuestionTypeSingle:
		prev, ok := current.(SingleAnswer)
		if !ok || prev.ChoiceID != choice.ID {
			return store, ErrChoiceNotSelected
		}
		prev.OtherText = text
		return store.Set(q.ID, prev), nil

	case QuestionTypeMulti:
		prev, _ := current.(MultiAnswer)
		idx := prev.Index(choice.ID)
		if idx < 0 {
			return store, ErrChoiceNotSelected
		}
		next := make(MultiAnswer, len(prev))
		copy(next, prev)
		next[idx].OtherText = text
		return store.Set(q.ID, next), nil

	default:
		return store, ErrQuestionType
	}
}

// SetText stores the free-text answer of a text question, empty strings included.
func SetText(store AnswerStore, q Question, text string) (AnswerStore, error) {
	if q.Type != QuestionTypeText {
		return store, ErrQuestionType
	}
	return store.Set(q.ID, TextAnswer(text)), nil
}
