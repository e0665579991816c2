package survey

func intPtr(n int) *int { return &n }

func singleQuestion() Question {
	return Question{
		ID:   "q1",
		Text: "Do you like Go?",
		Type: QuestionTypeSingle,
		Choices: []Choice{
			{ID: "c1", Text: "Yes"},
			{ID: "c2", Text: "Other", IsOther: true},
		},
	}
}

func multiQuestion(max *int) Question {
	return Question{
		ID:   "q2",
		Text: "Which editors do you use?",
		Type: QuestionTypeMulti,
		Choices: []Choice{
			{ID: "a", Text: "Vim"},
			{ID: "b", Text: "Emacs"},
			{ID: "c", Text: "VS Code"},
			{ID: "o", Text: "Other", IsOther: true},
		},
		MaxSelections: max,
	}
}

func textQuestion() Question {
	return Question{ID: "q3", Text: "Anything else?", Type: QuestionTypeText}
}

func testCatalog() Catalog {
	return Catalog{singleQuestion(), multiQuestion(intPtr(2)), textQuestion()}
}
