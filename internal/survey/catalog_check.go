package survey

import "fmt"

// Check reports the first structural problem that would make the catalog
// unusable: missing or duplicate ids, an unknown type, a choice question
// without choices, or a selection bound that cannot be met.
// Every error wraps ErrInvalidCatalog.
func (c Catalog) Check() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(c))
	for i, q := range c {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidCatalog, i+1)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidCatalog, q.ID)
		}
		seen[q.ID] = true

		switch q.Type {
		case QuestionTypeText:
			if len(q.Choices) > 0 {
				return fmt.Errorf("%w: text question %q has choices", ErrInvalidCatalog, q.ID)
			}
		case QuestionTypeSingle, QuestionTypeMulti:
			if len(q.Choices) == 0 {
				return fmt.Errorf("%w: question %q has no choices", ErrInvalidCatalog, q.ID)
			}
			choiceIDs := make(map[string]bool, len(q.Choices))
			for _, ch := range q.Choices {
				if ch.ID == "" || choiceIDs[ch.ID] {
					return fmt.Errorf("%w: question %q has a missing or duplicate choice id", ErrInvalidCatalog, q.ID)
				}
				choiceIDs[ch.ID] = true
			}
		default:
			return fmt.Errorf("%w: question %q has unknown type %q", ErrInvalidCatalog, q.ID, q.Type)
		}

		if q.MaxSelections != nil {
			if q.Type != QuestionTypeMulti {
				return fmt.Errorf("%w: max_selections on non-multi question %q", ErrInvalidCatalog, q.ID)
			}
			if *q.MaxSelections < 1 {
				return fmt.Errorf("%w: question %q max_selections must be positive", ErrInvalidCatalog, q.ID)
			}
		}
	}
	return nil
}
