package survey

import (
	"errors"
	"testing"
)

func TestCatalogCheck(t *testing.T) {
	if err := testCatalog().Check(); err != nil {
		t.Fatalf("valid catalog: %v", err)
	}
	if err := (Catalog{}).Check(); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("empty: err = %v", err)
	}

	dupChoice := singleQuestion()
	dupChoice.Choices = append(dupChoice.Choices, dupChoice.Choices[0])
	badMax := multiQuestion(intPtr(0))
	maxOnSingle := singleQuestion()
	maxOnSingle.MaxSelections = intPtr(1)
	textWithChoices := textQuestion()
	textWithChoices.Choices = []Choice{{ID: "x"}}

	tests := []struct {
		name    string
		catalog Catalog
	}{
		{"missing id", Catalog{{Type: QuestionTypeText}}},
		{"duplicate question", Catalog{textQuestion(), textQuestion()}},
		{"unknown type", Catalog{{ID: "q", Type: "rating"}}},
		{"choice question without choices", Catalog{{ID: "q", Type: QuestionTypeSingle}}},
		{"duplicate choice", Catalog{dupChoice}},
		{"zero max", Catalog{badMax}},
		{"max on single", Catalog{maxOnSingle}},
		{"text with choices", Catalog{textWithChoices}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.catalog.Check(); !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("err = %v, want ErrInvalidCatalog", err)
			}
		})
	}
}
