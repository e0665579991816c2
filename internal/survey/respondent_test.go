package survey

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRespondentName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "Alice", true},
		{"two words", "Mary Jane", true},
		{"minimum", "Al", true},
		{"maximum", strings.Repeat("a", 50), true},
		{"padded", "  Bo  ", true},
		{"too short", "A", false},
		{"too short after trim", "  A  ", false},
		{"too long", strings.Repeat("a", 51), false},
		{"empty", "", false},
		{"digits", "Alice2", false},
		{"punctuation", "O'Brien", false},
		{"accented", "José", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRespondentName(tt.input)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidRespondentName) {
				t.Errorf("expected ErrInvalidRespondentName, got %v", err)
			}
		})
	}
}
