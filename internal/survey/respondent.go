package survey

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinRespondentNameLength = 2
	MaxRespondentNameLength = 50
)

var respondentNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// ValidateRespondentName checks the display name entered before a survey
// starts: letters and whitespace only, 2 to 50 characters once trimmed.
func ValidateRespondentName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinRespondentNameLength || n > MaxRespondentNameLength {
		return fmt.Errorf("%w: must be %d-%d characters", ErrInvalidRespondentName, MinRespondentNameLength, MaxRespondentNameLength)
	}
	if !respondentNamePattern.MatchString(name) {
		return fmt.Errorf("%w: only letters and spaces are allowed", ErrInvalidRespondentName)
	}
	return nil
}
