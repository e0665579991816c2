package validator

import (
	"strings"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
)

type startRequest struct {
	UserName string `json:"user_name" validate:"required,respondent_name"`
}

func newValidate(t *testing.T) *govalidator.Validate {
	t.Helper()
	v := govalidator.New()
	if err := Register(v); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return v
}

func TestRespondentNameTag(t *testing.T) {
	v := newValidate(t)

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain", "Alice", true},
		{"spaces", "Mary Ann", true},
		{"too short", "A", false},
		{"digits", "Agent 47", false},
		{"too long", strings.Repeat("b", 51), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(startRequest{UserName: tt.input})
			if (err == nil) != tt.valid {
				t.Errorf("valid = %v, err = %v", tt.valid, err)
			}
		})
	}
}

func TestTranslateErrorsUsesJSONNames(t *testing.T) {
	v := newValidate(t)

	fields := TranslateErrors(v.Struct(startRequest{UserName: "X1"}))
	msg, ok := fields["user_name"]
	if !ok {
		t.Fatalf("fields = %v, want user_name key", fields)
	}
	if !strings.Contains(msg, "2 to 50") {
		t.Errorf("message = %q", msg)
	}

	fields = TranslateErrors(v.Struct(startRequest{}))
	if !strings.Contains(fields["user_name"], "required") {
		t.Errorf("required message = %q", fields["user_name"])
	}
}

func TestTranslateErrorsNonValidation(t *testing.T) {
	fields := TranslateErrors(errString("unexpected EOF"))
	if fields["detail"] != "unexpected EOF" {
		t.Errorf("fields = %v", fields)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
