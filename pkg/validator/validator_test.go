package validator

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Name   string `validate:"required,min=2"`
	Email  string `validate:"required,email"`
	Date   string `validate:"omitempty,datetime=2006-01-02"`
	Status string `validate:"omitempty,oneof=pending approved"`
}

func TestValidate(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&sampleRequest{Name: "Jane", Email: "jane@example.com"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	if err := cv.Validate(&sampleRequest{}); err == nil {
		t.Fatal("expected required fields to fail")
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sampleRequest{
		Name:   "J",
		Email:  "not-an-email",
		Date:   "15-01-2026",
		Status: "done",
	})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	formatted := cv.FormatValidationErrors(err)

	cases := []struct {
		field string
		want  string
	}{
		{"Name", "at least 2 characters"},
		{"Email", "valid email address"},
		{"Date", "must match the format"},
		{"Status", "must be one of"},
	}
	for _, tc := range cases {
		msg, ok := formatted[tc.field]
		if !ok {
			t.Errorf("missing message for %s", tc.field)
			continue
		}
		if !strings.Contains(msg, tc.want) {
			t.Errorf("%s: expected %q in %q", tc.field, tc.want, msg)
		}
	}
}

func TestFormatValidationErrorsIgnoresOtherErrors(t *testing.T) {
	cv := NewValidator()

	formatted := cv.FormatValidationErrors(errInvalid{})
	if len(formatted) != 0 {
		t.Fatalf("expected empty map, got %v", formatted)
	}
}

type errInvalid struct{}

func (errInvalid) Error() string { return "boom" }
