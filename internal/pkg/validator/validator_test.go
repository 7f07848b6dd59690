package validator

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestExceedsLength(t *testing.T) {
	if ExceedsLength("héllo", 5) {
		t.Errorf("ExceedsLength(%q, 5) = true, want false", "héllo")
	}
	if !ExceedsLength("hello!", 5) {
		t.Errorf("ExceedsLength(%q, 5) = false, want true", "hello!")
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-01-01", "2024-02-29"}
	invalid := []string{"2023-02-29", "01-01-2024", "2024/01/01", ""}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"pending", "approved"}
	if !IsInSlice("approved", slice) {
		t.Errorf("IsInSlice(approved) = false, want true")
	}
	if IsInSlice("cancelled", slice) {
		t.Errorf("IsInSlice(cancelled) = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatalf("empty ValidationErrors.Err() = %v, want nil", errs.Err())
	}

	errs.Add("amount", "amount must not be negative")
	errs.Add("description", "description is required")

	err := errs.Err()
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("errors.Is(err, ErrValidation) = false, want true")
	}
	want := "amount: amount must not be negative; description: description is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if m := errs.ToMap(); m["description"] != "description is required" {
		t.Errorf("ToMap()[description] = %q", m["description"])
	}
}

func TestStruct(t *testing.T) {
	type policy struct {
		Minutes float64 `validate:"gt=0"`
		Start   string  `validate:"required"`
	}

	if err := Struct(policy{Minutes: 480, Start: "09:00"}); err != nil {
		t.Fatalf("Struct(valid) = %v, want nil", err)
	}

	err := Struct(policy{})
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct(invalid) = %T, want ValidationErrors", err)
	}
	if len(errs) != 2 {
		t.Errorf("len(errs) = %d, want 2", len(errs))
	}
	if errs.ToMap()["policy.Minutes"] != "failed on 'gt=0'" {
		t.Errorf("unexpected message map %v", errs.ToMap())
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"2024-01-15", "2024-01-15 10:30:00", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}
