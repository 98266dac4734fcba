package validation

import (
	"errors"
	"testing"

	apperrors "github.com/edusekai/platform-api/pkg/util"
)

type wizardPayload struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

func testWizard() Wizard {
	return Wizard{Steps: []WizardStep{
		{Name: "name", Fields: []string{"FirstName", "LastName"}},
		{Name: "contact", Fields: []string{"Email"}},
	}}
}

func TestWizardStepOutOfRange(t *testing.T) {
	w := testWizard()
	for _, index := range []int{-1, 2, 99} {
		if _, err := w.Step(index); err == nil {
			t.Fatalf("Step(%d) accepted an out-of-range index", index)
		}
	}
	step, err := w.Step(1)
	if err != nil {
		t.Fatalf("Step(1): %v", err)
	}
	if step.Name != "contact" {
		t.Fatalf("Step(1).Name = %q, want %q", step.Name, "contact")
	}
}

func TestWizardValidateStep(t *testing.T) {
	w := testWizard()
	v := New()
	payload := wizardPayload{FirstName: "Asha", LastName: "Shrestha"}

	// Step 0 owns only the name fields, so the missing email is ignored.
	if err := w.ValidateStep(v, 0, payload); err != nil {
		t.Fatalf("ValidateStep(0) on complete step fields: %v", err)
	}

	// Step 1 owns the email and must reject its absence.
	err := w.ValidateStep(v, 1, payload)
	if err == nil {
		t.Fatal("ValidateStep(1) passed with missing email")
	}
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("ValidateStep(1) returned %T, want *DomainError", err)
	}
	if _, ok := derr.Details["email"]; !ok {
		t.Fatalf("validation details keyed %v, want json name %q", derr.Details, "email")
	}
}

func TestValidatorStructUsesJSONNames(t *testing.T) {
	v := New()
	err := v.Struct(wizardPayload{Email: "not-an-email"})
	if err == nil {
		t.Fatal("Struct passed an invalid payload")
	}
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("Struct returned %T, want *DomainError", err)
	}
	for _, key := range []string{"first_name", "last_name", "email"} {
		if _, ok := derr.Details[key]; !ok {
			t.Fatalf("missing detail for %q in %v", key, derr.Details)
		}
	}
}
