package validation

import (
	"fmt"

	apperrors "github.com/edusekai/platform-api/pkg/util"
)

// WizardStep names one step of a multi-step form and the struct fields it
// owns. Steps form a linear machine: advancing past step N requires step N's
// fields to validate; stepping backward validates nothing.
type WizardStep struct {
	Name   string
	Fields []string
}

// Wizard is the ordered step list plus the single overall schema the final
// submit validates against.
type Wizard struct {
	Steps []WizardStep
}

// Step returns the step at index, failing closed on out-of-range indices.
func (w Wizard) Step(index int) (WizardStep, error) {
	if index < 0 || index >= len(w.Steps) {
		return WizardStep{}, apperrors.NewValidationError(
			fmt.Sprintf("step must be between 0 and %d", len(w.Steps)-1), nil)
	}
	return w.Steps[index], nil
}

// ValidateStep validates only the declared field subset of one step.
func (w Wizard) ValidateStep(v *Validator, index int, payload any) error {
	step, err := w.Step(index)
	if err != nil {
		return err
	}
	return v.StructPartial(payload, step.Fields...)
}
