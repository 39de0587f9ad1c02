// Package tui is an interactive terminal front end for the calculator.
// Each input is validated when the user leaves it, and the cost note is
// recomputed whenever any input changes.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/efreitasn/fuelcalc/internal/engine"
	"github.com/efreitasn/fuelcalc/internal/service"
)

// formState backs the form inputs. Fields are exported so huh can hash
// the state to detect changes.
type formState struct {
	Distance        string
	FuelConsumption string
	FuelPrice       string
}

func (s *formState) raw() domain.RawInput {
	return domain.RawInput{
		Distance:        s.Distance,
		FuelConsumption: s.FuelConsumption,
		FuelPrice:       s.FuelPrice,
	}
}

// Run shows the calculator form prefilled with initial and returns the
// final input once the user submits.
func Run(calc *service.CalculatorService, initial domain.RawInput) (domain.RawInput, error) {
	state := &formState{
		Distance:        initial.Distance,
		FuelConsumption: initial.FuelConsumption,
		FuelPrice:       initial.FuelPrice,
	}

	form := buildForm(calc, state).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return domain.RawInput{}, err
	}
	return state.raw(), nil
}

func buildForm(calc *service.CalculatorService, state *formState) *huh.Form {
	priceUnit := calc.Currency().Code() + "/l"
	return huh.NewForm(
		huh.NewGroup(
			fieldInput(domain.FieldDistance, "km", &state.Distance),
			fieldInput(domain.FieldFuelConsumption, "l/100 km", &state.FuelConsumption),
			fieldInput(domain.FieldFuelPrice, priceUnit, &state.FuelPrice),
			huh.NewNote().Title("Cost").DescriptionFunc(func() string {
				return Preview(calc, state.raw())
			}, state),
		).Title("Fuel price calculator"),
	)
}

func fieldInput(f domain.Field, unit string, value *string) *huh.Input {
	return huh.NewInput().
		Title(f.Label()).
		Description(unit).
		Placeholder(f.Label()).
		Value(value).
		Validate(ValidateField)
}

// ValidateField returns the user-facing message for invalid text, or nil.
// Out-of-range numbers pass; the cost note reports them.
func ValidateField(s string) error {
	_, err := engine.ParseDecimal(s)
	if err == nil || errors.Is(err, domain.ErrOverflow) {
		return nil
	}
	return errors.New(domain.KindOf(err).Message())
}

// Preview renders the live cost line for the current input.
func Preview(calc *service.CalculatorService, in domain.RawInput) string {
	res, err := calc.Calculate(in)
	switch {
	case err != nil:
		return "The result is too large to compute."
	case !res.Evaluation.HasResult:
		return "Fill in all fields to see the cost."
	}
	return fmt.Sprintf("You'll pay %s for fuel.", res.Display)
}
