package service

import (
	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/efreitasn/fuelcalc/internal/engine"
	"github.com/govalues/decimal"
	"github.com/govalues/money"
)

// Calculation is an evaluation together with its display form.
type Calculation struct {
	Evaluation domain.Evaluation
	Cost       money.Amount // rounded for display; zero unless Evaluation.HasResult
	Display    string       // e.g. "48.75 PLN"; empty unless Evaluation.HasResult
}

// CalculatorService evaluates stateless calculator requests and renders
// results in the configured currency.
type CalculatorService struct {
	currency money.Currency
}

// NewCalculatorService creates a CalculatorService labelling costs with
// currency.
func NewCalculatorService(currency money.Currency) *CalculatorService {
	return &CalculatorService{currency: currency}
}

// Currency returns the currency costs are labelled with.
func (s *CalculatorService) Currency() money.Currency {
	return s.currency
}

// Calculate runs the pipeline over in. Field validation failures are
// reported in the returned Calculation; the error is reserved for
// arithmetic overflow.
func (s *CalculatorService) Calculate(in domain.RawInput) (*Calculation, error) {
	ev, err := engine.Evaluate(in)
	if err != nil {
		return nil, err
	}

	calc := &Calculation{Evaluation: ev}
	if !ev.HasResult {
		return calc, nil
	}
	cost, err := domain.NewCost(s.currency, ev.Result)
	if err != nil {
		return nil, err
	}
	calc.Cost = cost
	calc.Display = domain.FormatCost(cost)
	return calc, nil
}

// Format renders an unrounded result for display.
func (s *CalculatorService) Format(d decimal.Decimal) (string, error) {
	cost, err := domain.NewCost(s.currency, d)
	if err != nil {
		return "", err
	}
	return domain.FormatCost(cost), nil
}
