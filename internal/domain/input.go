package domain

import "github.com/govalues/decimal"

// RawInput is the calculator input exactly as typed by the user.
type RawInput struct {
	Distance        string
	FuelConsumption string
	FuelPrice       string
}

// Get returns the raw text of the given field.
func (in RawInput) Get(f Field) string {
	switch f {
	case FieldDistance:
		return in.Distance
	case FieldFuelConsumption:
		return in.FuelConsumption
	case FieldFuelPrice:
		return in.FuelPrice
	}
	return ""
}

// Set replaces the raw text of the given field. Unknown fields are ignored.
func (in *RawInput) Set(f Field, value string) {
	switch f {
	case FieldDistance:
		in.Distance = value
	case FieldFuelConsumption:
		in.FuelConsumption = value
	case FieldFuelPrice:
		in.FuelPrice = value
	}
}

// ParsedInput holds the three inputs once every field has validated.
type ParsedInput struct {
	Distance        decimal.Decimal // km
	FuelConsumption decimal.Decimal // l/100 km
	FuelPrice       decimal.Decimal // per litre
}

// Evaluation is the outcome of running the calculator pipeline over a
// RawInput. Result is meaningful only when HasResult is true, which happens
// exactly when Errors is empty.
type Evaluation struct {
	Result    decimal.Decimal
	HasResult bool
	Errors    []FieldError
}

// ErrorFor returns the validation error attached to f, if any.
func (e Evaluation) ErrorFor(f Field) (FieldError, bool) {
	for _, fe := range e.Errors {
		if fe.Field == f {
			return fe, true
		}
	}
	return FieldError{}, false
}
