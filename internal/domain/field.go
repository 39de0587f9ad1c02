package domain

import "fmt"

// Field identifies one of the three calculator inputs.
type Field int

const (
	FieldDistance Field = iota
	FieldFuelConsumption
	FieldFuelPrice
)

// Fields lists every input in display and error-reporting order.
var Fields = [...]Field{FieldDistance, FieldFuelConsumption, FieldFuelPrice}

var fieldNames = [...]string{
	FieldDistance:        "distance",
	FieldFuelConsumption: "fuel_consumption",
	FieldFuelPrice:       "fuel_price",
}

var fieldQueryKeys = [...]string{
	FieldDistance:        "d",
	FieldFuelConsumption: "c",
	FieldFuelPrice:       "p",
}

var fieldLabels = [...]string{
	FieldDistance:        "Distance",
	FieldFuelConsumption: "Fuel consumption",
	FieldFuelPrice:       "Fuel price",
}

func (f Field) valid() bool {
	return f >= FieldDistance && f <= FieldFuelPrice
}

// String returns the snake_case name used in JSON payloads and URL paths.
func (f Field) String() string {
	if !f.valid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// QueryKey returns the short share-query parameter for the field.
func (f Field) QueryKey() string {
	if !f.valid() {
		return ""
	}
	return fieldQueryKeys[f]
}

// Label returns the human-readable field title.
func (f Field) Label() string {
	if !f.valid() {
		return ""
	}
	return fieldLabels[f]
}

// ParseField resolves either the long name or the short query key of a field.
// It returns ErrUnknownField for anything else.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if s == fieldNames[f] || s == fieldQueryKeys[f] {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// FieldSet is a small bit set of fields.
type FieldSet uint8

// Add returns the set with f included.
func (s FieldSet) Add(f Field) FieldSet {
	if !f.valid() {
		return s
	}
	return s | 1<<uint(f)
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	return f.valid() && s&(1<<uint(f)) != 0
}
