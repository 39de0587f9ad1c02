package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/govalues/decimal"
)

// floatLiteral accepts an optionally signed decimal with an optional
// exponent. At least one mantissa digit is required, so ".", "-" and ".e5"
// are rejected. Groups: sign, integer digits, fraction digits after an
// integer part, fraction digits of a bare ".5" form, exponent.
var floatLiteral = regexp.MustCompile(`^([+-]?)(?:([0-9]+)(?:\.([0-9]*))?|\.([0-9]+))(?:[eE]([+-]?[0-9]+))?$`)

var hundred = decimal.MustNew(100, 0)

// Normalize maps comma decimal separators to periods. Thousands separators
// are not recognised: "1,000" becomes "1.000".
func Normalize(raw string) string {
	return strings.ReplaceAll(raw, ",", ".")
}

// ParseDecimal validates and parses a single raw field. The returned error
// wraps domain.ErrEmpty when the text is blank and domain.ErrNotANumber when
// it is not a floating-point literal. A valid literal whose magnitude does
// not fit a 19-digit decimal wraps domain.ErrOverflow; digits beyond the
// 19th fractional place are rounded away, so "1e-40" parses as 0.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Decimal{}, domain.ErrEmpty
	}

	m := floatLiteral.FindStringSubmatch(Normalize(raw))
	if m == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrNotANumber, raw)
	}

	fracPart := m[3]
	if m[2] == "" {
		fracPart = m[4]
	}
	// Leading integer zeros and trailing fraction zeros carry no value.
	intPart := strings.TrimLeft(m[2], "0")
	fracPart = strings.TrimRight(fracPart, "0")
	if intPart == "" && fracPart == "" {
		return decimal.Zero, nil
	}
	if intPart == "" {
		intPart = "0"
	}

	// Rebuild the literal as "[-]int[.frac][e exp]" for decimal.Parse.
	lit := intPart
	if m[1] == "-" {
		lit = "-" + lit
	}
	if fracPart != "" {
		lit += "." + fracPart
	}
	if m[5] != "" {
		lit += "e" + m[5]
	}

	d, err := decimal.Parse(lit)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is out of range: %v", domain.ErrOverflow, raw, err)
	}
	return d, nil
}

// Evaluate runs the calculator pipeline: every field is validated
// independently and, only if all three pass, the travel cost is computed.
// Field failures are reported in the returned Evaluation, in field order.
// The error is non-nil only when a value or the arithmetic does not fit
// a decimal, and then wraps domain.ErrOverflow. Field errors take
// precedence over overflow.
func Evaluate(in domain.RawInput) (domain.Evaluation, error) {
	var (
		ev       domain.Evaluation
		values   [len(domain.Fields)]decimal.Decimal
		overflow error
	)
	for _, f := range domain.Fields {
		d, err := ParseDecimal(in.Get(f))
		switch {
		case errors.Is(err, domain.ErrOverflow):
			if overflow == nil {
				overflow = fmt.Errorf("%s: %w", f, err)
			}
		case err != nil:
			ev.Errors = append(ev.Errors, domain.FieldError{
				Field: f,
				Kind:  domain.KindOf(err),
				Cause: err,
			})
		default:
			values[f] = d
		}
	}
	if len(ev.Errors) > 0 {
		return ev, nil
	}
	if overflow != nil {
		return domain.Evaluation{}, overflow
	}

	result, err := Cost(domain.ParsedInput{
		Distance:        values[domain.FieldDistance],
		FuelConsumption: values[domain.FieldFuelConsumption],
		FuelPrice:       values[domain.FieldFuelPrice],
	})
	if err != nil {
		return domain.Evaluation{}, err
	}
	ev.Result = result
	ev.HasResult = true
	return ev, nil
}

// Cost computes fuelConsumption × fuelPrice × (distance ÷ 100): litres
// burned over the distance times the price per litre. The result is not
// rounded.
func Cost(p domain.ParsedInput) (decimal.Decimal, error) {
	hundreds, err := p.Distance.Quo(hundred)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: distance/100: %v", domain.ErrOverflow, err)
	}
	perHundred, err := p.FuelConsumption.Mul(p.FuelPrice)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: consumption*price: %v", domain.ErrOverflow, err)
	}
	cost, err := perHundred.Mul(hundreds)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: cost: %v", domain.ErrOverflow, err)
	}
	return cost, nil
}
