package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/govalues/decimal"
)

func raw(d, c, p string) domain.RawInput {
	return domain.RawInput{Distance: d, FuelConsumption: c, FuelPrice: p}
}

func mustEvaluate(t *testing.T, in domain.RawInput) domain.Evaluation {
	t.Helper()
	ev, err := Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate(%+v) unexpected error: %v", in, err)
	}
	return ev
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7,5", "7.5"},
		{"7.5", "7.5"},
		{"1,000", "1.000"},
		{"1,2,3", "1.2.3"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDecimal_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "100", "100"},
		{"period", "7.5", "7.5"},
		{"comma", "7,5", "7.5"},
		{"trailing separator", "1,", "1"},
		{"leading separator", ".5", "0.5"},
		{"negative bare fraction", "-.5", "-0.5"},
		{"explicit plus", "+3", "3"},
		{"exponent", "1e3", "1000"},
		{"negative exponent", "1.5E-2", "0.015"},
		{"comma and exponent", "2,5e1", "25"},
		{"leading zeros", "007.50", "7.5"},
		{"zero", "0", "0"},
		{"negative zero", "-0", "0"},
		{"zero with huge exponent", "0e999999999999", "0"},
		{"thousands separator misparse", "1,000", "1"},
		{"nineteen digits", "1234567890123456789", "1234567890123456789"},
		{"long zero fraction", "1.0000000000000000000000000", "1"},
		{"tiny value rounds to zero", "1e-21", "0"},
		{"far below precision", "1e-40", "0"},
		{"extra fraction digits round", "0.12345678901234567891", "0.1234567890123456789"},
		{"large exponent that fits", "1e18", "1000000000000000000"},
		{"negative", "-42.1", "-42.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if err != nil {
				t.Fatalf("ParseDecimal(%q) unexpected error: %v", tt.input, err)
			}
			want := decimal.MustParse(tt.want)
			if got.Cmp(want) != 0 {
				t.Errorf("ParseDecimal(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseDecimal_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", domain.ErrEmpty},
		{"spaces", "   ", domain.ErrEmpty},
		{"tab", "\t", domain.ErrEmpty},
		{"letters", "abc", domain.ErrNotANumber},
		{"bare period", ".", domain.ErrNotANumber},
		{"bare comma", ",", domain.ErrNotANumber},
		{"bare minus", "-", domain.ErrNotANumber},
		{"bare plus", "+", domain.ErrNotANumber},
		{"two separators", "1.2.3", domain.ErrNotANumber},
		{"thousands and decimal", "1,000.5", domain.ErrNotANumber},
		{"leading space", " 5", domain.ErrNotANumber},
		{"trailing space", "5 ", domain.ErrNotANumber},
		{"dangling exponent", "1e", domain.ErrNotANumber},
		{"exponent without mantissa", ".e5", domain.ErrNotANumber},
		{"signed exponent without mantissa", "+.e5", domain.ErrNotANumber},
		{"hex", "0x10", domain.ErrNotANumber},
		{"infinity", "Infinity", domain.ErrNotANumber},
		{"nan", "NaN", domain.ErrNotANumber},
		{"unit suffix", "100km", domain.ErrNotANumber},
		{"twenty integer digits", "12345678901234567890", domain.ErrOverflow},
		{"huge exponent", "1e30", domain.ErrOverflow},
		{"negative value, large exponent", "-1,5e25", domain.ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDecimal(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseDecimal(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestParseDecimal_OutOfRangeIsNotAFieldError(t *testing.T) {
	for _, input := range []string{"12345678901234567890", "1e30", "1e-21", "1e-40"} {
		_, err := ParseDecimal(input)
		if errors.Is(err, domain.ErrNotANumber) || errors.Is(err, domain.ErrEmpty) {
			t.Errorf("ParseDecimal(%q) = %v, a valid literal must not be a field error", input, err)
		}
	}

	_, err := ParseDecimal("1e30")
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("expected out of range error, got %v", err)
	}
}

func TestEvaluate_ComputesCost(t *testing.T) {
	tests := []struct {
		name string
		in   domain.RawInput
		want string
	}{
		{"typical trip", raw("100", "7.5", "6.5"), "48.75"},
		{"comma separators", raw("100", "7,5", "6,5"), "48.75"},
		{"short trip", raw("42", "6", "6.89"), "17.3628"},
		{"zero distance", raw("0", "7.5", "6.5"), "0"},
		{"zero price", raw("250", "5", "0"), "0"},
		{"negative distance tolerated", raw("-100", "7.5", "6.5"), "-48.75"},
		{"exponent input", raw("1e2", "7.5", "6.5"), "48.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := mustEvaluate(t, tt.in)
			if !ev.HasResult {
				t.Fatalf("expected a result, got errors %v", ev.Errors)
			}
			if len(ev.Errors) != 0 {
				t.Fatalf("expected no errors, got %v", ev.Errors)
			}
			if want := decimal.MustParse(tt.want); ev.Result.Cmp(want) != 0 {
				t.Errorf("result = %s, want %s", ev.Result, want)
			}
		})
	}
}

func TestEvaluate_IsExact(t *testing.T) {
	ev := mustEvaluate(t, raw("100", "0.1", "0.1"))
	if !ev.HasResult {
		t.Fatalf("expected a result, got errors %v", ev.Errors)
	}
	if want := decimal.MustParse("0.01"); ev.Result.Cmp(want) != 0 {
		t.Fatalf("result = %s, want exactly %s", ev.Result, want)
	}
}

func TestEvaluate_CommaEquivalence(t *testing.T) {
	comma := mustEvaluate(t, raw("100", "7,5", "6,5"))
	period := mustEvaluate(t, raw("100", "7.5", "6.5"))
	if comma.Result.String() != period.Result.String() {
		t.Fatalf("comma result %s != period result %s", comma.Result, period.Result)
	}
}

func TestEvaluate_FieldErrors(t *testing.T) {
	tests := []struct {
		name string
		in   domain.RawInput
		want []domain.FieldError
	}{
		{
			name: "empty distance",
			in:   raw("", "7.5", "6.5"),
			want: []domain.FieldError{{Field: domain.FieldDistance, Kind: domain.KindEmpty}},
		},
		{
			name: "non-numeric distance",
			in:   raw("abc", "7.5", "6.5"),
			want: []domain.FieldError{{Field: domain.FieldDistance, Kind: domain.KindNotANumber}},
		},
		{
			name: "whitespace price",
			in:   raw("100", "7.5", "  "),
			want: []domain.FieldError{{Field: domain.FieldFuelPrice, Kind: domain.KindEmpty}},
		},
		{
			name: "every field invalid, reported in field order",
			in:   raw("x", "", "1.2.3"),
			want: []domain.FieldError{
				{Field: domain.FieldDistance, Kind: domain.KindNotANumber},
				{Field: domain.FieldFuelConsumption, Kind: domain.KindEmpty},
				{Field: domain.FieldFuelPrice, Kind: domain.KindNotANumber},
			},
		},
		{
			name: "all empty",
			in:   raw("", "", ""),
			want: []domain.FieldError{
				{Field: domain.FieldDistance, Kind: domain.KindEmpty},
				{Field: domain.FieldFuelConsumption, Kind: domain.KindEmpty},
				{Field: domain.FieldFuelPrice, Kind: domain.KindEmpty},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := mustEvaluate(t, tt.in)
			if ev.HasResult {
				t.Fatalf("expected no result, got %s", ev.Result)
			}
			if len(ev.Errors) != len(tt.want) {
				t.Fatalf("got %d errors %v, want %d", len(ev.Errors), ev.Errors, len(tt.want))
			}
			for i, want := range tt.want {
				got := ev.Errors[i]
				if got.Field != want.Field || got.Kind != want.Kind {
					t.Errorf("error[%d] = {%s %s}, want {%s %s}", i, got.Field, got.Kind, want.Field, want.Kind)
				}
			}
		})
	}
}

func TestEvaluate_Overflow(t *testing.T) {
	big := "9999999999999999999"
	_, err := Evaluate(raw(big, big, big))
	if !errors.Is(err, domain.ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestEvaluate_ValueOutOfRange(t *testing.T) {
	_, err := Evaluate(raw("1e30", "7.5", "6.5"))
	if !errors.Is(err, domain.ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}

	// Field errors are reported before overflow.
	ev, err := Evaluate(raw("1e30", "", "6.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ev.Errors) != 1 || ev.Errors[0].Field != domain.FieldFuelConsumption || ev.HasResult {
		t.Fatalf("expected only the fuel_consumption error, got %+v", ev)
	}

	// Values below the decimal's precision evaluate as zero.
	ev = mustEvaluate(t, raw("1e-40", "7.5", "6.5"))
	if !ev.HasResult || !ev.Result.IsZero() {
		t.Fatalf("expected a zero result, got %+v", ev)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	in := raw("123,4", "6.7", "7,19")
	first := mustEvaluate(t, in)
	second := mustEvaluate(t, in)
	if first.Result.String() != second.Result.String() || first.HasResult != second.HasResult {
		t.Fatalf("results differ: %s vs %s", first.Result, second.Result)
	}
}

func TestCost(t *testing.T) {
	got, err := Cost(domain.ParsedInput{
		Distance:        decimal.MustParse("350"),
		FuelConsumption: decimal.MustParse("5.8"),
		FuelPrice:       decimal.MustParse("6.49"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 5.8 × 6.49 × 3.5
	if want := decimal.MustParse("131.747"); got.Cmp(want) != 0 {
		t.Fatalf("Cost = %s, want %s", got, want)
	}
}
