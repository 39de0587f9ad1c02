package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrSessionNotFound,
		ErrUnknownField,
		ErrOverflow,
		ErrEmpty,
		ErrNotANumber,
	}
	for i := 0; i < len(errs); i++ {
		for j := i + 1; j < len(errs); j++ {
			if errors.Is(errs[i], errs[j]) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"empty", ErrEmpty, KindEmpty},
		{"wrapped empty", fmt.Errorf("field: %w", ErrEmpty), KindEmpty},
		{"not a number", ErrNotANumber, KindNotANumber},
		{"wrapped not a number", fmt.Errorf("%w: %q", ErrNotANumber, "abc"), KindNotANumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorKind_Message(t *testing.T) {
	if got := KindEmpty.Message(); got != "Must not be empty." {
		t.Errorf("KindEmpty.Message() = %q", got)
	}
	if got := KindNotANumber.Message(); got != "Must be a number." {
		t.Errorf("KindNotANumber.Message() = %q", got)
	}
}

func TestFieldError(t *testing.T) {
	cause := fmt.Errorf("%w: %q", ErrNotANumber, "abc")
	fe := FieldError{Field: FieldDistance, Kind: KindNotANumber, Cause: cause}

	if got := fe.Error(); got != "distance: Must be a number." {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(fe, ErrNotANumber) {
		t.Error("FieldError should unwrap to its cause")
	}
}
