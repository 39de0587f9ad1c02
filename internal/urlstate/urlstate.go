// Package urlstate mirrors calculator input into a shareable query string
// using the short keys d, c and p.
package urlstate

import (
	"net/url"

	"github.com/efreitasn/fuelcalc/internal/domain"
)

// Encode returns the query parameters for in. Empty fields are omitted.
func Encode(in domain.RawInput) url.Values {
	v := url.Values{}
	for _, f := range domain.Fields {
		if s := in.Get(f); s != "" {
			v.Set(f.QueryKey(), s)
		}
	}
	return v
}

// Decode loads raw input verbatim from query parameters. Missing keys
// decode as empty strings; nothing is validated here.
func Decode(v url.Values) domain.RawInput {
	var in domain.RawInput
	for _, f := range domain.Fields {
		in.Set(f, v.Get(f.QueryKey()))
	}
	return in
}

// Present returns the fields that carry a non-empty value in v.
func Present(v url.Values) domain.FieldSet {
	var set domain.FieldSet
	for _, f := range domain.Fields {
		if v.Get(f.QueryKey()) != "" {
			set = set.Add(f)
		}
	}
	return set
}

// Query renders in as an encoded query string, e.g. "c=7.5&d=100&p=6.5".
func Query(in domain.RawInput) string {
	return Encode(in).Encode()
}

// ParseQuery decodes a query string produced by Query. A leading "?" is
// tolerated.
func ParseQuery(q string) (domain.RawInput, domain.FieldSet, error) {
	if len(q) > 0 && q[0] == '?' {
		q = q[1:]
	}
	v, err := url.ParseQuery(q)
	if err != nil {
		return domain.RawInput{}, 0, err
	}
	return Decode(v), Present(v), nil
}
