// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Gender selects both the regression formula and the reference partition.
type Gender int

// Supported genders. The zero value is invalid.
const (
	GenderUnknown Gender = iota
	Male
	Female
)

// String returns the display label used by forms and reference data.
func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return "Unknown"
	}
}

// Valid reports whether g is one of Male or Female.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// ParseGender maps "Male"/"Female" (case-insensitive, surrounding space ignored).
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return GenderUnknown, fmt.Errorf("%w: %q", ErrInvalidGender, s)
}

// Genders lists every valid gender in display order.
func Genders() []Gender {
	return []Gender{Male, Female}
}

// MarshalText implements encoding.TextMarshaler.
func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGender, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gender) UnmarshalText(b []byte) error {
	parsed, err := ParseGender(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
