package model

import "fmt"

// Input bounds enforced by callers before entering the computation core.
const (
	MinAge        = 5
	MaxAge        = 99
	MinDistanceKm = 0.0
	MaxDistanceKm = 20.0
)

// Measurement is the input of a single Cooper test assessment.
type Measurement struct {
	Gender     Gender  `json:"gender" yaml:"gender"`
	Age        int     `json:"age" yaml:"age"`
	DistanceKm float64 `json:"distance_km" yaml:"distance_km"`
}

// Validate checks the caller-side bounds. The computation core itself
// accepts any value.
func (m Measurement) Validate() error {
	switch {
	case !m.Gender.Valid():
		return fmt.Errorf("%w: %w", ErrInvalidMeasurement, ErrInvalidGender)
	case m.Age < MinAge || m.Age > MaxAge:
		return fmt.Errorf("%w: age %d outside [%d, %d]", ErrInvalidMeasurement, m.Age, MinAge, MaxAge)
	case !(m.DistanceKm >= MinDistanceKm && m.DistanceKm <= MaxDistanceKm): // also rejects NaN
		return fmt.Errorf("%w: distance %.3f km outside [%.0f, %.0f]", ErrInvalidMeasurement, m.DistanceKm, MinDistanceKm, MaxDistanceKm)
	}
	return nil
}

// Result is the derived output of an assessment; never persisted.
type Result struct {
	VO2Max     float64 `json:"vo2max" yaml:"vo2max"`
	Percentile float64 `json:"percentile" yaml:"percentile"`
}
