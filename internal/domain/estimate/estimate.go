// Package estimate converts a 12-minute run distance into a VO2 max estimate.
package estimate

import (
	"fmt"

	"github.com/okian/cooper/internal/domain/model"
)

// Regression holds the linear Cooper equation vo2 = Slope*km + Intercept.
type Regression struct {
	Slope     float64
	Intercept float64
}

// Apply evaluates the regression for a distance in kilometers.
func (r Regression) Apply(distanceKm float64) float64 {
	return r.Slope*distanceKm + r.Intercept
}

var regressions = map[model.Gender]Regression{
	model.Male:   {Slope: 22.351, Intercept: -11.288},
	model.Female: {Slope: 21.097, Intercept: -8.41},
}

// For returns the regression used for g.
func For(g model.Gender) (Regression, error) {
	r, ok := regressions[g]
	if !ok {
		return Regression{}, fmt.Errorf("%w: %s", model.ErrInvalidGender, g)
	}
	return r, nil
}

// Estimate returns VO2 max in ml/kg/min. The distance is not range checked;
// short distances yield low or negative values.
func Estimate(g model.Gender, distanceKm float64) (float64, error) {
	r, err := For(g)
	if err != nil {
		return 0, err
	}
	return r.Apply(distanceKm), nil
}
