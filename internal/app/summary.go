package service

import "fmt"

// Summary returns the two result lines shown to the user.
func (a Assessment) Summary() []string {
	return []string{
		fmt.Sprintf("Your estimated VO2 max is: %.2f ml/kg/min", a.Result.VO2Max),
		fmt.Sprintf("Your percentile for your age group and gender is: %.2f%%", a.Result.Percentile),
	}
}

// CurveLabel names the plotted cohort, e.g. "Age: 20-29, Gender: Male".
func (a Assessment) CurveLabel() string {
	return fmt.Sprintf("Age: %s, Gender: %s", a.Bracket, a.Measurement.Gender)
}
