// Package reference holds the published VO2 max norms keyed by gender and
// age bracket, and the age classifier that selects a bracket.
package reference

// AgeBracket is a decade-wide (or open-ended) reference age range.
type AgeBracket string

// Reference age brackets.
const (
	Bracket20to29 AgeBracket = "20-29"
	Bracket30to39 AgeBracket = "30-39"
	Bracket40to49 AgeBracket = "40-49"
	Bracket50to59 AgeBracket = "50-59"
	Bracket60to69 AgeBracket = "60-69"
	Bracket70Plus AgeBracket = "70+"
)

// String returns the bracket label.
func (b AgeBracket) String() string { return string(b) }

type threshold struct {
	below   int
	bracket AgeBracket
}

// thresholds are evaluated in order; the first upper bound above the age wins.
// Ages below 30 (the youngest accepted is 5) share the 20-29 norms.
var thresholds = []threshold{
	{30, Bracket20to29},
	{40, Bracket30to39},
	{50, Bracket40to49},
	{60, Bracket50to59},
	{70, Bracket60to69},
}

// ClassifyAge maps an age in years to its reference bracket.
func ClassifyAge(age int) AgeBracket {
	for _, t := range thresholds {
		if age < t.below {
			return t.bracket
		}
	}
	return Bracket70Plus
}

// Brackets lists every bracket from youngest to oldest.
func Brackets() []AgeBracket {
	out := make([]AgeBracket, 0, len(thresholds)+1)
	for _, t := range thresholds {
		out = append(out, t.bracket)
	}
	return append(out, Bracket70Plus)
}
