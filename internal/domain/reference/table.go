package reference

import (
	"fmt"

	"github.com/okian/cooper/internal/domain/model"
)

// Stat is the normal distribution of VO2 max (ml/kg/min) for one cohort.
type Stat struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

type key struct {
	gender  model.Gender
	bracket AgeBracket
}

// table is built once at init and only read afterwards.
var table = map[key]Stat{
	{model.Male, Bracket20to29}: {54.4, 8.4},
	{model.Male, Bracket30to39}: {49.1, 7.7},
	{model.Male, Bracket40to49}: {47.2, 7.7},
	{model.Male, Bracket50to59}: {42.6, 7.4},
	{model.Male, Bracket60to69}: {39.2, 6.7},
	{model.Male, Bracket70Plus}: {35.3, 6.5},

	{model.Female, Bracket20to29}: {43.0, 7.7},
	{model.Female, Bracket30to39}: {40.0, 6.8},
	{model.Female, Bracket40to49}: {38.4, 6.9},
	{model.Female, Bracket50to59}: {34.4, 5.7},
	{model.Female, Bracket60to69}: {31.1, 5.1},
	{model.Female, Bracket70Plus}: {28.3, 5.2},
}

// Lookup returns the reference stat for the cohort. Every valid pair is
// present, so an error here means the caller passed an invalid gender or
// bracket.
func Lookup(g model.Gender, b AgeBracket) (Stat, error) {
	if !g.Valid() {
		return Stat{}, fmt.Errorf("%w: %s", model.ErrInvalidGender, g)
	}
	s, ok := table[key{g, b}]
	if !ok {
		return Stat{}, fmt.Errorf("%w: gender=%s bracket=%q", ErrNotFound, g, b)
	}
	return s, nil
}

// Entry is one row of the reference table.
type Entry struct {
	Gender  model.Gender `json:"gender" yaml:"gender"`
	Bracket AgeBracket   `json:"bracket" yaml:"bracket"`
	Stat    `yaml:",inline"`
}

// Entries returns the full table ordered by gender then bracket.
func Entries() []Entry {
	out := make([]Entry, 0, len(table))
	for _, g := range model.Genders() {
		for _, b := range Brackets() {
			out = append(out, Entry{Gender: g, Bracket: b, Stat: table[key{g, b}]})
		}
	}
	return out
}
