// Package percentile places a VO2 max value inside a reference normal
// distribution and samples that distribution for plotting.
package percentile

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Curve sampling defaults.
const (
	DefaultSamples = 1000
	SpreadSigmas   = 4
	minSamples     = 2
)

func normal(mean, stddev float64) (distuv.Normal, error) {
	if !(stddev > 0) || math.IsInf(stddev, 0) {
		return distuv.Normal{}, fmt.Errorf("%w: %v", ErrInvalidStdDev, stddev)
	}
	return distuv.Normal{Mu: mean, Sigma: stddev}, nil
}

// Bounds of the open interval percentiles are reported in.
var (
	lowest  = math.Nextafter(0, 1)
	highest = math.Nextafter(100, 0)
)

// Percentile returns Φ((value-mean)/stddev)*100. Far in either tail the
// float CDF reaches 0 or 1; those results are held to the nearest float
// strictly inside (0, 100).
func Percentile(value, mean, stddev float64) (float64, error) {
	n, err := normal(mean, stddev)
	if err != nil {
		return 0, err
	}
	p := n.CDF(value) * 100
	switch {
	case p < lowest:
		return lowest, nil
	case p > highest:
		return highest, nil
	}
	return p, nil
}

// Density returns the normal probability density at x.
func Density(x, mean, stddev float64) (float64, error) {
	n, err := normal(mean, stddev)
	if err != nil {
		return 0, err
	}
	return n.Prob(x), nil
}

// Point is one sample of the density curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve samples the density evenly over [mean-4sd, mean+4sd], endpoints
// included. samples below 2 fall back to DefaultSamples.
func Curve(mean, stddev float64, samples int) ([]Point, error) {
	n, err := normal(mean, stddev)
	if err != nil {
		return nil, err
	}
	if samples < minSamples {
		samples = DefaultSamples
	}
	lo, hi := Domain(mean, stddev)
	step := (hi - lo) / float64(samples-1)
	pts := make([]Point, samples)
	for i := range pts {
		x := lo + float64(i)*step
		if i == samples-1 {
			x = hi
		}
		pts[i] = Point{X: x, Y: n.Prob(x)}
	}
	return pts, nil
}

// Domain returns the plotted range [mean-4sd, mean+4sd].
func Domain(mean, stddev float64) (lo, hi float64) {
	return mean - SpreadSigmas*stddev, mean + SpreadSigmas*stddev
}
