// Package fitfile extracts a Cooper test distance from a recorded FIT
// activity: the distance covered in the first twelve minutes.
package fitfile

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/tormoder/fit"
)

// TestDuration is the length of a Cooper test.
const TestDuration = 12 * time.Minute

const metersPerKm = 1000

// Sample is one record of cumulative distance.
type Sample struct {
	Timestamp time.Time
	DistanceM float64
}

// Decode reads the distance records of a FIT activity.
func Decode(r io.Reader) ([]Sample, error) {
	f, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	activity, err := f.Activity()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotActivity, err)
	}

	samples := make([]Sample, 0, len(activity.Records))
	for _, rec := range activity.Records {
		if rec == nil || rec.Timestamp.IsZero() {
			continue
		}
		d := rec.GetDistanceScaled()
		if math.IsNaN(d) {
			continue
		}
		samples = append(samples, Sample{Timestamp: rec.Timestamp, DistanceM: d})
	}
	return samples, nil
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// CooperDistance returns the kilometers covered by the last sample at or
// before TestDuration after the first sample. Samples must be in time order.
func CooperDistance(samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoRecords
	}
	start := samples[0]
	end := start.Timestamp.Add(TestDuration)

	covered := start.DistanceM
	last := start.Timestamp
	for _, s := range samples[1:] {
		if s.Timestamp.Before(last) {
			return 0, fmt.Errorf("%w: %s before %s", ErrUnordered, s.Timestamp.Format(time.RFC3339), last.Format(time.RFC3339))
		}
		last = s.Timestamp
		if s.Timestamp.After(end) {
			break
		}
		covered = s.DistanceM
	}
	if last.Before(end) {
		return 0, fmt.Errorf("%w: %s recorded", ErrActivityTooShort, last.Sub(start.Timestamp))
	}
	return (covered - start.DistanceM) / metersPerKm, nil
}
