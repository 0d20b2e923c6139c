package web

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/cooper/internal/domain/model"
)

// Query parameter names shared by the form and the chart URL.
const (
	paramGender   = "gender"
	paramAge      = "age"
	paramDistance = "distance"
)

// submitted reports whether the form was posted back with values.
func submitted(q url.Values) bool {
	return q.Has(paramGender) || q.Has(paramAge) || q.Has(paramDistance)
}

// parseMeasurement reads and validates a measurement from query values.
func parseMeasurement(q url.Values) (model.Measurement, error) {
	var m model.Measurement
	var err error

	if m.Gender, err = model.ParseGender(q.Get(paramGender)); err != nil {
		return m, err
	}
	if m.Age, err = strconv.Atoi(strings.TrimSpace(q.Get(paramAge))); err != nil {
		return m, errors.New("age must be a whole number")
	}
	if m.DistanceKm, err = strconv.ParseFloat(strings.TrimSpace(q.Get(paramDistance)), 64); err != nil {
		return m, errors.New("distance must be a number of kilometers")
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

// encodeMeasurement renders m back into query values.
func encodeMeasurement(m model.Measurement) url.Values {
	return url.Values{
		paramGender:   {m.Gender.String()},
		paramAge:      {strconv.Itoa(m.Age)},
		paramDistance: {strconv.FormatFloat(m.DistanceKm, 'f', -1, 64)},
	}
}
