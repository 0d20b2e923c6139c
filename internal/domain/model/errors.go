package model

import "errors"

// Sentinel kinds for input errors.
var (
	ErrInvalidGender      = errors.New("invalid gender")
	ErrInvalidMeasurement = errors.New("invalid measurement")
)
