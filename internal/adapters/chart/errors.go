package chart

import "errors"

// Sentinel kinds for chart errors.
var (
	ErrEmptyCurve        = errors.New("chart needs at least two curve points")
	ErrUnsupportedFormat = errors.New("unsupported chart format")
	ErrRender            = errors.New("chart render failed")
)
