package percentile

import "errors"

// ErrInvalidStdDev reports a non-positive or non-finite standard deviation.
// Reference data always has a positive stddev, so this is a configuration error.
var ErrInvalidStdDev = errors.New("stddev must be positive")
