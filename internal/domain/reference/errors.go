package reference

import "errors"

// ErrNotFound reports a (gender, bracket) pair with no reference entry.
var ErrNotFound = errors.New("reference stat not found")
