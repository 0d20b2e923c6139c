package fitfile

import "errors"

// Sentinel kinds for FIT import errors.
var (
	ErrDecode           = errors.New("decode fit file")
	ErrNotActivity      = errors.New("fit file is not an activity")
	ErrNoRecords        = errors.New("activity has no distance records")
	ErrActivityTooShort = errors.New("activity shorter than twelve minutes")
	ErrUnordered        = errors.New("activity records out of order")
)
