package web

import (
	"errors"
	"fmt"
)

// Sentinel kinds for HTTP errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrRender     = errors.New("render failed")
)

// WrapKind tags err with the operation and a sentinel kind; both match errors.Is.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// Wrap tags err with the failing operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
