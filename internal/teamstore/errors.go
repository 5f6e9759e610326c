package teamstore

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("team not found")
	ErrNoFields = errors.New("no updatable fields supplied")
)

// wrap returns err formatted in the "op: err" template.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
