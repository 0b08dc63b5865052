package record

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("no snapshot stored")
	ErrEmptyFeed     = errors.New("feed returned no records")
	ErrCorruptedFeed = errors.New("feed looks corrupted")
)

// RetentionError reports a replacement rejected because it shrank too much.
type RetentionError struct {
	Previous int
	Incoming int
}

func (e *RetentionError) Error() string {
	return fmt.Sprintf("%s: %d records incoming, %d stored", ErrCorruptedFeed, e.Incoming, e.Previous)
}

func (e *RetentionError) Is(target error) bool {
	return target == ErrCorruptedFeed
}
