package presence

import "errors"

var (
	// ErrNotFound signals that a person has no presence record today.
	ErrNotFound = errors.New("no presence record for person today")

	// ErrNoOpenEntry signals an exit tap with no open entry to close.
	ErrNoOpenEntry = errors.New("no open entry to close for person today")
)
