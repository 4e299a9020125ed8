package schedule

import "errors"

var (
	// ErrSlotTaken is returned by the store-backed write path when the
	// requested range overlaps an existing appointment. The client-side
	// ceiling is only a guard; another user may have booked in the interim,
	// so callers surface this and retry with a refreshed day list.
	ErrSlotTaken = errors.New("slot already taken for this room and time")

	// ErrNoSafeDuration means the gap to the next appointment computed to
	// zero or less; no valid ceiling exists and submission must be blocked
	// until the start time changes.
	ErrNoSafeDuration = errors.New("no safe duration available at this start time")

	// ErrNotFound is returned when the referenced appointment does not exist.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidInput covers malformed dates/times, durations off the grid
	// step, and rooms outside the configured set.
	ErrInvalidInput = errors.New("invalid appointment input")
)
