package hmi

import "errors"

// ErrUniverseMismatch is returned when the two partitions are not over the
// same set of elements.
var ErrUniverseMismatch = errors.New("partitions have different universes")
