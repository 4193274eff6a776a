package domain

import "errors"

// ErrNotFound is returned when an assessment id has no matching record.
// It is a normal outcome of get/update/delete, translated to 404 at the
// HTTP boundary.
var ErrNotFound = errors.New("assessment not found")
