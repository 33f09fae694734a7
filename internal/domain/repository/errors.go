package repository

import "errors"

// ErrNotFound is returned by local stores when a record does not exist
var ErrNotFound = errors.New("not found")
