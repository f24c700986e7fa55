package repository

import "errors"

// ErrNotFound is returned when a referenced entity does not exist. The API
// layer maps it to a 404; it is never retried.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a create collides with an existing key.
var ErrConflict = errors.New("already exists")
