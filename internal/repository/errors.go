package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrUnsupportedURL is returned by Open for database URLs with an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database url")
