package repository

import "errors"

// ErrNotFound is returned when a snapshot key has never been written (or
// has been cleared). Callers treat it as "start from defaults" rather than
// as a failure; it deliberately does not alias the domain-level not-found
// error, which describes server resources.
var ErrNotFound = errors.New("repository: not found")
