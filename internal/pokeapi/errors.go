package pokeapi

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two conditions callers branch on. Everything else
// is either a *StatusError (non-2xx, non-404 response) or a wrapped
// transport error from net/http.
var (
	// ErrNotFound means the upstream reported the requested entity does
	// not exist. It is the one expected, user-facing failure.
	ErrNotFound = errors.New("pokeapi: not found")

	// ErrMalformed means a successful response was missing an expected
	// field or could not be decoded.
	ErrMalformed = errors.New("pokeapi: malformed upstream data")
)

// StatusError is returned for any non-success response other than 404.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi: status %d: %s", e.Code, e.URL)
}
