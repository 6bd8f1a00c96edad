package service

import "errors"

// ErrPersistence marks a write that failed for reasons other than the
// caller's input.  The transaction was rolled back.
var ErrPersistence = errors.New("persistence failure")

// ListingError pairs the message shown to the person submitting a form
// with the cause.  Err matches repository.ErrDuplicate,
// repository.ErrConflict or ErrPersistence under errors.Is.
type ListingError struct {
	Message string
	Err     error
}

func (e *ListingError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *ListingError) Unwrap() error { return e.Err }
