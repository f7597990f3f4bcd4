package service

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden is returned when the requester is not the owner of the
	// entity being modified.
	ErrForbidden = errors.New("forbidden")
	// ErrAuthorNotFound marks a book submission whose author id references
	// no existing author; it maps to a field error, not a server error.
	ErrAuthorNotFound = errors.New("author not found")
)
