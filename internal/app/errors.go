package app

import "errors"

var (
	// ErrBookNotFound indicates a book ID that does not resolve in the catalog.
	ErrBookNotFound = errors.New("book not found")
)
