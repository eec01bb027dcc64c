package model

import "errors"

var (
	// ErrNotFound is returned when a referenced customer or loan does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for malformed or out-of-domain input.
	ErrValidation = errors.New("invalid input")
)
