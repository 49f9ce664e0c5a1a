package service

import "errors"

var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means the write collides with an existing unique value.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidInput means the request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")
)
