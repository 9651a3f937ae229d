package repository

import "errors"

var (
	// ErrInvalidLocation indicates an invalid image location
	ErrInvalidLocation = errors.New("invalid image location")

	// ErrResultNotFound indicates the analysis result was not found
	ErrResultNotFound = errors.New("analysis result not found")
)
