package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Directory errors
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Layout errors
	ErrInvalidLevels = errors.New("invalid cache levels")
)
