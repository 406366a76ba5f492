package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrAppNotInitialized    = errors.New("app not initialized")
	ErrConfirmationRequired = errors.New("confirmation required")
)
