package lock

import "errors"

var (
	ErrNotConfigured = errors.New("PIN not configured")
	ErrInvalidPin    = errors.New("invalid PIN")
	// ErrSettingsUnavailable wraps a failure to read the persisted record.
	// Callers treat it as "locked", never as "no lock configured".
	ErrSettingsUnavailable = errors.New("lock settings unavailable")
)

// User-facing PIN result messages.
const (
	msgIncorrectPin = "Incorrect PIN"
	msgLockedOut    = "Too many failed attempts"
	msgUnavailable  = "Unable to verify PIN"
)
