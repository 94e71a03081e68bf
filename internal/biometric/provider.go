// Package biometric wraps the host's biometric unlock facility behind a
// small Provider interface, probes what the host supports, and runs the
// unlock prompt with the PIN fallback policy.
package biometric

import (
	"context"
	"errors"
)

// Cancellation errors. A provider returns one of these when the prompt was
// dismissed rather than failed.
var (
	ErrUserCancel   = errors.New("biometric: cancelled by user")
	ErrSystemCancel = errors.New("biometric: cancelled by system")
	ErrAppCancel    = errors.New("biometric: cancelled by app")
)

var (
	ErrNotEnrolled = errors.New("biometric: no enrolled credentials")
	ErrNoMatch     = errors.New("biometric: no match")
)

//go:generate mockgen -source=provider.go -destination=mock_provider_test.go -package=biometric

// Provider is one native biometric backend.
type Provider interface {
	Name() string
	// Supported reports whether the backend can run on this host at all.
	Supported() bool
	Probe(ctx context.Context) (ProbeReport, error)
	Prompt(ctx context.Context, req PromptRequest) error
}

// ProbeReport is what a backend says about the sensor. Type is the raw
// backend string; callers normalize it.
type ProbeReport struct {
	Available bool
	Type      string
	Reason    string
}

type PromptRequest struct {
	Reason                string
	CancelLabel           string
	AllowDeviceCredential bool
}

// IsCancellation reports whether err means the prompt was dismissed.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrUserCancel) ||
		errors.Is(err, ErrSystemCancel) ||
		errors.Is(err, ErrAppCancel) ||
		errors.Is(err, context.Canceled)
}
