package tui

import (
	"context"
	"time"

	"github.com/akyairhashvil/applock/internal/models"
)

// Engine is the lock engine as seen by the screens. *lock.Service satisfies it.
type Engine interface {
	GetSettings(ctx context.Context) (models.LockSettings, error)
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.LockSettings, error)
	Enable(ctx context.Context) (bool, error)
	Disable(ctx context.Context) error
	SetPin(ctx context.Context, pin string) error
	RemovePin(ctx context.Context) error
	PinEnabled(ctx context.Context) bool
	ValidatePin(ctx context.Context, pin string) models.PinValidationResult
	IsAuthRequired(ctx context.Context) bool
	MarkAuthenticated()
	ClearAuthState()
	LastAuthTime() time.Time
	SessionID() string
	LockoutRemaining(ctx context.Context) time.Duration
}

// Capability reports biometric support. *biometric.Prober satisfies it.
type Capability interface {
	CheckAvailability(ctx context.Context) models.BiometricAvailability
}

// Authenticator runs the biometric prompt. *biometric.Authenticator satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, reason string) bool
}
