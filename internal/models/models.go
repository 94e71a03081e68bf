package models

import (
	"time"

	"github.com/akyairhashvil/applock/internal/config"
)

// BiometryType is the normalized kind of biometric sensor the host exposes.
type BiometryType string

const (
	BiometryNone        BiometryType = "none"
	BiometryTouchID     BiometryType = "touchId"
	BiometryFaceID      BiometryType = "faceId"
	BiometryFingerprint BiometryType = "fingerprint"
	BiometryFace        BiometryType = "face"
	BiometryIris        BiometryType = "iris"
)

// Label is the human-readable name shown next to the unlock prompt.
func (b BiometryType) Label() string {
	switch b {
	case BiometryTouchID:
		return "Touch ID"
	case BiometryFaceID:
		return "Face ID"
	case BiometryFingerprint:
		return "Fingerprint"
	case BiometryFace:
		return "Face unlock"
	case BiometryIris:
		return "Iris"
	default:
		return "Biometrics"
	}
}

// BiometricAvailability is computed per query and never stored.
type BiometricAvailability struct {
	IsAvailable  bool         `json:"isAvailable"`
	BiometryType BiometryType `json:"biometryType"`
	Reason       string       `json:"reason,omitempty"`
}

// LockSettings is the single persisted lock configuration record.
type LockSettings struct {
	Enabled           bool       `json:"enabled"`
	RequireOnStartup  bool       `json:"requireOnStartup"`
	RequireOnResume   bool       `json:"requireOnResume"`
	TimeoutMinutes    uint       `json:"timeoutMinutes"`
	PinEnabled        bool       `json:"pinEnabled"`
	PinHash           *string    `json:"pinHash,omitempty"`
	FailedAttempts    uint       `json:"failedAttempts"`
	LockoutUntil      *time.Time `json:"lockoutUntil,omitempty"`
	LastFailedAttempt *time.Time `json:"lastFailedAttempt,omitempty"`
}

// DefaultLockSettings is the record used before anything has been persisted.
func DefaultLockSettings() LockSettings {
	return LockSettings{
		Enabled:          false,
		RequireOnStartup: true,
		RequireOnResume:  true,
		TimeoutMinutes:   config.DefaultTimeoutMinutes,
		PinEnabled:       false,
	}
}

// LockConfigured reports whether either mechanism gates the app.
func (s LockSettings) LockConfigured() bool {
	return s.Enabled || s.PinEnabled
}

// Timeout is the grace period after a successful unlock.
func (s LockSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutMinutes) * time.Minute
}

// SettingsPatch carries a partial update; nil fields are left unchanged.
// PIN material, attempt bookkeeping and the enabled flag are not patchable;
// the lock is switched on and off through Enable and Disable.
type SettingsPatch struct {
	RequireOnStartup *bool
	RequireOnResume  *bool
	TimeoutMinutes   *uint
}

// Apply copies the non-nil fields of p onto s.
func (p SettingsPatch) Apply(s *LockSettings) {
	if p.RequireOnStartup != nil {
		s.RequireOnStartup = *p.RequireOnStartup
	}
	if p.RequireOnResume != nil {
		s.RequireOnResume = *p.RequireOnResume
	}
	if p.TimeoutMinutes != nil {
		s.TimeoutMinutes = *p.TimeoutMinutes
	}
}

// PinValidationResult is returned by every PIN attempt.
type PinValidationResult struct {
	Success           bool   `json:"success"`
	Error             string `json:"error,omitempty"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
	LockoutSeconds    *int   `json:"lockoutSeconds,omitempty"`
}

// LockedOut reports whether the result carries a lockout countdown.
func (r PinValidationResult) LockedOut() bool {
	return r.LockoutSeconds != nil && *r.LockoutSeconds > 0
}
