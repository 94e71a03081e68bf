package testutil

import (
	"time"

	"github.com/akyairhashvil/applock/internal/models"
	"github.com/akyairhashvil/applock/internal/util"
)

// SettingsBuilder provides fluent API for creating lock settings.
type SettingsBuilder struct {
	settings models.LockSettings
}

func NewSettings() *SettingsBuilder {
	return &SettingsBuilder{settings: models.DefaultLockSettings()}
}

func (b *SettingsBuilder) Enabled() *SettingsBuilder {
	b.settings.Enabled = true
	return b
}

func (b *SettingsBuilder) WithTimeout(minutes uint) *SettingsBuilder {
	b.settings.TimeoutMinutes = minutes
	return b
}

// WithPinHash marks the PIN enabled with a precomputed hash.
func (b *SettingsBuilder) WithPinHash(hash string) *SettingsBuilder {
	b.settings.PinEnabled = true
	b.settings.PinHash = util.Ptr(hash)
	return b
}

func (b *SettingsBuilder) WithFailedAttempts(n uint, last time.Time) *SettingsBuilder {
	b.settings.FailedAttempts = n
	b.settings.LastFailedAttempt = util.Ptr(last)
	return b
}

func (b *SettingsBuilder) LockedOutUntil(until time.Time) *SettingsBuilder {
	b.settings.LockoutUntil = util.Ptr(until)
	return b
}

func (b *SettingsBuilder) Build() models.LockSettings {
	return b.settings
}
