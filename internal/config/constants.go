package config

import "time"

// PIN policy.
const (
	MaxPinAttempts        = 5
	LockoutDuration       = 5 * time.Minute
	InactivityResetWindow = 30 * time.Minute
	MinPinLength          = 4
	MaxPinLength          = 12
)

// Session timing.
const (
	DefaultTimeoutMinutes = 5
	MaxTimeoutMinutes     = 240
	TickInterval          = time.Second
)

// Biometric prompt text.
const (
	DefaultAuthReason  = "Unlock to view your recovery journal"
	DefaultCancelLabel = "Use PIN"
)

// Biometric provider selection.
const (
	ProviderAuto    = "auto"
	ProviderNone    = "none"
	ProviderFprintd = "fprintd"
)

// Database/application settings.
const (
	AppName        = "applock"
	DBFileName     = "applock.db"
	LogFileName    = "applock.log"
	ConfigFileName = "config"
	SettingsKey    = "biometric-settings"
)
