package config

// Lock overlay layout.
const (
	// LockBoxWidth is the inner width of the lock overlay frame.
	LockBoxWidth = 44

	// PinInputWidth is the visible width of the PIN field.
	PinInputWidth = 16

	// MaxMessageWidth bounds status and help lines inside the overlay.
	MaxMessageWidth = 40

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)

// Key bindings shared by the lock screen and the home screen.
const (
	KeyToggleMethod = "tab"
	KeyRetry        = "r"
)

// DefaultTheme names the lipgloss palette used when none is configured.
const DefaultTheme = "default"
