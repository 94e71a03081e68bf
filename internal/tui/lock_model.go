package tui

import (
	"context"
	"strings"

	"github.com/akyairhashvil/applock/internal/config"
	"github.com/akyairhashvil/applock/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// LockState is the lock screen's position in the unlock flow.
type LockState int

const (
	LockInit LockState = iota
	LockBiometric
	LockPinEntry
	LockUnlocked
	LockBlocked
)

func (s LockState) String() string {
	switch s {
	case LockInit:
		return "init"
	case LockBiometric:
		return "biometric"
	case LockPinEntry:
		return "pin"
	case LockUnlocked:
		return "unlocked"
	case LockBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

const (
	msgBiometricFailed  = "Biometric authentication failed. Please enter your PIN."
	msgBiometricBlocked = "Biometric authentication failed."
	msgSettingsError    = "Lock settings could not be read."
)

// UnlockedMsg is emitted once the lock screen has been satisfied.
type UnlockedMsg struct{}

type lockActivatedMsg struct {
	settings models.LockSettings
	err      error
	avail    models.BiometricAvailability
}

// biometricResultMsg carries the attempt it answers; results from a prompt
// that has since been cancelled or replaced are dropped.
type biometricResultMsg struct {
	attempt int
	ok      bool
}

// LockModel is the lock screen controller.
type LockModel struct {
	ctx    context.Context
	engine Engine
	prober Capability
	auth   Authenticator
	reason string

	State      LockState
	Message    string
	PinInput   textinput.Model
	Avail      models.BiometricAvailability
	PinEnabled bool

	cancelPrompt context.CancelFunc
	attempt      int
	// unreadable is set while the settings record could not be loaded.
	unreadable bool
}

func NewLockModel(ctx context.Context, engine Engine, prober Capability, auth Authenticator, reason string) LockModel {
	if reason == "" {
		reason = config.DefaultAuthReason
	}
	input := textinput.New()
	input.Placeholder = "PIN"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = config.MaxPinLength
	input.Width = config.PinInputWidth
	return LockModel{
		ctx:      ctx,
		engine:   engine,
		prober:   prober,
		auth:     auth,
		reason:   reason,
		PinInput: input,
	}
}

// Activate restarts the unlock flow. Capability and settings are read off
// the event loop; the decision happens when lockActivatedMsg arrives.
func (m LockModel) Activate() (LockModel, tea.Cmd) {
	m.stopPrompt()
	m.State = LockInit
	m.Message = ""
	m.PinInput.Reset()
	ctx, engine, prober := m.ctx, m.engine, m.prober
	return m, func() tea.Msg {
		settings, err := engine.GetSettings(ctx)
		return lockActivatedMsg{
			settings: settings,
			err:      err,
			avail:    prober.CheckAvailability(ctx),
		}
	}
}

func (m LockModel) Update(msg tea.Msg) (LockModel, tea.Cmd) {
	switch msg := msg.(type) {
	case lockActivatedMsg:
		return m.decide(msg)
	case biometricResultMsg:
		return m.handleBiometricResult(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.State == LockPinEntry {
		var cmd tea.Cmd
		m.PinInput, cmd = m.PinInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m LockModel) decide(msg lockActivatedMsg) (LockModel, tea.Cmd) {
	m.Avail = msg.avail
	m.unreadable = msg.err != nil
	if m.unreadable {
		m.State = LockBlocked
		m.Message = msgSettingsError
		return m, nil
	}
	m.PinEnabled = msg.settings.PinEnabled
	switch {
	case !msg.settings.Enabled && !msg.settings.PinEnabled:
		return m.unlock()
	case msg.avail.IsAvailable && msg.settings.Enabled:
		return m.startBiometric()
	case msg.settings.PinEnabled:
		return m.enterPin(m.Message)
	default:
		return m.unlock()
	}
}

func (m LockModel) handleBiometricResult(msg biometricResultMsg) (LockModel, tea.Cmd) {
	if m.State == LockUnlocked || msg.attempt != m.attempt {
		return m, nil
	}
	if msg.ok {
		return m.unlock()
	}
	if m.State != LockBiometric {
		// The user switched away before the prompt finished.
		return m, nil
	}
	m.stopPrompt()
	if m.PinEnabled {
		return m.enterPin(msgBiometricFailed)
	}
	m.State = LockBlocked
	m.Message = msgBiometricBlocked
	return m, nil
}

func (m LockModel) handleKey(msg tea.KeyMsg) (LockModel, tea.Cmd) {
	key := msg.String()
	switch m.State {
	case LockPinEntry:
		if key == config.KeyToggleMethod && m.Avail.IsAvailable {
			return m.startBiometric()
		}
		if msg.Type == tea.KeyEnter {
			return m.submitPin()
		}
		var cmd tea.Cmd
		m.PinInput, cmd = m.PinInput.Update(msg)
		return m, cmd
	case LockBiometric:
		if key == config.KeyToggleMethod && m.PinEnabled {
			m.stopPrompt()
			return m.enterPin("")
		}
	case LockBlocked:
		if key == config.KeyRetry {
			if m.unreadable {
				return m.Activate()
			}
			return m.startBiometric()
		}
	}
	return m, nil
}

func (m LockModel) submitPin() (LockModel, tea.Cmd) {
	result := newAuthHandler(m.engine, m.ctx).SubmitPin(m.PinInput.Value())
	m.PinInput.Reset()
	if result.Success {
		return m.unlock()
	}
	m.Message = result.Message
	return m, nil
}

// Refresh re-renders the lockout countdown while PIN entry is blocked.
func (m LockModel) Refresh() LockModel {
	if m.State != LockPinEntry {
		return m
	}
	if remaining := m.engine.LockoutRemaining(m.ctx); remaining > 0 {
		m.Message = lockoutMessage(remaining)
	} else if strings.HasPrefix(m.Message, "Too many attempts") {
		m.Message = ""
	}
	return m
}

func (m LockModel) startBiometric() (LockModel, tea.Cmd) {
	m.stopPrompt()
	m.State = LockBiometric
	m.Message = ""
	m.PinInput.Blur()
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelPrompt = cancel
	m.attempt++
	auth, reason, attempt := m.auth, m.reason, m.attempt
	return m, func() tea.Msg {
		return biometricResultMsg{attempt: attempt, ok: auth.Authenticate(ctx, reason)}
	}
}

func (m LockModel) enterPin(message string) (LockModel, tea.Cmd) {
	m.State = LockPinEntry
	m.Message = message
	m.PinInput.Reset()
	return m, m.PinInput.Focus()
}

func (m LockModel) unlock() (LockModel, tea.Cmd) {
	m.stopPrompt()
	m.State = LockUnlocked
	m.Message = ""
	m.PinInput.Reset()
	m.PinInput.Blur()
	return m, func() tea.Msg { return UnlockedMsg{} }
}

func (m *LockModel) stopPrompt() {
	if m.cancelPrompt != nil {
		m.cancelPrompt()
		m.cancelPrompt = nil
	}
}

func (m LockModel) View() string {
	var lines []string
	lines = append(lines, CurrentTheme.Header.Width(config.LockBoxWidth-4).Render("Locked"), "")

	switch m.State {
	case LockInit:
		lines = append(lines, CurrentTheme.Dim.Render("Checking lock…"))
	case LockBiometric:
		lines = append(lines, "Waiting for "+m.Avail.BiometryType.Label()+"…")
	case LockPinEntry:
		lines = append(lines, "Enter PIN", CurrentTheme.Input.Width(config.PinInputWidth+4).Render(m.PinInput.View()))
	case LockBlocked:
		if !m.unreadable {
			lines = append(lines, "No PIN is set, so "+m.Avail.BiometryType.Label()+" is the only way in.")
		}
	}
	if m.Message != "" {
		lines = append(lines, "", CurrentTheme.Error.Width(config.MaxMessageWidth).Render(m.Message))
	}
	if help := m.help(); help != "" {
		lines = append(lines, "", CurrentTheme.Dim.Render(truncate(help)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(1, 2).
		Width(config.LockBoxWidth).
		Render(body)
}

func (m LockModel) help() string {
	switch m.State {
	case LockPinEntry:
		if m.Avail.IsAvailable {
			return "[enter]unlock|[" + config.KeyToggleMethod + "]use " + m.Avail.BiometryType.Label()
		}
		return "[enter]unlock"
	case LockBiometric:
		if m.PinEnabled {
			return "[" + config.KeyToggleMethod + "]use PIN"
		}
	case LockBlocked:
		return "[" + config.KeyRetry + "]try again"
	}
	return ""
}

func truncate(s string) string {
	return ansi.Truncate(s, config.MaxMessageWidth, config.TruncationSuffix)
}
