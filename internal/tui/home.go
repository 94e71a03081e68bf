package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akyairhashvil/applock/internal/config"
	"github.com/akyairhashvil/applock/internal/models"
	"github.com/akyairhashvil/applock/internal/util"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type homeMode int

const (
	homeBrowse homeMode = iota
	homePinInput
)

// lockNowMsg asks the activity monitor to forget the session and lock.
type lockNowMsg struct{}

// HomeModel is the lock settings screen shown while unlocked.
type HomeModel struct {
	ctx      context.Context
	engine   Engine
	prober   Capability
	log      *zap.Logger
	registry *HandlerRegistry

	mode     homeMode
	settings models.LockSettings
	avail    models.BiometricAvailability
	pinInput textinput.Model
	status   string
	statusOK bool
}

func NewHomeModel(ctx context.Context, engine Engine, prober Capability, log *zap.Logger) HomeModel {
	input := textinput.New()
	input.Placeholder = "new PIN"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = config.MaxPinLength
	input.Width = config.PinInputWidth
	m := HomeModel{
		ctx:      ctx,
		engine:   engine,
		prober:   prober,
		log:      log,
		registry: newHomeRegistry(),
		pinInput: input,
	}
	return m.Reload()
}

func newHomeRegistry() *HandlerRegistry {
	r := NewHandlerRegistry()
	browse := []homeMode{homeBrowse}
	r.Register(KeyBinding{Key: "e", Handler: handleToggleEnabled, Description: "lock on/off", ViewModes: browse, Priority: 10})
	r.Register(KeyBinding{Key: "p", Handler: handleStartPin, Description: "set PIN", ViewModes: browse, Priority: 9})
	r.Register(KeyBinding{Key: "x", Handler: handleRemovePin, Description: "remove PIN", ViewModes: browse, Priority: 8})
	r.Register(KeyBinding{Key: "+", Handler: handleTimeout, Description: "timeout", ViewModes: browse, Priority: 7})
	r.Register(KeyBinding{Key: "-", Handler: handleTimeout, ViewModes: browse, Priority: 7})
	r.Register(KeyBinding{Key: "s", Handler: handleToggleStartup, Description: "on startup", ViewModes: browse, Priority: 6})
	r.Register(KeyBinding{Key: "u", Handler: handleToggleResume, Description: "on resume", ViewModes: browse, Priority: 5})
	r.Register(KeyBinding{Key: "l", Handler: handleLockNow, Description: "lock now", ViewModes: browse, Priority: 4})
	r.Register(KeyBinding{Key: "q", Handler: handleQuit, Description: "quit", ViewModes: browse, Priority: 1})
	r.Register(KeyBinding{Key: "enter", Handler: handleSavePin, Description: "save", ViewModes: []homeMode{homePinInput}, Priority: 10})
	r.Register(KeyBinding{Key: "esc", Handler: handleCancelPin, Description: "cancel", ViewModes: []homeMode{homePinInput}, Priority: 9})
	return r
}

// Reload re-reads the persisted settings and the host capability. A failed
// read keeps the last known settings on screen and reports the error.
func (m HomeModel) Reload() HomeModel {
	if settings, err := m.engine.GetSettings(m.ctx); m.report("read settings", err) {
		m.settings = settings
	}
	m.avail = m.prober.CheckAvailability(m.ctx)
	return m
}

func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if next, cmd, handled := m.registry.Handle(m, key.String()); handled {
			return next, cmd
		}
	}
	if m.mode == homePinInput {
		var cmd tea.Cmd
		m.pinInput, cmd = m.pinInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *HomeModel) setStatus(s string) {
	m.status = s
	m.statusOK = true
}

func (m *HomeModel) setStatusError(s string) {
	m.status = s
	m.statusOK = false
}

func (m *HomeModel) report(action string, err error) bool {
	if err != nil {
		util.LogError(m.log, action, err)
		m.setStatusError(fmt.Sprintf("%s: %v", action, err))
		return false
	}
	return true
}

func handleToggleEnabled(m HomeModel, _ string) (HomeModel, tea.Cmd, bool) {
	if m.settings.Enabled {
		if m.report("disable lock", m.engine.Disable(m.ctx)) {
			m.setStatus("Lock disabled")
		}
		return m.Reload(), nil, true
	}
	ok, err := m.engine.Enable(m.ctx)
	switch {
	case !m.report("enable lock", err):
	case !ok:
		m.setStatusError("Set a PIN or enroll biometrics first")
	default:
		m.setStatus("Lock enabled")
	}
	return m.Reload(), nil, true
}

func handleStartPin(m HomeModel, _ string) (HomeModel, tea.Cmd, bool) {
	m.mode = homePinInput
	m.status = ""
	m.pinInput.Reset()
	return m, m.pinInput.Focus(), true
}

func handleSavePin(m HomeModel, _ string) (HomeModel, tea.Cmd, bool) {
	pin := strings.TrimSpace(m.pinInput.Value())
	m.pinInput.Reset()
	if !m.report("set PIN", m.engine.SetPin(m.ctx, pin)) {
		return m, nil, true
	}
	m.mode = homeBrowse
	m.pinInput.Blur()
	m.setStatus("PIN saved")
	return m.Reload(), nil, true
}

func handleCancelPin(m HomeModel, _ string) (HomeModel, tea.Cmd, bool) {
	m.mode = homeBrowse
	m.pinInput.Reset()
	m.pinInput.Blur()
	m.status = ""
	return m, nil, true
}

func handleRemovePin(m HomeModel, _ string) (HomeModel, tea.Cmd, bool) {
	if !m.settings.PinEnabled {
		return m, nil, true
	}
	if m.report("remove PIN", m.engine.RemovePin(m.ctx)) {
		m.setStatus("PIN removed")
	}
	return m.Reload(), nil, true
}

func handleTimeout(m HomeModel, key string) (HomeModel, tea.Cmd, bool) {
	minutes := int(m.settings.TimeoutMinutes)
	if key == "+" {
		minutes++
	} else {
		minutes--
	}
	minutes = util.Clamp(minutes, 0, config.MaxTimeoutMinutes)
	_, err := m.engine.UpdateSettings(m.ctx, models.SettingsPatch{TimeoutMinutes: util.Ptr(uint(minutes))})
	m.report("update timeout", err)
	return m.Reload(), nil, true
}

func handleToggleStartup(m HomeModel, _ string) (HomeModel, tea.Cmd, bool) {
	v := !m.settings.RequireOnStartup
	_, err := m.engine.UpdateSettings(m.ctx, models.SettingsPatch{RequireOnStartup: &v})
	m.report("update settings", err)
	return m.Reload(), nil, true
}

func handleToggleResume(m HomeModel, _ string) (HomeModel, tea.Cmd, bool) {
	v := !m.settings.RequireOnResume
	_, err := m.engine.UpdateSettings(m.ctx, models.SettingsPatch{RequireOnResume: &v})
	m.report("update settings", err)
	return m.Reload(), nil, true
}

func handleLockNow(m HomeModel, _ string) (HomeModel, tea.Cmd, bool) {
	if !m.settings.LockConfigured() {
		m.setStatusError("No lock configured")
		return m, nil, true
	}
	m.status = ""
	return m, func() tea.Msg { return lockNowMsg{} }, true
}

func handleQuit(m HomeModel, _ string) (HomeModel, tea.Cmd, bool) {
	return m, tea.Quit, true
}

func (m HomeModel) View() string {
	onOff := func(b bool) string {
		if b {
			return CurrentTheme.On.Render("on")
		}
		return CurrentTheme.Off.Render("off")
	}
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, CurrentTheme.Label.Render(label), CurrentTheme.Value.Render(value))
	}

	bio := "unavailable"
	if m.avail.IsAvailable {
		bio = m.avail.BiometryType.Label()
	} else if m.avail.Reason != "" {
		bio = "unavailable (" + m.avail.Reason + ")"
	}
	lastAuth := "never"
	if t := m.engine.LastAuthTime(); t.After(time.Unix(0, 0)) {
		lastAuth = t.Local().Format("15:04:05")
		if id := m.engine.SessionID(); id != "" {
			lastAuth += " (" + shortSessionID(id) + ")"
		}
	}

	rows := []string{
		CurrentTheme.Header.Render("App lock"),
		"",
		row("Lock", onOff(m.settings.Enabled)),
		row("PIN", onOff(m.settings.PinEnabled)),
		row("Biometrics", bio),
		row("Timeout", FormatDuration(m.settings.Timeout())),
		row("Require on startup", onOff(m.settings.RequireOnStartup)),
		row("Require on resume", onOff(m.settings.RequireOnResume)),
		row("Last unlock", lastAuth),
	}
	if m.mode == homePinInput {
		rows = append(rows, "", fmt.Sprintf("New PIN (%d-%d digits)", config.MinPinLength, config.MaxPinLength),
			CurrentTheme.Input.Width(config.PinInputWidth+4).Render(m.pinInput.View()))
	}
	if m.status != "" {
		style := CurrentTheme.Status
		if !m.statusOK {
			style = CurrentTheme.Error
		}
		rows = append(rows, "", style.Render(m.status))
	}
	rows = append(rows, "", CurrentTheme.Dim.Render(m.registry.HelpForView(m.mode)))
	rows = append(rows, CurrentTheme.Dim.Render(config.AppName+" v"+versionLabel()))
	return CurrentTheme.Base.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// shortSessionID is the first group of a session UUID, enough to tell
// unlocks apart on screen.
func shortSessionID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
