package tui

import (
	"context"
	"time"

	"github.com/akyairhashvil/applock/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// TickMsg drives the idle check and the lockout countdown.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(config.TickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type Option func(*MainModel)

func WithClock(now func() time.Time) Option {
	return func(m *MainModel) { m.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(m *MainModel) { m.log = log }
}

func WithAuthReason(reason string) Option {
	return func(m *MainModel) { m.reason = reason }
}

// MainModel is the root bubbletea model. It watches focus changes and idle
// time, and hides the home screen behind the lock screen whenever the engine
// says authentication is required.
type MainModel struct {
	ctx    context.Context
	engine Engine
	prober Capability
	auth   Authenticator
	reason string
	now    func() time.Time
	log    *zap.Logger

	locked    bool
	lock      LockModel
	home      HomeModel
	lastInput time.Time
	width     int
	height    int
}

func NewMainModel(ctx context.Context, engine Engine, prober Capability, auth Authenticator, opts ...Option) MainModel {
	m := MainModel{
		ctx:    ctx,
		engine: engine,
		prober: prober,
		auth:   auth,
		reason: config.DefaultAuthReason,
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.lock = NewLockModel(ctx, engine, prober, auth, m.reason)
	m.home = NewHomeModel(ctx, engine, prober, m.log)
	m.lastInput = m.now()
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(m.checkCmd(), tick())
}

// checkCmd defers the startup check to the first Update so it runs on the
// event loop like every later check.
func (m MainModel) checkCmd() tea.Cmd {
	return func() tea.Msg { return tea.FocusMsg{} }
}

func (m MainModel) Locked() bool { return m.locked }

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.lastInput = m.now()
		if m.locked {
			var cmd tea.Cmd
			m.lock, cmd = m.lock.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.home, cmd = m.home.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		return m.maybeLock("")

	case tea.BlurMsg:
		m.log.Debug("terminal lost focus")
		return m, nil

	case TickMsg:
		return m.handleTick()

	case UnlockedMsg:
		m.locked = false
		m.engine.MarkAuthenticated()
		m.lastInput = m.now()
		m.home = m.home.Reload()
		return m, nil

	case lockNowMsg:
		m.engine.ClearAuthState()
		return m.maybeLock("Locked")
	}

	if m.locked {
		var cmd tea.Cmd
		m.lock, cmd = m.lock.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.home, cmd = m.home.Update(msg)
	return m, cmd
}

// maybeLock activates the lock screen when the engine requires
// authentication. An already active lock screen is left alone.
func (m MainModel) maybeLock(message string) (MainModel, tea.Cmd) {
	if m.locked || !m.engine.IsAuthRequired(m.ctx) {
		return m, nil
	}
	return m.activate(message)
}

func (m MainModel) activate(message string) (MainModel, tea.Cmd) {
	m.locked = true
	var cmd tea.Cmd
	m.lock, cmd = m.lock.Activate()
	m.lock.Message = message
	m.log.Info("app locked", zap.String("reason", message))
	return m, cmd
}

func (m MainModel) handleTick() (MainModel, tea.Cmd) {
	if m.locked {
		m.lock = m.lock.Refresh()
		return m, tick()
	}
	settings, err := m.engine.GetSettings(m.ctx)
	if err != nil {
		m.log.Error("lock settings unreadable, locking", zap.Error(err))
		next, cmd := m.activate(msgSettingsError)
		return next, tea.Batch(cmd, tick())
	}
	idle := m.now().Sub(m.lastInput)
	if settings.LockConfigured() && settings.TimeoutMinutes > 0 && idle > settings.Timeout() {
		m.engine.ClearAuthState()
		next, cmd := m.activate("Session locked (idle)")
		return next, tea.Batch(cmd, tick())
	}
	return m, tick()
}

func (m MainModel) View() string {
	if !m.locked {
		return m.home.View()
	}
	box := m.lock.View()
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
