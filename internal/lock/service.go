// Package lock implements the lock engine: the persisted settings record,
// the volatile auth session, PIN validation with lockout, and the
// timeout-based decision of whether the app must be re-locked.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akyairhashvil/applock/internal/config"
	"github.com/akyairhashvil/applock/internal/models"
	"github.com/akyairhashvil/applock/internal/util"
	"go.uber.org/zap"
)

// CapabilityChecker reports what biometric support the host has.
type CapabilityChecker interface {
	CheckAvailability(ctx context.Context) models.BiometricAvailability
}

type noCapability struct{}

func (noCapability) CheckAvailability(context.Context) models.BiometricAvailability {
	return models.BiometricAvailability{BiometryType: models.BiometryNone, Reason: "not available on this platform"}
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithHasher(h util.PinHasher) Option {
	return func(s *Service) { s.hasher = h }
}

func WithCapability(c CapabilityChecker) Option {
	return func(s *Service) { s.capability = c }
}

// Service is the process-wide lock engine. Construct one per store and pass
// it to whatever needs to gate on it.
type Service struct {
	store      *Store
	session    *Session
	hasher     util.PinHasher
	capability CapabilityChecker
	now        func() time.Time
	log        *zap.Logger

	// mu makes every read-decide-write atomic with respect to other calls.
	mu sync.Mutex
	// pending holds attempt bookkeeping whose write failed. Guarded by mu.
	pending pendingAttempts
}

func NewService(store *Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		session:    NewSession(),
		hasher:     util.NewPinHasher(0),
		capability: noCapability{},
		now:        time.Now,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSettings returns the current record, or ErrSettingsUnavailable when it
// cannot be read. Callers must not fall back to defaults on error.
func (s *Service) GetSettings(ctx context.Context) (models.LockSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) load(ctx context.Context) (models.LockSettings, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		return settings, err
	}
	s.pending.apply(&settings, s.now())
	return settings, nil
}

// update is store.Update with unpersisted attempt bookkeeping folded in.
// When a write that carries attempt changes fails, the attempt fields stay
// in memory; the next successful write clears them. Callers hold mu.
func (s *Service) update(ctx context.Context, fn func(*models.LockSettings) bool) (models.LockSettings, error) {
	now := s.now()
	wrote, attempts := false, false
	settings, err := s.store.Update(ctx, func(st *models.LockSettings) bool {
		merged := s.pending.apply(st, now)
		var before pendingAttempts
		before.record(*st)
		wrote = fn(st) || merged
		attempts = merged || !before.same(*st)
		return wrote
	})
	if !wrote {
		return settings, err
	}
	if err != nil {
		if attempts {
			s.pending.record(settings)
		}
		s.log.Error("lock settings write failed", zap.Bool("attempts_pending", s.pending.set), zap.Error(err))
		return settings, err
	}
	s.pending.clear()
	return settings, nil
}

func (s *Service) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.LockSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.TimeoutMinutes != nil {
		clamped := uint(util.Clamp(int(*patch.TimeoutMinutes), 0, config.MaxTimeoutMinutes))
		patch.TimeoutMinutes = &clamped
	}
	return s.update(ctx, func(st *models.LockSettings) bool {
		patch.Apply(st)
		return true
	})
}

// Enable turns the lock on. It reports false, leaving the record untouched,
// when there is nothing to unlock with: no biometric support and no PIN.
func (s *Service) Enable(ctx context.Context) (bool, error) {
	avail := s.capability.CheckAvailability(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	enabled := false
	_, err := s.update(ctx, func(st *models.LockSettings) bool {
		if !avail.IsAvailable && !st.PinEnabled {
			return false
		}
		st.Enabled = true
		enabled = true
		return true
	})
	if err != nil {
		return false, err
	}
	if !enabled {
		s.log.Info("lock not enabled: no biometric support and no PIN", zap.String("reason", avail.Reason))
	}
	return enabled, nil
}

func (s *Service) Disable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.update(ctx, func(st *models.LockSettings) bool {
		st.Enabled = false
		return true
	})
	return err
}

// SetPin stores a new PIN hash. Attempt bookkeeping is left alone.
func (s *Service) SetPin(ctx context.Context, pin string) error {
	if err := util.ValidatePin(pin); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPin, err)
	}
	hash, err := s.hasher.Hash(pin)
	if err != nil {
		return fmt.Errorf("hash PIN: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.update(ctx, func(st *models.LockSettings) bool {
		st.PinEnabled = true
		st.PinHash = &hash
		return true
	})
	return err
}

func (s *Service) RemovePin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.update(ctx, func(st *models.LockSettings) bool {
		st.PinEnabled = false
		st.PinHash = nil
		return true
	})
	return err
}

// PinEnabled reports whether a PIN fallback exists. An unreadable record
// counts as yes so that a missing biometric backend never unlocks by itself.
func (s *Service) PinEnabled(ctx context.Context) bool {
	settings, err := s.store.Get(ctx)
	if err != nil {
		return true
	}
	return settings.PinEnabled
}

// IsAuthRequired reports whether a lock is configured and the grace period
// since the last successful unlock has run out. An unreadable record always
// requires auth.
func (s *Service) IsAuthRequired(ctx context.Context) bool {
	settings, err := s.store.Get(ctx)
	if err != nil {
		return true
	}
	if !settings.LockConfigured() {
		return false
	}
	return s.now().Sub(s.session.LastAuthTime()) > settings.Timeout()
}

func (s *Service) MarkAuthenticated() {
	id := s.session.Mark(s.now())
	s.log.Info("authenticated", zap.String("session", id))
}

// ClearAuthState forgets the last unlock so the next check requires auth.
func (s *Service) ClearAuthState() {
	s.session.Clear()
	s.log.Info("auth state cleared")
}

func (s *Service) LastAuthTime() time.Time {
	return s.session.LastAuthTime()
}

// SessionID identifies the current unlock, or is empty while locked.
func (s *Service) SessionID() string {
	return s.session.ID()
}

// LockoutRemaining is how long PIN attempts stay blocked, or zero.
func (s *Service) LockoutRemaining(ctx context.Context) time.Duration {
	s.mu.Lock()
	settings, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil || settings.LockoutUntil == nil {
		return 0
	}
	if remaining := settings.LockoutUntil.Sub(s.now()); remaining > 0 {
		return remaining
	}
	return 0
}
