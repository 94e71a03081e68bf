package lock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/akyairhashvil/applock/internal/config"
	"github.com/akyairhashvil/applock/internal/models"
	"go.uber.org/zap"
)

// Store persists the single LockSettings record. Every write re-serialises
// the whole record; there are no field-level writes.
type Store struct {
	kv  KV
	log *zap.Logger
	mu  sync.Mutex
}

func NewStore(kv KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log}
}

// Load reads the record, falling back to defaults when it is missing or
// cannot be parsed. A failed read is returned as ErrSettingsUnavailable
// rather than defaults.
func (s *Store) Load(ctx context.Context) (models.LockSettings, error) {
	raw, ok, err := s.kv.GetSetting(ctx, config.SettingsKey)
	if err != nil {
		s.log.Error("lock settings could not be read", zap.Error(err))
		return models.LockSettings{}, fmt.Errorf("%w: %v", ErrSettingsUnavailable, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return models.DefaultLockSettings(), nil
	}
	settings := models.DefaultLockSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.log.Warn("lock settings unreadable, using defaults", zap.Error(err))
		return models.DefaultLockSettings(), nil
	}
	return settings, nil
}

func (s *Store) Save(ctx context.Context, settings models.LockSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, settings)
}

func (s *Store) save(ctx context.Context, settings models.LockSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode lock settings: %w", err)
	}
	return s.kv.SetSetting(ctx, config.SettingsKey, string(data))
}

func (s *Store) Get(ctx context.Context) (models.LockSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Load(ctx)
}

// Update runs a read-modify-write under the store lock. fn reports whether
// it changed anything; unchanged records are not written back. When the
// read fails fn is not called and nothing is written.
func (s *Store) Update(ctx context.Context, fn func(*models.LockSettings) bool) (models.LockSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.Load(ctx)
	if err != nil {
		return current, err
	}
	if !fn(&current) {
		return current, nil
	}
	return current, s.save(ctx, current)
}
