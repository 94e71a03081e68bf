package lock

import (
	"context"
	"sync"
)

// KV is the durable key/value boundary the settings record is persisted through.
// *database.Database satisfies it. A missing key is ok=false with a nil error;
// a non-nil error means the value could not be read at all.
type KV interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// MemoryKV keeps settings in process memory. Used for tests and ephemeral runs.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	// ReadErr, when set, is returned by every GetSetting call.
	ReadErr error
	// WriteErr, when set, is returned by every SetSetting call.
	WriteErr error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) GetSetting(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", false, m.ReadErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) SetSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.values[key] = value
	return nil
}
