package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akyairhashvil/applock/internal/models"
	"github.com/akyairhashvil/applock/internal/testutil"
	"github.com/akyairhashvil/applock/internal/util"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// countingHasher records how often the stored hash is consulted.
type countingHasher struct {
	util.PinHasher
	mu       sync.Mutex
	verifies int
}

func (h *countingHasher) Verify(hash, pin string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return h.PinHasher.Verify(hash, pin)
}

func (h *countingHasher) Verifies() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verifies
}

type testEnv struct {
	svc    *Service
	clock  *testutil.Clock
	hasher *countingHasher
	kv     *MemoryKV
	store  *Store
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		clock:  testutil.NewClock(testStart),
		hasher: &countingHasher{PinHasher: util.NewPinHasher(bcrypt.MinCost)},
		kv:     NewMemoryKV(),
	}
	env.store = NewStore(env.kv, nil)
	all := append([]Option{WithClock(env.clock.Now), WithHasher(env.hasher)}, opts...)
	env.svc = NewService(env.store, all...)
	return env
}

func settingsOf(t *testing.T, env *testEnv) models.LockSettings {
	t.Helper()
	settings, err := env.svc.GetSettings(context.Background())
	require.NoError(t, err)
	return settings
}
