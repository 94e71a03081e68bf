package tui

import (
	"context"
	"testing"
	"time"

	"github.com/akyairhashvil/applock/internal/lock"
	"github.com/akyairhashvil/applock/internal/models"
	"github.com/akyairhashvil/applock/internal/testutil"
	"github.com/akyairhashvil/applock/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/crypto/bcrypt"
)

var (
	fingerprint = models.BiometricAvailability{IsAvailable: true, BiometryType: models.BiometryFingerprint}
	noBiometric = models.BiometricAvailability{BiometryType: models.BiometryNone, Reason: "not available on this platform"}
)

type fakeCapability struct {
	avail models.BiometricAvailability
}

func (f fakeCapability) CheckAvailability(context.Context) models.BiometricAvailability {
	return f.avail
}

type fakeAuth struct {
	ok    bool
	calls int
}

func (f *fakeAuth) Authenticate(context.Context, string) bool {
	f.calls++
	return f.ok
}

func setupEngine(t *testing.T, avail models.BiometricAvailability) (*lock.Service, *testutil.Clock) {
	t.Helper()
	svc, clock, _ := setupEngineKV(t, avail)
	return svc, clock
}

func setupEngineKV(t *testing.T, avail models.BiometricAvailability) (*lock.Service, *testutil.Clock, *lock.MemoryKV) {
	t.Helper()
	clock := testutil.NewClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	kv := lock.NewMemoryKV()
	svc := lock.NewService(
		lock.NewStore(kv, nil),
		lock.WithClock(clock.Now),
		lock.WithHasher(util.NewPinHasher(bcrypt.MinCost)),
		lock.WithCapability(fakeCapability{avail: avail}),
	)
	return svc, clock, kv
}

func mustSetPin(t *testing.T, svc *lock.Service, pin string) {
	t.Helper()
	if err := svc.SetPin(context.Background(), pin); err != nil {
		t.Fatalf("SetPin failed: %v", err)
	}
}

func mustEnable(t *testing.T, svc *lock.Service) {
	t.Helper()
	ok, err := svc.Enable(context.Background())
	if err != nil || !ok {
		t.Fatalf("Enable = %v, %v", ok, err)
	}
}

// activateLock runs the activation command and feeds its result back.
func activateLock(t *testing.T, m LockModel) (LockModel, tea.Cmd) {
	t.Helper()
	m, cmd := m.Activate()
	if m.State != LockInit {
		t.Fatalf("expected init state after Activate, got %v", m.State)
	}
	msg := cmd()
	if _, ok := msg.(lockActivatedMsg); !ok {
		t.Fatalf("expected lockActivatedMsg, got %T", msg)
	}
	return m.Update(msg)
}

func typePin(m LockModel, pin string) LockModel {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(pin)})
	return m
}

func pressEnter(m LockModel) (LockModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func expectUnlockedMsg(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected unlock command")
	}
	if _, ok := cmd().(UnlockedMsg); !ok {
		t.Fatalf("expected UnlockedMsg")
	}
}
