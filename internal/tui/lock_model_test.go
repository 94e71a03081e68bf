package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLockUnlocksWhenNothingConfigured(t *testing.T) {
	svc, _ := setupEngine(t, fingerprint)
	auth := &fakeAuth{}
	m, cmd := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{fingerprint}, auth, ""))
	if m.State != LockUnlocked {
		t.Fatalf("expected unlocked, got %v", m.State)
	}
	expectUnlockedMsg(t, cmd)
	if auth.calls != 0 {
		t.Fatalf("expected no biometric prompt, got %d", auth.calls)
	}
}

func TestLockGoesStraightToPinEntry(t *testing.T) {
	svc, _ := setupEngine(t, noBiometric)
	mustSetPin(t, svc, "1234")
	auth := &fakeAuth{}
	m, _ := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{noBiometric}, auth, ""))
	if m.State != LockPinEntry {
		t.Fatalf("expected PIN entry, got %v", m.State)
	}
	if auth.calls != 0 {
		t.Fatalf("expected no biometric prompt")
	}
	if !strings.Contains(m.View(), "Enter PIN") {
		t.Fatalf("expected PIN prompt in view")
	}
}

func TestLockBiometricSuccess(t *testing.T) {
	svc, _ := setupEngine(t, fingerprint)
	mustEnable(t, svc)
	auth := &fakeAuth{ok: true}
	m, cmd := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{fingerprint}, auth, ""))
	if m.State != LockBiometric {
		t.Fatalf("expected biometric attempt, got %v", m.State)
	}
	m, cmd = m.Update(cmd())
	if m.State != LockUnlocked {
		t.Fatalf("expected unlocked, got %v", m.State)
	}
	expectUnlockedMsg(t, cmd)
}

func TestLockBiometricFailureFallsBackToPin(t *testing.T) {
	svc, _ := setupEngine(t, fingerprint)
	mustSetPin(t, svc, "1234")
	mustEnable(t, svc)
	m, cmd := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{fingerprint}, &fakeAuth{}, ""))
	m, _ = m.Update(cmd())
	if m.State != LockPinEntry {
		t.Fatalf("expected PIN entry, got %v", m.State)
	}
	if m.Message != msgBiometricFailed {
		t.Fatalf("unexpected message %q", m.Message)
	}
}

func TestLockBiometricFailureWithoutPinBlocks(t *testing.T) {
	svc, _ := setupEngine(t, fingerprint)
	mustEnable(t, svc)
	auth := &fakeAuth{}
	m, cmd := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{fingerprint}, auth, ""))
	m, _ = m.Update(cmd())
	if m.State != LockBlocked {
		t.Fatalf("expected blocked, got %v", m.State)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.State != LockBlocked {
		t.Fatalf("expected enter to do nothing while blocked")
	}

	auth.ok = true
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.State != LockBiometric {
		t.Fatalf("expected retry to start biometric, got %v", m.State)
	}
	m, cmd = m.Update(cmd())
	if m.State != LockUnlocked {
		t.Fatalf("expected unlocked after retry, got %v", m.State)
	}
	expectUnlockedMsg(t, cmd)
	if auth.calls != 2 {
		t.Fatalf("expected 2 prompts, got %d", auth.calls)
	}
}

func TestLockEnabledWithoutAnyMechanismUnlocks(t *testing.T) {
	// Enabled while a sensor was present; the sensor has since gone away.
	svc, _ := setupEngine(t, fingerprint)
	mustEnable(t, svc)
	m, cmd := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{noBiometric}, &fakeAuth{}, ""))
	if m.State != LockUnlocked {
		t.Fatalf("expected unlocked, got %v", m.State)
	}
	expectUnlockedMsg(t, cmd)
}

func TestLockUnreadableSettingsStaysLocked(t *testing.T) {
	svc, _, kv := setupEngineKV(t, noBiometric)
	mustSetPin(t, svc, "1234")
	kv.ReadErr = errors.New("database is locked")

	m, cmd := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{noBiometric}, &fakeAuth{}, ""))
	if m.State != LockBlocked || cmd != nil {
		t.Fatalf("expected blocked without unlock, got %v", m.State)
	}
	if m.Message != msgSettingsError {
		t.Fatalf("unexpected message %q", m.Message)
	}
	if strings.Contains(m.View(), "only way in") {
		t.Fatalf("expected no biometric hint when settings are unreadable")
	}

	kv.ReadErr = nil
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.State != LockInit {
		t.Fatalf("expected retry to re-read settings, got %v", m.State)
	}
	m, _ = m.Update(cmd())
	if m.State != LockPinEntry {
		t.Fatalf("expected PIN entry once settings are readable, got %v", m.State)
	}
}

func TestLockPinEntryMessages(t *testing.T) {
	svc, _ := setupEngine(t, noBiometric)
	mustSetPin(t, svc, "1234")
	m, _ := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{noBiometric}, &fakeAuth{}, ""))

	m, _ = pressEnter(m)
	if m.Message != "Enter your PIN" {
		t.Fatalf("unexpected empty-submit message %q", m.Message)
	}

	m, _ = pressEnter(typePin(m, "0000"))
	if m.Message != "Incorrect PIN. 4 attempts remaining" {
		t.Fatalf("unexpected message %q", m.Message)
	}
	if m.PinInput.Value() != "" {
		t.Fatalf("expected input cleared after submit")
	}

	m, cmd := pressEnter(typePin(m, "1234"))
	if m.State != LockUnlocked {
		t.Fatalf("expected unlocked, got %v", m.State)
	}
	expectUnlockedMsg(t, cmd)
}

func TestLockLockoutCountdown(t *testing.T) {
	ctx := context.Background()
	svc, clock := setupEngine(t, noBiometric)
	mustSetPin(t, svc, "1234")
	m, _ := activateLock(t, NewLockModel(ctx, svc, fakeCapability{noBiometric}, &fakeAuth{}, ""))

	for i := 0; i < 5; i++ {
		m, _ = pressEnter(typePin(m, "9999"))
	}
	if m.Message != "Too many attempts. Try again in 05:00" {
		t.Fatalf("unexpected lockout message %q", m.Message)
	}

	m, _ = pressEnter(typePin(m, "1234"))
	if m.State != LockPinEntry {
		t.Fatalf("expected correct PIN to be rejected during lockout")
	}

	clock.Advance(2*time.Minute + 30*time.Second)
	m = m.Refresh()
	if m.Message != "Too many attempts. Try again in 02:30" {
		t.Fatalf("unexpected countdown %q", m.Message)
	}

	clock.Advance(3 * time.Minute)
	m = m.Refresh()
	if m.Message != "" {
		t.Fatalf("expected countdown cleared, got %q", m.Message)
	}
	m, cmd := pressEnter(typePin(m, "1234"))
	if m.State != LockUnlocked {
		t.Fatalf("expected unlock after lockout expired")
	}
	expectUnlockedMsg(t, cmd)
}

func TestLockManualToggle(t *testing.T) {
	svc, _ := setupEngine(t, fingerprint)
	mustSetPin(t, svc, "1234")
	mustEnable(t, svc)
	auth := &fakeAuth{}
	m, cmd := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{fingerprint}, auth, ""))
	if m.State != LockBiometric {
		t.Fatalf("expected biometric attempt, got %v", m.State)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.State != LockPinEntry {
		t.Fatalf("expected tab to switch to PIN, got %v", m.State)
	}

	// The abandoned prompt reports failure after the switch.
	first := cmd()
	m, _ = m.Update(first)
	if m.State != LockPinEntry || m.Message != "" {
		t.Fatalf("expected stale failure ignored, got %v %q", m.State, m.Message)
	}

	m, second := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.State != LockBiometric {
		t.Fatalf("expected tab to switch back to biometric, got %v", m.State)
	}

	// The first prompt's result arriving again must not end the second prompt.
	m, _ = m.Update(first)
	if m.State != LockBiometric || m.Message != "" {
		t.Fatalf("expected stale result dropped, got %v %q", m.State, m.Message)
	}
	if m.cancelPrompt == nil {
		t.Fatalf("expected the live prompt to stay running")
	}

	auth.ok = true
	m, cmd = m.Update(second())
	if m.State != LockUnlocked {
		t.Fatalf("expected the live prompt to unlock, got %v", m.State)
	}
	expectUnlockedMsg(t, cmd)
}

func TestLockStaleSuccessIsDropped(t *testing.T) {
	svc, _ := setupEngine(t, fingerprint)
	mustSetPin(t, svc, "1234")
	mustEnable(t, svc)
	auth := &fakeAuth{ok: true}
	m, cmd := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{fingerprint}, auth, ""))
	stale := cmd()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(stale)
	if m.State != LockPinEntry {
		t.Fatalf("expected a cancelled prompt's result to be dropped, got %v", m.State)
	}
}

func TestLockToggleNeedsBiometric(t *testing.T) {
	svc, _ := setupEngine(t, noBiometric)
	mustSetPin(t, svc, "1234")
	m, _ := activateLock(t, NewLockModel(context.Background(), svc, fakeCapability{noBiometric}, &fakeAuth{}, ""))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.State != LockPinEntry {
		t.Fatalf("expected to stay on PIN entry, got %v", m.State)
	}
	if strings.Contains(m.View(), "[tab]") {
		t.Fatalf("expected no toggle hint without biometrics")
	}
}
