package tui

import (
	"testing"
	"time"

	"github.com/akyairhashvil/applock/internal/models"
)

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                 "immediately",
		45 * time.Second:  "45s",
		5 * time.Minute:   "5m",
		2 * time.Hour:     "2h",
		90 * time.Minute:  "1h 30m",
		240 * time.Minute: "4h",
	}
	for d, want := range cases {
		if got := FormatDuration(d); got != want {
			t.Fatalf("FormatDuration(%s) = %q, want %q", d, got, want)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	if got := FormatCountdown(4*time.Minute + 30*time.Second); got != "04:30" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCountdown(500 * time.Millisecond); got != "00:01" {
		t.Fatalf("expected partial seconds rounded up, got %q", got)
	}
	if got := FormatCountdown(-time.Second); got != "00:00" {
		t.Fatalf("got %q", got)
	}
}

func TestResultFromValidation(t *testing.T) {
	three, secs := 3, 42
	cases := []struct {
		in   models.PinValidationResult
		want AuthResult
	}{
		{models.PinValidationResult{Success: true}, AuthResult{Success: true}},
		{models.PinValidationResult{Error: "Incorrect PIN", RemainingAttempts: &three}, AuthResult{ShouldRetry: true, Message: "Incorrect PIN. 3 attempts remaining"}},
		{models.PinValidationResult{Error: "Too many failed attempts", LockoutSeconds: &secs}, AuthResult{ShouldRetry: true, Message: "Too many attempts. Try again in 00:42"}},
		{models.PinValidationResult{Error: "PIN not configured"}, AuthResult{Message: "PIN not configured"}},
	}
	for _, tc := range cases {
		if got := resultFromValidation(tc.in); got != tc.want {
			t.Fatalf("resultFromValidation(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("default") })
	if !SetTheme("dracula") || CurrentTheme.Name != "Dracula" {
		t.Fatalf("expected dracula theme")
	}
	if SetTheme("neon") || CurrentTheme.Name != "Dracula" {
		t.Fatalf("expected unknown theme ignored")
	}
}
