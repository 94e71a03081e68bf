package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akyairhashvil/applock/internal/models"
)

// AuthResult represents the outcome of a PIN submission as the lock screen
// presents it.
type AuthResult struct {
	Success     bool
	ShouldRetry bool
	Message     string
}

// authHandler turns PIN submissions into screen messages.
type authHandler struct {
	engine Engine
	ctx    context.Context
}

func newAuthHandler(engine Engine, ctx context.Context) *authHandler {
	return &authHandler{engine: engine, ctx: ctx}
}

func (h *authHandler) SubmitPin(entered string) AuthResult {
	entered = strings.TrimSpace(entered)
	if entered == "" {
		return AuthResult{ShouldRetry: true, Message: "Enter your PIN"}
	}
	return resultFromValidation(h.engine.ValidatePin(h.ctx, entered))
}

func resultFromValidation(res models.PinValidationResult) AuthResult {
	switch {
	case res.Success:
		return AuthResult{Success: true}
	case res.LockedOut():
		return AuthResult{ShouldRetry: true, Message: lockoutMessage(time.Duration(*res.LockoutSeconds) * time.Second)}
	case res.RemainingAttempts != nil:
		return AuthResult{ShouldRetry: true, Message: fmt.Sprintf("Incorrect PIN. %d attempts remaining", *res.RemainingAttempts)}
	case res.Error != "":
		return AuthResult{Message: res.Error}
	default:
		return AuthResult{ShouldRetry: true, Message: "Incorrect PIN"}
	}
}

func lockoutMessage(remaining time.Duration) string {
	if remaining < time.Second {
		remaining = time.Second
	}
	return fmt.Sprintf("Too many attempts. Try again in %s", FormatCountdown(remaining))
}
