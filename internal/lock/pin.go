package lock

import (
	"context"
	"errors"
	"time"

	"github.com/akyairhashvil/applock/internal/config"
	"github.com/akyairhashvil/applock/internal/models"
	"github.com/akyairhashvil/applock/internal/util"
	"go.uber.org/zap"
)

// ValidatePin checks pin against the stored hash under the lockout policy.
// While locked out the submission is rejected before the hash is consulted.
// When the record cannot be read the answer is a generic failure and the
// hash is never consulted.
func (s *Service) ValidatePin(ctx context.Context, pin string) models.PinValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var result models.PinValidationResult
	_, err := s.update(ctx, func(st *models.LockSettings) bool {
		dirty := false
		switch {
		case st.LockoutUntil != nil && st.LockoutUntil.After(now):
			result = lockoutResult(st.LockoutUntil.Sub(now))
			return false
		case st.LockoutUntil != nil:
			s.log.Info("pin lockout expired")
			resetAttempts(st)
			dirty = true
		case st.LastFailedAttempt != nil && now.Sub(*st.LastFailedAttempt) > config.InactivityResetWindow:
			resetAttempts(st)
			dirty = true
		}

		hash := util.Deref(st.PinHash)
		if hash == "" {
			result = models.PinValidationResult{Error: ErrNotConfigured.Error()}
			return dirty
		}

		if s.hasher.Verify(hash, pin) {
			resetAttempts(st)
			result = models.PinValidationResult{Success: true}
			return true
		}

		st.FailedAttempts++
		st.LastFailedAttempt = util.Ptr(now)
		if st.FailedAttempts >= config.MaxPinAttempts {
			st.LockoutUntil = util.Ptr(now.Add(config.LockoutDuration))
			s.log.Warn("pin lockout started", zap.Time("until", *st.LockoutUntil))
			result = lockoutResult(config.LockoutDuration)
			return true
		}
		remaining := config.MaxPinAttempts - int(st.FailedAttempts)
		s.log.Info("pin rejected", zap.Int("remaining", remaining))
		result = models.PinValidationResult{
			Error:             msgIncorrectPin,
			RemainingAttempts: util.Ptr(remaining),
		}
		return true
	})
	if errors.Is(err, ErrSettingsUnavailable) {
		s.log.Error("pin not checked: lock settings unavailable", zap.Error(err))
		return models.PinValidationResult{Error: msgUnavailable}
	}
	if result.Success {
		id := s.session.Mark(now)
		s.log.Info("authenticated with pin", zap.String("session", id))
	}
	return result
}

func resetAttempts(st *models.LockSettings) {
	st.FailedAttempts = 0
	st.LockoutUntil = nil
	st.LastFailedAttempt = nil
}

func lockoutResult(remaining time.Duration) models.PinValidationResult {
	secs := int((remaining + time.Second - 1) / time.Second)
	return models.PinValidationResult{
		Error:          msgLockedOut,
		LockoutSeconds: util.Ptr(secs),
	}
}
