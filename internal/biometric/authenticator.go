package biometric

import (
	"context"
	"fmt"

	"github.com/akyairhashvil/applock/internal/config"
	"go.uber.org/zap"
)

// Gate is the part of the lock engine the authenticator reports to.
type Gate interface {
	PinEnabled(ctx context.Context) bool
	MarkAuthenticated()
}

type Authenticator struct {
	provider    Provider
	gate        Gate
	cancelLabel string
	log         *zap.Logger
}

func NewAuthenticator(p Provider, gate Gate, cancelLabel string, log *zap.Logger) *Authenticator {
	if p == nil {
		p = Unavailable{}
	}
	if cancelLabel == "" {
		cancelLabel = config.DefaultCancelLabel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Authenticator{provider: p, gate: gate, cancelLabel: cancelLabel, log: log}
}

// Evaluate runs one prompt and classifies the result. On success the gate
// is marked authenticated.
func (a *Authenticator) Evaluate(ctx context.Context, reason string) (out Outcome) {
	if !a.provider.Supported() {
		return Outcome{Kind: OutcomeUnavailable}
	}
	if reason == "" {
		reason = config.DefaultAuthReason
	}
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("biometric prompt panicked: %v", r)}
		}
	}()

	err := a.provider.Prompt(ctx, PromptRequest{
		Reason:                reason,
		CancelLabel:           a.cancelLabel,
		AllowDeviceCredential: true,
	})
	switch {
	case err == nil:
		a.gate.MarkAuthenticated()
		return Outcome{Kind: OutcomeSuccess}
	case IsCancellation(err):
		return Outcome{Kind: OutcomeCancelled, Err: err}
	default:
		return Outcome{Kind: OutcomeFailed, Err: err}
	}
}

// Authenticate collapses Evaluate to a yes/no. With no biometric backend it
// succeeds only when there is no PIN to fall back to.
func (a *Authenticator) Authenticate(ctx context.Context, reason string) bool {
	out := a.Evaluate(ctx, reason)
	switch out.Kind {
	case OutcomeSuccess:
		return true
	case OutcomeUnavailable:
		return !a.gate.PinEnabled(ctx)
	case OutcomeCancelled:
		a.log.Debug("biometric prompt cancelled", zap.Error(out.Err))
	default:
		a.log.Warn("biometric authentication failed", zap.String("provider", a.provider.Name()), zap.Error(out.Err))
	}
	return false
}
