package biometric

import (
	"context"
	"errors"
	"fmt"

	"github.com/akyairhashvil/applock/internal/models"
	"go.uber.org/zap"
)

var errUnsupported = errors.New("biometric: " + reasonUnsupported)

// Prober answers capability queries. It is recomputed on every call and
// never cached.
type Prober struct {
	provider Provider
	log      *zap.Logger
}

func NewProber(p Provider, log *zap.Logger) *Prober {
	if p == nil {
		p = Unavailable{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Prober{provider: p, log: log}
}

func (p *Prober) Provider() Provider {
	return p.provider
}

// CheckAvailability never fails; probe errors become an unavailable result
// carrying the error text.
func (p *Prober) CheckAvailability(ctx context.Context) (avail models.BiometricAvailability) {
	unavailable := func(reason string) models.BiometricAvailability {
		return models.BiometricAvailability{BiometryType: models.BiometryNone, Reason: reason}
	}
	if !p.provider.Supported() {
		return unavailable(reasonUnsupported)
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("biometric probe panicked", zap.String("provider", p.provider.Name()), zap.Any("panic", r))
			avail = unavailable(fmt.Sprint(r))
		}
	}()

	report, err := p.provider.Probe(ctx)
	if err != nil {
		p.log.Warn("biometric probe failed", zap.String("provider", p.provider.Name()), zap.Error(err))
		return unavailable(err.Error())
	}
	return models.BiometricAvailability{
		IsAvailable:  report.Available,
		BiometryType: NormalizeBiometryType(report.Type),
		Reason:       report.Reason,
	}
}
