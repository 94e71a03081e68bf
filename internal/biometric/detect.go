package biometric

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/applock/internal/config"
	"go.uber.org/zap"
)

// Detect picks the provider named in configuration. "auto" uses fprintd when
// the host has it and falls back to Unavailable.
func Detect(name string, log *zap.Logger) (Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case config.ProviderNone:
		return Unavailable{}, nil
	case config.ProviderFprintd:
		return NewFprintd(), nil
	case "", config.ProviderAuto:
		if fp := NewFprintd(); fp.Supported() {
			log.Info("biometric provider detected", zap.String("provider", fp.Name()))
			return fp, nil
		}
		log.Info("no biometric provider on this host")
		return Unavailable{}, nil
	default:
		return nil, fmt.Errorf("unknown biometric provider %q", name)
	}
}
