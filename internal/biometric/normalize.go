package biometric

import (
	"strings"

	"github.com/akyairhashvil/applock/internal/models"
)

// NormalizeBiometryType maps a backend's sensor description onto the closed
// BiometryType set. Unknown input maps to none.
func NormalizeBiometryType(raw string) models.BiometryType {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "faceid"):
		return models.BiometryFaceID
	case strings.Contains(s, "touchid"):
		return models.BiometryTouchID
	case strings.Contains(s, "finger"):
		return models.BiometryFingerprint
	case strings.Contains(s, "face"):
		return models.BiometryFace
	case strings.Contains(s, "iris"):
		return models.BiometryIris
	default:
		return models.BiometryNone
	}
}
