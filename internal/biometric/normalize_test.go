package biometric

import (
	"testing"

	"github.com/akyairhashvil/applock/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeBiometryType(t *testing.T) {
	cases := map[string]models.BiometryType{
		"FaceID":              models.BiometryFaceID,
		"faceId":              models.BiometryFaceID,
		"TouchID":             models.BiometryTouchID,
		"fingerprint":         models.BiometryFingerprint,
		"right-index-finger":  models.BiometryFingerprint,
		"Face":                models.BiometryFace,
		"android-face-unlock": models.BiometryFace,
		"IRIS":                models.BiometryIris,
		"retina-scan-v2":      models.BiometryNone,
		"":                    models.BiometryNone,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeBiometryType(raw), "input %q", raw)
	}
}
