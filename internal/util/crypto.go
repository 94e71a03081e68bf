package util

import (
	"fmt"
	"unicode"

	"github.com/akyairhashvil/applock/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PinHasher hashes PINs at set time and compares submissions against the stored hash.
type PinHasher interface {
	Hash(pin string) (string, error)
	Verify(hash, pin string) bool
}

// BcryptHasher stores PINs as bcrypt strings.
type BcryptHasher struct {
	Cost int
}

func NewPinHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(pin string) (string, error) {
	sum, err := bcrypt.GenerateFromPassword([]byte(pin), h.Cost)
	if err != nil {
		return "", err
	}
	return string(sum), nil
}

func (h BcryptHasher) Verify(hash, pin string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

func ValidatePin(pin string) error {
	if len(pin) < config.MinPinLength || len(pin) > config.MaxPinLength {
		return fmt.Errorf("PIN must be %d-%d digits", config.MinPinLength, config.MaxPinLength)
	}
	for _, r := range pin {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return fmt.Errorf("PIN must contain digits only")
		}
	}
	return nil
}
