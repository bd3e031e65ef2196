package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/connect-inmobiliaria/crm-service/internal/config"
)

// HashPasscode hashes a plaintext passcode for AUTH_ADMIN_PASSCODE_HASH.
func HashPasscode(passcode string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(passcode), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPasscode checks the supplied challenge answer against the configured
// secret. A bcrypt hash takes precedence when set; otherwise the demo plain
// passcode is compared in constant time.
func VerifyPasscode(cfg config.AuthConfig, supplied string) bool {
	if cfg.PasscodeHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.PasscodeHash), []byte(supplied)) == nil
	}
	if cfg.Passcode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cfg.Passcode), []byte(supplied)) == 1
}
