package fieldcrypt

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	dErrors "privacyguard/pkg/domain-errors"
)

const (
	// EnvMasterKey names the environment variable holding the master secret
	// when no explicit key is configured.
	EnvMasterKey = "PRIVACYGUARD_ENCRYPTION_KEY"

	// MinMasterKeyLen is the shortest master secret accepted. The KDF
	// stretches whatever it gets, but a short secret stays brute-forceable.
	MinMasterKeyLen = 16

	ephemeralKeyLen = 32
)

// ResolveMasterKey picks the master secret in priority order: the explicit
// value, then the environment value, then an ephemeral random key. Ephemeral
// keys are refused in production because every encrypted value would become
// unrecoverable on restart.
//
// getenv is the environment lookup, normally os.Getenv; injected so resolution
// stays testable without mutating process state.
func ResolveMasterKey(explicit, environment string, getenv func(string) string, logger *slog.Logger) ([]byte, error) {
	if explicit != "" {
		return decodeKeyMaterial(explicit)
	}
	if fromEnv := getenv(EnvMasterKey); fromEnv != "" {
		key, err := decodeKeyMaterial(fromEnv)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, EnvMasterKey+" holds unusable key material")
		}
		return key, nil
	}
	if strings.EqualFold(environment, "production") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "no encryption key configured; refusing to generate an ephemeral key in production")
	}

	key := make([]byte, ephemeralKeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "generate ephemeral encryption key")
	}
	if logger != nil {
		logger.Warn("generated ephemeral encryption key; encrypted values will be unrecoverable after restart",
			"environment", environment,
			"env_var", EnvMasterKey,
		)
	}
	return key, nil
}

// decodeKeyMaterial accepts either a 64-character hex string (decoded to its
// 32 raw bytes) or a raw passphrase of at least MinMasterKeyLen bytes.
func decodeKeyMaterial(material string) ([]byte, error) {
	material = strings.TrimSpace(material)
	if len(material) == 2*ephemeralKeyLen {
		if raw, err := hex.DecodeString(material); err == nil {
			return raw, nil
		}
	}
	if len(material) < MinMasterKeyLen {
		return nil, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("encryption key must be at least %d bytes", MinMasterKeyLen))
	}
	return []byte(material), nil
}
