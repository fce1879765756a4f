package engine

// Config is the explicit configuration surface of the engine. It is resolved
// once at construction; nothing here is read from globals afterwards.
type Config struct {
	// AutoEncrypt controls whether Process seals fields whose classification
	// requires encryption.
	AutoEncrypt bool

	// StrictConsent is consumed by transport middleware to refuse processing
	// without explicit consent. The engine itself records consent as an
	// obligation either way.
	StrictConsent bool

	// Environment gates ephemeral key generation: anything but "production"
	// may fall back to a generated key when none is configured.
	Environment string

	// EncryptionKey is the master secret as configured (hex or passphrase).
	// Empty means: consult the environment variable, then the ephemeral
	// fallback.
	EncryptionKey string
}

// DefaultConfig returns the stance used when the caller configures nothing:
// auto-encryption on, consent enforcement advisory, development environment.
func DefaultConfig() Config {
	return Config{
		AutoEncrypt:   true,
		StrictConsent: false,
		Environment:   "development",
	}
}
