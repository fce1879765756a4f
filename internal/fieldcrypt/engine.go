// Package fieldcrypt encrypts individual record fields with AES-256-GCM.
// Every call derives a fresh key from the master secret via PBKDF2 with a
// random salt, so no two values are sealed under the same key and IV, and the
// field name is bound as associated data so a ciphertext cannot be replayed
// into a different field.
package fieldcrypt

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"privacyguard/internal/classify"
	dErrors "privacyguard/pkg/domain-errors"
	"privacyguard/pkg/record"
)

const (
	keyLen        = 32
	saltLen       = 32
	nonceLen      = 12
	kdfIterations = 120_000
)

// Engine performs field-level encryption under a single master secret.
type Engine struct {
	master []byte
	logger *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(masterKey []byte, opts ...Option) (*Engine, error) {
	if len(masterKey) < MinMasterKeyLen {
		return nil, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("master key must be at least %d bytes", MinMasterKeyLen))
	}
	e := &Engine{master: masterKey}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Encrypt seals value under a key derived for this single call. The value is
// canonically JSON-encoded first (strings included) so Decrypt can return the
// exact original, typed form.
func (e *Engine) Encrypt(field string, value any) (*EncryptedField, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailure, fmt.Sprintf("serialize field %q", field))
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailure, "generate salt")
	}
	iv := make([]byte, nonceLen)
	if _, err := rand.Read(iv); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailure, "generate iv")
	}

	aead, err := e.aead(salt)
	if err != nil {
		return nil, err
	}

	sealed := aead.Seal(nil, iv, plaintext, []byte(field))
	tagStart := len(sealed) - aead.Overhead()

	return &EncryptedField{
		Encrypted:   true,
		Version:     FormatVersion,
		Algorithm:   Algorithm,
		Ciphertext:  hex.EncodeToString(sealed[:tagStart]),
		IV:          hex.EncodeToString(iv),
		Salt:        hex.EncodeToString(salt),
		AuthTag:     hex.EncodeToString(sealed[tagStart:]),
		Field:       field,
		EncryptedAt: time.Now().UTC(),
	}, nil
}

// Decrypt opens an EncryptedField and restores the original value. Numbers
// come back as json.Number, matching how records decode them. Plaintext that
// is not valid JSON (produced by a foreign writer) is returned as a raw
// string. Any tampering with ciphertext, iv, salt, or tag fails the
// authentication check and surfaces as a decryption error.
func (e *Engine) Decrypt(ef *EncryptedField) (any, error) {
	if ef == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "nil encrypted field")
	}
	if ef.Algorithm != Algorithm {
		return nil, dErrors.New(dErrors.CodeDecryptionFailure, fmt.Sprintf("unsupported algorithm %q", ef.Algorithm))
	}

	ciphertext, err := hex.DecodeString(ef.Ciphertext)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryptionFailure, "decode ciphertext")
	}
	iv, err := hex.DecodeString(ef.IV)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryptionFailure, "decode iv")
	}
	salt, err := hex.DecodeString(ef.Salt)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryptionFailure, "decode salt")
	}
	tag, err := hex.DecodeString(ef.AuthTag)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryptionFailure, "decode auth tag")
	}
	if len(iv) != nonceLen {
		return nil, dErrors.New(dErrors.CodeDecryptionFailure, "iv has wrong length")
	}

	aead, err := e.aead(salt)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, iv, sealed, []byte(ef.Field))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryptionFailure, fmt.Sprintf("authenticate field %q", ef.Field))
	}

	if !json.Valid(plaintext) {
		return string(plaintext), nil
	}
	dec := json.NewDecoder(bytes.NewReader(plaintext))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return string(plaintext), nil
	}
	return value, nil
}

// DecryptValue opens a record value in either its typed or generic JSON
// object form.
func (e *Engine) DecryptValue(value any) (any, error) {
	ef, ok := FromValue(value)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "value is not an encrypted field")
	}
	return e.Decrypt(ef)
}

// AutoEncryptResult reports which fields an AutoEncrypt pass sealed and which
// it had to leave in plaintext.
type AutoEncryptResult struct {
	EncryptedFields []string
	FailedFields    []string
}

// AutoEncrypt seals every field whose classification requires encryption and
// whose value is not already encrypted. A field that fails to encrypt keeps
// its plaintext value and is reported in FailedFields rather than aborting
// the pass. Running AutoEncrypt twice over the same record is a no-op.
func (e *Engine) AutoEncrypt(ctx context.Context, rec *record.Record, classifications []classify.Classification) AutoEncryptResult {
	var result AutoEncryptResult
	for _, c := range classifications {
		if !c.EncryptionRequired {
			continue
		}
		value, ok := rec.Get(c.Field)
		if !ok || value == nil {
			continue
		}
		if IsEncrypted(value) {
			continue
		}
		ef, err := e.Encrypt(c.Field, value)
		if err != nil {
			if e.logger != nil {
				e.logger.WarnContext(ctx, "field encryption failed; keeping plaintext",
					"field", c.Field,
					"error", err,
				)
			}
			result.FailedFields = append(result.FailedFields, c.Field)
			continue
		}
		rec.Set(c.Field, ef)
		result.EncryptedFields = append(result.EncryptedFields, c.Field)
	}
	return result
}

func (e *Engine) aead(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(e.master, salt, kdfIterations, keyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailure, "init cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailure, "init gcm")
	}
	return aead, nil
}
