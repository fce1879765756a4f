package fieldcrypt

import (
	"time"
)

const (
	// Algorithm identifies the only cipher suite this engine produces.
	Algorithm = "aes-256-gcm"
	// FormatVersion is bumped when the EncryptedField layout changes.
	FormatVersion = "1"
)

// EncryptedField is the wire form of a protected value. It replaces the
// plaintext in the record, so every parameter needed for decryption except
// the master key travels with the value.
type EncryptedField struct {
	Encrypted   bool      `json:"encrypted"`
	Version     string    `json:"version"`
	Algorithm   string    `json:"algorithm"`
	Ciphertext  string    `json:"ciphertext"`
	IV          string    `json:"iv"`
	Salt        string    `json:"salt"`
	AuthTag     string    `json:"authTag"`
	Field       string    `json:"field"`
	EncryptedAt time.Time `json:"encryptedAt"`
}

// IsEncrypted reports whether value already carries an encrypted payload,
// either as a typed EncryptedField or as its generic JSON object form.
func IsEncrypted(value any) bool {
	_, ok := FromValue(value)
	return ok
}

// FromValue recovers an EncryptedField from a record value. Records decoded
// from JSON hold encrypted fields as map[string]any, so both the typed and
// the generic shape are accepted.
func FromValue(value any) (*EncryptedField, bool) {
	switch v := value.(type) {
	case *EncryptedField:
		return v, v != nil
	case EncryptedField:
		return &v, true
	case map[string]any:
		enc, _ := v["encrypted"].(bool)
		if !enc {
			return nil, false
		}
		ef := &EncryptedField{Encrypted: true}
		ef.Version, _ = v["version"].(string)
		ef.Algorithm, _ = v["algorithm"].(string)
		ef.Ciphertext, _ = v["ciphertext"].(string)
		ef.IV, _ = v["iv"].(string)
		ef.Salt, _ = v["salt"].(string)
		ef.AuthTag, _ = v["authTag"].(string)
		ef.Field, _ = v["field"].(string)
		if ef.Ciphertext == "" || ef.AuthTag == "" {
			return nil, false
		}
		if at, ok := v["encryptedAt"].(string); ok {
			if ts, err := time.Parse(time.RFC3339Nano, at); err == nil {
				ef.EncryptedAt = ts
			}
		}
		return ef, true
	default:
		return nil, false
	}
}
