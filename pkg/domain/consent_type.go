package domain

import dErrors "privacyguard/pkg/domain-errors"

// ConsentType is a domain value that identifies a processing purpose a user
// can consent to. Purpose binding allows selective withdrawal without
// affecting other flows.
//
// Usage: construct via ParseConsentType at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type ConsentType string

// Supported consent types.
const (
	ConsentNecessary             ConsentType = "necessary"
	ConsentMarketing             ConsentType = "marketing"
	ConsentAnalytics             ConsentType = "analytics"
	ConsentPersonalization       ConsentType = "personalization"
	ConsentThirdPartySharing     ConsentType = "third_party_sharing"
	ConsentInternationalTransfer ConsentType = "international_transfer"

	// ConsentAll is the pseudo-type accepted by withdrawal: it zeroes every
	// preference except necessary.
	ConsentAll ConsentType = "all"
)

// validConsentTypes is the single source of truth for valid consent types.
// ConsentAll is deliberately excluded: it is a withdrawal selector, not a
// grantable preference.
var validConsentTypes = map[ConsentType]bool{
	ConsentNecessary:             true,
	ConsentMarketing:             true,
	ConsentAnalytics:             true,
	ConsentPersonalization:       true,
	ConsentThirdPartySharing:     true,
	ConsentInternationalTransfer: true,
}

// ParseConsentType constructs a ConsentType from external input.
//
// Usage: call from handlers/adapters when parsing requests. "all" parses
// successfully so withdrawal endpoints can accept it.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseConsentType(s string) (ConsentType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "consent type cannot be empty")
	}
	t := ConsentType(s)
	if t != ConsentAll && !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid consent type")
	}
	return t, nil
}

// IsValid checks if the consent type is one of the grantable enum values.
func (t ConsentType) IsValid() bool {
	return validConsentTypes[t]
}

// String returns the string representation of the consent type.
func (t ConsentType) String() string {
	return string(t)
}

// GrantableConsentTypes returns every preference a consent record carries, in
// a stable order. necessary is first because it can never be withdrawn.
func GrantableConsentTypes() []ConsentType {
	return []ConsentType{
		ConsentNecessary,
		ConsentMarketing,
		ConsentAnalytics,
		ConsentPersonalization,
		ConsentThirdPartySharing,
		ConsentInternationalTransfer,
	}
}
