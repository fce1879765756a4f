// Package privacy provides helpers for redacting personal data before it
// reaches logs, metrics labels, or audit trails.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"net/netip"
	"strings"
)

// AnonymizeIP truncates an IP address so it can be logged without identifying
// a subject. IPv4 addresses keep the first 24 bits, IPv6 the first 48.
// Unparseable input is redacted entirely rather than passed through.
func AnonymizeIP(ip string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return "redacted"
	}
	bits := 48
	if addr.Is4() || addr.Is4In6() {
		addr = addr.Unmap()
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "redacted"
	}
	return prefix.String()
}

// HashSubjectID returns a stable hex digest of a subject identifier. Audit
// trails and metrics use the digest so records can be correlated without
// storing the raw identifier.
func HashSubjectID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
