// Package device turns raw User-Agent strings into the evidence attached to
// consent events: a short display name and a stable fingerprint. Fingerprints
// ignore minor browser versions so routine auto-updates do not read as device
// changes.
package device

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent produces a human-readable device summary such as
// "Chrome on Mac OS X". Unknown parts degrade to placeholders rather than
// empty strings so the result is always presentable.
func ParseUserAgent(rawUA string) string {
	if strings.TrimSpace(rawUA) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	os := ua.OSInfo().Name
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

// Fingerprint hashes the stable parts of a User-Agent (browser name, major
// version, OS). An empty User-Agent has no fingerprint.
func Fingerprint(rawUA string) string {
	if strings.TrimSpace(rawUA) == "" {
		return ""
	}

	ua := useragent.New(rawUA)
	browser, version := ua.Browser()
	canonical := strings.Join([]string{
		browser,
		majorVersion(version),
		ua.OSInfo().FullName,
		ua.Platform(),
	}, "|")

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// SameDevice reports whether two fingerprints identify the same device.
// Missing fingerprints on either side never match.
func SameDevice(current, stored string) bool {
	if current == "" || stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(current), []byte(stored)) == 1
}

func majorVersion(version string) string {
	if i := strings.IndexByte(version, '.'); i >= 0 {
		return version[:i]
	}
	return version
}
