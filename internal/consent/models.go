package consent

import (
	"time"

	"privacyguard/pkg/domain"
)

// Version tags every ConsentRecord this ledger writes. Bump when the consent
// record layout changes.
const Version = "1.0"

// ConsentRecord captures a single act of consent together with the evidence
// needed to prove it was freely given: who asked (purpose), under which
// circumstances (ip, user agent, device), and what exactly was agreed to
// (preferences).
type ConsentRecord struct {
	Version            string                      `json:"version"`
	RecordedAt         time.Time                   `json:"recordedAt"`
	IPAddress          string                      `json:"ipAddress,omitempty"`
	UserAgent          string                      `json:"userAgent,omitempty"`
	Device             string                      `json:"device,omitempty"`
	DeviceFingerprint  string                      `json:"deviceFingerprint,omitempty"`
	Purpose            string                      `json:"purpose"`
	Specific           bool                        `json:"specific"`
	Informed           bool                        `json:"informed"`
	Unambiguous        bool                        `json:"unambiguous"`
	Preferences        map[domain.ConsentType]bool `json:"preferences"`
	CanWithdraw        bool                        `json:"canWithdraw"`
	WithdrawalRecorded bool                        `json:"withdrawalRecorded"`
}

// clone returns an independent copy so history snapshots can never be
// mutated through the live record.
func (c ConsentRecord) clone() ConsentRecord {
	out := c
	out.Preferences = make(map[domain.ConsentType]bool, len(c.Preferences))
	for k, v := range c.Preferences {
		out.Preferences[k] = v
	}
	return out
}

// WithdrawalEntry is the immutable audit mark appended for every withdrawal.
// Snapshot holds the consent state immediately before the withdrawal took
// effect. DeviceChanged is set when the withdrawing client's fingerprint does
// not match the one that granted the consent.
type WithdrawalEntry struct {
	WithdrawnAt   time.Time     `json:"withdrawnAt"`
	Scope         string        `json:"scope"`
	IPAddress     string        `json:"ipAddress,omitempty"`
	UserAgent     string        `json:"userAgent,omitempty"`
	DeviceChanged bool          `json:"deviceChanged,omitempty"`
	Snapshot      ConsentRecord `json:"snapshot"`
}

// Annotation is the consent block a record carries under its reserved key:
// the live consent plus the append-only history and withdrawal sequences.
type Annotation struct {
	Current     *ConsentRecord    `json:"current,omitempty"`
	History     []ConsentRecord   `json:"history,omitempty"`
	Withdrawals []WithdrawalEntry `json:"withdrawals,omitempty"`
}

// Options shapes the ConsentRecord built by RecordConsent. Preferences listed
// here override the defaults; absent types keep their default stance.
type Options struct {
	Purpose     string
	Preferences map[domain.ConsentType]bool
}

// Trail is the full audit view of a record's consent state.
type Trail struct {
	Current     *ConsentRecord    `json:"current,omitempty"`
	History     []ConsentRecord   `json:"history"`
	Withdrawals []WithdrawalEntry `json:"withdrawals"`
	Summary     Summary           `json:"summary"`
}

// Summary condenses the trail for list views and audit exports.
type Summary struct {
	HasCurrent      bool      `json:"hasCurrent"`
	Compliant       bool      `json:"compliant"`
	HistoryCount    int       `json:"historyCount"`
	WithdrawalCount int       `json:"withdrawalCount"`
	LastActivity    time.Time `json:"lastActivity,omitempty"`
}
