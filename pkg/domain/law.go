package domain

import (
	"strings"

	dErrors "privacyguard/pkg/domain-errors"
)

// LawCode identifies a privacy-law regime whose obligations the engine can
// apply. This is a domain primitive that enforces validity at parse time.
type LawCode string

// Supported law regimes.
const (
	LawGDPR   LawCode = "GDPR"
	LawCCPA   LawCode = "CCPA"
	LawLGPD   LawCode = "LGPD"
	LawPIPEDA LawCode = "PIPEDA"
)

// lawOrder defines the stable ordering of resolved law sets: GDPR first as
// the most protective baseline, then the regional statutes.
var lawOrder = map[LawCode]int{
	LawGDPR:   1,
	LawCCPA:   2,
	LawLGPD:   3,
	LawPIPEDA: 4,
}

// ParseLawCode validates and returns a LawCode. Input is case-insensitive.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseLawCode(s string) (LawCode, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "law code cannot be empty")
	}
	l := LawCode(strings.ToUpper(s))
	if !l.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown law code: "+s)
	}
	return l, nil
}

// IsValid checks if the law code is one of the supported enum values.
func (l LawCode) IsValid() bool {
	_, ok := lawOrder[l]
	return ok
}

// Order returns the stable sort position of the law code. Unknown codes sort
// after all known ones.
func (l LawCode) Order() int {
	if o, ok := lawOrder[l]; ok {
		return o
	}
	return len(lawOrder) + 1
}

// String returns the string representation of the law code.
func (l LawCode) String() string {
	return string(l)
}

// SupportedLaws returns all law regimes the engine knows about, in stable
// order.
func SupportedLaws() []LawCode {
	return []LawCode{LawGDPR, LawCCPA, LawLGPD, LawPIPEDA}
}
