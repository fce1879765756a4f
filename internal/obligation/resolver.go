// Package obligation resolves which privacy regimes apply to a processing
// call and applies each regime's obligations to the record. Law handlers are
// registered in a table; a law without a handler is a recognized no-op, so
// new regimes slot in without touching the control flow.
package obligation

import (
	"slices"
	"strings"

	"privacyguard/pkg/domain"
)

// ResolveLaws maps a processing context to the applicable regimes. GDPR is
// always present as the most protective baseline. The result is deduplicated
// and ordered by the fixed law order, so identical contexts always produce
// identical slices.
func ResolveLaws(pctx domain.ProcessingContext) []domain.LawCode {
	laws := []domain.LawCode{domain.LawGDPR}

	switch strings.ToUpper(strings.TrimSpace(pctx.Country)) {
	case "US":
		laws = append(laws, domain.LawCCPA)
	case "BR":
		laws = append(laws, domain.LawLGPD)
	case "CA":
		laws = append(laws, domain.LawCCPA, domain.LawPIPEDA)
	}

	slices.SortStableFunc(laws, func(a, b domain.LawCode) int {
		return a.Order() - b.Order()
	})
	return slices.Compact(laws)
}
