package classify

import (
	"strings"

	"privacyguard/pkg/domain"
)

// entry is the handling profile a table row assigns to a field.
type entry struct {
	fieldType   domain.FieldType
	sensitivity domain.Sensitivity
	encrypt     bool
}

// exactTable maps well-known field names to their handling profile. Lookup is
// case-sensitive: these are the canonical names producers are expected to use.
var exactTable = map[string]entry{
	"email":  {domain.FieldTypeDirectIdentifier, domain.SensitivityHigh, false},
	"phone":  {domain.FieldTypeDirectIdentifier, domain.SensitivityHigh, false},
	"mobile": {domain.FieldTypeDirectIdentifier, domain.SensitivityHigh, false},
	"userId": {domain.FieldTypeDirectIdentifier, domain.SensitivityHigh, false},

	"name":      {domain.FieldTypeDirectIdentifier, domain.SensitivityMedium, false},
	"firstName": {domain.FieldTypeDirectIdentifier, domain.SensitivityMedium, false},
	"lastName":  {domain.FieldTypeDirectIdentifier, domain.SensitivityMedium, false},
	"ipAddress": {domain.FieldTypeDirectIdentifier, domain.SensitivityMedium, false},

	"birthdate": {domain.FieldTypeDemographic, domain.SensitivityMedium, false},
	"dob":       {domain.FieldTypeDemographic, domain.SensitivityMedium, false},
	"age":       {domain.FieldTypeDemographic, domain.SensitivityLow, false},

	"location": {domain.FieldTypeGeolocation, domain.SensitivityHigh, true},
	"gps":      {domain.FieldTypeGeolocation, domain.SensitivityHigh, true},

	"creditCard":  {domain.FieldTypeFinancial, domain.SensitivityCritical, true},
	"iban":        {domain.FieldTypeFinancial, domain.SensitivityCritical, true},
	"bankAccount": {domain.FieldTypeFinancial, domain.SensitivityCritical, true},

	"password": {domain.FieldTypeCredential, domain.SensitivityCritical, true},
	"pin":      {domain.FieldTypeCredential, domain.SensitivityCritical, true},
	"apiKey":   {domain.FieldTypeCredential, domain.SensitivityCritical, true},

	"socialSecurity": {domain.FieldTypeDirectIdentifier, domain.SensitivityCritical, true},
	"driversLicense": {domain.FieldTypeDirectIdentifier, domain.SensitivityCritical, true},
	"passportNumber": {domain.FieldTypeDirectIdentifier, domain.SensitivityCritical, true},

	"interests":       {domain.FieldTypeBehavioral, domain.SensitivityLow, false},
	"preferences":     {domain.FieldTypeBehavioral, domain.SensitivityLow, false},
	"browsing":        {domain.FieldTypeBehavioral, domain.SensitivityMedium, false},
	"purchaseHistory": {domain.FieldTypeBehavioral, domain.SensitivityMedium, false},
}

// patternRule matches a lowercased field name by substring.
type patternRule struct {
	substrings []string
	entry      entry
}

// patternRules is evaluated in order and the first match wins, so rule
// priority is explicit. "passwordHash" must classify as a credential even
// though "passportRecord" also contains "pass"; both are settled by position
// in this table, not map iteration order.
var patternRules = []patternRule{
	{[]string{"email"}, entry{domain.FieldTypeDirectIdentifier, domain.SensitivityHigh, false}},
	{[]string{"phone", "mobile"}, entry{domain.FieldTypeDirectIdentifier, domain.SensitivityHigh, false}},
	{[]string{"birth", "dob"}, entry{domain.FieldTypeDemographic, domain.SensitivityMedium, false}},
	{[]string{"location", "gps", "coord"}, entry{domain.FieldTypeGeolocation, domain.SensitivityHigh, true}},
	{[]string{"pass", "pwd"}, entry{domain.FieldTypeCredential, domain.SensitivityCritical, true}},
	{[]string{"card", "account"}, entry{domain.FieldTypeFinancial, domain.SensitivityCritical, true}},
	{[]string{"ssn", "social"}, entry{domain.FieldTypeDirectIdentifier, domain.SensitivityCritical, true}},
}

// defaultEntry is the fallthrough for fields no table row claims.
var defaultEntry = entry{domain.FieldTypeGeneral, domain.SensitivityLow, false}

// lookup resolves a field name against the exact table, then the ordered
// pattern rules, then the default.
func lookup(field string) entry {
	if e, ok := exactTable[field]; ok {
		return e
	}
	lower := strings.ToLower(field)
	for _, rule := range patternRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.entry
			}
		}
	}
	return defaultEntry
}

// retentionDays is the default retention period per field type.
var retentionDays = map[domain.FieldType]uint32{
	domain.FieldTypeDirectIdentifier: 1095,
	domain.FieldTypeDemographic:      1825,
	domain.FieldTypeGeolocation:      90,
	domain.FieldTypeFinancial:        2555,
	domain.FieldTypeCredential:       90,
	domain.FieldTypeBehavioral:       180,
	domain.FieldTypeGeneral:          365,
}

// RetentionDaysFor returns the default retention period for a field type.
// Unknown types fall back to the general retention period.
func RetentionDaysFor(t domain.FieldType) uint32 {
	if d, ok := retentionDays[t]; ok {
		return d
	}
	return retentionDays[domain.FieldTypeGeneral]
}

// typeLaws maps each field type to the regimes that regulate that data
// category regardless of processing context.
var typeLaws = map[domain.FieldType][]domain.LawCode{
	domain.FieldTypeDirectIdentifier: {domain.LawGDPR, domain.LawCCPA, domain.LawLGPD, domain.LawPIPEDA},
	domain.FieldTypeDemographic:      {domain.LawGDPR, domain.LawLGPD},
	domain.FieldTypeGeolocation:      {domain.LawGDPR, domain.LawCCPA},
	domain.FieldTypeFinancial:        {domain.LawGDPR, domain.LawCCPA, domain.LawPIPEDA},
	domain.FieldTypeCredential:       {domain.LawGDPR},
	domain.FieldTypeBehavioral:       {domain.LawGDPR, domain.LawCCPA},
	domain.FieldTypeGeneral:          {domain.LawGDPR},
}

// recommendations gives the operator guidance attached to each field type.
var recommendations = map[domain.FieldType]string{
	domain.FieldTypeDirectIdentifier: "minimize collection and pseudonymize before analytical use",
	domain.FieldTypeDemographic:      "aggregate before reporting to avoid singling out subjects",
	domain.FieldTypeGeolocation:      "coarsen precision when exact position is not required",
	domain.FieldTypeFinancial:        "encrypt at rest and restrict access to billing scope",
	domain.FieldTypeCredential:       "encrypt at rest and never write to logs",
	domain.FieldTypeBehavioral:       "honor opt-out preferences before profiling",
	domain.FieldTypeGeneral:          "standard handling",
}
