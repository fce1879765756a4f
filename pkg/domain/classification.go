package domain

// FieldType buckets a record field by the kind of personal data it carries.
// The bucket drives which laws care about the field and how it is protected.
type FieldType string

const (
	FieldTypeDirectIdentifier FieldType = "direct_identifier"
	FieldTypeDemographic      FieldType = "demographic"
	FieldTypeGeolocation      FieldType = "geolocation"
	FieldTypeFinancial        FieldType = "financial"
	FieldTypeCredential       FieldType = "credential"
	FieldTypeBehavioral       FieldType = "behavioral"
	FieldTypeGeneral          FieldType = "general"
)

// validFieldTypes is the single source of truth for valid field types.
var validFieldTypes = map[FieldType]bool{
	FieldTypeDirectIdentifier: true,
	FieldTypeDemographic:      true,
	FieldTypeGeolocation:      true,
	FieldTypeFinancial:        true,
	FieldTypeCredential:       true,
	FieldTypeBehavioral:       true,
	FieldTypeGeneral:          true,
}

// IsValid checks if the field type is one of the supported enum values.
func (t FieldType) IsValid() bool {
	return validFieldTypes[t]
}

// String returns the string representation of the field type.
func (t FieldType) String() string {
	return string(t)
}

// Sensitivity is the ordinal classification (low < medium < high < critical)
// driving encryption and retention policy.
type Sensitivity string

const (
	SensitivityLow      Sensitivity = "low"
	SensitivityMedium   Sensitivity = "medium"
	SensitivityHigh     Sensitivity = "high"
	SensitivityCritical Sensitivity = "critical"
)

// sensitivityOrder defines the ordering of sensitivity levels for comparison.
var sensitivityOrder = map[Sensitivity]int{
	SensitivityLow:      1,
	SensitivityMedium:   2,
	SensitivityHigh:     3,
	SensitivityCritical: 4,
}

// IsValid checks if the sensitivity is one of the supported enum values.
func (s Sensitivity) IsValid() bool {
	_, ok := sensitivityOrder[s]
	return ok
}

// AtLeast returns true if this sensitivity is >= other. Unknown levels are
// treated as lower than any known level.
func (s Sensitivity) AtLeast(other Sensitivity) bool {
	thisOrder, thisOK := sensitivityOrder[s]
	otherOrder, otherOK := sensitivityOrder[other]
	if !thisOK {
		return false
	}
	if !otherOK {
		return true
	}
	return thisOrder >= otherOrder
}

// String returns the string representation of the sensitivity level.
func (s Sensitivity) String() string {
	return string(s)
}
