package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "privacyguard/pkg/domain-errors"
)

func TestParseConsentType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ConsentType
		wantErr bool
	}{
		{name: "necessary", input: "necessary", want: ConsentNecessary},
		{name: "marketing uppercase", input: "MARKETING", want: ConsentMarketing},
		{name: "third party sharing", input: "third_party_sharing", want: ConsentThirdPartySharing},
		{name: "international transfer", input: "international_transfer", want: ConsentInternationalTransfer},
		{name: "all pseudo type", input: "all", want: ConsentAll},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "unknown rejected", input: "telemetry", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConsentType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsentAll_NotGrantable(t *testing.T) {
	// "all" fans out to the concrete types at the ledger layer; it is never
	// stored as a consent type itself.
	assert.False(t, ConsentAll.IsValid())
	assert.NotContains(t, GrantableConsentTypes(), ConsentAll)
}

func TestGrantableConsentTypes(t *testing.T) {
	types := GrantableConsentTypes()
	assert.Equal(t, []ConsentType{
		ConsentNecessary,
		ConsentMarketing,
		ConsentAnalytics,
		ConsentPersonalization,
		ConsentThirdPartySharing,
		ConsentInternationalTransfer,
	}, types)

	types[0] = ConsentType("mutated")
	assert.Equal(t, ConsentNecessary, GrantableConsentTypes()[0])
}
