package fieldcrypt

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "privacyguard/pkg/domain-errors"
)

func noEnv(string) string { return "" }

func TestResolveMasterKey_ExplicitHexDecoded(t *testing.T) {
	t.Parallel()
	raw := strings.Repeat("ab", 32)
	key, err := ResolveMasterKey(raw, "production", noEnv, nil)
	require.NoError(t, err)

	want, _ := hex.DecodeString(raw)
	assert.Equal(t, want, key)
}

func TestResolveMasterKey_ExplicitPassphraseUsedRaw(t *testing.T) {
	t.Parallel()
	key, err := ResolveMasterKey("a-long-enough-passphrase", "production", noEnv, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("a-long-enough-passphrase"), key)
}

func TestResolveMasterKey_ExplicitTooShort(t *testing.T) {
	t.Parallel()
	_, err := ResolveMasterKey("short", "development", noEnv, nil)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestResolveMasterKey_EnvFallback(t *testing.T) {
	t.Parallel()
	getenv := func(name string) string {
		if name == EnvMasterKey {
			return "passphrase-from-environment"
		}
		return ""
	}
	key, err := ResolveMasterKey("", "production", getenv, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("passphrase-from-environment"), key)
}

func TestResolveMasterKey_EnvBadMaterial(t *testing.T) {
	t.Parallel()
	getenv := func(string) string { return "tiny" }
	_, err := ResolveMasterKey("", "development", getenv, nil)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestResolveMasterKey_ProductionRefusesEphemeral(t *testing.T) {
	t.Parallel()
	for _, env := range []string{"production", "Production", "PRODUCTION"} {
		_, err := ResolveMasterKey("", env, noEnv, nil)
		require.Error(t, err, env)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	}
}

func TestResolveMasterKey_DevelopmentGeneratesEphemeral(t *testing.T) {
	t.Parallel()
	a, err := ResolveMasterKey("", "development", noEnv, nil)
	require.NoError(t, err)
	assert.Len(t, a, ephemeralKeyLen)

	b, err := ResolveMasterKey("", "development", noEnv, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "ephemeral keys must be random per process")
}
