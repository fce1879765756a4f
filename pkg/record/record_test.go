package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "privacyguard/pkg/domain-errors"
)

func TestRecord_SetPreservesInsertionOrder(t *testing.T) {
	r := New()
	r.Set("email", "a@example.com")
	r.Set("name", "Ada")
	r.Set("age", 37)

	assert.Equal(t, []string{"email", "name", "age"}, r.Keys())

	// Overwriting keeps the original position.
	r.Set("email", "b@example.com")
	assert.Equal(t, []string{"email", "name", "age"}, r.Keys())

	v, ok := r.Get("email")
	require.True(t, ok)
	assert.Equal(t, "b@example.com", v)
}

func TestRecord_Delete(t *testing.T) {
	r := New()
	r.Set("a", 1)
	r.Set("b", 2)
	r.Set("c", 3)

	r.Delete("b")
	assert.Equal(t, []string{"a", "c"}, r.Keys())
	assert.False(t, r.Has("b"))
	assert.Equal(t, 2, r.Len())

	// Deleting an absent key is a no-op.
	r.Delete("zzz")
	assert.Equal(t, 2, r.Len())
}

func TestRecord_CloneIsDeep(t *testing.T) {
	r := New()
	r.Set("profile", map[string]any{"city": "Lisbon"})
	r.Set("tags", []any{"a", "b"})
	r.Set("name", "Ada")

	clone := r.Clone()
	clone.Set("name", "Eve")
	profile, _ := clone.Get("profile")
	profile.(map[string]any)["city"] = "Oslo"
	tags, _ := clone.Get("tags")
	tags.([]any)[0] = "z"

	origName, _ := r.Get("name")
	assert.Equal(t, "Ada", origName)
	origProfile, _ := r.Get("profile")
	assert.Equal(t, "Lisbon", origProfile.(map[string]any)["city"])
	origTags, _ := r.Get("tags")
	assert.Equal(t, "a", origTags.([]any)[0])

	assert.Equal(t, r.Keys(), clone.Keys())
}

func TestRecord_MarshalJSON_OrderStable(t *testing.T) {
	r := New()
	r.Set("zebra", 1)
	r.Set("apple", 2)
	r.Set("mango", 3)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":2,"mango":3}`, string(data))
}

func TestRecord_UnmarshalJSON_PreservesWireOrder(t *testing.T) {
	input := `{"userId":"u-1","email":"a@example.com","gps":{"lat":1.5},"score":42}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(input), &r))
	assert.Equal(t, []string{"userId", "email", "gps", "score"}, r.Keys())

	out, err := json.Marshal(&r)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	// Round trip is byte-stable, not just semantically equal.
	assert.Equal(t, input, string(out))
}

func TestRecord_UnmarshalJSON_NumbersSurviveRoundTrip(t *testing.T) {
	input := `{"big":9007199254740993,"precise":0.1}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(input), &r))

	out, err := json.Marshal(&r)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestRecord_UnmarshalJSON_RejectsNonObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "array", input: `[1,2,3]`},
		{name: "string", input: `"hello"`},
		{name: "number", input: `42`},
		{name: "null", input: `null`},
		{name: "truncated", input: `{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			err := json.Unmarshal([]byte(tt.input), &r)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestRecord_Range_StopsEarly(t *testing.T) {
	r := New()
	r.Set("a", 1)
	r.Set("b", 2)
	r.Set("c", 3)

	var seen []string
	r.Range(func(key string, _ any) bool {
		seen = append(seen, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestReservedKeys(t *testing.T) {
	assert.True(t, IsReserved(KeyConsent))
	assert.True(t, IsReserved(KeyDeletionMeta))
	assert.True(t, IsReserved(KeyCCPARights))
	assert.False(t, IsReserved("email"))

	r := New()
	r.Set("email", "a@example.com")
	r.Set(KeyConsent, map[string]any{"granted": true})
	r.Set("name", "Ada")

	assert.Equal(t, []string{"email", "name"}, r.DataKeys())
	assert.Equal(t, []string{"email", KeyConsent, "name"}, r.Keys())
}
