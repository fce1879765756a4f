package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip   string
		want string
	}{
		{name: "ipv4 host bits zeroed", ip: "203.0.113.42", want: "203.0.113.0/24"},
		{name: "ipv4 already network", ip: "10.0.0.0", want: "10.0.0.0/24"},
		{name: "ipv4 mapped ipv6", ip: "::ffff:192.0.2.128", want: "192.0.2.0/24"},
		{name: "ipv6 truncated to 48", ip: "2001:db8:85a3::8a2e:370:7334", want: "2001:db8:85a3::/48"},
		{name: "whitespace trimmed", ip: "  198.51.100.7 ", want: "198.51.100.0/24"},
		{name: "garbage redacted", ip: "not-an-ip", want: "redacted"},
		{name: "empty redacted", ip: "", want: "redacted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AnonymizeIP(tt.ip))
		})
	}
}

func TestHashSubjectID(t *testing.T) {
	t.Parallel()

	a := HashSubjectID("user-123")
	b := HashSubjectID("user-123")
	c := HashSubjectID("user-124")

	assert.Equal(t, a, b, "same input must hash identically")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
	assert.NotContains(t, a, "user-123")
}
