package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already e164", "+5511999999999", "+5511999999999"},
		{"bare country code", "5511999999999", "+5511999999999"},
		{"local with separators", "(11) 99999-9999", "+5511999999999"},
		{"local ten digits", "1133334444", "+551133334444"},
		{"spaces and dots", "+55 11 99999.9999", "+5511999999999"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "   ", "abc", "123", "+55abc999999999"} {
			_, err := Normalize(in)
			assert.ErrorIs(t, err, ErrInvalid, "input %q", in)
		}
	})
}

func TestFromJID(t *testing.T) {
	t.Run("whatsapp jid", func(t *testing.T) {
		got, err := FromJID("5511999999999@s.whatsapp.net")
		require.NoError(t, err)
		assert.Equal(t, "+5511999999999", got)
	})

	t.Run("group jid rejected", func(t *testing.T) {
		_, err := FromJID("123456789-987654@g.us")
		assert.ErrorIs(t, err, ErrInvalid)
	})
}
