package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenIBAN(t *testing.T) {
	assert.Equal(t, "NL66OPEN0000000000", OpenIBAN("0000000000"))
	assert.Equal(t, "NL70OPEN0104642752", OpenIBAN("0104642752"))
	assert.Equal(t, "NL80OPEN0123456789", OpenIBAN("0123456789"))
}

func TestIsValidIBAN(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"NL66OPEN0000000000", true},
		{"NL48OPEN0999999999", true},
		{"NL83OPEN0104642752", false},
		{"NL66OPEN000000000", false},
		{"NL66OPEN00000000a0", false},
		{"bla", false},
		{"", false},
		{"cash", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidIBAN(tc.in))
		})
	}
}

func TestIsValidSource(t *testing.T) {
	assert.True(t, IsValidSource(CashSource))
	assert.True(t, IsValidSource("NL66OPEN0000000000"))
	assert.False(t, IsValidSource("bla"))
	assert.False(t, IsValidSource(" NL66OPEN0000000000"))
	assert.False(t, IsValidSource("NL83OPEN0104642752"))
	assert.False(t, IsValidSource(""))
}

func TestRandomGenerator(t *testing.T) {
	var g RandomGenerator
	for i := 0; i < 50; i++ {
		iban := g.NewIBAN()
		assert.Len(t, iban, 18)
		assert.True(t, IsValidIBAN(iban), iban)
		assert.Equal(t, byte('0'), iban[8], "account number starts with 0")

		token := g.NewToken()
		assert.Len(t, token, 20)
		assert.True(t, isDigits(token))
	}
}
