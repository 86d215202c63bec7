package account

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// CashSource is the transfer source used for money entering the ledger from outside.
	CashSource = "cash"

	ibanLength   = 18
	ibanDigits   = 10
	tokenDigits  = 20
	ibanCountry  = "NL"
	ibanBankCode = "OPEN"
	// bank code and country code as IBAN letter values, with "00" as check placeholder
	ibanCheckPrefix = "24251423"
	ibanCheckSuffix = "232100"
)

// Generator produces fresh account identifiers and tokens.
type Generator interface {
	NewIBAN() string
	NewToken() string
}

// RandomGenerator draws IBANs and tokens from crypto/rand.
type RandomGenerator struct{}

// NewIBAN returns a random open IBAN. The account number always starts with 0.
func (RandomGenerator) NewIBAN() string {
	return OpenIBAN("0" + randomDigits(ibanDigits-1))
}

// NewToken returns a 20 digit random token.
func (RandomGenerator) NewToken() string {
	return randomDigits(tokenDigits)
}

// OpenIBAN builds the IBAN for a 10 digit account number, computing its mod-97 check digits.
func OpenIBAN(digits string) string {
	return fmt.Sprintf("%s%s%s%s", ibanCountry, checkDigits(digits), ibanBankCode, digits)
}

// IsValidIBAN reports whether s is a well formed open IBAN with correct check digits.
func IsValidIBAN(s string) bool {
	if len(s) != ibanLength {
		return false
	}
	digits := s[ibanLength-ibanDigits:]
	if !isDigits(digits) {
		return false
	}
	return s == OpenIBAN(digits)
}

// IsValidSource reports whether s may be used as the source of a transfer.
func IsValidSource(s string) bool {
	return s == CashSource || IsValidIBAN(s)
}

func checkDigits(digits string) string {
	remainder := 0
	for _, r := range ibanCheckPrefix + digits + ibanCheckSuffix {
		remainder = (remainder*10 + int(r-'0')) % 97
	}
	return fmt.Sprintf("%02d", 98-remainder)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func randomDigits(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			panic(fmt.Sprintf("account: crypto/rand failed: %v", err))
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String()
}
