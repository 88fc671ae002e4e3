package utils

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// E18Decimals is the fixed-point precision the venue uses for prices,
// quantities and amounts.
const E18Decimals = 18

var errNegative = errors.New("value must not be negative")

// ToE18 scales d by 10^18 and returns it as an integer.
// Returns an error if d carries more than 18 decimals, which would be
// silently truncated otherwise.
func ToE18(d decimal.Decimal) (*big.Int, error) {
	if d.IsNegative() {
		return nil, fmt.Errorf("%s: %w", d.String(), errNegative)
	}

	scaled := d.Shift(E18Decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf(
			"%s has more than %d decimals",
			d.String(),
			E18Decimals,
		)
	}

	return scaled.BigInt(), nil
}

// FromE18 converts an e18 integer back to a decimal.
func FromE18(b *big.Int) decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(b, -E18Decimals)
}

// ParseE18 parses a base-10 e18 integer string, e.g. "1500000000000000000".
func ParseE18(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid e18 integer %q", s)
	}
	return FromE18(b), nil
}

// FitsUint reports whether b is a non-negative integer representable in
// the given number of bits.
func FitsUint(b *big.Int, bits int) bool {
	return b != nil && b.Sign() >= 0 && b.BitLen() <= bits
}
