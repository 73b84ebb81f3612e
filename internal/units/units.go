// Package units converts between decimal amount strings and integer base units.
package units

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
)

// Parse converts a non-negative decimal string into base units at the given precision.
// More fractional digits than decimals is an error rather than a silent truncation.
func Parse(amount string, decimals uint8) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", model.ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidAmount, amount)
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidAmount, amount)
	}
	if hasDot && frac == "" {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidAmount, amount)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidAmount, amount)
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", model.ErrInvalidAmount, amount, decimals)
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return new(big.Int), nil
	}

	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidAmount, amount)
	}
	return value, nil
}

// Format renders base units as a fixed-point string with exactly decimals fractional digits.
func Format(value *big.Int, decimals uint8) string {
	if value == nil {
		value = new(big.Int)
	}
	if decimals == 0 {
		return value.String()
	}
	sign := value.Sign()
	abs := new(big.Int).Abs(value)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	text := new(big.Rat).SetFrac(abs, denom).FloatString(int(decimals))
	if sign < 0 {
		return "-" + text
	}
	return text
}

// ToDecimal converts base units into an exact decimal value.
func ToDecimal(value *big.Int, decimals uint8) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -int32(decimals))
}

// FromDecimal floors a decimal value into base units.
func FromDecimal(d decimal.Decimal, decimals uint8) *big.Int {
	return d.Shift(int32(decimals)).Floor().BigInt()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
