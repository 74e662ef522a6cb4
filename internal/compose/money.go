// Package compose turns a validated document request into an ordered block sequence.
package compose

import (
	"encoding/json"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

var (
	errMissing     = errors.New("is required")
	errNotNumeric  = errors.New("must be a number")
	errNegative    = errors.New("must not be negative")
	errOutOfRange  = errors.New("is out of range")
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	hundred        = big.NewRat(100, 1)
	maxCents       = new(big.Rat).SetInt64(1 << 53)
)

// parseAmount reads a JSON number or numeric string as an exact rational.
// Absent and null values report errMissing.
func parseAmount(raw json.RawMessage) (*big.Rat, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil, errMissing
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errNotNumeric
		}
		text = strings.TrimSpace(s)
		if text == "" {
			return nil, errMissing
		}
	}
	if !decimalPattern.MatchString(text) {
		return nil, errNotNumeric
	}

	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, errNotNumeric
	}
	if r.Sign() < 0 {
		return nil, errNegative
	}
	return r, nil
}

// toCents converts an amount in major units to minor units, rounding half up.
func toCents(amount *big.Rat) (int64, error) {
	return roundHalfUp(new(big.Rat).Mul(amount, hundred))
}

// roundHalfUp rounds a non-negative rational to the nearest integer, ties away from zero.
func roundHalfUp(r *big.Rat) (int64, error) {
	if r.Cmp(maxCents) > 0 {
		return 0, errOutOfRange
	}
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if new(big.Int).Lsh(m, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Int64(), nil
}

// maxFractionDigits bounds how many decimal places formatDecimal prints.
const maxFractionDigits = 30

// formatDecimal prints an exact decimal without trailing zeros, e.g. 3/2 -> "1.5".
func formatDecimal(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	s := strings.TrimRight(r.FloatString(fractionDigits(r)), "0")
	return strings.TrimSuffix(s, ".")
}

// fractionDigits is the number of decimal places r needs to print exactly,
// capped at maxFractionDigits.
func fractionDigits(r *big.Rat) int {
	ten := big.NewInt(10)
	pow := big.NewInt(1)
	rem := new(big.Int)
	for n := 1; n < maxFractionDigits; n++ {
		pow.Mul(pow, ten)
		if rem.Mod(pow, r.Denom()).Sign() == 0 {
			return n
		}
	}
	return maxFractionDigits
}
