package ledger

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize produces the canonical (direction, signed amount) pair stored per
// transaction. It never fails; malformed input is coerced, not rejected:
//
//   - a direction other than "debit" or "credit" falls back to debit
//   - a zero magnitude yields a zero amount regardless of direction
//   - otherwise the absolute magnitude is signed by the direction, negative
//     for debits and positive for credits
//
// The debit fallback is a silent-default policy kept for client
// compatibility. A typo'd direction becomes a debit with the wrong sign;
// reject upstream if that ever needs to be an error.
func Normalize(direction string, magnitude decimal.Decimal) (Direction, decimal.Decimal) {
	dir := Direction(direction)
	if dir != DirectionDebit && dir != DirectionCredit {
		dir = DirectionDebit
	}
	if magnitude.IsZero() {
		return dir, decimal.Zero
	}
	if dir == DirectionDebit {
		return dir, magnitude.Abs().Neg()
	}
	return dir, magnitude.Abs()
}

// ParseMagnitude coerces a raw JSON value into a magnitude. Clients send the
// amount as a number, a quoted number, an empty string, garbage, null, or not
// at all; anything that does not parse as a finite decimal becomes zero.
// Errors are normalized away here so that Normalize stays total.
func ParseMagnitude(raw []byte) decimal.Decimal {
	s := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(raw), `"`)))
	if s == "" || s == "null" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
