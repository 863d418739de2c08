// Package money provides an integer-cents amount type and the parsing,
// formatting, and splitting helpers the ledger needs. Amounts are stored as
// cents to keep balance arithmetic and installment splits exact.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Amount is a monetary value in cents.
type Amount int64

// ErrInvalidAmount indicates a string that cannot be parsed as money.
var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a decimal string to an Amount with half-up rounding on the
// third decimal place. Both dot and comma decimal separators are accepted.
// A leading minus sign is allowed so that balance corrections can go
// negative.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" {
		return 0, ErrInvalidAmount
	}

	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}

	// First two fractional digits are cents; half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return Amount(cents), nil
}

// String renders the amount as a plain decimal, e.g. "-12.34".
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Float returns the amount as a float64 for display purposes only.
// Calculations must stay in cents.
func (a Amount) Float() float64 {
	return float64(a) / 100.0
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// Split divides the amount into n parts that sum exactly to the original.
// Every part gets the truncated share and the remainder cents land on the
// final part, so installment schedules reconcile against their debt total.
func (a Amount) Split(n int) []Amount {
	if n <= 0 {
		return nil
	}
	base := int64(a) / int64(n)
	remainder := int64(a) - base*int64(n)

	parts := make([]Amount, n)
	for i := range parts {
		parts[i] = Amount(base)
	}
	parts[n-1] += Amount(remainder)
	return parts
}
