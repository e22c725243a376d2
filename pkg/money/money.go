// Package money provides a fixed-point monetary amount stored in minor units.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// minorUnits is the number of minor units in one major unit (cents per real).
const minorUnits = 100

// maxIntegerDigits bounds the integer part so the value fits in int64 minor units.
const maxIntegerDigits = 16

var (
	// ErrInvalidAmount indicates that the text is not a decimal number.
	ErrInvalidAmount = errors.New("invalid monetary amount")
	// ErrTooManyDecimals indicates more than two fractional digits.
	ErrTooManyDecimals = errors.New("monetary amount supports at most 2 decimal places")
)

// Amount is a monetary value in minor units (1.50 is stored as 150).
// JSON encodes it as a decimal number with two fractional digits.
type Amount int64

// FromCents builds an Amount from a count of minor units.
func FromCents(cents int64) Amount {
	return Amount(cents)
}

// Cents returns the amount in minor units.
func (a Amount) Cents() int64 {
	return int64(a)
}

// Sum adds amounts exactly.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

// String formats the amount as a decimal with two fractional digits.
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/minorUnits, v%minorUnits)
}

// Parse reads a plain decimal ("15", "15.5", "-0.05") without going through float64.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" || (hasDot && fracPart == "") {
		return 0, ErrInvalidAmount
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, ErrInvalidAmount
	}
	if len(intPart) > maxIntegerDigits {
		return 0, ErrInvalidAmount
	}
	if len(fracPart) > 2 {
		return 0, ErrTooManyDecimals
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	var cents int64
	if fracPart != "" {
		for len(fracPart) < 2 {
			fracPart += "0"
		}
		cents, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
	}

	value := units*minorUnits + cents
	if negative {
		value = -value
	}
	return Amount(value), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = unquoted
	}
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
