package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPrice is returned when a value cannot be read as a price.
var ErrInvalidPrice = errors.New("invalid price")

// Price is a non-negative decimal amount with two fractional digits, kept as
// an integer number of cents. It is serialized as a JSON string ("30.00") and
// accepts either a JSON number or string on input.
type Price int64

// ParsePrice reads a decimal string such as "12", "12.5" or "12.50".
// More than two fractional digits are rejected.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPrice
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if !isDigits(whole) || !isDigits(frac) || whole+frac == "" {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidPrice, s)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: more than 2 decimal places", ErrInvalidPrice)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPrice, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPrice, err)
	}

	cents := w*100 + f
	if negative {
		cents = -cents
	}

	return Price(cents), nil
}

// Cents returns the amount in cents.
func (p Price) Cents() int64 {
	return int64(p)
}

// String formats the price with exactly two fractional digits.
func (p Price) String() string {
	cents := int64(p)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Price) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		parsed, err := ParsePrice(value)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case float64:
		return p.fromFloat(value)
	default:
		return ErrInvalidPrice
	}
}

// Value implements [driver.Valuer]; the price is stored as a decimal string.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements [sql.Scanner] for NUMERIC (Postgres) and REAL/TEXT (SQLite)
// columns.
func (p *Price) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*p = 0
		return nil
	case int64:
		*p = Price(value * 100)
		return nil
	case float64:
		return p.fromFloat(value)
	case []byte:
		parsed, err := ParsePrice(string(value))
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case string:
		parsed, err := ParsePrice(value)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidPrice, src)
	}
}

func (p *Price) fromFloat(f float64) error {
	cents := math.Round(f * 100)
	if math.Abs(f*100-cents) > 1e-6 {
		return fmt.Errorf("%w: more than 2 decimal places", ErrInvalidPrice)
	}
	*p = Price(int64(cents))
	return nil
}

// isDigits reports whether s holds only ASCII digits. An empty s qualifies.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
