package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ===== Money =====

// Money is an amount in minor units (cents, kuruş) of a currency.
// The store runs in a single currency; Add keeps the receiver's code
// and falls back to the operand's when the receiver has none.
type Money struct {
	Minor    int64
	Currency string
}

const minorDigits = 2

var (
	priceJunk   = regexp.MustCompile(`[^\d.-]`)
	priceNumber = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
)

var (
	errPriceRange = errors.New("price out of range")

	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// ParsePrice reads a display price such as "1299.99" or "₺ 1.299,99".
// Characters other than digits, '.' and '-' are dropped and the longest
// numeric prefix is used. Unparsable or out-of-range text yields zero.
func ParsePrice(text, currency string) Money {
	minor, err := parseMinor(text)
	if err != nil {
		return Money{Currency: currency}
	}
	return Money{Minor: minor, Currency: currency}
}

func parseMinor(text string) (int64, error) {
	cleaned := priceJunk.ReplaceAllString(text, "")
	num := strings.TrimSuffix(priceNumber.FindString(cleaned), ".")
	if num == "" || num == "-" {
		return 0, nil
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return 0, nil
	}
	d = d.Round(minorDigits).Shift(minorDigits)
	if d.GreaterThan(maxMinor) || d.LessThan(minMinor) {
		return 0, fmt.Errorf("%w: %s", errPriceRange, text)
	}
	return d.IntPart(), nil
}

func (m Money) Add(o Money) Money {
	cur := m.Currency
	if cur == "" {
		cur = o.Currency
	}
	return Money{Minor: m.Minor + o.Minor, Currency: cur}
}

func (m Money) Mul(n int64) Money {
	return Money{Minor: m.Minor * n, Currency: m.Currency}
}

func (m Money) IsZero() bool { return m.Minor == 0 }

// String renders the amount with two fixed decimals, without the currency.
func (m Money) String() string {
	return decimal.New(m.Minor, -minorDigits).StringFixed(minorDigits)
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Minor    int64  `json:"minor"`
	Currency string `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.String(), Minor: m.Minor, Currency: m.Currency})
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	m.Minor = v.Minor
	m.Currency = v.Currency
	return nil
}

// Total sums price times quantity over the lines. Order does not matter.
func Total(lines []CartLine, currency string) Money {
	sum := Money{Currency: currency}
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}
