package folio

import (
	"encoding/json"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Currency of a budget. Only a fixed set is supported.
type Currency string

const (
	KRW Currency = "KRW"
	USD Currency = "USD"
)

// DefaultCurrency is the currency of a fresh or reset budget.
const DefaultCurrency = KRW

// Currencies lists the supported currencies.
var Currencies = []Currency{KRW, USD}

// ParseCurrency parses a currency code, case insensitive.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case KRW, USD:
		return c, nil
	}
	return "", validationErrorf("unsupported currency %q", s)
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   Currency
}

// M returns the Money value in currency cur.
func M[T float64 | int | int64 | decimal.Decimal](value T, cur Currency) Money {
	return Money{value: newDecimal(value), cur: cur}
}

// Zero returns the budget of a reset editing state.
func Zero() Money { return M(0, DefaultCurrency) }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, string(m.cur)).Currency()
}

// String returns the string representation of the money value, e.g. "₩1,000" or "$12.50".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Amount() decimal.Decimal            { return m.value }
func (m Money) Currency() Currency                 { return m.cur }
func (m Money) Equal(n Money) bool                 { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                       { return m.value.IsZero() }
func (m Money) IsPositive() bool                   { return m.value.IsPositive() }
func (m Money) IsNegative() bool                   { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool              { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool           { return m.value.GreaterThan(n.value) }
func (m Money) WithCurrency(cur Currency) Money    { return Money{value: m.value, cur: cur} }
func (m Money) WithAmount(v decimal.Decimal) Money { return Money{value: v, cur: m.cur} }

// binary operators, the result keeps m's currency.
func (m Money) Add(v decimal.Decimal) Money { return Money{value: m.value.Add(v), cur: m.cur} }
func (m Money) Sub(v decimal.Decimal) Money { return Money{value: m.value.Sub(v), cur: m.cur} }

// MarshalJSON writes {"amount":1000,"currency":"KRW"}.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.value)
	w.Optional("currency", string(m.cur))
	return w.MarshalJSON()
}

// UnmarshalJSON reads {"amount":1000,"currency":"KRW"}. A missing currency
// is the DefaultCurrency, an unsupported one is an error.
func (m *Money) UnmarshalJSON(data []byte) error {
	var temp struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	cur := DefaultCurrency
	if temp.Currency != "" {
		c, err := ParseCurrency(temp.Currency)
		if err != nil {
			return err
		}
		cur = c
	}
	*m = Money{value: temp.Amount, cur: cur}
	return nil
}
