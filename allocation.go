package folio

import (
	"github.com/etnz/folio/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// test hooks
var (
	now   = date.Now
	newID = uuid.NewString
)

// Allocation is the part of the budget committed to one ticker.
type Allocation struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp date.Stamp      `json:"timestamp"`
}

// NewAllocation returns an allocation with a fresh id, stamped now. The
// symbol is normalized, see NormalizeSymbol.
func NewAllocation(symbol string, amount decimal.Decimal) Allocation {
	return Allocation{
		ID:        newID(),
		Symbol:    NormalizeSymbol(symbol),
		Amount:    amount,
		Timestamp: now(),
	}
}

// Value returns the allocated amount as Money.
func (a Allocation) Value(cur Currency) Money { return M(a.Amount, cur) }

// Invested returns the sum of all allocated amounts.
func Invested(allocations []Allocation) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range allocations {
		sum = sum.Add(a.Amount)
	}
	return sum
}

// cloneAllocations returns a copy of allocations, never nil so that it is
// encoded as [] rather than null.
func cloneAllocations(allocations []Allocation) []Allocation {
	return append(make([]Allocation, 0, len(allocations)), allocations...)
}

// validate checks an allocation read from a file. Amounts may be zero,
// the inline editor can produce them.
func (a Allocation) validate() error {
	switch {
	case a.ID == "":
		return parseErrorf("ticker without id")
	case a.Symbol == "":
		return parseErrorf("ticker %q without symbol", a.ID)
	case a.Amount.IsNegative():
		return parseErrorf("ticker %q has a negative amount %s", a.Symbol, a.Amount)
	}
	return nil
}
