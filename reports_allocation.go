package folio

import "github.com/shopspring/decimal"

// Unallocated labels the chart slice of the budget not yet allocated.
const Unallocated = "unallocated"

// Budget summarizes the editing state budget.
type Budget struct {
	Total     Money
	Invested  Money
	Remaining Money // negative when over-allocated.
}

// Row is an allocation and its share of all allocated amounts.
type Row struct {
	ID     string
	Symbol string
	Value  Money
	Share  Percent
}

// Table is the allocation table view.
type Table struct {
	Rows     []Row
	Invested Money
}

// NewTable computes each allocation's share of the invested sum. When
// nothing is invested every share is zero.
func NewTable(total Money, allocations []Allocation) Table {
	invested := Invested(allocations)
	t := Table{Rows: make([]Row, 0, len(allocations)), Invested: M(invested, total.Currency())}
	for _, a := range allocations {
		t.Rows = append(t.Rows, Row{
			ID:     a.ID,
			Symbol: a.Symbol,
			Value:  a.Value(total.Currency()),
			Share:  share(a.Amount, invested),
		})
	}
	return t
}

// Slice is one slice of the allocation chart.
type Slice struct {
	Label string
	Value Money
	Share Percent
}

// Chart is the pie chart view: one slice per allocation, then the
// Unallocated slice.
type Chart struct {
	Total  Money
	Slices []Slice
}

// NewChart computes the chart slices. The Unallocated slice is the budget
// minus the invested sum: it is zero when fully allocated and negative when
// over-allocated, which is kept as is. Shares are relative to the sum of all
// slices.
func NewChart(total Money, allocations []Allocation) Chart {
	cur := total.Currency()
	remaining := total.Amount().Sub(Invested(allocations))

	sum := remaining
	for _, a := range allocations {
		sum = sum.Add(a.Amount)
	}

	c := Chart{Total: total, Slices: make([]Slice, 0, len(allocations)+1)}
	for _, a := range allocations {
		c.Slices = append(c.Slices, Slice{Label: a.Symbol, Value: a.Value(cur), Share: share(a.Amount, sum)})
	}
	c.Slices = append(c.Slices, Slice{Label: Unallocated, Value: M(remaining, cur), Share: share(remaining, sum)})
	return c
}

// share returns part/whole in percent, or zero when whole is not positive.
func share(part, whole decimal.Decimal) Percent {
	if !whole.IsPositive() {
		return 0
	}
	return Percent(part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64())
}
