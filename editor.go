package folio

import (
	"slices"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Editor holds the editing state: the total investment and the allocations
// being worked on.
//
// Every mutation persists the full state into the Store immediately. Storage
// failures are logged and otherwise ignored, the in-memory state remains
// authoritative for the rest of the session.
type Editor struct {
	store   Store
	log     zerolog.Logger
	total   Money
	tickers []Allocation
}

// NewEditor restores the editing state from store. Missing or unreadable
// keys restore the default state.
func NewEditor(store Store, log zerolog.Logger) *Editor {
	e := &Editor{store: store, log: log, total: Zero(), tickers: []Allocation{}}

	var total Money
	if ok, err := loadJSON(store, KeyTotalInvestment, &total); err != nil {
		log.Error().Err(err).Msg("restoring total investment")
	} else if ok {
		e.total = total
	}

	tickers, _, skipped, err := loadRecords[Allocation](store, KeyTickers)
	if err != nil {
		log.Error().Err(err).Msg("restoring tickers")
	}
	for _, err := range skipped {
		log.Warn().Err(err).Msg("skipping unreadable ticker")
	}
	e.tickers = cloneAllocations(tickers)
	return e
}

// Listen makes the Editor adopt every Edit published on bus.
func (e *Editor) Listen(bus Bus) (cancel func()) { return bus.Subscribe(e.Adopt) }

// TotalInvestment returns the current budget.
func (e *Editor) TotalInvestment() Money { return e.total }

// Allocations returns a copy of the current allocations, in insertion order.
func (e *Editor) Allocations() []Allocation { return cloneAllocations(e.tickers) }

// Invested returns the sum of allocated amounts.
func (e *Editor) Invested() Money { return M(Invested(e.tickers), e.total.Currency()) }

// Remaining returns the part of the budget not yet allocated. It is negative
// when allocations were edited, or the budget lowered, after being added.
func (e *Editor) Remaining() Money { return e.total.Sub(Invested(e.tickers)) }

// Budget returns the budget summary of the editing state.
func (e *Editor) Budget() Budget {
	return Budget{Total: e.total, Invested: e.Invested(), Remaining: e.Remaining()}
}

// SetTotalInvestment replaces the budget. Existing allocations are not
// checked against the new budget.
func (e *Editor) SetTotalInvestment(m Money) {
	e.total = m
	e.persist()
}

// AddAllocation appends a new allocation for symbol. rawAmount is parsed with
// ParseAmount.
//
// It fails with ErrValidation if the symbol is empty once normalized, if the
// amount is not a positive number, or if the allocation would exceed the
// budget.
func (e *Editor) AddAllocation(symbol, rawAmount string) (Allocation, error) {
	sym := NormalizeSymbol(symbol)
	amount, err := ParseAmount(rawAmount)
	if sym == "" || err != nil || !amount.IsPositive() {
		return Allocation{}, validationErrorf("enter a valid symbol and a positive amount, got %q and %q", symbol, rawAmount)
	}
	if Invested(e.tickers).Add(amount).GreaterThan(e.total.Amount()) {
		return Allocation{}, validationErrorf("%s exceeds the remaining %s", M(amount, e.total.Currency()), e.Remaining())
	}
	a := NewAllocation(sym, amount)
	e.tickers = append(e.tickers, a)
	e.log.Debug().Str("id", a.ID).Str("symbol", a.Symbol).Stringer("amount", a.Amount).Msg("allocation added")
	e.persist()
	return a, nil
}

// EditAllocation replaces the symbol and amount of the allocation id in
// place. The budget is not checked. It returns false if id is unknown.
//
// A symbol that is empty once normalized keeps the previous symbol, and a
// negative amount is recorded as zero, so that the allocation can always be
// saved and restored.
func (e *Editor) EditAllocation(id, symbol string, amount decimal.Decimal) bool {
	i := slices.IndexFunc(e.tickers, func(a Allocation) bool { return a.ID == id })
	if i < 0 {
		return false
	}
	if sym := NormalizeSymbol(symbol); sym != "" {
		e.tickers[i].Symbol = sym
	} else {
		e.log.Warn().Str("id", id).Str("symbol", symbol).Msg("empty symbol ignored")
	}
	if amount.IsNegative() {
		e.log.Warn().Str("id", id).Stringer("amount", amount).Msg("negative amount recorded as zero")
		amount = decimal.Zero
	}
	e.tickers[i].Amount = amount
	e.persist()
	return true
}

// EditAllocationInput is EditAllocation with an amount typed by a user. An
// amount that cannot be parsed, or is negative, is recorded as zero.
func (e *Editor) EditAllocationInput(id, symbol, rawAmount string) bool {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		amount = decimal.Zero
	}
	return e.EditAllocation(id, symbol, amount)
}

// DeleteAllocation removes the allocation id. It returns false if id is unknown.
func (e *Editor) DeleteAllocation(id string) bool {
	n := len(e.tickers)
	e.tickers = slices.DeleteFunc(e.tickers, func(a Allocation) bool { return a.ID == id })
	if len(e.tickers) == n {
		return false
	}
	e.persist()
	return true
}

// Reset restores the default state and removes it from the Store.
func (e *Editor) Reset() {
	e.total = Zero()
	e.tickers = []Allocation{}
	for _, key := range []string{KeyTotalInvestment, KeyTickers} {
		if err := removeKey(e.store, key); err != nil {
			e.log.Error().Err(err).Msg("resetting editing state")
		}
	}
	e.log.Debug().Msg("editing state reset")
}

// Adopt replaces the whole editing state with edit.
func (e *Editor) Adopt(edit Edit) {
	e.total = edit.TotalInvestment
	e.tickers = cloneAllocations(edit.Tickers)
	e.log.Debug().Int("tickers", len(e.tickers)).Msg("editing state adopted")
	e.persist()
}

// persist writes the full editing state, best effort.
func (e *Editor) persist() {
	if err := saveJSON(e.store, KeyTotalInvestment, e.total); err != nil {
		e.log.Error().Err(err).Msg("persisting editing state")
	}
	if err := saveJSON(e.store, KeyTickers, e.tickers); err != nil {
		e.log.Error().Err(err).Msg("persisting editing state")
	}
}
