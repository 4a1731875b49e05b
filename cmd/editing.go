package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// --- Budget Command ---

type budgetCmd struct {
	currency string
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "show or set the total investment" }
func (*budgetCmd) Usage() string {
	return `spt budget [-c <currency>] [<amount>]

  Sets the total investment to share between tickers. Amounts accept
  thousands separators, like 1,000,000. The currency is -c, or the
  configured one. Existing allocations are kept even if they no longer fit.

  Without amount, shows the current budget.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Currency of the budget: KRW or USD (defaults to the configured currency)")
}

func (c *budgetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	raw := strings.Join(f.Args(), "")
	return withSession(func(s *session) error {
		if raw == "" && c.currency == "" {
			printMarkdown(renderer.RenderBudget(s.editor.Budget()))
			return nil
		}
		currency := c.currency
		if currency == "" {
			currency = s.config.Currency
		}
		cur, err := folio.ParseCurrency(currency)
		if err != nil {
			return err
		}
		amount := s.editor.TotalInvestment().Amount()
		if raw != "" {
			parsed, err := folio.ParseAmount(raw)
			if err != nil {
				return err
			}
			if parsed.IsNegative() {
				return fmt.Errorf("%w: the budget cannot be negative", folio.ErrValidation)
			}
			amount = parsed
		}
		s.editor.SetTotalInvestment(folio.M(amount, cur))
		printMarkdown(renderer.RenderBudget(s.editor.Budget()))
		return nil
	})
}

// --- Add Command ---

type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "allocate part of the budget to a ticker" }
func (*addCmd) Usage() string {
	return `spt add <symbol> <amount>

  Allocates amount to the ticker symbol. The symbol is upper-cased and
  stripped of anything but letters and digits. The allocation is refused if
  it exceeds the remaining budget.
`
}

func (*addCmd) SetFlags(f *flag.FlagSet) {}

func (*addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return usageError("add requires a symbol and an amount")
	}
	symbol, raw := f.Arg(0), strings.Join(f.Args()[1:], "")
	return withSession(func(s *session) error {
		a, err := s.editor.AddAllocation(symbol, raw)
		if err != nil {
			return err
		}
		cur := s.editor.TotalInvestment().Currency()
		fmt.Fprintf(stdout, "Allocated %s to %s, %s remaining.\n", a.Value(cur), a.Symbol, s.editor.Remaining())
		return nil
	})
}

// --- Edit Command ---

type editCmd struct {
	symbol string
	amount string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change the symbol or amount of an allocation" }
func (*editCmd) Usage() string {
	return `spt edit [-s <symbol>] [-a <amount>] <id|#row>

  Changes an allocation in place, designated by its id or its row number in
  the allocation table. The budget is not checked: an edit can over-allocate
  it. An amount that is not a number is recorded as zero, a negative amount
  or a symbol without letters or digits is refused.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "New ticker symbol")
	f.StringVar(&c.amount, "a", "", "New amount")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || (c.symbol == "" && c.amount == "") {
		return usageError("edit requires an allocation and at least one of -s or -a")
	}
	if c.symbol != "" && folio.NormalizeSymbol(c.symbol) == "" {
		return usageError("invalid symbol %q", c.symbol)
	}
	if d, err := folio.ParseAmount(c.amount); err == nil && d.IsNegative() {
		return usageError("the amount cannot be negative, got %s", c.amount)
	}
	return withSession(func(s *session) error {
		a, err := findAllocation(s.editor.Allocations(), f.Arg(0))
		if err != nil {
			return err
		}
		symbol, amount := a.Symbol, a.Amount.String()
		if c.symbol != "" {
			symbol = c.symbol
		}
		if c.amount != "" {
			amount = c.amount
		}
		s.editor.EditAllocationInput(a.ID, symbol, amount)
		printMarkdown(renderer.RenderTable(folio.NewTable(s.editor.TotalInvestment(), s.editor.Allocations())))
		return nil
	})
}

// --- Rm Command ---

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove allocations" }
func (*rmCmd) Usage() string {
	return `spt rm <id|#row>...

  Removes allocations, designated by their id or their row number in the
  allocation table.
`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usageError("rm requires at least one allocation")
	}
	return withSession(func(s *session) error {
		// resolve every reference before removing, row numbers shift on removal.
		allocations := s.editor.Allocations()
		var ids []string
		for _, ref := range f.Args() {
			a, err := findAllocation(allocations, ref)
			if err != nil {
				return err
			}
			ids = append(ids, a.ID)
		}
		for _, id := range ids {
			if s.editor.DeleteAllocation(id) {
				fmt.Fprintf(stdout, "Removed %s.\n", id)
			}
		}
		return nil
	})
}

// --- Reset Command ---

type resetCmd struct{}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "clear the budget and all allocations" }
func (*resetCmd) Usage() string {
	return `spt reset

  Clears the editing state: the budget goes back to zero and all allocations
  are removed. Saved portfolios are not changed.
`
}

func (*resetCmd) SetFlags(f *flag.FlagSet) {}

func (*resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		s.editor.Reset()
		fmt.Fprintln(stdout, "Editing state cleared.")
		return nil
	})
}

// --- Show Command ---

type showCmd struct {
	json bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the budget, allocation table and chart" }
func (*showCmd) Usage() string {
	return `spt show [-json]

  Shows the editing state: the budget, every allocation with its share of
  the invested amount, and the chart of the budget including the
  unallocated part.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the editing state as JSON")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		if c.json {
			state := struct {
				TotalInvestment folio.Money        `json:"totalInvestment"`
				Tickers         []folio.Allocation `json:"tickers"`
			}{s.editor.TotalInvestment(), s.editor.Allocations()}
			data, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%s\n", data)
			return nil
		}
		view := renderer.NewEditing(s.editingName(), s.editor.TotalInvestment(), s.editor.Allocations())
		printMarkdown(renderer.RenderEditing(view))
		return nil
	})
}
