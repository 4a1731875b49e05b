package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// --- Save Command ---

type saveCmd struct {
	asNew bool
}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "save the editing state as a named portfolio" }
func (*saveCmd) Usage() string {
	return `spt save [-new] [<name>]

  Saves the budget and allocations as a portfolio, then clears the editing
  state. At least one allocation is required.

  When a portfolio was selected for edit, it is updated instead, keeping its
  name unless a new one is given. Use -new to save a copy instead.
`
}

func (c *saveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asNew, "new", false, "Save as a new portfolio even when one is selected for edit")
}

func (c *saveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	return withSession(func(s *session) error {
		total, allocations := s.editor.TotalInvestment(), s.editor.Allocations()
		updating := s.manager.Editing() != "" && !c.asNew

		var p folio.Snapshot
		var err error
		if c.asNew {
			p, err = s.manager.Save(name, total, allocations)
		} else {
			p, err = s.manager.Commit(name, total, allocations)
		}
		if err != nil {
			return err
		}
		verb := "Saved"
		if updating {
			verb = "Updated"
		}
		fmt.Fprintf(stdout, "%s portfolio %q (%s).\n", verb, p.Name, p.ID)
		return nil
	})
}

// --- List Command ---

type listCmd struct {
	json bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list saved portfolios" }
func (*listCmd) Usage() string {
	return `spt list [-json]

  Lists saved portfolios in creation order, with their budget, invested
  amount and allocations. The portfolio selected for edit is marked.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the portfolios in the JSON export format")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		if c.json {
			return s.manager.ExportJSON(stdout)
		}
		printMarkdown(renderer.RenderSnapshots(&renderer.SnapshotList{
			Snapshots: s.manager.Snapshots(),
			Editing:   s.manager.Editing(),
		}))
		return nil
	})
}

// --- Select Command ---

type selectCmd struct {
	query string
}

func (*selectCmd) Name() string     { return "select" }
func (*selectCmd) Synopsis() string { return "load a saved portfolio into the editing state" }
func (*selectCmd) Usage() string {
	return `spt select <id|#row>
spt select -q <jsonpath>

  Replaces the editing state with the budget and allocations of a saved
  portfolio, designated by its id, its row number in the list, or the first
  match of a JSONPath query on the JSON export, like '$[?(@.name=="Growth")]'.

  The next save updates that portfolio.
`
}

func (c *selectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "JSONPath query selecting the portfolio")
}

func (c *selectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.query == "") == (f.NArg() == 0) || f.NArg() > 1 {
		return usageError("select requires either a portfolio or -q")
	}
	return withSession(func(s *session) error {
		var p folio.Snapshot
		var err error
		if c.query != "" {
			p, err = s.manager.Query(c.query)
		} else {
			p, err = findSnapshot(s.manager, f.Arg(0))
		}
		if err != nil {
			return err
		}
		return selectForEdit(s, p)
	})
}

// selectForEdit loads p into the editing state and shows it.
func selectForEdit(s *session, p folio.Snapshot) error {
	if err := s.manager.SelectForEdit(p.ID); err != nil {
		return err
	}
	view := renderer.NewEditing(p.Name, s.editor.TotalInvestment(), s.editor.Allocations())
	printMarkdown(renderer.RenderEditing(view))
	return nil
}

// --- Cancel Command ---

type cancelCmd struct {
	reset bool
}

func (*cancelCmd) Name() string     { return "cancel" }
func (*cancelCmd) Synopsis() string { return "stop editing the selected portfolio" }
func (*cancelCmd) Usage() string {
	return `spt cancel [-reset]

  Forgets the portfolio selected for edit, so that the next save creates a
  new portfolio. The editing state is kept unless -reset is given.
`
}

func (c *cancelCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.reset, "reset", false, "Also clear the editing state")
}

func (c *cancelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		s.manager.CancelEdit()
		if c.reset {
			s.editor.Reset()
		}
		fmt.Fprintln(stdout, "No portfolio selected for edit.")
		return nil
	})
}

// --- Delete Command ---

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete saved portfolios" }
func (*deleteCmd) Usage() string {
	return `spt delete <id|#row>...

  Deletes saved portfolios, designated by their id or their row number in
  the list.
`
}

func (*deleteCmd) SetFlags(f *flag.FlagSet) {}

func (*deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usageError("delete requires at least one portfolio")
	}
	return withSession(func(s *session) error {
		var targets []folio.Snapshot
		for _, ref := range f.Args() {
			p, err := findSnapshot(s.manager, ref)
			if err != nil {
				return err
			}
			targets = append(targets, p)
		}
		for _, p := range targets {
			if s.manager.Delete(p.ID) {
				fmt.Fprintf(stdout, "Deleted portfolio %q.\n", p.Name)
			}
		}
		return nil
	})
}
