// Package cmd implements the spt command line application to plan a stock
// allocation budget and keep named portfolios of it.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// NewCommander returns the commander of the spt application named name,
// parsing flags, with the builtin and spt commands registered.
func NewCommander(flags *flag.FlagSet, name string) *subcommands.Commander {
	c := subcommands.NewCommander(flags, name)
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	Register(c)
	return c
}

// IsCommand reports whether name is a command of c.
func IsCommand(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		found = found || cmd.Name() == name
	})
	return found
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&budgetCmd{}, "editing")
	c.Register(&addCmd{}, "editing")
	c.Register(&editCmd{}, "editing")
	c.Register(&rmCmd{}, "editing")
	c.Register(&resetCmd{}, "editing")
	c.Register(&showCmd{}, "editing")

	c.Register(&saveCmd{}, "portfolios")
	c.Register(&listCmd{}, "portfolios")
	c.Register(&selectCmd{}, "portfolios")
	c.Register(&cancelCmd{}, "portfolios")
	c.Register(&deleteCmd{}, "portfolios")

	c.Register(&exportCmd{}, "files")
	c.Register(&importCmd{}, "files")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeFlag    = flag.String("store", "", "Path to the store folder, or database file with -backend sqlite (default "+store.DefaultDir+")")
	backendFlag  = flag.String("backend", "", "Store backend: "+strings.Join(store.Backends, " or ")+" (default "+store.BackendDir+")")
	configFlag   = flag.String("config", "", "Path to the YAML configuration file (default "+DefaultConfigFile+")")
	currencyFlag = flag.String("currency", "", "Currency of new budgets: KRW or USD (default "+string(folio.DefaultCurrency)+")")
	Verbose      = flag.Bool("v", false, "Log debug information to stderr")
)

// outputs, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// session is the state of the application opened by a command.
type session struct {
	config  Config
	log     zerolog.Logger
	editor  *folio.Editor
	manager *folio.Manager
	close   func() error
}

// openSession resolves the configuration, opens the store, and restores the
// editing state and the saved portfolios from it.
func openSession() (*session, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(stderr, cfg.Verbose)
	st, closeStore, err := store.Open(cfg.Backend, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("cannot open store: %w", err)
	}
	log.Debug().Str("backend", cfg.Backend).Str("store", cfg.Store).Msg("store opened")

	bus := folio.NewBus()
	editor := folio.NewEditor(st, log)
	unsubscribe := editor.Listen(bus)
	manager := folio.NewManager(st, editor, bus, log)
	return &session{
		config:  cfg,
		log:     log,
		editor:  editor,
		manager: manager,
		close: func() error {
			unsubscribe()
			return closeStore()
		},
	}, nil
}

// editingName returns the name of the portfolio selected for edit, or "".
func (s *session) editingName() string {
	p, ok := s.manager.Snapshot(s.manager.Editing())
	if !ok {
		return ""
	}
	return p.Name
}

// withSession opens a session, runs f and closes the session. Errors are
// printed to stderr and mapped to an exit status.
func withSession(f func(s *session) error) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := s.close(); err != nil {
			s.log.Error().Err(err).Msg("closing store")
		}
	}()
	if err := f(s); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// usageError prints a usage error and returns the matching exit status.
func usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// findAllocation resolves ref, an allocation id or its 1-based row number in
// the allocation table.
func findAllocation(allocations []folio.Allocation, ref string) (folio.Allocation, error) {
	for _, a := range allocations {
		if a.ID == ref {
			return a, nil
		}
	}
	if i, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil && i >= 1 && i <= len(allocations) {
		return allocations[i-1], nil
	}
	return folio.Allocation{}, fmt.Errorf("%w: allocation %q", folio.ErrNotFound, ref)
}

// findSnapshot resolves ref, a portfolio id or its 1-based row number in the
// portfolio list.
func findSnapshot(m *folio.Manager, ref string) (folio.Snapshot, error) {
	if s, ok := m.Snapshot(ref); ok {
		return s, nil
	}
	snapshots := m.Snapshots()
	if i, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil && i >= 1 && i <= len(snapshots) {
		return snapshots[i-1], nil
	}
	return folio.Snapshot{}, fmt.Errorf("%w: portfolio %q", folio.ErrNotFound, ref)
}
