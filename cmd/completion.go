package cmd

import (
	"flag"

	"github.com/etnz/folio/docs"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles shell completion for spt. When the shell asks for
// completions it prints them and exits, otherwise it returns immediately.
//
// Run `COMP_INSTALL=1 spt` to install the completion in the shell.
func Complete(name string) {
	completionCommand().Complete(name)
}

func completionCommand() *complete.Command {
	none := map[string]complete.Predictor{}
	json := map[string]complete.Predictor{"json": predict.Nothing}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"store":    predict.Dirs("*"),
			"backend":  predict.Set(store.Backends),
			"config":   predict.Files("*.yaml"),
			"currency": predict.Set{"KRW", "USD"},
			"v":        predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"budget": {Flags: map[string]complete.Predictor{"c": predict.Set{"KRW", "USD"}}},
			"add":    {Flags: none},
			"edit":   {Flags: map[string]complete.Predictor{"s": predict.Something, "a": predict.Something}},
			"rm":     {Flags: none},
			"reset":  {Flags: none},
			"show":   {Flags: json},
			"save":   {Flags: map[string]complete.Predictor{"new": predict.Nothing}},
			"list":   {Flags: json},
			"select": {Flags: map[string]complete.Predictor{"q": predict.Something}},
			"cancel": {Flags: map[string]complete.Predictor{"reset": predict.Nothing}},
			"delete": {Flags: none},
			"export": {Flags: map[string]complete.Predictor{"o": predict.Files("*.*")}},
			"import": {Flags: map[string]complete.Predictor{"edit": predict.Something}, Args: predict.Files("*.*")},
			"topic":  {Flags: map[string]complete.Predictor{"l": predict.Nothing}, Args: predict.Set(append(docs.Names(), "*"))},
			"help":   {Args: predict.Set(commandNames())},
		},
	}
}

// commandNames lists the names of the registered commands.
func commandNames() []string {
	c := NewCommander(flag.NewFlagSet("spt", flag.ContinueOnError), "spt")
	var names []string
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		names = append(names, cmd.Name())
	})
	return names
}
