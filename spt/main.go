// Command spt plans how a stock investment budget is shared between tickers,
// and keeps named portfolios of those plans.
//
// Run `spt topic` for the documentation.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/folio/cmd"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Complete(name)

	commander := cmd.NewCommander(flag.CommandLine, name)
	flag.Parse()

	// unknown commands are looked up as spt-<command> extensions.
	if sub := flag.Arg(0); sub != "" && !cmd.IsCommand(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
