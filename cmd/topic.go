package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/folio/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `spt topic [-l] [<topic>...]

  Shows the documentation of the given topics, "*" for all of them. Without
  topic, shows the introduction and the list of topics.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "Only list the topics")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		topics, err := docs.Topics()
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		var b strings.Builder
		b.WriteString("| Topic | Description |\n|:---|:---|\n")
		for _, t := range topics {
			fmt.Fprintf(&b, "| %s | %s |\n", t.Name, t.Description)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	names := f.Args()
	if len(names) == 0 {
		names = []string{docs.Index}
	}
	doc, err := docs.Pages(names...)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
