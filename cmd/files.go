package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

// --- Export Command ---

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export saved portfolios to a JSON or spreadsheet file" }
func (*exportCmd) Usage() string {
	return `spt export [-o <file>]

  Writes every saved portfolio to file. The format follows the extension:
  .json for a pretty printed JSON array, .xlsx for a spreadsheet with one
  row per portfolio. "-" writes JSON to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", folio.JSONFilename, "Output file, .json or .xlsx")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		if c.output == "-" {
			return s.manager.ExportJSON(stdout)
		}
		// encode first, so that an unsupported name does not create a file.
		var buf bytes.Buffer
		if err := s.manager.Export(c.output, &buf); err != nil {
			return err
		}
		if err := os.WriteFile(c.output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("cannot write %q: %w", c.output, err)
		}
		fmt.Fprintf(stdout, "Exported %d portfolios to %s.\n", len(s.manager.Snapshots()), c.output)
		return nil
	})
}

// --- Import Command ---

type importCmd struct {
	edit string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace saved portfolios with a JSON or spreadsheet file" }
func (*importCmd) Usage() string {
	return `spt import [-edit <jsonpath>] <file>

  Replaces every saved portfolio with the content of file, a .json export
  or a .xlsx spreadsheet. A .xls file must be an xlsx workbook, legacy
  binary .xls workbooks are not supported. A malformed file is rejected as
  a whole and the saved portfolios are left untouched.

  With -edit, the first portfolio matched by the JSONPath query is then
  selected for edit, like '$[0]'. Nothing is imported if the query matches
  no portfolio.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.edit, "edit", "", "JSONPath query of the imported portfolio to select for edit")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("import requires a file")
	}
	name := f.Arg(0)
	return withSession(func(s *session) error {
		file, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("cannot open %q: %w", name, err)
		}
		defer file.Close()
		snapshots, err := folio.Decode(name, file)
		if err != nil {
			return fmt.Errorf("cannot import %q: %w", name, err)
		}
		// resolve the query first, a failed import leaves the portfolios untouched.
		var edit string
		if c.edit != "" {
			if edit, err = folio.QuerySnapshots(snapshots, c.edit); err != nil {
				return fmt.Errorf("nothing imported from %q: %w", name, err)
			}
		}
		s.manager.Replace(snapshots)
		fmt.Fprintf(stdout, "Imported %d portfolios from %s.\n", len(snapshots), name)

		if edit == "" {
			return nil
		}
		p, err := findSnapshot(s.manager, edit)
		if err != nil {
			return err
		}
		return selectForEdit(s, p)
	})
}
