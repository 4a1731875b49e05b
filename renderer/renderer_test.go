package renderer

import (
	"io/fs"
	"strings"
	"testing"
	"text/template"

	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

func won(v int64) folio.Money { return folio.M(v, folio.KRW) }

func allocations(pairs ...any) []folio.Allocation {
	var out []folio.Allocation
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, folio.Allocation{
			ID:     pairs[i].(string),
			Symbol: pairs[i].(string),
			Amount: decimal.NewFromInt(int64(pairs[i+1].(int))),
		})
	}
	return out
}

// TestTemplatesParse checks that every embedded template parses with the
// renderer functions.
func TestTemplatesParse(t *testing.T) {
	files, err := fs.ReadDir(templates, ".")
	if err != nil {
		t.Fatalf("failed to read embedded templates: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no embedded template")
	}
	for _, f := range files {
		content, err := fs.ReadFile(templates, f.Name())
		if err != nil {
			t.Fatalf("ReadFile(%q) error: %v", f.Name(), err)
		}
		if _, err := template.New(f.Name()).Funcs(funcs).Parse(string(content)); err != nil {
			t.Errorf("template %q does not parse: %v", f.Name(), err)
		}
	}
}

func TestRenderBudget(t *testing.T) {
	got := RenderBudget(folio.Budget{Total: won(1000), Invested: won(400), Remaining: won(600)})
	want := "## Budget\n\n| Total | Invested | Remaining |\n|---:|---:|---:|\n| ₩1,000 | ₩400 | ₩600 |\n"
	if got != want {
		t.Errorf("RenderBudget() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderBudget_OverAllocated(t *testing.T) {
	got := RenderBudget(folio.Budget{Total: won(1000), Invested: won(1500), Remaining: won(-500)})
	if !strings.HasSuffix(got, "\n\nOver-allocated by ₩500.\n") {
		t.Errorf("RenderBudget() does not report the over-allocation:\n%s", got)
	}
}

func TestRenderTable(t *testing.T) {
	got := RenderTable(folio.NewTable(won(1000), allocations("AAPL", 100, "MSFT", 300, "A|B", 600)))
	for _, want := range []string{
		"| 1 | AAPL | ₩100 | 10.00% | `AAPL` |\n",
		"| 2 | MSFT | ₩300 | 30.00% | `MSFT` |\n",
		`| 3 | A\|B | ₩600 | 60.00% |`,
		"| | **Invested** | **₩1,000** | | |\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderTable() does not contain %q:\n%s", want, got)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	got := RenderTable(folio.NewTable(won(1000), nil))
	if want := "## Allocations\n\nNo allocation yet, use `spt add SYMBOL AMOUNT`.\n"; got != want {
		t.Errorf("RenderTable() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderChart(t *testing.T) {
	got := RenderChart(folio.NewChart(won(1000), allocations("AAPL", 500)))
	half := strings.Repeat("█", 10) + strings.Repeat("░", 10)
	for _, want := range []string{
		"| AAPL | ₩500 | 50.00% | " + half + " |\n",
		"| " + folio.Unallocated + " | ₩500 | 50.00% | " + half + " |\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderChart() does not contain %q:\n%s", want, got)
		}
	}
}

func TestBar(t *testing.T) {
	testCases := []struct {
		p    folio.Percent
		full int
	}{
		{0, 0}, {50, 10}, {100, 20}, {150, 20}, {-50, 0}, {4.9, 1},
	}
	for _, tc := range testCases {
		got := bar(tc.p)
		if n := strings.Count(got, "█"); n != tc.full {
			t.Errorf("bar(%v) has %d full cells, want %d", tc.p, n, tc.full)
		}
		if n := len([]rune(got)); n != barWidth {
			t.Errorf("bar(%v) is %d cells wide, want %d", tc.p, n, barWidth)
		}
	}
}

func TestRenderEditing(t *testing.T) {
	got := RenderEditing(NewEditing("Growth", won(1000), allocations("AAPL", 400)))
	for _, want := range []string{
		"# Editing Growth\n\n## Budget\n",
		"| ₩1,000 | ₩400 | ₩600 |\n\n## Allocations\n",
		"\n\n## Chart\n",
		"| unallocated | ₩600 | 60.00% |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderEditing() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "error") {
		t.Errorf("RenderEditing() failed:\n%s", got)
	}

	if got := RenderEditing(NewEditing("", folio.Zero(), nil)); !strings.HasPrefix(got, "## Budget") {
		t.Errorf("RenderEditing() without name =\n%s", got)
	}
}

func TestRenderSnapshots(t *testing.T) {
	list := &SnapshotList{
		Editing: "b",
		Snapshots: []folio.Snapshot{
			{ID: "a", Name: "Growth", TotalInvestment: won(1000), Tickers: allocations("AAPL", 400, "MSFT", 600)},
			{ID: "b", Name: "Tech", TotalInvestment: folio.M(50, folio.USD), Tickers: allocations("TSLA", 25), UpdatedAt: 1},
		},
	}
	got := RenderSnapshots(list)
	for _, want := range []string{
		"# Portfolios\n\n| # | Name |",
		"| 1 | Growth | ₩1,000 | ₩1,000 | AAPL(400), MSFT(600) | ",
		"| 2 | Tech *(editing)* | $50.00 | $25.00 | TSLA(25) | ",
		"| `a` |\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderSnapshots() does not contain %q:\n%s", want, got)
		}
	}
	// Growth was never updated.
	if !strings.Contains(got, " |  | `a` |") {
		t.Errorf("RenderSnapshots() shows an update date for a snapshot never updated:\n%s", got)
	}
}

func TestRenderSnapshots_Empty(t *testing.T) {
	got := RenderSnapshots(&SnapshotList{})
	if want := "# Portfolios\n\nNo saved portfolio yet, use `spt save NAME`.\n"; got != want {
		t.Errorf("RenderSnapshots() =\n%q\nwant\n%q", got, want)
	}
}
