package folio

import (
	"testing"
)

func allocations(amounts ...int64) []Allocation {
	out := make([]Allocation, len(amounts))
	for i, v := range amounts {
		out[i] = Allocation{ID: string(rune('a' + i)), Symbol: string(rune('A' + i)), Amount: dec(v)}
	}
	return out
}

func TestNewTable(t *testing.T) {
	table := NewTable(won(2000), allocations(100, 300, 600))

	want := []string{"10.00%", "30.00%", "60.00%"}
	if len(table.Rows) != len(want) {
		t.Fatalf("len(Rows) = %d, want %d", len(table.Rows), len(want))
	}
	for i, row := range table.Rows {
		if got := row.Share.String(); got != want[i] {
			t.Errorf("Rows[%d].Share = %s, want %s", i, got, want[i])
		}
	}
	if !table.Invested.Equal(won(1000)) {
		t.Errorf("Invested = %v, want %v", table.Invested, won(1000))
	}
	if !table.Rows[1].Value.Equal(won(300)) || table.Rows[1].Symbol != "B" || table.Rows[1].ID != "b" {
		t.Errorf("Rows[1] = %+v", table.Rows[1])
	}
}

func TestNewTable_NothingInvested(t *testing.T) {
	table := NewTable(won(1000), allocations(0, 0))
	for i, row := range table.Rows {
		if row.Share != 0 {
			t.Errorf("Rows[%d].Share = %v, want 0", i, row.Share)
		}
	}
	if got := NewTable(won(1000), nil); len(got.Rows) != 0 {
		t.Errorf("NewTable(nil) = %+v, want no rows", got)
	}
}

func TestNewChart(t *testing.T) {
	chart := NewChart(won(1000), allocations(100, 400))

	if len(chart.Slices) != 3 {
		t.Fatalf("len(Slices) = %d, want 3", len(chart.Slices))
	}
	last := chart.Slices[2]
	if last.Label != Unallocated || !last.Value.Equal(won(500)) || !last.Share.Equal(50) {
		t.Errorf("unallocated slice = %+v, want 500 at 50%%", last)
	}
	if !chart.Slices[0].Share.Equal(10) || !chart.Slices[1].Share.Equal(40) {
		t.Errorf("slices = %+v", chart.Slices)
	}
}

func TestNewChart_FullyAllocated(t *testing.T) {
	chart := NewChart(won(1000), allocations(1000))
	if last := chart.Slices[1]; !last.Value.IsZero() || last.Share != 0 {
		t.Errorf("unallocated slice = %+v, want zero", last)
	}
}

func TestNewChart_OverAllocated(t *testing.T) {
	// the unallocated slice is not clamped.
	chart := NewChart(won(1000), allocations(1500))
	last := chart.Slices[1]
	if !last.Value.Equal(won(-500)) {
		t.Errorf("unallocated value = %v, want %v", last.Value, won(-500))
	}
	if !chart.Slices[0].Share.Equal(150) || !last.Share.Equal(-50) {
		t.Errorf("shares = %v and %v, want 150%% and -50%%", chart.Slices[0].Share, last.Share)
	}
}

func TestNewChart_Empty(t *testing.T) {
	chart := NewChart(Zero(), nil)
	if len(chart.Slices) != 1 || chart.Slices[0].Share != 0 {
		t.Errorf("NewChart(0, nil) = %+v, want a single empty slice", chart)
	}
}
