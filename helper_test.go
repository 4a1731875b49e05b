package folio

import (
	"errors"
	"fmt"
	"testing"

	"github.com/etnz/folio/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// won is a helper for test to create KRW money from const.
func won(v int64) Money { return M(v, KRW) }

// dec is a helper for test to create decimals from const.
func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// cmpOpts compares values by amount rather than decimal representation.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
}

// fakeClock makes ids and timestamps predictable for the duration of the test:
// ids are "id-1", "id-2", ... and each call to now advances by one second.
func fakeClock(t *testing.T) {
	t.Helper()
	oldNow, oldID := now, newID
	t.Cleanup(func() { now, newID = oldNow, oldID })

	var ids int
	newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	stamp := date.Stamp(1_700_000_000_000)
	now = func() date.Stamp {
		stamp += 1000
		return stamp
	}
}

// failingStore is a Store whose every operation fails.
type failingStore struct{}

var errDisk = errors.New("disk on fire")

func (failingStore) Load(string) ([]byte, bool, error) { return nil, false, errDisk }
func (failingStore) Save(string, []byte) error         { return errDisk }
func (failingStore) Remove(string) error               { return errDisk }
