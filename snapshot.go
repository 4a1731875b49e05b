package folio

import (
	"encoding/json"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// Snapshot is a named, saved copy of a budget and its allocations.
type Snapshot struct {
	ID              string
	Name            string
	TotalInvestment Money
	Tickers         []Allocation
	CreatedAt       date.Stamp
	UpdatedAt       date.Stamp // zero until the first update.
}

// NewSnapshot returns a snapshot with a fresh id created now. It does not
// validate its arguments, see ValidateName and ValidateAllocations.
func NewSnapshot(name string, total Money, tickers []Allocation) Snapshot {
	return Snapshot{
		ID:              newID(),
		Name:            name,
		TotalInvestment: total,
		Tickers:         cloneAllocations(tickers),
		CreatedAt:       now(),
	}
}

// Invested returns the sum of the snapshot's allocated amounts.
func (s Snapshot) Invested() decimal.Decimal { return Invested(s.Tickers) }

// Edit returns the editing state carried by the snapshot.
func (s Snapshot) Edit() Edit {
	return Edit{TotalInvestment: s.TotalInvestment, Tickers: cloneAllocations(s.Tickers)}
}

// MarshalJSON writes the snapshot fields in a stable order. updatedAt is
// omitted until the snapshot has been updated.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", s.ID)
	w.Append("name", s.Name)
	w.Append("totalInvestment", s.TotalInvestment)
	w.Append("tickers", cloneAllocations(s.Tickers))
	w.Append("createdAt", s.CreatedAt)
	w.Optional("updatedAt", s.UpdatedAt)
	return w.MarshalJSON()
}

// UnmarshalJSON reads and validates a snapshot. Any missing mandatory field
// is an ErrParse.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID              string       `json:"id"`
		Name            string       `json:"name"`
		TotalInvestment *Money       `json:"totalInvestment"`
		Tickers         []Allocation `json:"tickers"`
		CreatedAt       date.Stamp   `json:"createdAt"`
		UpdatedAt       date.Stamp   `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return parseErrorf("invalid portfolio: %v", err)
	}
	switch {
	case temp.ID == "":
		return parseErrorf("portfolio %q without id", temp.Name)
	case strings.TrimSpace(temp.Name) == "":
		return parseErrorf("portfolio %q without name", temp.ID)
	case temp.TotalInvestment == nil:
		return parseErrorf("portfolio %q without total investment", temp.Name)
	case temp.TotalInvestment.IsNegative():
		return parseErrorf("portfolio %q has a negative total investment", temp.Name)
	}
	for _, a := range temp.Tickers {
		if err := a.validate(); err != nil {
			return err
		}
	}
	*s = Snapshot{
		ID:              temp.ID,
		Name:            temp.Name,
		TotalInvestment: *temp.TotalInvestment,
		Tickers:         cloneAllocations(temp.Tickers),
		CreatedAt:       temp.CreatedAt,
		UpdatedAt:       temp.UpdatedAt,
	}
	return nil
}
