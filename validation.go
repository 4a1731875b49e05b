package folio

import (
	"strings"

	"github.com/shopspring/decimal"
)

// amountSeparators are the grouping characters users type in amounts.
var amountSeparators = strings.NewReplacer(",", "", "_", "", " ", "")

// ParseAmount parses an amount as typed by a user, like "1,000,000".
// It does not check the sign.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := amountSeparators.Replace(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, validationErrorf("missing amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, validationErrorf("invalid amount %q", raw)
	}
	return d, nil
}

// ValidateName checks that a portfolio name is not blank.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validationErrorf("enter a portfolio name")
	}
	return nil
}

// ValidateAllocations checks that there is at least one allocation to save.
func ValidateAllocations(allocations []Allocation) error {
	if len(allocations) == 0 {
		return validationErrorf("add at least one ticker")
	}
	return nil
}
