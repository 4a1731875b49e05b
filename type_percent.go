package folio

import "fmt"

// Percent is a share expressed in percent, 12.5 is 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String renders the share with two decimals, e.g. "10.00%".
func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
