package folio

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps one of them, test
// with errors.Is.
var (
	// ErrValidation reports user input that cannot be accepted. State is unchanged.
	ErrValidation = errors.New("invalid input")
	// ErrParse reports an import file that cannot be read. State is unchanged.
	ErrParse = errors.New("cannot parse")
	// ErrStorage reports a failure of the underlying Store.
	ErrStorage = errors.New("storage failure")
	// ErrNotFound reports an unknown snapshot id.
	ErrNotFound = errors.New("not found")
)

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func parseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}
