package converter

import (
	"fmt"
	"strings"
)

// DelimiterMismatchError reports a data row that did not split into
// multiple cells while the header expects several columns.
type DelimiterMismatchError struct {
	// Row is the 1-based data row number.
	Row int

	// Delimiter is the configured cell delimiter.
	Delimiter string
}

// Error implements the error interface.
func (e *DelimiterMismatchError) Error() string {
	return fmt.Sprintf("row %d does not contain the delimiter %s", e.Row, describeDelimiter(e.Delimiter))
}

// RowErrors collects every row that failed during a run. A run with any
// row errors writes nothing and imports nothing.
type RowErrors struct {
	Errs []error
}

// Error implements the error interface.
func (e *RowErrors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d row(s) could not be converted; nothing was imported", len(e.Errs))
	for _, err := range e.Errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual row errors to errors.Is and errors.As.
func (e *RowErrors) Unwrap() []error {
	return e.Errs
}

func describeDelimiter(d string) string {
	switch d {
	case "\t":
		return "(tab)"
	case ",":
		return "(comma)"
	case "|":
		return "(pipe)"
	default:
		return fmt.Sprintf("%q", d)
	}
}
