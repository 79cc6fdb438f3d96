// =============================================================================
// Contentful CSV Importer - Delimited Text Parser Module
// =============================================================================
//
// This module reads a delimited text file (CSV, TSV, pipe-separated, ...)
// and splits it into a header and data rows.
//
// FORMAT:
//   - One row per line; lines end in "\n" or "\r\n".
//   - Cells are separated by the configured delimiter, which may be more
//     than one character long. There is no quoting: a delimiter inside a
//     cell always splits it.
//   - The first line is the header unless "fields" overrides it, in which
//     case the first line is data.
//   - Blank lines are skipped but still consume a row number, so row
//     numbers in messages match what the user sees in their editor.
//
// ENCODING:
//   The file is decoded with the configured encoding before splitting.
//   A UTF-8 byte order mark is dropped.
//
// =============================================================================

package csvparser

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/ginjaninja78/cfimp/pkg/utils"
)

// lineBreak splits content into lines.
var lineBreak = regexp.MustCompile(`\r?\n`)

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table is a parsed input file.
type Table struct {
	// Header is the resolved field list: either the file's first line or
	// the "fields" override. Tokens are trimmed.
	Header []string

	// Rows are the data rows in file order. Blank lines are omitted.
	Rows []Row

	// Source is the path the table was read from.
	Source string
}

// Row is one data row.
type Row struct {
	// Index is the 1-based data row number. The header line is not counted.
	Index int

	// Line is the raw text of the row, used for content-based skip rules.
	Line string

	// Cells are the row split on the delimiter.
	Cells []string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// =============================================================================
// ERRORS
// =============================================================================

// InputAccessError reports an input file that is missing or unreadable.
type InputAccessError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *InputAccessError) Error() string {
	return fmt.Sprintf("input file %q could not be read: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InputAccessError) Unwrap() error {
	return e.Err
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Options controls how content is split.
type Options struct {
	// Delimiter separates cells.
	Delimiter string

	// FieldOverrides replaces the header line when non-empty.
	FieldOverrides []string
}

// ReadFile reads and decodes the input file.
//
// PARAMETERS:
//   - path: The input file path.
//   - enc: The encoding name, e.g. "utf8" or "latin1".
//
// RETURNS:
//   - The decoded content.
//   - An *InputAccessError if the file is missing or cannot be read or
//     decoded.
func ReadFile(path, enc string) (string, error) {
	if err := utils.CheckReadable(path); err != nil {
		return "", &InputAccessError{Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &InputAccessError{Path: path, Err: err}
	}

	content, err := utils.DecodeText(data, enc)
	if err != nil {
		return "", &InputAccessError{Path: path, Err: err}
	}
	return content, nil
}

// Load reads the file at path and parses it.
func Load(path, enc string, opts Options) (*Table, error) {
	content, err := ReadFile(path, enc)
	if err != nil {
		return nil, err
	}

	table := Parse(content, opts)
	table.Source = path
	return table, nil
}

// Parse splits decoded content into a Table.
//
// PARSING PROCESS:
//   1. Trim trailing whitespace from the content
//   2. Split into lines on "\r?\n"
//   3. Take the header from the first line, or from opts.FieldOverrides
//   4. Split every remaining non-blank line into cells
func Parse(content string, opts Options) *Table {
	content = strings.TrimRightFunc(content, unicode.IsSpace)
	table := &Table{}
	if content == "" {
		table.Header = trimAll(opts.FieldOverrides)
		return table
	}

	lines := lineBreak.Split(content, -1)

	if len(opts.FieldOverrides) > 0 {
		table.Header = trimAll(opts.FieldOverrides)
	} else {
		table.Header = trimAll(SplitRow(lines[0], opts.Delimiter))
		lines = lines[1:]
	}

	// A single field takes the whole line, delimiters included.
	delim := opts.Delimiter
	if len(table.Header) == 1 {
		delim = ""
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		table.Rows = append(table.Rows, Row{
			Index: i + 1,
			Line:  line,
			Cells: SplitRow(line, delim),
		})
	}

	return table
}

// SplitRow splits one line into cells. An empty delimiter yields the whole
// line as a single cell.
func SplitRow(line, delim string) []string {
	if delim == "" {
		return []string{line}
	}
	return strings.Split(line, delim)
}

// trimAll trims every token and drops a leading byte order mark that
// survived decoding.
func trimAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.TrimSpace(strings.TrimPrefix(t, "\uFEFF"))
	}
	return out
}
