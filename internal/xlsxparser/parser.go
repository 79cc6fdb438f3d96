// =============================================================================
// Contentful CSV Importer - XLSX Input Parser
// =============================================================================
//
// This module reads a worksheet from an .xlsx workbook and returns it as the
// same Table the delimited text parser produces, so the rest of the pipeline
// does not care where the rows came from.
//
// SHEET LAYOUT:
//   | Column A     | Column B  | Column C  | Column D |
//   |--------------|-----------|-----------|----------|
//   | title[en-US] | price     | _tags     | _id      |   <- header row
//   | Widget       | 9.99      | red,blue  |          |   <- data row 1
//   | Gadget       | ref-abc12 |           | gadget-1 |   <- data row 2
//
// ROW HANDLING:
//   - Row 1 is the header unless "fields" overrides it.
//   - Short rows are padded with empty cells up to the header width.
//   - Empty rows are skipped but still consume a row number.
//   - Row.Line is the cells joined with the configured delimiter, so
//     "skiprows" matches against the same text a CSV export would carry.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/cfimp/internal/csvparser"
	"github.com/ginjaninja78/cfimp/pkg/utils"
)

// Extension is the file extension routed to this parser.
const Extension = ".xlsx"

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how a worksheet is read.
type Options struct {
	// Sheet is the worksheet name. Empty selects the first sheet.
	Sheet string

	// Delimiter joins cells into Row.Line.
	Delimiter string

	// FieldOverrides replaces the header row when non-empty.
	FieldOverrides []string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a worksheet into a Table.
//
// PARAMETERS:
//   - path: The path to the .xlsx workbook.
//   - opts: Sheet selection and header settings.
//
// RETURNS:
//   - The parsed Table.
//   - A *csvparser.InputAccessError if the workbook cannot be opened or the
//     sheet does not exist.
func Parse(path string, opts Options) (*csvparser.Table, error) {
	if err := utils.CheckReadable(path); err != nil {
		return nil, &csvparser.InputAccessError{Path: path, Err: err}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &csvparser.InputAccessError{Path: path, Err: err}
	}
	defer f.Close()

	sheet, err := resolveSheet(f, opts.Sheet)
	if err != nil {
		return nil, &csvparser.InputAccessError{Path: path, Err: err}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &csvparser.InputAccessError{Path: path, Err: fmt.Errorf("failed to read rows: %w", err)}
	}

	table := FromRows(rows, opts)
	table.Source = path
	return table, nil
}

// FromRows builds a Table from raw worksheet rows.
func FromRows(rows [][]string, opts Options) *csvparser.Table {
	table := &csvparser.Table{}

	if len(opts.FieldOverrides) > 0 {
		table.Header = trimAll(opts.FieldOverrides)
	} else if len(rows) > 0 {
		table.Header = trimAll(rows[0])
		rows = rows[1:]
	}

	for i, cells := range rows {
		if isRowEmpty(cells) {
			continue
		}

		padded := padRow(cells, len(table.Header))
		table.Rows = append(table.Rows, csvparser.Row{
			Index: i + 1,
			Line:  strings.Join(padded, opts.Delimiter),
			Cells: padded,
		})
	}

	return table
}

// resolveSheet returns the requested sheet name, or the first sheet.
func resolveSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		first := f.GetSheetName(0)
		if first == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return first, nil
	}

	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return "", fmt.Errorf("sheet %q: %w", name, err)
	}
	if idx < 0 {
		return "", fmt.Errorf("sheet %q not found (available: %s)", name, strings.Join(f.GetSheetList(), ", "))
	}
	return name, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// isRowEmpty checks if all cells in a row are blank.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// padRow extends row with empty cells up to width. GetRows drops trailing
// empty cells, which would otherwise shift nothing but shorten the row.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func trimAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.TrimSpace(t)
	}
	return out
}
