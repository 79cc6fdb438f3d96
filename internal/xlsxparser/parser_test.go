package xlsxparser

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/cfimp/internal/csvparser"
)

// writeWorkbook saves a workbook with the given sheets and rows.
func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if name != "Sheet1" {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatal(err)
			}
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			r := row
			if err := f.SetSheetRow(name, cell, &r); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "import.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse_FirstSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Sheet1": {
			{"title", "price", "_tags"},
			{"Widget", "9.99", "red,blue"},
			{},
			{"Gadget"},
		},
	})

	table, err := Parse(path, Options{Delimiter: "\t"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if want := []string{"title", "price", "_tags"}; !reflect.DeepEqual(table.Header, want) {
		t.Errorf("Header = %q, want %q", table.Header, want)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if got := table.Rows[0].Line; got != "Widget\t9.99\tred,blue" {
		t.Errorf("Line = %q", got)
	}

	gadget := table.Rows[1]
	if gadget.Index != 3 {
		t.Errorf("Index = %d, want 3", gadget.Index)
	}
	if want := []string{"Gadget", "", ""}; !reflect.DeepEqual(gadget.Cells, want) {
		t.Errorf("Cells = %q, want padded %q", gadget.Cells, want)
	}
}

func TestParse_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Sheet1":   {{"ignored"}},
		"Products": {{"title"}, {"Widget"}},
	})

	table, err := Parse(path, Options{Sheet: "Products", Delimiter: ","})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Header[0] != "title" || table.Rows[0].Cells[0] != "Widget" {
		t.Errorf("table = %+v", table)
	}

	_, err = Parse(path, Options{Sheet: "Missing"})
	var iae *csvparser.InputAccessError
	if !errors.As(err, &iae) {
		t.Errorf("Parse(missing sheet) error = %v, want InputAccessError", err)
	}
}

func TestFromRows_FieldOverrides(t *testing.T) {
	table := FromRows([][]string{{"Widget", "1"}}, Options{
		Delimiter:      ",",
		FieldOverrides: []string{"title", "qty"},
	})
	if table.Len() != 1 || table.Rows[0].Line != "Widget,1" {
		t.Errorf("Rows = %+v, want first row as data", table.Rows)
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.xlsx"), Options{})
	var iae *csvparser.InputAccessError
	if !errors.As(err, &iae) {
		t.Errorf("Parse(missing) error = %v, want InputAccessError", err)
	}
}
