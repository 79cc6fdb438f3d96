package converter

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/ginjaninja78/cfimp/internal/csvparser"
	"github.com/ginjaninja78/cfimp/internal/jsonwriter"
	"github.com/ginjaninja78/cfimp/internal/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConvert_EndToEnd(t *testing.T) {
	cfg := testConfig()
	cfg.TagAll = []string{"featured"}
	cfg.Delimiter = "\t"

	table := csvparser.Parse("title\tprice\t_tags\nWidget\t9.99\tred,blue\n", csvparser.Options{Delimiter: "\t"})
	result, err := New(cfg, WithLogger(quietLogger())).Convert(table)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if result.Bundle.Len() != 1 {
		t.Fatalf("entries = %d, want 1", result.Bundle.Len())
	}

	e := result.Bundle.Entries[0]
	if got := mustGet(t, e, "title", "en-US"); got != types.String("Widget") {
		t.Errorf("title = %+v", got)
	}
	if got := mustGet(t, e, "price", "en-US"); got != types.Number(9.99) {
		t.Errorf("price = %+v", got)
	}
	if want := []string{"red", "blue", "featured"}; !reflect.DeepEqual(e.Tags, want) {
		t.Errorf("Tags = %q, want %q", e.Tags, want)
	}
	if result.Stats.RowsRead != 1 || result.Stats.EntriesBuilt != 1 {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestConvert_SingleColumnValueContainsDelimiter(t *testing.T) {
	cfg := testConfig()

	table := csvparser.Parse("title\nHello, world\n", csvparser.Options{Delimiter: ","})
	result, err := New(cfg, WithLogger(quietLogger())).Convert(table)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if result.Bundle.Len() != 1 {
		t.Fatalf("entries = %d, want 1", result.Bundle.Len())
	}
	if got := mustGet(t, result.Bundle.Entries[0], "title", "en-US"); got != types.String("Hello, world") {
		t.Errorf("title = %+v, want the whole line", got)
	}
}

func TestConvert_Filtering(t *testing.T) {
	cfg := testConfig()
	cfg.Offset, cfg.Limit, cfg.HasLimit = 2, 2, true

	table := csvparser.Parse("title,n\na,1\nb,2\nc,3\nd,4\n", csvparser.Options{Delimiter: ","})
	result, err := New(cfg, WithLogger(quietLogger())).Convert(table)
	if err != nil {
		t.Fatal(err)
	}

	var titles []string
	for _, e := range result.Bundle.Entries {
		titles = append(titles, mustGet(t, e, "title", "en-US").Str)
	}
	if want := []string{"b", "c"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
	if result.Stats.RowsFiltered != 2 {
		t.Errorf("RowsFiltered = %d, want 2", result.Stats.RowsFiltered)
	}
}

func TestConvert_DelimiterMismatchAbortsRun(t *testing.T) {
	cfg := testConfig()
	cfg.Delimiter = "\t"

	table := csvparser.Parse("title\tprice\nWidget,1\nGood\t2\nGadget,3\n", csvparser.Options{Delimiter: "\t"})
	result, err := New(cfg, WithLogger(quietLogger())).Convert(table)

	if result != nil {
		t.Errorf("result = %+v, want nil on row errors", result)
	}
	var rowErrs *RowErrors
	if !errors.As(err, &rowErrs) {
		t.Fatalf("error = %v, want RowErrors", err)
	}
	if len(rowErrs.Errs) != 2 {
		t.Fatalf("row errors = %d, want 2", len(rowErrs.Errs))
	}

	var dm *DelimiterMismatchError
	if !errors.As(err, &dm) || dm.Row != 1 {
		t.Errorf("first mismatch = %+v, want row 1", dm)
	}
	if second := rowErrs.Errs[1].(*DelimiterMismatchError); second.Row != 3 {
		t.Errorf("second mismatch row = %d, want 3", second.Row)
	}
}

func TestConvert_Idempotent(t *testing.T) {
	cfg := testConfig()
	cfg.Publish = true
	cfg.Delimiter = ";"
	content := "title;loc;_id\nA;1.5, 2.5;\nB;ref-x;b-1\n"

	run := func() []byte {
		n := 0
		conv := New(cfg, WithLogger(quietLogger()), WithIDGenerator(func() string {
			n++
			return "fixed-" + strconv.Itoa(n)
		}))
		result, err := conv.Convert(csvparser.Parse(content, csvparser.Options{Delimiter: ";"}))
		if err != nil {
			t.Fatal(err)
		}
		data, err := jsonwriter.Generate(result.Bundle)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	first, second := run(), run()
	if !bytes.Equal(first, second) {
		t.Errorf("bundles differ:\n%s\n%s", first, second)
	}
}

func TestRun_InputMissing(t *testing.T) {
	cfg := testConfig()
	cfg.Input = filepath.Join(t.TempDir(), "missing.csv")
	cfg.Encoding = "utf8"

	_, err := New(cfg, WithLogger(quietLogger())).Run()
	var iae *csvparser.InputAccessError
	if !errors.As(err, &iae) {
		t.Errorf("Run() error = %v, want InputAccessError", err)
	}
}

func TestRun_CSVFile(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Input = filepath.Join(dir, "import.tsv")
	cfg.Encoding = "utf8"
	cfg.Delimiter = "\t"
	if err := os.WriteFile(cfg.Input, []byte("title\tactive\nWidget\ttrue\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := New(cfg, WithLogger(quietLogger())).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := mustGet(t, result.Bundle.Entries[0], "active", "en-US"); got != types.Bool(true) {
		t.Errorf("active = %+v", got)
	}
}
