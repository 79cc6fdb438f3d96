package converter

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ginjaninja78/cfimp/internal/config"
	"github.com/ginjaninja78/cfimp/internal/types"
)

func mustGet(t *testing.T, e *types.Entry, field, locale string) types.Value {
	t.Helper()
	v, ok := e.Fields.Get(field, locale)
	if !ok {
		t.Fatalf("fields[%s][%s] missing; fields = %+v", field, locale, e.Fields)
	}
	return v
}

func TestBuildEntry_Basic(t *testing.T) {
	cfg := testConfig()
	e, err := BuildEntry([]string{"Widget", "9.99"}, 1, []string{"title", "price"}, cfg)
	if err != nil {
		t.Fatalf("BuildEntry() error = %v", err)
	}

	if e.ContentModelID != "page" {
		t.Errorf("ContentModelID = %q", e.ContentModelID)
	}
	if got := mustGet(t, e, "title", "en-US"); got != types.String("Widget") {
		t.Errorf("title = %+v", got)
	}
	if got := mustGet(t, e, "price", "en-US"); got != types.Number(9.99) {
		t.Errorf("price = %+v", got)
	}
	if e.ID != "" || e.PublishedVersion != 0 {
		t.Errorf("ID/PublishedVersion = %q/%d, want unset", e.ID, e.PublishedVersion)
	}
}

func TestBuildEntry_Tags(t *testing.T) {
	cfg := testConfig()
	cfg.TagAll = []string{"featured", "red"}

	e, err := BuildEntry([]string{"Widget", "red, blue,,red"}, 1, []string{"title", "_tags"}, cfg)
	if err != nil {
		t.Fatalf("BuildEntry() error = %v", err)
	}

	if want := []string{"red", "blue", "featured"}; !reflect.DeepEqual(e.Tags, want) {
		t.Errorf("Tags = %q, want %q", e.Tags, want)
	}
	if _, ok := e.Fields.Get("_tags", "en-US"); ok {
		t.Error("_tags column leaked into fields")
	}
}

func TestBuildEntry_ID(t *testing.T) {
	header := []string{"title", "_id"}
	cfg := testConfig()
	cfg.Publish = true

	b := NewBuilder(header, cfg, func() string { return "generated" })

	e, err := b.Build([]string{"Widget", " existing-1 "}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != "existing-1" {
		t.Errorf("ID = %q, want existing-1 from _id column", e.ID)
	}
	if e.PublishedVersion != 1 {
		t.Errorf("PublishedVersion = %d, want 1", e.PublishedVersion)
	}

	e, err = b.Build([]string{"Gadget", ""}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != "generated" {
		t.Errorf("ID = %q, want generated id for empty _id", e.ID)
	}
	if _, ok := e.Fields.Get("_id", "en-US"); ok {
		t.Error("_id column leaked into fields")
	}
}

func TestBuildEntry_Locales(t *testing.T) {
	cfg := testConfig()
	header := []string{"title", "title[fr]", "title[de]"}

	e, err := BuildEntry([]string{"Hello", "Bonjour", "Hallo"}, 1, header, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Fields) != 1 || len(e.Fields[0].Locales) != 3 {
		t.Fatalf("Fields = %+v, want one field with three locales", e.Fields)
	}
	if got := mustGet(t, e, "title", "fr"); got != types.String("Bonjour") {
		t.Errorf("title[fr] = %+v", got)
	}
}

func TestBuildEntry_MergeValues(t *testing.T) {
	cfg := testConfig()
	cfg.MergeValues = []config.FieldValue{
		{Key: "title", Value: "Override"},
		{Key: "extra[de]", Value: "42"},
	}

	e, err := BuildEntry([]string{"Original", "Original FR"}, 1, []string{"title", "title[fr]"}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if got := mustGet(t, e, "title", "en-US"); got != types.String("Override") {
		t.Errorf("title[en-US] = %+v, want Override", got)
	}
	if got := mustGet(t, e, "title", "fr"); got != types.String("Original FR") {
		t.Errorf("title[fr] = %+v, want column value to survive", got)
	}
	if got := mustGet(t, e, "extra", "de"); got != types.Number(42) {
		t.Errorf("extra[de] = %+v, want merged Number(42)", got)
	}
}

func TestBuildEntry_Defaults(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultValues = []config.FieldValue{
		{Key: "title", Value: "Untitled"},
		{Key: "price[fr]", Value: "0"},
		{Key: "body", Value: ""},
	}
	header := []string{"title", "price", "price[fr]", "body", "notes"}

	e, err := BuildEntry([]string{"", "", " ", "", ""}, 1, header, cfg)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		field, locale string
		want          types.Value
	}{
		{"title", "en-US", types.String("Untitled")},
		{"price", "en-US", types.Null()},
		{"price", "fr", types.Number(0)},
		{"body", "en-US", types.Null()},
		{"notes", "en-US", types.Null()},
	}
	for _, tt := range tests {
		if got := mustGet(t, e, tt.field, tt.locale); got != tt.want {
			t.Errorf("%s[%s] = %+v, want %+v", tt.field, tt.locale, got, tt.want)
		}
	}

	// A default only applies to empty cells.
	e, err = BuildEntry([]string{"Real", "1", "2", "x", "y"}, 1, header, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustGet(t, e, "title", "en-US"); got != types.String("Real") {
		t.Errorf("title = %+v, want column value", got)
	}
}

func TestBuildEntry_SkipFields(t *testing.T) {
	cfg := testConfig()
	cfg.SkipFields = []string{"price", "body[fr]"}
	header := []string{"title", "price[de]", "body", "body[fr]"}

	e, err := BuildEntry([]string{"a", "b", "c", "d"}, 1, header, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := e.Fields.IDs(), []string{"title", "body"}; !reflect.DeepEqual(got, want) {
		t.Errorf("field ids = %v, want %v", got, want)
	}
	if _, ok := e.Fields.Get("body", "fr"); ok {
		t.Error("skipped body[fr] column was written")
	}
}

func TestBuildEntry_DelimiterMismatch(t *testing.T) {
	cfg := testConfig()
	cfg.Delimiter = "\t"

	_, err := BuildEntry([]string{"Widget,9.99"}, 7, []string{"title", "price"}, cfg)

	var dm *DelimiterMismatchError
	if !errors.As(err, &dm) {
		t.Fatalf("error = %v, want DelimiterMismatchError", err)
	}
	if dm.Row != 7 || dm.Delimiter != "\t" {
		t.Errorf("DelimiterMismatchError = %+v", dm)
	}
	if !strings.Contains(err.Error(), "row 7") || !strings.Contains(err.Error(), "tab") {
		t.Errorf("message = %q", err.Error())
	}

	// A single column never mismatches.
	if _, err := BuildEntry([]string{"Widget"}, 1, []string{"title"}, cfg); err != nil {
		t.Errorf("single column error = %v", err)
	}
}

func TestBuilder_ShortRow(t *testing.T) {
	cfg := testConfig()
	e, err := BuildEntry([]string{"Widget", "1"}, 1, []string{"title", "price", "body"}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustGet(t, e, "body", "en-US"); got != types.Null() {
		t.Errorf("missing trailing cell = %+v, want Null", got)
	}
}

func TestBuilder_Header(t *testing.T) {
	cfg := testConfig()
	cfg.SkipFields = []string{"skip"}
	b := NewBuilder([]string{"title", "title[fr]", "_tags", "_id", "skip"}, cfg, nil)

	want := []types.FieldSpec{{ID: "title", Locale: "en-US"}, {ID: "title", Locale: "fr"}}
	if got := b.Header(); !reflect.DeepEqual(got, want) {
		t.Errorf("Header() = %+v, want %+v", got, want)
	}
}

func TestGenerateEntryID(t *testing.T) {
	a, b := GenerateEntryID(), GenerateEntryID()
	if a == b {
		t.Error("GenerateEntryID returned the same id twice")
	}
	if !strings.HasPrefix(a, EntryIDPrefix) || len(a) != len(EntryIDPrefix)+22 {
		t.Errorf("GenerateEntryID() = %q", a)
	}
	if strings.ContainsAny(a, "+/=") {
		t.Errorf("GenerateEntryID() = %q, want URL-safe", a)
	}
}
