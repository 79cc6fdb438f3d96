package converter

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/cfimp/internal/config"
	"github.com/ginjaninja78/cfimp/internal/types"
)

// localeSuffix matches a trailing "[locale]". The greedy prefix makes the
// last bracket pair win, so "weird[brackets]odd[en-US]" keeps its inner
// brackets in the field id.
var localeSuffix = regexp.MustCompile(`^(.*)\[([\w-]+)\]$`)

// ParseField splits a header token into field id and locale.
//
// EXAMPLES:
//   "title"                     -> {ID: "title"}
//   "title[en-US]"              -> {ID: "title", Locale: "en-US"}
//   "weird[brackets]odd[en-US]" -> {ID: "weird[brackets]odd", Locale: "en-US"}
//   "odd[brackets]x"            -> {ID: "odd[brackets]x"}
func ParseField(token string) types.FieldSpec {
	m := localeSuffix.FindStringSubmatch(token)
	if m == nil {
		return types.FieldSpec{ID: token}
	}
	return types.FieldSpec{ID: m[1], Locale: m[2]}
}

// fieldValue is a parsed "field[locale]=value" option item.
type fieldValue struct {
	spec  types.FieldSpec
	value string
}

func parseFieldValues(pairs []config.FieldValue) []fieldValue {
	out := make([]fieldValue, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, fieldValue{
			spec:  ParseField(strings.TrimSpace(p.Key)),
			value: p.Value,
		})
	}
	return out
}

// lookupDefault finds the default for (fieldID, locale). An item naming the
// exact locale wins over a bare item for the same field id; among equals
// the first one listed wins.
func lookupDefault(defaults []fieldValue, fieldID, locale string) (string, bool) {
	for _, d := range defaults {
		if d.spec.ID == fieldID && d.spec.HasLocale() && d.spec.Locale == locale {
			return d.value, true
		}
	}
	for _, d := range defaults {
		if d.spec.ID == fieldID && !d.spec.HasLocale() {
			return d.value, true
		}
	}
	return "", false
}
