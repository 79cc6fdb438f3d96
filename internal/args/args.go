// =============================================================================
// Contentful CSV Importer - Argument Tokenizer
// =============================================================================
//
// The importer takes its options as "name:value" words rather than GNU-style
// flags, e.g.
//
//   cfimp model:page space:abc123 locale:en-US delim:com publish
//
// Accepted spellings:
//   model:page      - plain
//   -model:page     - with a leading dash (one or two dashes are stripped)
//   model: page     - split by the shell; a word ending in ":" is joined
//                     with the word that follows it
//   publish         - bare word; the option is present with value "true"
//
// Only the first ":" separates name and value, so values such as URLs or
// "title=a:b" survive intact. Unrecognized names are collected, not rejected.
//
// =============================================================================

package args

import (
	"sort"
	"strings"
)

// Known lists every option name the importer understands.
var Known = []string{
	"model",
	"mergevals",
	"dfltvals",
	"delim",
	"fields",
	"locale",
	"enc",
	"env",
	"space",
	"preview",
	"previewfile",
	"publish",
	"skipfields",
	"offset",
	"skiprows",
	"limit",
	"nocast",
	"tagall",
	"input",
	"listdelim",
	"mtoken",
	"sheet",
	"config",
	"verbose",
}

// Args is the flat option map produced from the command line.
type Args struct {
	// Values maps option name to its value. Bare options map to "true".
	Values map[string]string

	// Bare records options given without a ":value" part.
	Bare map[string]bool

	// Unknown holds option names that are not in Known, in input order.
	Unknown []string
}

// Parse tokenizes command-line words into an Args map.
// When an option is repeated the last occurrence wins.
func Parse(words []string) *Args {
	a := &Args{
		Values: make(map[string]string),
		Bare:   make(map[string]bool),
	}

	for _, word := range joinSplitWords(words) {
		name, value, hasValue := strings.Cut(stripDashes(word), ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if !isKnown(name) {
			a.Unknown = append(a.Unknown, name)
			continue
		}

		if !hasValue || value == "" {
			a.Values[name] = "true"
			a.Bare[name] = true
			continue
		}

		a.Values[name] = value
		delete(a.Bare, name)
	}

	return a
}

// Get returns the value of an option and whether it was given.
func (a *Args) Get(name string) (string, bool) {
	v, ok := a.Values[name]
	return v, ok
}

// Has reports whether an option was given.
func (a *Args) Has(name string) bool {
	_, ok := a.Values[name]
	return ok
}

// IsBare reports whether an option was given without a value.
func (a *Args) IsBare(name string) bool {
	return a.Bare[name]
}

// Names returns the given option names, sorted.
func (a *Args) Names() []string {
	names := make([]string, 0, len(a.Values))
	for name := range a.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// joinSplitWords rejoins "name:" "value" pairs that the shell split apart.
func joinSplitWords(words []string) []string {
	joined := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		word := words[i]
		if strings.HasSuffix(word, ":") && i+1 < len(words) {
			word += words[i+1]
			i++
		}
		joined = append(joined, word)
	}
	return joined
}

func stripDashes(word string) string {
	word = strings.TrimPrefix(word, "-")
	return strings.TrimPrefix(word, "-")
}

func isKnown(name string) bool {
	for _, k := range Known {
		if k == name {
			return true
		}
	}
	return false
}
