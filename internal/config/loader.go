package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ginjaninja78/cfimp/internal/args"
	"github.com/ginjaninja78/cfimp/internal/validation"
	"github.com/ginjaninja78/cfimp/pkg/utils"
)

// Lookup resolves an environment variable. os.LookupEnv satisfies it.
type Lookup func(key string) (string, bool)

// Sources are the inputs Build resolves options from.
type Sources struct {
	Args     *args.Args
	Env      Lookup
	Settings *Settings

	// Inspect relaxes the required options to "locale" alone, for
	// commands that read the input without importing it.
	Inspect bool
}

// boolOptions take no value; every other option requires one.
var boolOptions = map[string]bool{
	"preview":     true,
	"previewfile": true,
	"publish":     true,
	"nocast":      true,
	"verbose":     true,
}

// LoadDotEnv loads a .env file into the process environment when it exists.
// Variables already set are left alone.
func LoadDotEnv(path string) error {
	if !utils.FileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// EnvName returns the environment variable consulted for an option.
func EnvName(option string) string {
	return "CFIMP_" + strings.ToUpper(option)
}

// =============================================================================
// BUILD
// =============================================================================

// Build resolves every option and returns the run configuration.
//
// RETURNS:
//   - The RunConfig.
//   - A *ConfigError naming the offending option when anything is missing
//     or malformed. Required options are checked first, so a run missing
//     "model" fails before any file is touched.
func Build(src Sources) (*RunConfig, error) {
	if src.Args == nil {
		src.Args = args.Parse(nil)
	}
	if src.Env == nil {
		src.Env = func(string) (string, bool) { return "", false }
	}
	if src.Settings == nil {
		src.Settings = DefaultSettings()
	}

	r := &resolver{src: src}

	for _, name := range src.Args.Names() {
		if src.Args.IsBare(name) && !boolOptions[name] {
			return nil, &ConfigError{Option: name, Message: "requires a value, e.g. " + name + ":value"}
		}
	}

	cfg := &RunConfig{
		TagsColumn: src.Settings.TagsColumn,
		IDColumn:   src.Settings.IDColumn,
	}

	// Required options.
	required := []string{"model", "space", "locale"}
	if src.Inspect {
		required = []string{"locale"}
	}
	for _, name := range required {
		value, ok := r.get(name)
		if err := validation.ValidateRequired(name, value, ok); err != nil {
			return nil, toConfigError(err)
		}
	}
	cfg.Model, _ = r.get("model")
	cfg.Space, _ = r.get("space")
	cfg.Locale, _ = r.get("locale")

	// Simple string options with defaults.
	cfg.Input = r.getOr("input", "import.csv", `$input not passed; assuming "import.csv"`)
	cfg.Environment = r.getOr("env", "master", `$env not passed; assuming "master"`)
	cfg.Encoding = r.getOr("enc", "utf8", `$enc not passed; assuming utf8`)
	cfg.ListDelimiter = r.getOr("listdelim", ",", "")
	cfg.Sheet, _ = r.get("sheet")

	cfg.ManagementToken, _ = r.get("mtoken")
	if cfg.ManagementToken == "" {
		cfg.ManagementToken, _ = src.Env("CONTENTFUL_MANAGEMENT_TOKEN")
	}

	if _, err := utils.LookupEncoding(cfg.Encoding); err != nil {
		return nil, &ConfigError{Option: "enc", Message: err.Error()}
	}

	delim := r.getOr("delim", "tab", "$delim not passed; assuming tab")
	cfg.Delimiter = ResolveDelimiter(delim)

	// Integer options.
	for _, opt := range []struct {
		name string
		dst  *int
	}{{"offset", &cfg.Offset}, {"limit", &cfg.Limit}} {
		value, ok := r.get(opt.name)
		if !ok {
			continue
		}
		n, err := validation.ParseNonNegativeInt(opt.name, value)
		if err != nil {
			return nil, toConfigError(err)
		}
		*opt.dst = n
	}
	_, cfg.HasLimit = r.get("limit")

	// List options.
	var err error
	if cfg.MergeValues, err = r.fieldValues("mergevals", cfg.ListDelimiter); err != nil {
		return nil, err
	}
	if cfg.DefaultValues, err = r.fieldValues("dfltvals", cfg.ListDelimiter); err != nil {
		return nil, err
	}
	if cfg.SkipFields, err = r.fieldList("skipfields", cfg.ListDelimiter); err != nil {
		return nil, err
	}
	if cfg.FieldOverrides, err = r.fieldList("fields", cfg.ListDelimiter); err != nil {
		return nil, err
	}
	if cfg.FieldOverrides == nil {
		r.notice("$fields not passed; inferring field IDs from first row in data file")
	}

	if tags, ok := r.get("tagall"); ok {
		cfg.TagAll = splitNonEmpty(tags, cfg.ListDelimiter)
	}

	if rules, ok := r.get("skiprows"); ok {
		cfg.SkipRows = ParseSkipRules(rules, cfg.ListDelimiter)
	}

	// Boolean options.
	cfg.Preview = r.flag("preview")
	cfg.PreviewFile = r.flag("previewfile")
	cfg.Publish = r.flag("publish")
	cfg.NoCast = r.flag("nocast")
	cfg.Verbose = r.flag("verbose")

	cfg.Notices = r.notices
	return cfg, nil
}

// ResolveDelimiter maps the "delim" shorthands to the actual separator.
// Anything that is not a shorthand is used literally.
func ResolveDelimiter(value string) string {
	switch value {
	case "", "tab", `\t`:
		return "\t"
	case "com":
		return ","
	case "pipe":
		return "|"
	default:
		return value
	}
}

// ParseSkipRules parses a "skiprows" value. A leading "!" negates the
// whole set.
func ParseSkipRules(value, listDelim string) SkipRules {
	var rules SkipRules
	if strings.HasPrefix(value, "!") {
		rules.Negate = true
		value = value[1:]
	}
	for _, term := range strings.Split(value, listDelim) {
		if term != "" {
			rules.Terms = append(rules.Terms, term)
		}
	}
	return rules
}

// =============================================================================
// RESOLVER
// =============================================================================

type resolver struct {
	src     Sources
	notices []string
}

// get returns an option from the first source that has it.
func (r *resolver) get(name string) (string, bool) {
	if v, ok := r.src.Args.Get(name); ok {
		return v, true
	}
	if v, ok := r.src.Env(EnvName(name)); ok && v != "" {
		return v, true
	}
	if v, ok := r.src.Settings.Args[name]; ok && v != "" {
		return v, true
	}
	return "", false
}

// getOr returns an option or its default, recording notice when the
// default was used.
func (r *resolver) getOr(name, fallback, notice string) string {
	if v, ok := r.get(name); ok {
		return v
	}
	r.notice(notice)
	return fallback
}

func (r *resolver) notice(msg string) {
	if msg != "" {
		r.notices = append(r.notices, msg)
	}
}

// flag resolves a boolean option. Any value other than a recognizable
// false ("false", "0", "f") turns it on.
func (r *resolver) flag(name string) bool {
	v, ok := r.get(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return true
	}
	return b
}

func (r *resolver) fieldValues(name, listDelim string) ([]FieldValue, error) {
	v, ok := r.get(name)
	if !ok {
		return nil, nil
	}
	if err := validation.ValidateFieldValueList(name, v, listDelim); err != nil {
		return nil, toConfigError(err)
	}

	items := strings.Split(v, listDelim)
	pairs := make([]FieldValue, 0, len(items))
	for _, item := range items {
		key, value, _ := strings.Cut(item, "=")
		pairs = append(pairs, FieldValue{Key: key, Value: value})
	}
	return pairs, nil
}

func (r *resolver) fieldList(name, listDelim string) ([]string, error) {
	v, ok := r.get(name)
	if !ok {
		return nil, nil
	}
	if err := validation.ValidateFieldList(name, v, listDelim); err != nil {
		return nil, toConfigError(err)
	}
	return strings.Split(v, listDelim), nil
}

func toConfigError(err error) error {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return &ConfigError{Option: ve.Option, Message: ve.Message}
	}
	return &ConfigError{Message: err.Error()}
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
