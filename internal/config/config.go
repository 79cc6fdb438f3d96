// =============================================================================
// Contentful CSV Importer - Configuration Module
// =============================================================================
//
// This module builds the immutable RunConfig that every pipeline stage
// receives as an explicit parameter. Nothing in the pipeline reads global
// state; if a stage needs an option, it takes the RunConfig.
//
// CONFIGURATION SOURCES (highest precedence first):
//   1. Command-line "name:value" options
//   2. Environment: CFIMP_<NAME> variables, plus CONTENTFUL_MANAGEMENT_TOKEN
//      for "mtoken". A ".env" file in the working directory is loaded
//      into the environment first (existing variables are not overridden).
//   3. Settings file (cfimp.yaml, or "config:<path>"), "args:" section
//   4. Built-in defaults
//
// SETTINGS FILE EXAMPLE (cfimp.yaml):
//   log_level: info
//   log_format: text
//   importer_command: contentful
//   output_name_format: "contentful-import-{uuid}.json"
//   tags_column: _tags
//   id_column: _id
//   args:
//     space: abc123
//     locale: en-US
//     delim: com
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is read when present and no "config" option is given.
const DefaultSettingsFile = "cfimp.yaml"

// =============================================================================
// CONFIG ERROR
// =============================================================================

// ConfigError reports an option that is missing or malformed. It is always
// raised before any row is processed.
type ConfigError struct {
	Option  string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Option == "" {
		return e.Message
	}
	return fmt.Sprintf("$%s %s", e.Option, e.Message)
}

// =============================================================================
// RUN CONFIGURATION
// =============================================================================

// FieldValue is one "field=value" item from "mergevals" or "dfltvals".
// Key is the raw field token and may carry a locale suffix, e.g. "title[fr]".
type FieldValue struct {
	Key   string
	Value string
}

// SkipRules are the content-based row skip rules from "skiprows".
type SkipRules struct {
	// Negate inverts the set: rows NOT containing any term are skipped.
	Negate bool

	// Terms are plain substrings; empty terms are dropped.
	Terms []string
}

// Active reports whether any rule was configured.
func (s SkipRules) Active() bool {
	return len(s.Terms) > 0
}

// RunConfig holds every option for one run. It is built once and never
// modified afterwards.
type RunConfig struct {
	// =========================================================================
	// TARGET
	// =========================================================================

	// Model is the content type id every entry is created as.
	Model string

	// Space is the target space id.
	Space string

	// Environment is the target environment id. Default: "master".
	Environment string

	// Locale is the default locale for columns without a "[locale]" suffix.
	Locale string

	// ManagementToken is forwarded to the importer when set.
	ManagementToken string

	// =========================================================================
	// INPUT
	// =========================================================================

	// Input is the path of the data file. Default: "import.csv".
	Input string

	// Sheet selects the worksheet when Input is an .xlsx file.
	// Empty means the first sheet.
	Sheet string

	// Encoding is the text encoding of the input and the import file.
	// Default: "utf8".
	Encoding string

	// Delimiter separates cells within a row. Default: tab.
	Delimiter string

	// ListDelimiter separates items of list options and of "_tags" cells.
	// Default: ",".
	ListDelimiter string

	// FieldOverrides replaces the header row. When set, the first line of
	// the file is data, not a header.
	FieldOverrides []string

	// =========================================================================
	// ROW SELECTION
	// =========================================================================

	// Offset is the 1-based index of the first row to include. 0 = unset.
	Offset int

	// Limit is the number of rows to include from Offset on. Only applied
	// when HasLimit is set, so "limit:0" selects no rows at all.
	Limit    int
	HasLimit bool

	// SkipRows are substring-based skip rules.
	SkipRows SkipRules

	// =========================================================================
	// ENTRY SHAPING
	// =========================================================================

	// MergeValues are written into every entry, overwriting column values.
	MergeValues []FieldValue

	// DefaultValues fill cells that are empty.
	DefaultValues []FieldValue

	// SkipFields are header tokens or field ids whose columns are ignored.
	SkipFields []string

	// TagAll are tags added to every entry.
	TagAll []string

	// NoCast disables boolean/number/null coercion.
	NoCast bool

	// TagsColumn and IDColumn are the reserved column names.
	// Defaults: "_tags" and "_id".
	TagsColumn string
	IDColumn   string

	// =========================================================================
	// RUN MODE
	// =========================================================================

	// Preview renders the entries and stops; nothing is written.
	Preview bool

	// PreviewFile writes the import file and stops before importing.
	PreviewFile bool

	// Publish marks every entry for publishing and assigns it an id.
	Publish bool

	// Verbose enables debug logging.
	Verbose bool

	// Notices lists the defaults that were assumed, for the log.
	Notices []string
}

// IsSkippedField reports whether a column should be ignored. A skip entry
// matches either the raw header token ("title[fr]") or its field id ("title").
func (c *RunConfig) IsSkippedField(token, fieldID string) bool {
	for _, s := range c.SkipFields {
		if s == token || s == fieldID {
			return true
		}
	}
	return false
}

// =============================================================================
// SETTINGS FILE
// =============================================================================

// Settings is the optional YAML settings file.
type Settings struct {
	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the slog handler: "text" or "json". Default: "text".
	LogFormat string `yaml:"log_format"`

	// ImporterCommand is the program run to perform the import.
	// Default: "contentful".
	ImporterCommand string `yaml:"importer_command"`

	// OutputNameFormat names the intermediate import file.
	// Default: "contentful-import-{uuid}.json".
	OutputNameFormat string `yaml:"output_name_format"`

	// TagsColumn and IDColumn rename the reserved columns.
	TagsColumn string `yaml:"tags_column"`
	IDColumn   string `yaml:"id_column"`

	// Args holds defaults for any command-line option, keyed by name.
	Args map[string]string `yaml:"args"`
}

// LoadSettings reads the settings file at path.
//
// PARAMETERS:
//   - path: The settings file path.
//   - required: When false, a missing file yields default settings.
//
// RETURNS:
//   - The settings with defaults applied.
//   - An error if the file is required but missing, or cannot be parsed.
func LoadSettings(path string, required bool) (*Settings, error) {
	settings := &Settings{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, &ConfigError{Option: "config", Message: fmt.Sprintf("failed to parse %s: %v", path, err)}
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		// No settings file; defaults only.
	default:
		return nil, &ConfigError{Option: "config", Message: fmt.Sprintf("failed to read %s: %v", path, err)}
	}

	applySettingsDefaults(settings)
	return settings, nil
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() *Settings {
	s := &Settings{}
	applySettingsDefaults(s)
	return s
}

// applySettingsDefaults sets default values for any unset settings.
func applySettingsDefaults(s *Settings) {
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.LogFormat == "" {
		s.LogFormat = "text"
	}
	if s.ImporterCommand == "" {
		s.ImporterCommand = "contentful"
	}
	if s.OutputNameFormat == "" {
		s.OutputNameFormat = "contentful-import-{uuid}.json"
	}
	if s.TagsColumn == "" {
		s.TagsColumn = "_tags"
	}
	if s.IDColumn == "" {
		s.IDColumn = "_id"
	}
	if s.Args == nil {
		s.Args = map[string]string{}
	}
}
