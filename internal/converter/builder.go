// =============================================================================
// Contentful CSV Importer - Entry Builder
// =============================================================================
//
// This module turns one data row into one Entry. The header is resolved
// once per run; every row then goes through the same steps.
//
// ENTRY LIFECYCLE (strict order):
//   1. Check the row split on the delimiter
//   2. Column fields, with default values for empty cells
//   3. The "_tags" and "_id" columns
//   4. Merge values, overwriting the exact (field, locale) slot
//   5. Tag-all tags, deduplicated
//
// RESERVED COLUMNS:
//   _tags  The cell is split on the list delimiter; every item is a tag.
//   _id    A non-empty cell becomes the entry id (update in place).
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/ginjaninja78/cfimp/internal/config"
	"github.com/ginjaninja78/cfimp/internal/types"
)

// columnRole says what a header column feeds.
type columnRole int

const (
	roleField columnRole = iota
	roleTags
	roleID
	roleSkip
)

// column is a resolved header column.
type column struct {
	token  string
	spec   types.FieldSpec
	locale string
	role   columnRole
}

// mergeValue is a pre-coerced "mergevals" item.
type mergeValue struct {
	fieldID string
	locale  string
	value   types.Value
}

// =============================================================================
// BUILDER STRUCTURE
// =============================================================================

// Builder builds entries for one header and one run configuration.
type Builder struct {
	cfg      *config.RunConfig
	columns  []column
	defaults []fieldValue
	merges   []mergeValue
	newID    IDGenerator
}

// NewBuilder resolves the header against the configuration.
//
// PARAMETERS:
//   - header: The resolved field list, one token per column.
//   - cfg: The run configuration.
//   - newID: Generates ids for published entries. Nil uses GenerateEntryID.
//
// RETURNS:
//   - A Builder ready to build rows.
func NewBuilder(header []string, cfg *config.RunConfig, newID IDGenerator) *Builder {
	if newID == nil {
		newID = GenerateEntryID
	}

	b := &Builder{
		cfg:      cfg,
		defaults: parseFieldValues(cfg.DefaultValues),
		newID:    newID,
	}

	for _, token := range header {
		b.columns = append(b.columns, resolveColumn(token, cfg))
	}

	for _, m := range parseFieldValues(cfg.MergeValues) {
		b.merges = append(b.merges, mergeValue{
			fieldID: m.spec.ID,
			locale:  m.spec.LocaleOr(cfg.Locale),
			value:   Coerce(m.value, cfg),
		})
	}

	return b
}

// resolveColumn classifies one header token.
func resolveColumn(token string, cfg *config.RunConfig) column {
	spec := ParseField(token)
	col := column{
		token:  token,
		spec:   spec,
		locale: spec.LocaleOr(cfg.Locale),
	}

	switch {
	case cfg.IsSkippedField(token, spec.ID):
		col.role = roleSkip
	case token == cfg.TagsColumn:
		col.role = roleTags
	case token == cfg.IDColumn:
		col.role = roleID
	default:
		col.role = roleField
	}
	return col
}

// Header returns the resolved field of every column that produces entry
// fields, in header order.
func (b *Builder) Header() []types.FieldSpec {
	var specs []types.FieldSpec
	for _, c := range b.columns {
		if c.role == roleField {
			specs = append(specs, types.FieldSpec{ID: c.spec.ID, Locale: c.locale})
		}
	}
	return specs
}

// =============================================================================
// BUILD
// =============================================================================

// Build converts one row into an entry.
//
// PARAMETERS:
//   - cells: The row's cells, aligned to the header.
//   - rowIndex: The 1-based data row number, used in errors.
//
// RETURNS:
//   - The finished entry. It is not modified again.
//   - A *DelimiterMismatchError when several columns are expected but the
//     row did not split.
func (b *Builder) Build(cells []string, rowIndex int) (*types.Entry, error) {
	if len(b.columns) > 1 && len(cells) < 2 {
		return nil, &DelimiterMismatchError{Row: rowIndex, Delimiter: b.cfg.Delimiter}
	}

	entry := types.NewEntry(b.cfg.Model)
	if b.cfg.Publish {
		entry.PublishedVersion = 1
		entry.ID = b.newID()
	}

	var tagCells []string
	var idCell string

	for i, col := range b.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}

		switch col.role {
		case roleSkip:
			continue
		case roleTags:
			tagCells = append(tagCells, cell)
		case roleID:
			idCell = cell
		case roleField:
			entry.Fields.Set(col.spec.ID, col.locale, b.cellValue(col, cell))
		}
	}

	for _, cell := range tagCells {
		for _, tag := range strings.Split(cell, b.cfg.ListDelimiter) {
			if tag = strings.TrimSpace(tag); tag != "" {
				entry.AddTag(tag)
			}
		}
	}

	if id := strings.TrimSpace(idCell); id != "" {
		entry.ID = id
	}

	for _, m := range b.merges {
		entry.Fields.Set(m.fieldID, m.locale, m.value)
	}

	for _, tag := range b.cfg.TagAll {
		entry.AddTag(tag)
	}

	return entry, nil
}

// cellValue coerces a cell, falling back to the configured default when
// the cell is empty. An empty cell with no default, or with an empty
// default, is Null.
func (b *Builder) cellValue(col column, cell string) types.Value {
	if strings.TrimSpace(cell) != "" {
		return Coerce(cell, b.cfg)
	}

	dflt, ok := lookupDefault(b.defaults, col.spec.ID, col.locale)
	if !ok || strings.TrimSpace(dflt) == "" {
		return types.Null()
	}
	return Coerce(dflt, b.cfg)
}

// BuildEntry builds a single entry without keeping a Builder around.
func BuildEntry(cells []string, rowIndex int, header []string, cfg *config.RunConfig) (*types.Entry, error) {
	return NewBuilder(header, cfg, nil).Build(cells, rowIndex)
}
