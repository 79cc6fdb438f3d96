// =============================================================================
// Contentful CSV Importer - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the
// pipeline for one input file, from reading rows to the assembled bundle.
//
// CONVERSION PIPELINE:
//   1. Load the input table (.xlsx workbook or delimited text)
//   2. Resolve the header into columns
//   3. Filter rows by offset, limit and skip rules
//   4. Build one entry per remaining row
//   5. Assemble the entries into a bundle
//
// ROW ERRORS:
//   Rows that fail to build are collected. When the loop finishes and any
//   row failed, the run stops with a RowErrors listing every failure; no
//   bundle is returned, so nothing is written or imported.
//
// CONCURRENCY:
//   Rows are processed one after another. A Converter holds no state
//   between calls to Convert.
//
// =============================================================================

package converter

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/cfimp/internal/config"
	"github.com/ginjaninja78/cfimp/internal/csvparser"
	"github.com/ginjaninja78/cfimp/internal/jsonwriter"
	"github.com/ginjaninja78/cfimp/internal/types"
	"github.com/ginjaninja78/cfimp/internal/xlsxparser"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting one input file.
type Result struct {
	// Bundle holds the built entries in row order.
	Bundle *types.Bundle

	// Header is the resolved field of every column that feeds entry fields.
	Header []types.FieldSpec

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of non-blank data rows in the input.
	RowsRead int

	// RowsFiltered is the number of rows excluded by offset, limit or
	// skip rules.
	RowsFiltered int

	// EntriesBuilt is the number of entries in the bundle.
	EntriesBuilt int

	// RowErrors is the number of rows that could not be built.
	RowErrors int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts input rows into a bundle of entries.
type Converter struct {
	cfg    *config.RunConfig
	logger *slog.Logger
	newID  IDGenerator
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) { c.logger = logger }
}

// WithIDGenerator replaces the generator used for published entry ids.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Converter) { c.newID = gen }
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - cfg: The run configuration.
//   - opts: Optional logger and id generator.
//
// RETURNS:
//   - A new Converter instance.
func New(cfg *config.RunConfig, opts ...Option) *Converter {
	c := &Converter{
		cfg:    cfg,
		logger: slog.Default(),
		newID:  GenerateEntryID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Run loads the configured input file and converts it.
//
// RETURNS:
//   - The Result with the assembled bundle.
//   - A *csvparser.InputAccessError if the input cannot be read, or a
//     *RowErrors if any row failed.
func (c *Converter) Run() (*Result, error) {
	table, err := LoadTable(c.cfg)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Loaded input",
		"file", table.Source,
		"columns", len(table.Header),
		"rows", table.Len())

	return c.Convert(table)
}

// Convert builds entries from an already loaded table.
func (c *Converter) Convert(table *csvparser.Table) (*Result, error) {
	startTime := time.Now()

	builder := NewBuilder(table.Header, c.cfg, c.newID)
	result := &Result{Header: builder.Header()}

	var entries []*types.Entry
	var rowErrs []error

	for _, row := range table.Rows {
		result.Stats.RowsRead++

		if !Include(row.Index, row.Line, c.cfg) {
			result.Stats.RowsFiltered++
			c.logger.Debug("Skipping row", "row", row.Index)
			continue
		}

		entry, err := builder.Build(row.Cells, row.Index)
		if err != nil {
			rowErrs = append(rowErrs, err)
			c.logger.Warn("Row could not be converted", "row", row.Index, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	result.Stats.RowErrors = len(rowErrs)
	if len(rowErrs) > 0 {
		return nil, &RowErrors{Errs: rowErrs}
	}

	result.Bundle = jsonwriter.Assemble(entries)
	result.Stats.EntriesBuilt = result.Bundle.Len()
	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Debug("Converted rows",
		"read", result.Stats.RowsRead,
		"filtered", result.Stats.RowsFiltered,
		"entries", result.Stats.EntriesBuilt,
		"elapsed", result.Stats.ProcessingTime)

	return result, nil
}

// =============================================================================
// INPUT LOADING
// =============================================================================

// LoadTable reads the configured input. Files ending in .xlsx are read as
// workbooks; anything else as delimited text in the configured encoding.
func LoadTable(cfg *config.RunConfig) (*csvparser.Table, error) {
	if strings.EqualFold(filepath.Ext(cfg.Input), xlsxparser.Extension) {
		return xlsxparser.Parse(cfg.Input, xlsxparser.Options{
			Sheet:          cfg.Sheet,
			Delimiter:      cfg.Delimiter,
			FieldOverrides: cfg.FieldOverrides,
		})
	}

	return csvparser.Load(cfg.Input, cfg.Encoding, csvparser.Options{
		Delimiter:      cfg.Delimiter,
		FieldOverrides: cfg.FieldOverrides,
	})
}
