// =============================================================================
// Contentful CSV Importer - Import Run
// =============================================================================
//
// This file holds the root command's run: it turns the command-line words
// into a RunConfig and drives the pipeline.
//
// PROCESSING PIPELINE:
//   1. Tokenize the "name:value" words
//   2. Load .env, the settings file and build the RunConfig
//   3. Set up logging and report assumed defaults and unknown options
//   4. Convert the input file into a bundle of entries
//   5. preview:     print the entries and stop
//   6. Write the intermediate import file
//   7. previewfile: keep the file and stop
//   8. Run "contentful space import" and remove the file afterwards
//
// Any error stops the run at the step where it happens. Nothing is written
// before every row has converted cleanly.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/cfimp/internal/args"
	"github.com/ginjaninja78/cfimp/internal/config"
	"github.com/ginjaninja78/cfimp/internal/converter"
	"github.com/ginjaninja78/cfimp/internal/importer"
	"github.com/ginjaninja78/cfimp/internal/jsonwriter"
	"github.com/ginjaninja78/cfimp/internal/logging"
	"github.com/ginjaninja78/cfimp/internal/preview"
	"github.com/ginjaninja78/cfimp/pkg/utils"
)

// dotEnvFile is loaded from the working directory when present.
const dotEnvFile = ".env"

// runEnv is what a run takes from its surroundings.
type runEnv struct {
	stdout io.Writer
	stderr io.Writer
	lookup config.Lookup

	// importerStdout receives the importer's output. Nil inherits.
	importerStdout io.Writer
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runImport is the root command's run.
func runImport(ctx context.Context, words []string, stdout, stderr io.Writer) error {
	return runImportWith(ctx, words, runEnv{
		stdout: stdout,
		stderr: stderr,
		lookup: os.LookupEnv,
	})
}

func runImportWith(ctx context.Context, words []string, env runEnv) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1-2: CONFIGURATION
	// =========================================================================

	a := args.Parse(words)

	settings, cfg, err := loadRunConfig(a, env.lookup, false)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: LOGGING
	// =========================================================================

	level := settings.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	logging.Setup(level, settings.LogFormat, env.stderr)

	ctx = logging.WithRunID(ctx, uuid.NewString()[:8])
	logger := logging.FromContext(ctx)

	for _, name := range a.Unknown {
		logger.Info("Unrecognised arg", "arg", name)
	}
	for _, notice := range cfg.Notices {
		logger.Info(notice)
	}

	// =========================================================================
	// STEP 4: CONVERT
	// =========================================================================

	conv := converter.New(cfg, converter.WithLogger(logger))
	result, err := conv.Run()
	if err != nil {
		return err
	}
	bundle := result.Bundle

	logger.Info("Converted input",
		"file", cfg.Input,
		"rows", result.Stats.RowsRead,
		"skipped", result.Stats.RowsFiltered,
		"entries", bundle.Len())

	// =========================================================================
	// STEP 5: PREVIEW
	// =========================================================================

	if cfg.Preview {
		text, err := preview.Render(bundle, cfg.Publish)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.stdout, text)
		logger.Debug("Preview rendered", "lines", preview.Lines(text))
		return nil
	}

	if bundle.Len() == 0 {
		logger.Warn("No rows qualified for import; nothing to do")
		return nil
	}

	// =========================================================================
	// STEP 6: WRITE IMPORT FILE
	// =========================================================================

	fileName := utils.GenerateOutputFileName(settings.OutputNameFormat, map[string]string{
		"space": cfg.Space,
		"env":   cfg.Environment,
		"model": cfg.Model,
	})

	if err := jsonwriter.WriteFile(fileName, bundle, cfg.Encoding); err != nil {
		return err
	}
	logger.Debug("Wrote import file", "path", fileName, "entries", bundle.Len())

	// =========================================================================
	// STEP 7: PREVIEW FILE
	// =========================================================================

	if cfg.PreviewFile {
		logger.Info("previewfile set; import file written and import skipped", "path", fileName)
		fmt.Fprintln(env.stdout, fileName)
		return nil
	}

	// =========================================================================
	// STEP 8: IMPORT
	// =========================================================================

	defer utils.RemoveQuietly(fileName)

	cmd := importer.NewCommand(settings.ImporterCommand, cfg.Space, cfg.Environment, fileName, cfg.ManagementToken)
	cmd.Stdout = env.importerStdout

	logger.Info("Running import", "command", cmd.String())
	if err := cmd.Run(ctx); err != nil {
		return err
	}

	logger.Info("Import complete",
		"entries", bundle.Len(),
		"published", cfg.Publish,
		"elapsed", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadRunConfig loads .env and the settings file and builds the RunConfig.
//
// PARAMETERS:
//   - a: The tokenized command line.
//   - lookup: Environment lookup, normally os.LookupEnv.
//   - inspect: Only require "locale", for commands that do not import.
//
// RETURNS:
//   - The settings and the RunConfig.
//   - A *config.ConfigError for missing or malformed options.
func loadRunConfig(a *args.Args, lookup config.Lookup, inspect bool) (*config.Settings, *config.RunConfig, error) {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return nil, nil, err
	}

	settingsPath, explicit := a.Get("config")
	if !explicit {
		settingsPath = config.DefaultSettingsFile
	}
	settings, err := config.LoadSettings(settingsPath, explicit)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Build(config.Sources{
		Args:     a,
		Env:      lookup,
		Settings: settings,
		Inspect:  inspect,
	})
	if err != nil {
		return nil, nil, err
	}
	return settings, cfg, nil
}
