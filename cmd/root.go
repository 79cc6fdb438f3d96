// =============================================================================
// Contentful CSV Importer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Running the root
// command performs an import; subcommands are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (cfimp name:value ...)
//   ├── fieldsCmd  (cfimp fields name:value ...)
//   └── versionCmd (cfimp version)
//
// ARGUMENTS:
//   Options are "name:value" words, not GNU flags, so Cobra's flag parsing
//   is disabled and the words are handed to internal/args unchanged. Help
//   is handled here for the same reason.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cfimp name:value [name:value ...]",
	Short: "cfimp - import CSV/TSV data into Contentful as entries",
	Long: `cfimp converts rows of a delimited text file (or an .xlsx sheet) into
Contentful entries and imports them with "contentful space import".

Required:
  model:<id>        Content type every row becomes
  space:<id>        Target space
  locale:<code>     Locale for columns without a [locale] suffix

Input:
  input:<path>      Data file (default import.csv; .xlsx reads a sheet)
  sheet:<name>      Worksheet for .xlsx input (default first sheet)
  enc:<name>        Text encoding (default utf8)
  delim:<d>         tab, com, pipe or a literal delimiter (default tab)
  fields:<list>     Field ids to use instead of the header row
  listdelim:<d>     Separator for list options and _tags cells (default ,)

Rows:
  offset:<n>        First row to import (1-based)
  limit:<n>         Number of rows to import from offset
  skiprows:<list>   Skip rows containing any term; prefix ! to invert

Entries:
  dfltvals:<list>   field=value defaults for empty cells
  mergevals:<list>  field=value values written into every entry
  skipfields:<list> Columns to ignore
  tagall:<list>     Tags added to every entry
  nocast            Keep true/false/null/numbers as text
  publish           Publish every entry

Run:
  env:<id>          Target environment (default master)
  mtoken:<token>    Management token (or CONTENTFUL_MANAGEMENT_TOKEN)
  preview           Print the entries and stop
  previewfile       Write the import file and stop before importing
  config:<path>     Settings file (default cfimp.yaml when present)
  verbose           Debug logging

Example:
  cfimp model:product space:abc123 locale:en-US delim:com input:products.csv publish`,

	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,

	RunE: func(cmd *cobra.Command, args []string) error {
		if wantsHelp(args) {
			return cmd.Help()
		}
		return runImport(cmd.Context(), args, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the command tree. This is called by main.main().
// An interrupt cancels the run, including a running importer.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes a user-facing error.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// wantsHelp reports whether the words ask for usage instead of a run.
func wantsHelp(words []string) bool {
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		switch w {
		case "-h", "--help", "help", "-help":
			return true
		}
	}
	return false
}
