// =============================================================================
// Contentful CSV Importer - Fields Command
// =============================================================================
//
// This file defines the 'fields' command, which reads only the header of the
// input and prints how each column will be mapped. Nothing is converted,
// written or imported.
//
// COMMAND USAGE:
//   cfimp fields input:products.csv delim:com locale:en-US
//
// OUTPUT:
//   COLUMN         FIELD    LOCALE
//   title          title    en-US
//   title[fr]      title    fr
//   _tags          (tags)
//   price          (skipped)
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cfimp/internal/args"
	"github.com/ginjaninja78/cfimp/internal/config"
	"github.com/ginjaninja78/cfimp/internal/converter"
)

// fieldsCmd represents the 'fields' command.
var fieldsCmd = &cobra.Command{
	Use:   "fields name:value [name:value ...]",
	Short: "Show how the input's columns map to fields and locales",
	Long: `Reads the header row of the input (or the "fields" option) and prints
the field id and locale every column is imported as. Accepts the same
options as an import; only "locale" is required.`,

	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,

	RunE: func(cmd *cobra.Command, words []string) error {
		if wantsHelp(words) {
			return cmd.Help()
		}
		return runFields(words, os.LookupEnv, cmd.OutOrStdout())
	},
}

// runFields prints the column mapping.
func runFields(words []string, lookup config.Lookup, out io.Writer) error {
	_, cfg, err := loadRunConfig(args.Parse(words), lookup, true)
	if err != nil {
		return err
	}

	table, err := converter.LoadTable(cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tFIELD\tLOCALE")
	for _, token := range table.Header {
		spec := converter.ParseField(token)
		switch {
		case cfg.IsSkippedField(token, spec.ID):
			fmt.Fprintf(tw, "%s\t(skipped)\t\n", token)
		case token == cfg.TagsColumn:
			fmt.Fprintf(tw, "%s\t(tags)\t\n", token)
		case token == cfg.IDColumn:
			fmt.Fprintf(tw, "%s\t(entry id)\t\n", token)
		default:
			fmt.Fprintf(tw, "%s\t%s\t%s\n", token, spec.ID, spec.LocaleOr(cfg.Locale))
		}
	}
	for _, m := range cfg.MergeValues {
		spec := converter.ParseField(m.Key)
		fmt.Fprintf(tw, "(mergevals)\t%s\t%s\n", spec.ID, spec.LocaleOr(cfg.Locale))
	}
	return tw.Flush()
}

// init registers the fields command with the root command.
func init() {
	rootCmd.AddCommand(fieldsCmd)
}
