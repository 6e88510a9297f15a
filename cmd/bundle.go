package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/validation"
	"github.com/conneroisu/htmplate/internal/watcher"
)

var bundleCmd = &cobra.Command{
	Use:     "bundle <source> [output]",
	Aliases: []string{"b"},
	Short:   "Bundle a script for the browser",
	Long: `Bundle and minify a TypeScript or JavaScript entry point with deno.
Without an output path, index.ts is written to index.js next to it.

Examples:
  htmplate bundle scripts/index.ts
  htmplate bundle app.ts public/app.js`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBundle,
}

func init() {
	rootCmd.AddCommand(bundleCmd)
}

func runBundle(cmd *cobra.Command, args []string) error {
	source := args[0]
	if err := validation.ValidateFileExtension(source, []string{".ts", ".tsx", ".mts", ".js", ".jsx", ".mjs"}); err != nil {
		return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid source "+source)
	}

	output, err := outputPath(args, watcher.ScriptOutput)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	transformer, err := newTransformer(cfg)
	if err != nil {
		return err
	}

	result, err := transformer.BundleScript(cmd.Context(), source, output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Bundled `%s` in %dms\n", output, result.Duration.Milliseconds())
	return nil
}
