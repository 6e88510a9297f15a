package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/htmplate/internal/build"
	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/validation"
	"github.com/conneroisu/htmplate/internal/watcher"
)

var templateCmd = &cobra.Command{
	Use:     "template <source> [output]",
	Aliases: []string{"t"},
	Short:   "Template an HTML file",
	Long: `Expand the <htmplate:... /> elements of an HTML file and write the
formatted result. Without an output path, x.template.html is written to
x.html next to it.

Examples:
  htmplate template index.template.html
  htmplate template page.html public/page.html --assets public/assets`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTemplate,
}

var templateAssets string

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVarP(&templateAssets, "assets", "a", "", "asset directory the document links to (default from config)")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	source := args[0]
	if err := validation.ValidateFileExtension(source, []string{".html", ".htm"}); err != nil {
		return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid source "+source)
	}

	output, err := outputPath(args, watcher.TemplateOutput)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if templateAssets != "" {
		cfg.Assets.Directory = templateAssets
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	transformer, err := newTransformer(cfg)
	if err != nil {
		return err
	}

	perf := logger.StartOperation("template")
	result, err := transformer.TemplateFile(cmd.Context(), source, output)
	if err != nil {
		return err
	}
	perf.End(cmd.Context())

	printWarning(cmd.OutOrStdout(), "could not format templated HTML", result)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Templated `%s` in %dµs\n", output, result.Duration.Microseconds())
	return nil
}

// outputPath returns the explicit output argument or derives it from the
// source.
func outputPath(args []string, derive func(string) (string, bool)) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	output, ok := derive(args[0])
	if !ok {
		return "", errors.NewConfigError(errors.ErrCodeConfigInvalid, "cannot derive an output path for "+args[0]+", pass one explicitly")
	}
	return output, nil
}

func printWarning(w io.Writer, message string, result build.Result) {
	if result.Warning == nil {
		return
	}
	fmt.Fprintf(w, "! %s\n", message)
	for _, line := range strings.SplitAfter(errors.FormatStack(result.Warning, 2), "\n") {
		if line != "" {
			fmt.Fprintf(w, "  %s", line)
		}
	}
}
