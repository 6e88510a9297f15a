package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/htmplate/internal/components"
	"github.com/conneroisu/htmplate/internal/types"
)

var listCmd = &cobra.Command{
	Use:     "list [search]",
	Aliases: []string{"l"},
	Short:   "List the components",
	Long: `List every <htmplate:... /> component with its description and
attributes. Required attributes are marked with *.

Examples:
  htmplate list                    # List all components
  htmplate list form               # Components whose tag contains "form"
  htmplate list -f json            # Output as JSON
  htmplate list --format yaml      # Output as YAML`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var listFormat string

var listFormats = []string{"table", "json", "yaml"}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table|json|yaml)")
	AddFlagValidation(listCmd, "format", func(format string) error {
		return validateFormat(format, listFormats)
	})
}

func runList(cmd *cobra.Command, args []string) error {
	registry := components.Default()

	specs := registry.Specs()
	if len(args) > 0 {
		specs = registry.Search(args[0])
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(listFormat) {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(specs)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(specs)
	default:
		if len(specs) == 0 {
			fmt.Fprintln(out, "No components found.")
			return nil
		}
		for _, spec := range specs {
			writeSpec(out, spec)
		}
		return nil
	}
}

// writeSpec prints a component followed by its attributes, padded to the
// widest attribute name.
func writeSpec(w io.Writer, spec types.ComponentSpec) {
	fmt.Fprintf(w, "<%s /> %s\n", spec.Tag, spec.Description)

	width := 0
	for _, attribute := range spec.Attributes {
		width = max(width, len(attribute.Name))
	}

	for _, attribute := range spec.Attributes {
		marker := " "
		if attribute.Required {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%s[%s]: %s\n",
			strings.Repeat(" ", width-len(attribute.Name)+2), marker, attribute.Name, attribute.Description)
	}
	fmt.Fprintln(w)
}
