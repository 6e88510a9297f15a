package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/htmplate/internal/version"
)

var (
	versionFormat string
	versionShort  bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for htmplate including:

- Semantic version number (also stamped into templated documents)
- Git commit hash
- Build timestamp
- Go version used for compilation
- Target platform (OS/architecture)

Examples:
  htmplate version                # Show version
  htmplate version --short        # Show the version number only
  htmplate version --format json  # Output as JSON`,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json, yaml)")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
	versionCmd.Flags().Bool("detailed", false, "Show detailed version information")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	detailed, _ := cmd.Flags().GetBool("detailed")
	out := cmd.OutOrStdout()

	switch versionFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(version.GetBuildInfo())
	case "yaml":
		return yaml.NewEncoder(out).Encode(version.GetBuildInfo())
	case "text":
		switch {
		case versionShort:
			fmt.Fprintln(out, version.GetShortVersion())
		case detailed:
			fmt.Fprintln(out, version.GetDetailedVersion())
			if version.IsRelease() {
				fmt.Fprintln(out, "Build type: release")
			} else {
				fmt.Fprintln(out, "Build type: development")
			}
		default:
			outputVersionDefault(cmd)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, yaml)", versionFormat)
	}
}

func outputVersionDefault(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	info := version.GetBuildInfo()

	fmt.Fprintf(out, "htmplate %s", info.Version)
	if info.GitCommit != "unknown" && len(info.GitCommit) >= 7 {
		fmt.Fprintf(out, " (%s)", info.GitCommit[:7])
	}
	fmt.Fprintln(out)

	if !info.BuildTime.IsZero() {
		fmt.Fprintf(out, "Built: %s\n", info.BuildTime.Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "Platform: %s\n", info.Platform)
}
