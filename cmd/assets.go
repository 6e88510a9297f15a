package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/htmplate/internal/assets"
	"github.com/conneroisu/htmplate/internal/version"
)

var assetsCmd = &cobra.Command{
	Use:   "assets [directory]",
	Short: "Write the shared assets",
	Long: `Write the stylesheet, script, type declarations and favicon the
components link to. The directory is cleared first and receives an
assets-v<version> marker file. The filesystem root, the home directory, the
working directory and its parents, and directories holding a project file
(.htmplate.yml, .git, go.mod, package.json, deno.json) are never cleared.

Examples:
  htmplate assets                  # Use assets.directory from config
  htmplate assets public/assets`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAssets,
}

func init() {
	rootCmd.AddCommand(assetsCmd)
}

func runAssets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	directory := cfg.Assets.Directory
	if len(args) > 0 {
		directory = args[0]
	}

	if err := assets.Write(directory, version.GetVersion()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d assets to `%s`\n", len(assets.Files()), directory)
	return nil
}
