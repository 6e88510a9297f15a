// Package cmd provides the command-line interface for htmplate.
//
// Configuration System:
//
//	Settings are read with clear precedence:
//	1. Command-line flags (--config, --log-level, ...) - highest priority
//	2. HTMPLATE_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (HTMPLATE_WATCH_QUIET_WINDOW, ...)
//	4. Configuration files (.htmplate.yml) - lowest priority
//
// A .env file in the working directory is loaded before the environment is
// read.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/htmplate/internal/config"
	"github.com/conneroisu/htmplate/internal/errors"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "htmplate",
	Short: "Template <htmplate:... /> elements in HTML",
	Long: `htmplate expands a small vocabulary of <htmplate:... /> components into
plain HTML and keeps a directory of templates and scripts transformed while
you edit them.

Quick Start:
  htmplate list                               List the components
  htmplate template index.template.html       Write index.html
  htmplate assets assets                      Write the shared assets
  htmplate watch .                            Watch the current directory

Documentation: https://github.com/conneroisu/htmplate`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the command tree and prints a failure as an error stack.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .htmplate.yml, can also use HTMPLATE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level debug")
	bindFlags()
}

// bindFlags binds the persistent flags to their configuration keys.
func bindFlags() {
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig points viper at the configuration file and the environment.
func initConfig() {
	// a missing .env file is not an error
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("HTMPLATE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".htmplate")
	}

	config.Bind(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "✗ %s", errors.FormatStack(err, 2))
}
