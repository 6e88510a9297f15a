// Package config provides configuration management for htmplate using Viper
// for loading from files, environment variables and command-line flags.
//
// The configuration file is YAML (.htmplate.yml by default); every key can be
// overridden with an HTMPLATE_ prefixed environment variable, e.g.
// HTMPLATE_WATCH_QUIET_WINDOW=250ms.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "HTMPLATE"

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".htmplate.yml"

type Config struct {
	Watch     WatchConfig     `yaml:"watch" mapstructure:"watch"`
	Formatter FormatterConfig `yaml:"formatter" mapstructure:"formatter"`
	Bundler   BundlerConfig   `yaml:"bundler" mapstructure:"bundler"`
	Assets    AssetsConfig    `yaml:"assets" mapstructure:"assets"`
	Broadcast BroadcastConfig `yaml:"broadcast" mapstructure:"broadcast"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

type WatchConfig struct {
	Root            string        `yaml:"root" mapstructure:"root"`
	QuietWindow     time.Duration `yaml:"quiet_window" mapstructure:"quiet_window"`
	TemplatePattern string        `yaml:"template_pattern" mapstructure:"template_pattern"`
	ScriptPattern   string        `yaml:"script_pattern" mapstructure:"script_pattern"`
	Ignore          []string      `yaml:"ignore" mapstructure:"ignore"`
}

type FormatterConfig struct {
	Command   string `yaml:"command" mapstructure:"command"`
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	CacheSize int    `yaml:"cache_size" mapstructure:"cache_size"`
}

type BundlerConfig struct {
	Command string `yaml:"command" mapstructure:"command"`
}

type AssetsConfig struct {
	Directory string `yaml:"directory" mapstructure:"directory"`
}

type BroadcastConfig struct {
	// Address enables the status websocket when set, e.g. "localhost:7070"
	Address        string   `yaml:"address" mapstructure:"address"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("watch.root", ".")
	v.SetDefault("watch.quiet_window", 100*time.Millisecond)
	v.SetDefault("watch.template_pattern", "**/*.template.html")
	v.SetDefault("watch.script_pattern", "**/index.ts")
	v.SetDefault("watch.ignore", []string{"**/node_modules/**", "**/.git/**"})

	v.SetDefault("formatter.command", "deno")
	v.SetDefault("formatter.enabled", true)
	v.SetDefault("formatter.cache_size", 128)

	v.SetDefault("bundler.command", "deno")

	v.SetDefault("assets.directory", "assets")

	v.SetDefault("broadcast.address", "")
	v.SetDefault("broadcast.allowed_origins", []string{"localhost", "127.0.0.1"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Bind makes v read HTMPLATE_ prefixed environment variables, with nested
// keys joined by underscores.
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
