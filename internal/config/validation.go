package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/conneroisu/htmplate/internal/logging"
)

// MaxQuietWindow bounds the debounce window; anything longer makes watch
// mode feel broken.
const MaxQuietWindow = 10 * time.Second

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String lists every issue with its suggestions
func (vr *ValidationResult) String() string {
	var builder strings.Builder
	write := func(title string, issues []ValidationError) {
		if len(issues) == 0 {
			return
		}
		builder.WriteString(title + ":\n")
		for _, issue := range issues {
			builder.WriteString(fmt.Sprintf("  %s: %s\n", issue.Field, issue.Message))
			for _, suggestion := range issue.Suggestions {
				builder.WriteString(fmt.Sprintf("    hint: %s\n", suggestion))
			}
		}
	}
	write("errors", vr.Errors)
	write("warnings", vr.Warnings)
	return builder.String()
}

func (vr *ValidationResult) addError(field string, value interface{}, message string, suggestions ...string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

func (vr *ValidationResult) addWarning(field string, value interface{}, message string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

// Validate checks every section of config
func Validate(config *Config) *ValidationResult {
	result := &ValidationResult{}
	validateWatchConfig(&config.Watch, result)
	validateToolConfig(config, result)
	validateBroadcastConfig(&config.Broadcast, result)
	validateLogConfig(&config.Log, result)
	return result
}

// validateConfig returns the first validation error
func validateConfig(config *Config) error {
	result := Validate(config)
	if result.HasErrors() {
		first := result.Errors[0]
		return &first
	}
	return nil
}

func validateWatchConfig(config *WatchConfig, result *ValidationResult) {
	if config.Root == "" {
		result.addError("watch.root", config.Root, "watch root cannot be empty", "Use '.' to watch the working directory")
	}

	if config.QuietWindow <= 0 {
		result.addError("watch.quiet_window", config.QuietWindow, "quiet window must be positive", "The default is 100ms")
	} else if config.QuietWindow > MaxQuietWindow {
		result.addError("watch.quiet_window", config.QuietWindow,
			fmt.Sprintf("quiet window cannot exceed %s", MaxQuietWindow))
	} else if config.QuietWindow < 10*time.Millisecond {
		result.addWarning("watch.quiet_window", config.QuietWindow,
			"quiet windows under 10ms may transform a file several times per save")
	}

	patterns := map[string]string{
		"watch.template_pattern": config.TemplatePattern,
		"watch.script_pattern":   config.ScriptPattern,
	}
	for field, pattern := range patterns {
		if pattern == "" {
			result.addError(field, pattern, "pattern cannot be empty")
		} else if !doublestar.ValidatePattern(pattern) {
			result.addError(field, pattern, "invalid glob pattern", "Patterns use doublestar syntax, e.g. **/*.template.html")
		}
	}

	for _, pattern := range config.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.addError("watch.ignore", pattern, fmt.Sprintf("invalid glob pattern %q", pattern))
		}
	}
}

func validateToolConfig(config *Config, result *ValidationResult) {
	if config.Formatter.Enabled && strings.TrimSpace(config.Formatter.Command) == "" {
		result.addError("formatter.command", config.Formatter.Command, "formatter command cannot be empty",
			"Set formatter.enabled to false to skip formatting")
	}
	if config.Formatter.CacheSize < 0 {
		result.addError("formatter.cache_size", config.Formatter.CacheSize, "cache size cannot be negative")
	}
	if strings.TrimSpace(config.Bundler.Command) == "" {
		result.addError("bundler.command", config.Bundler.Command, "bundler command cannot be empty")
	}
	if strings.TrimSpace(config.Assets.Directory) == "" {
		result.addError("assets.directory", config.Assets.Directory, "asset directory cannot be empty")
	}
}

func validateBroadcastConfig(config *BroadcastConfig, result *ValidationResult) {
	if config.Address == "" {
		return
	}

	host, port, err := net.SplitHostPort(config.Address)
	if err != nil {
		result.addError("broadcast.address", config.Address, err.Error(), "Use host:port, e.g. localhost:7070")
		return
	}
	if port == "" {
		result.addError("broadcast.address", config.Address, "port cannot be empty")
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		result.addWarning("broadcast.address", config.Address, "the status socket is reachable from other machines",
			"Use localhost:<port> to only accept local connections")
	}
	if len(config.AllowedOrigins) == 0 {
		result.addWarning("broadcast.allowed_origins", config.AllowedOrigins, "no origins are allowed, browsers cannot connect")
	}
}

func validateLogConfig(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.addError("log.level", config.Level, err.Error(), "Use one of debug, info, warn or error")
	}
	if config.Format != "text" && config.Format != "json" {
		result.addError("log.format", config.Format, "log format must be text or json")
	}
}
