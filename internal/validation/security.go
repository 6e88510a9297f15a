// Package validation checks the external inputs htmplate hands to other
// programs: tool commands, their arguments and websocket origins.
package validation

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// shellCharacters could change the meaning of an argument if it ever
// reached a shell.
var shellCharacters = []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\\", "\"", "'", "\n", "\r"}

// ValidateArgument rejects tool arguments containing shell metacharacters.
func ValidateArgument(arg string) error {
	for _, char := range shellCharacters {
		if strings.Contains(arg, char) {
			return fmt.Errorf("contains dangerous character: %q", char)
		}
	}
	return nil
}

// ValidateCommand checks a tool name against an allowlist. Absolute paths
// are allowed when their base name is.
func ValidateCommand(command string, allowedCommands map[string]bool) error {
	if command == "" {
		return fmt.Errorf("command cannot be empty")
	}

	name := command
	if filepath.IsAbs(command) {
		name = filepath.Base(command)
	}
	if !allowedCommands[name] {
		return fmt.Errorf("command '%s' is not allowed", command)
	}

	if err := ValidateArgument(command); err != nil {
		return fmt.Errorf("invalid command '%s': %w", command, err)
	}
	return nil
}

// ValidateOrigin checks a websocket Origin header against the allowed hosts.
func ValidateOrigin(origin string, allowedOrigins []string) error {
	if origin == "" {
		return fmt.Errorf("origin header is required")
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin format: %w", err)
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return fmt.Errorf("invalid origin scheme '%s': only http and https are allowed", originURL.Scheme)
	}

	for _, allowed := range allowedOrigins {
		if origin == allowed || originURL.Host == allowed || originURL.Hostname() == allowed {
			return nil
		}
	}
	return fmt.Errorf("origin '%s' is not in allowed origins list", origin)
}

// ValidateFileExtension checks filename against an allowlist of extensions,
// ignoring case.
func ValidateFileExtension(filename string, allowedExtensions []string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("file must have an extension")
	}

	for _, allowed := range allowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("file extension '%s' is not allowed", ext)
}
