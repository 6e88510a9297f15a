package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateArgument(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		wantErr bool
	}{
		{"flag", "--ext", false},
		{"relative path", "./src/index.ts", false},
		{"absolute path", "/home/user/site/index.ts", false},
		{"stdin marker", "-", false},
		{"semicolon", "fmt; rm -rf /", true},
		{"pipe", "fmt | cat /etc/passwd", true},
		{"backtick", "fmt`whoami`", true},
		{"substitution", "file$(whoami).ts", true},
		{"newline", "fmt\nrm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgument(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	allowed := map[string]bool{"deno": true}

	tests := []struct {
		name    string
		command string
		wantErr bool
	}{
		{"allowed", "deno", false},
		{"allowed absolute", "/usr/local/bin/deno", false},
		{"empty", "", true},
		{"not allowed", "rm", true},
		{"not allowed absolute", "/bin/sh", true},
		{"injection", "deno;ls", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommand(tt.command, allowed)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOrigin(t *testing.T) {
	allowed := []string{"localhost", "example.com:8080"}

	tests := []struct {
		name    string
		origin  string
		wantErr bool
	}{
		{"hostname match", "http://localhost:3000", false},
		{"host match", "https://example.com:8080", false},
		{"missing", "", true},
		{"wrong scheme", "file://localhost", true},
		{"unknown host", "http://evil.test", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrigin(tt.origin, allowed)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFileExtension(t *testing.T) {
	assert.NoError(t, ValidateFileExtension("index.template.HTML", []string{".html"}))
	assert.Error(t, ValidateFileExtension("index.ts", []string{".html"}))
	assert.Error(t, ValidateFileExtension("Makefile", []string{".html"}))
	assert.Error(t, ValidateFileExtension("", []string{".html"}))
}
