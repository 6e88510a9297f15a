package watcher

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind is the transform a watched file is fed through.
type Kind int

const (
	// KindTemplate files are expanded by the rewriter.
	KindTemplate Kind = iota
	// KindScript files are bundled for the browser.
	KindScript
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindScript:
		return "script"
	default:
		return "unknown"
	}
}

// Verb is the past tense of the transform, used on success.
func (k Kind) Verb() string {
	if k == KindScript {
		return "bundled"
	}
	return "templated"
}

// FailureVerb describes a failed transform.
func (k Kind) FailureVerb() string {
	if k == KindScript {
		return "could not bundle"
	}
	return "could not template"
}

// Rules configure which files are watched.
type Rules struct {
	TemplatePattern string
	ScriptPattern   string
	Ignore          []string
}

// DefaultRules returns the conventional file layout.
func DefaultRules() Rules {
	return Rules{
		TemplatePattern: "**/*.template.html",
		ScriptPattern:   "**/index.ts",
		Ignore:          []string{"**/node_modules/**", "**/.git/**"},
	}
}

// Classifier maps paths under a root to their transform and output path.
type Classifier struct {
	root  string
	rules Rules
}

// NewClassifier creates a classifier for paths under root.
func NewClassifier(root string, rules Rules) (*Classifier, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	patterns := append([]string{rules.TemplatePattern, rules.ScriptPattern}, rules.Ignore...)
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
	}

	return &Classifier{root: filepath.Clean(abs), rules: rules}, nil
}

// Root returns the absolute watch root with symlinks resolved.
func (c *Classifier) Root() string {
	return c.root
}

// Ignored reports whether path matches an ignore pattern or lies outside
// the root.
func (c *Classifier) Ignored(path string) bool {
	rel, ok := c.relative(path)
	if !ok {
		return true
	}
	for _, pattern := range c.rules.Ignore {
		if match(pattern, rel) {
			return true
		}
	}
	return false
}

// Classify returns the kind of path and the output it is transformed to.
// ok is false for files that are not watched.
func (c *Classifier) Classify(path string) (kind Kind, output string, ok bool) {
	if c.Ignored(path) {
		return 0, "", false
	}
	rel, _ := c.relative(path)

	switch {
	case match(c.rules.TemplatePattern, rel):
		output, ok = TemplateOutput(path)
		return KindTemplate, output, ok
	case match(c.rules.ScriptPattern, rel):
		output, ok = ScriptOutput(path)
		return KindScript, output, ok
	default:
		return 0, "", false
	}
}

func (c *Classifier) relative(path string) (string, bool) {
	rel, err := filepath.Rel(c.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func match(pattern, rel string) bool {
	if pattern == "" {
		return false
	}
	matched, err := doublestar.Match(pattern, rel)
	return err == nil && matched
}

// TemplateOutput drops the ".template" segment: pages/a.template.html
// becomes pages/a.html.
func TemplateOutput(path string) (string, bool) {
	dir, base := filepath.Split(path)
	output := strings.Replace(base, ".template.", ".", 1)
	if output == base {
		return "", false
	}
	return filepath.Join(dir, output), true
}

// ScriptOutput swaps the extension for ".js": index.ts becomes index.js.
func ScriptOutput(path string) (string, bool) {
	ext := filepath.Ext(path)
	if ext == ".js" {
		return "", false
	}
	return strings.TrimSuffix(path, ext) + ".js", true
}
