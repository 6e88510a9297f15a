package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultFormatCacheSize is the number of formatted documents kept.
const DefaultFormatCacheSize = 128

// Formatter formats HTML with `deno fmt`.
type Formatter struct {
	tool  tool
	cache *lru.Cache[string, string]
}

// NewFormatter creates a formatter that runs command through runner and
// remembers the output for the last cacheSize distinct inputs.
func NewFormatter(runner Runner, command string, cacheSize int) (*Formatter, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultFormatCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create format cache: %w", err)
	}

	return &Formatter{
		tool:  tool{runner: runner, command: command},
		cache: cache,
	}, nil
}

// Format pipes html through the formatter. cached reports whether the
// result came from the cache. Failures are *errors.SubprocessError.
func (f *Formatter) Format(ctx context.Context, html string) (formatted string, cached bool, err error) {
	key := f.key(html)
	if formatted, ok := f.cache.Get(key); ok {
		return formatted, true, nil
	}

	stdout, err := f.tool.run(ctx, []string{"fmt", "--ext", "html"}, []string{"-"}, []byte(html))
	if err != nil {
		return "", false, err
	}

	formatted = string(stdout)
	f.cache.Add(key, formatted)
	return formatted, false, nil
}

// key identifies an input by its SHA-256 digest.
func (f *Formatter) key(html string) string {
	sum := sha256.Sum256([]byte(html))
	return hex.EncodeToString(sum[:])
}
