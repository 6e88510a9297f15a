package build

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/rewriter"
)

// Result describes one successful transform.
type Result struct {
	// Warning is set when the output was written in degraded form, e.g.
	// unformatted because the formatter is missing
	Warning  error
	Duration time.Duration
	CacheHit bool
}

// Transformer turns sources into outputs.
type Transformer struct {
	rewriter  *rewriter.Rewriter
	formatter *Formatter
	bundler   *Bundler
	metrics   *BuildMetrics

	// assetDirectory is where the shared assets are written
	assetDirectory string
}

// NewTransformer creates a transformer. formatter may be nil to skip
// formatting.
func NewTransformer(rw *rewriter.Rewriter, formatter *Formatter, bundler *Bundler, assetDirectory string) *Transformer {
	return &Transformer{
		rewriter:       rw,
		formatter:      formatter,
		bundler:        bundler,
		metrics:        NewBuildMetrics(),
		assetDirectory: assetDirectory,
	}
}

// Metrics returns the transform metrics.
func (t *Transformer) Metrics() *BuildMetrics {
	return t.metrics
}

// TemplateFile expands the components of source and writes the formatted
// document to output. A formatter failure is returned as Result.Warning
// after writing the unformatted document.
func (t *Transformer) TemplateFile(ctx context.Context, source, output string) (result Result, err error) {
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		t.metrics.RecordBuild(result, err)
	}()

	src, err := os.ReadFile(source)
	if err != nil {
		return result, errors.WrapFilesystem(err, errors.ErrCodeReadFailed, "could not read source", source)
	}

	document, err := t.rewriter.Replace(src, source, rewriter.Options{AssetPath: t.assetPath(output)})
	if err != nil {
		return result, err
	}

	if t.formatter != nil {
		formatted, cached, formatErr := t.formatter.Format(ctx, document)
		if formatErr != nil {
			result.Warning = formatErr
		} else {
			document = formatted
			result.CacheHit = cached
		}
	}

	if err := writeOutput(output, document); err != nil {
		return result, err
	}
	return result, nil
}

// BundleScript bundles source and writes the bundle to output. Nothing is
// written when bundling fails.
func (t *Transformer) BundleScript(ctx context.Context, source, output string) (result Result, err error) {
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		t.metrics.RecordBuild(result, err)
	}()

	if _, err := os.Stat(source); err != nil {
		return result, errors.WrapFilesystem(err, errors.ErrCodeReadFailed, "could not read source", source)
	}

	bundle, err := t.bundler.Bundle(ctx, source)
	if err != nil {
		return result, err
	}

	if err := writeOutput(output, bundle); err != nil {
		return result, err
	}
	return result, nil
}

// assetPath returns the asset directory relative to the directory of
// output, with forward slashes.
func (t *Transformer) assetPath(output string) string {
	assets, err := filepath.Abs(t.assetDirectory)
	if err != nil {
		return filepath.ToSlash(t.assetDirectory)
	}
	dir, err := filepath.Abs(filepath.Dir(output))
	if err != nil {
		return filepath.ToSlash(t.assetDirectory)
	}

	rel, err := filepath.Rel(dir, assets)
	if err != nil {
		return filepath.ToSlash(assets)
	}
	return filepath.ToSlash(rel)
}

func writeOutput(output, content string) error {
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		return errors.WrapFilesystem(err, errors.ErrCodeWriteFailed, "could not write output", output).
			WithContext("bytes", len(content))
	}
	return nil
}
