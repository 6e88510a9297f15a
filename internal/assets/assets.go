// Package assets holds the stylesheet, script, declarations and favicon the
// components link to, and writes them to a site's asset directory.
package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/htmplate/internal/errors"
)

//go:embed static
var static embed.FS

// Files returns the names of the embedded assets.
func Files() []string {
	entries, err := fs.ReadDir(static, "static")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// MarkerName returns the name of the empty file recording which version
// wrote the assets.
func MarkerName(version string) string {
	return "assets-v" + strings.TrimPrefix(version, "v")
}

// projectMarkers are entries that identify a directory as a project root
// rather than an asset directory.
var projectMarkers = []string{".htmplate.yml", ".htmplate.yaml", ".git", "go.mod", "package.json", "deno.json"}

// Write replaces the contents of directory with the assets and a version
// marker file. It refuses to clear the filesystem root, the home directory,
// the working directory or one of its parents, and project roots.
func Write(directory, version string) error {
	if err := checkClearable(directory); err != nil {
		return err
	}
	if err := os.RemoveAll(directory); err != nil {
		return errors.WrapFilesystem(err, errors.ErrCodeWriteFailed, "could not clear asset directory", directory)
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return errors.WrapFilesystem(err, errors.ErrCodeWriteFailed, "could not create asset directory", directory)
	}

	for _, name := range Files() {
		content, err := static.ReadFile("static/" + name)
		if err != nil {
			return errors.WrapInternal(err, errors.ErrCodeInternalError, "could not read embedded asset "+name)
		}
		target := filepath.Join(directory, name)
		if err := os.WriteFile(target, content, 0o644); err != nil {
			return errors.WrapFilesystem(err, errors.ErrCodeWriteFailed, "could not write asset", target)
		}
	}

	marker := filepath.Join(directory, MarkerName(version))
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return errors.WrapFilesystem(err, errors.ErrCodeWriteFailed, "could not write version marker", marker)
	}
	return nil
}

// checkClearable rejects directories whose removal would take more than
// generated assets with it.
func checkClearable(directory string) error {
	refuse := func(reason string) error {
		return errors.NewFilesystemError(errors.ErrCodeUnsafeDirectory, "refusing to clear asset directory: "+reason, nil).WithPath(directory)
	}

	abs, err := filepath.Abs(directory)
	if err != nil {
		return errors.WrapFilesystem(err, errors.ErrCodeUnsafeDirectory, "could not resolve asset directory", directory)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	if filepath.Dir(abs) == abs {
		return refuse("it is the filesystem root")
	}
	if home, err := os.UserHomeDir(); err == nil && sameDirectory(abs, home) {
		return refuse("it is the home directory")
	}
	if wd, err := os.Getwd(); err == nil {
		if resolved, err := filepath.EvalSymlinks(wd); err == nil {
			wd = resolved
		}
		if within(wd, abs) {
			return refuse("it contains the working directory")
		}
	}
	for _, marker := range projectMarkers {
		if _, err := os.Lstat(filepath.Join(abs, marker)); err == nil {
			return refuse("it contains " + marker)
		}
	}
	return nil
}

func sameDirectory(a, b string) bool {
	if resolved, err := filepath.EvalSymlinks(b); err == nil {
		b = resolved
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
