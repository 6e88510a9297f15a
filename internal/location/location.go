// Package location converts byte offsets in a source document into
// human readable file positions.
package location

import (
	"os"
	"path/filepath"

	"github.com/conneroisu/htmplate/internal/types"
)

// Resolve converts a byte offset within src into a 1-based line and column.
//
// The scan works purely on the bytes handed in. Callers must pass the exact
// bytes the offset was taken from rather than re-reading the file, which may
// have changed on disk since.
func Resolve(offset int, src []byte, path string) types.Location {
	line, column := 1, 1
	for consumed := 0; consumed < offset && consumed < len(src); consumed++ {
		if src[consumed] == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}

	return types.FilePosition(offset, displayPath(path), line, column)
}

// ResolveLocation resolves loc against src. Already resolved locations are
// returned unchanged.
func ResolveLocation(loc types.Location, src []byte, path string) types.Location {
	if loc.Resolved() {
		return loc
	}
	return Resolve(loc.Offset, src, path)
}

// displayPath shortens absolute paths below the working directory.
func displayPath(path string) string {
	if path == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(cwd, path)
	if err != nil || len(rel) >= 2 && rel[:2] == ".." {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
