package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	htmperrors "github.com/conneroisu/htmplate/internal/errors"
)

func TestFiles(t *testing.T) {
	assert.ElementsMatch(t, []string{"favicon.svg", "lib.d.ts", "lib.js", "lib.min.css"}, Files())
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	stale := filepath.Join(dir, "assets-v0.0.1")
	require.NoError(t, os.WriteFile(stale, nil, 0o644))

	require.NoError(t, Write(dir, "v1.2.0"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"assets-v1.2.0", "favicon.svg", "lib.d.ts", "lib.js", "lib.min.css"}, names)

	css, err := os.ReadFile(filepath.Join(dir, "lib.min.css"))
	require.NoError(t, err)
	assert.Contains(t, string(css), ".collapse{display:none}")

	marker, err := os.Stat(filepath.Join(dir, "assets-v1.2.0"))
	require.NoError(t, err)
	assert.Zero(t, marker.Size())
}

func TestWriteCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "assets")
	require.NoError(t, Write(dir, "dev"))
	assert.FileExists(t, filepath.Join(dir, "assets-vdev"))
	assert.FileExists(t, filepath.Join(dir, "lib.js"))
}

func TestWriteRefusesUnsafeDirectories(t *testing.T) {
	project := t.TempDir()
	keep := filepath.Join(project, "index.template.html")
	require.NoError(t, os.WriteFile(keep, []byte("<p></p>"), 0o644))
	chdir(t, project)

	configured := filepath.Join(t.TempDir(), "site")
	require.NoError(t, os.MkdirAll(configured, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configured, ".htmplate.yml"), nil, 0o644))

	testCases := []struct {
		name      string
		directory string
	}{
		{"working directory", "."},
		{"parent of working directory", ".."},
		{"filesystem root", string(filepath.Separator)},
		{"project root", configured},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Write(tc.directory, "dev")

			var fsErr *htmperrors.HtmplateError
			require.True(t, errors.As(err, &fsErr))
			assert.Equal(t, htmperrors.ErrCodeUnsafeDirectory, fsErr.Code)
		})
	}

	assert.FileExists(t, keep)
	assert.FileExists(t, filepath.Join(configured, ".htmplate.yml"))

	require.NoError(t, Write("assets", "dev"))
	assert.FileExists(t, filepath.Join(project, "assets", "lib.js"))
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Open(".")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		if dir, err = os.Getwd(); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		err := oldwd.Chdir()
		oldwd.Close()
		if err != nil {
			panic("chdir: " + err.Error())
		}
	})
}
