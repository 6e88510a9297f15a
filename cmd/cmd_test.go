package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/htmplate/internal/assets"
	htmperrors "github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/types"
	"github.com/conneroisu/htmplate/internal/version"
)

// fakeRunner answers every tool invocation without starting a process.
type fakeRunner struct {
	missing bool
	stdout  string
	args    [][]string
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) Run(_ context.Context, _ string, args []string, stdin []byte) ([]byte, []byte, error) {
	f.args = append(f.args, args)
	if f.stdout != "" {
		return []byte(f.stdout), nil, nil
	}
	return stdin, nil, nil
}

// execute runs the command tree with args from an empty working directory.
func execute(t *testing.T, fake *fakeRunner, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())

	previous := runner
	runner = fake
	t.Cleanup(func() { runner = previous })

	viper.Reset()
	bindFlags()

	cfgFile = ""
	verbose = false
	listFormat = "table"
	versionFormat = "text"
	versionShort = false
	templateAssets = ""
	watchAssets = ""
	watchBroadcast = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, &fakeRunner{}, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "<htmplate:title /> ")
	assert.Contains(t, out, "<htmplate:form-text-input /> ")
	assert.Contains(t, out, "*[text]: ")
	assert.Contains(t, out, " [icon]: ")
}

func TestListCommandSearch(t *testing.T) {
	out, err := execute(t, &fakeRunner{}, "list", "FORM")
	require.NoError(t, err)

	assert.Contains(t, out, "<htmplate:form-submit />")
	assert.NotContains(t, out, "<htmplate:title />")

	out, err = execute(t, &fakeRunner{}, "list", "nothing-matches")
	require.NoError(t, err)
	assert.Equal(t, "No components found.\n", out)
}

func TestListCommandJSON(t *testing.T) {
	out, err := execute(t, &fakeRunner{}, "list", "--format", "json")
	require.NoError(t, err)

	var specs []types.ComponentSpec
	require.NoError(t, json.Unmarshal([]byte(out), &specs))
	require.NotEmpty(t, specs)
	assert.Equal(t, "htmplate:title", specs[0].Tag)
	for _, spec := range specs {
		assert.True(t, types.HasNamespace(spec.Tag), spec.Tag)
	}
}

func TestListCommandYAML(t *testing.T) {
	out, err := execute(t, &fakeRunner{}, "list", "hr", "-f", "yaml")
	require.NoError(t, err)

	var specs []types.ComponentSpec
	require.NoError(t, yaml.Unmarshal([]byte(out), &specs))
	require.Len(t, specs, 1)
	assert.Equal(t, "htmplate:hr", specs[0].Tag)
}

func TestListCommandRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, &fakeRunner{}, "list", "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestTemplateCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "index.template.html")
	require.NoError(t, os.WriteFile(source, []byte(`<htmplate:title text="Hi"/>`), 0o644))

	out, err := execute(t, &fakeRunner{missing: true}, "template", source)
	require.NoError(t, err)

	assert.Contains(t, out, "! could not format templated HTML\n  the system does not have `deno`\n")
	assert.Contains(t, out, "✓ Templated `"+filepath.Join(dir, "index.html")+"` in ")

	written, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "<!-- generated by htmplate v"+version.GetVersion()+" -->\n"))
	assert.Contains(t, string(written), "<h1>Hi</h1>")
	assert.NotContains(t, string(written), "htmplate:title")
}

func TestTemplateCommandExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "page.html")
	output := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(source, []byte(`<head><htmplate:metadata/></head>`), 0o644))

	fake := &fakeRunner{}
	_, err := execute(t, fake, "template", source, output, "--assets", filepath.Join(dir, "static"))
	require.NoError(t, err)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), `href="static/lib.min.css"`)
	require.Len(t, fake.args, 1)
	assert.Equal(t, []string{"fmt", "--ext", "html", "-"}, fake.args[0])
}

func TestTemplateCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, &fakeRunner{}, "template", filepath.Join(dir, "index.ts"))
	assert.Error(t, err, "sources must be HTML")

	_, err = execute(t, &fakeRunner{}, "template", filepath.Join(dir, "page.html"))
	assert.Error(t, err, "page.html has no derived output")

	source := filepath.Join(dir, "broken.template.html")
	require.NoError(t, os.WriteFile(source, []byte("<p>\n<htmplate:hr/>"), 0o644))
	_, err = execute(t, &fakeRunner{}, "template", source)
	require.Error(t, err)
	assert.True(t, htmperrors.IsDocumentError(err))

	var stack bytes.Buffer
	printError(&stack, err)
	assert.Contains(t, stack.String(), "✗ invalid `htmplate:hr` at "+source+":2:1\n")
	assert.Contains(t, stack.String(), "  missing required attribute `text`")
}

func TestBundleCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "index.ts")
	require.NoError(t, os.WriteFile(source, []byte("export {}"), 0o644))

	out, err := execute(t, &fakeRunner{stdout: "x();"}, "bundle", source)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Bundled `"+filepath.Join(dir, "index.js")+"`")

	written, err := os.ReadFile(filepath.Join(dir, "index.js"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(written), "x();"))

	_, err = execute(t, &fakeRunner{missing: true}, "bundle", source)
	assert.True(t, htmperrors.IsToolMissing(err))
}

func TestAssetsCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")

	out, err := execute(t, &fakeRunner{}, "assets", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote ")

	for _, name := range assets.Files() {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.FileExists(t, filepath.Join(dir, assets.MarkerName(version.GetVersion())))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, &fakeRunner{}, "version", "--format", "json")
	require.NoError(t, err)

	var info version.BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.GetVersion(), info.Version)

	out, err = execute(t, &fakeRunner{}, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "htmplate "+version.GetVersion()))

	_, err = execute(t, &fakeRunner{}, "version", "--format", "toml")
	assert.Error(t, err)
}

func TestWatchCommandRequiresDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, &fakeRunner{}, "watch", filepath.Join(dir, "missing"))
	var fsErr *htmperrors.HtmplateError
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, htmperrors.ErrorTypeFilesystem, fsErr.Type)

	file := filepath.Join(dir, "file.html")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = execute(t, &fakeRunner{}, "watch", file)
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, htmperrors.ErrCodeWatchFailed, fsErr.Code)
}

func TestConfigFileFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "htmplate.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: loud\n"), 0o644))
	t.Setenv("HTMPLATE_CONFIG_FILE", configPath)

	_, err := execute(t, &fakeRunner{}, "assets", filepath.Join(dir, "assets"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
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
