package build

import (
	"context"
	"strings"
)

// bundleHeaders keep deno tooling from checking the generated bundle.
var bundleHeaders = []string{
	"// deno-fmt-ignore-file",
	"// deno-lint-ignore-file",
	"// @ts-nocheck",
}

// Bundler bundles browser scripts with `deno bundle`.
type Bundler struct {
	tool tool
}

// NewBundler creates a bundler that runs command through runner.
func NewBundler(runner Runner, command string) *Bundler {
	return &Bundler{tool: tool{runner: runner, command: command}}
}

// Bundle returns the minified bundle of source with the ignore headers in
// front. Failures are *errors.SubprocessError.
func (b *Bundler) Bundle(ctx context.Context, source string) (string, error) {
	stdout, err := b.tool.run(ctx, []string{"bundle", "--platform", "browser", "--minify"}, []string{source}, nil)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, header := range bundleHeaders {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	out.Write(stdout)
	return out.String(), nil
}
