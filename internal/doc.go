// Package internal contains the implementation packages of the htmplate CLI.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - types: attribute and component specs, raw elements and locations
//   - registry: component definitions, typed fields and attribute binding
//   - components: the <htmplate:... /> vocabulary and its render functions
//   - markup: attribute insertion into rendered fragments
//   - rewriter: the single pass tag rewriter and the rewrite orchestrator
//   - location: byte offset to line and column resolution
//   - errors: the error taxonomy and stacked error rendering
//   - build: formatter and bundler subprocesses, format cache and metrics
//   - watcher: classification, debounced change handling and the status table
//   - broadcast: websocket push of the status table
//   - assets: the embedded stylesheet, script and favicon
//   - config, logging, validation, version: ambient infrastructure
//
// # Data Flow
//
// A document flows through the packages in one direction:
//
//   - watcher classifies a changed file and calls build
//   - build reads the source and calls rewriter
//   - rewriter binds each component through registry and renders it
//   - on failure, errors resolves the offset through location
//   - build formats and writes the output, watcher redraws the table
//
// # Security Considerations
//
//   - Build only starts allowlisted tools and rejects shell metacharacters
//   - Component text is escaped and link targets are sanitized
//   - Broadcast validates websocket origins
package internal
