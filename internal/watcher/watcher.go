package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/conneroisu/htmplate/internal/build"
	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/logging"
)

// DefaultQuietWindow is how long the event stream must stay silent before
// a batch of changes is processed.
const DefaultQuietWindow = 100 * time.Millisecond

// Transformer runs the transforms of watched files.
type Transformer interface {
	TemplateFile(ctx context.Context, source, output string) (build.Result, error)
	BundleScript(ctx context.Context, source, output string) (build.Result, error)
}

// FileStatus is the last outcome of transforming one watched file.
type FileStatus struct {
	Path        string
	Kind        Kind
	Output      string
	Invocations int
	Err         error
	Warning     error
	Duration    time.Duration
}

// OK reports whether the last transform succeeded.
func (f FileStatus) OK() bool {
	return f.Err == nil
}

// Options configure a Session.
type Options struct {
	QuietWindow time.Duration
	// Output receives the status table; nil disables drawing.
	Output io.Writer
	// OnSettled is called with the tracked files after every redraw.
	OnSettled func([]FileStatus)
	Logger    logging.Logger
}

// Session keeps the files under a root transformed.
//
// A session is driven by a single goroutine: Sweep and Run must not be
// called concurrently.
type Session struct {
	classifier  *Classifier
	transformer Transformer
	files       map[string]*FileStatus
	quiet       time.Duration
	out         io.Writer
	onSettled   func([]FileStatus)
	logger      logging.Logger
	batches     int
}

// NewSession creates a session over the root of classifier.
func NewSession(classifier *Classifier, transformer Transformer, opts Options) *Session {
	if opts.QuietWindow <= 0 {
		opts.QuietWindow = DefaultQuietWindow
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	return &Session{
		classifier:  classifier,
		transformer: transformer,
		files:       make(map[string]*FileStatus),
		quiet:       opts.QuietWindow,
		out:         opts.Output,
		onSettled:   opts.OnSettled,
		logger:      opts.Logger.WithComponent("watcher"),
	}
}

// Files returns the tracked files ordered by path.
func (s *Session) Files() []FileStatus {
	files := make([]FileStatus, 0, len(s.files))
	for _, status := range s.files {
		files = append(files, *status)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Sweep transforms every watched file under the root. An unreadable root
// is fatal; unreadable subdirectories are skipped.
func (s *Session) Sweep(ctx context.Context) error {
	_, err := s.sweep(ctx, s.classifier.Root(), nil)
	return err
}

// Run sweeps the root, subscribing source to every directory found, then
// re-runs transforms as change events settle until ctx is cancelled or the
// source fails. A settled batch is counted and redrawn only when it touched a
// tracked file, so writes to outputs and other untracked paths stay silent.
// Per-file failures are recorded in the file's status and never end the
// session.
func (s *Session) Run(ctx context.Context, source EventSource) error {
	if _, err := s.sweep(ctx, s.classifier.Root(), source); err != nil {
		return err
	}
	s.redraw()

	for {
		batch, err := s.collect(ctx, source)
		if err != nil {
			return err
		}

		changed := false
		for _, event := range batch {
			if s.apply(ctx, event, source) {
				changed = true
			}
		}
		if !changed {
			continue
		}
		s.batches++
		s.redraw()
	}
}

// sweep walks root breadth-first and reports whether it transformed any
// file. source may be nil.
func (s *Session) sweep(ctx context.Context, root string, source EventSource) (bool, error) {
	transformed := false
	queue := []string{root}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return transformed, err
		}

		dir := queue[0]
		queue = queue[1:]

		if source != nil {
			if err := source.Add(dir); err != nil {
				if dir == root {
					return transformed, errors.WrapFilesystem(err, errors.ErrCodeWatchFailed, "could not watch directory", dir)
				}
				s.logger.Warn(ctx, err, "could not watch directory", "path", dir)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root {
				return transformed, errors.WrapFilesystem(err, errors.ErrCodeReadFailed, "could not read directory", dir)
			}
			s.logger.Warn(ctx, err, "could not read directory", "path", dir)
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if s.classifier.Ignored(path) {
				continue
			}
			if entry.IsDir() {
				queue = append(queue, path)
				continue
			}
			if s.transform(ctx, path) {
				transformed = true
			}
		}
	}
	return transformed, nil
}

// collect blocks for the first event, then drains events until none
// arrives within the quiet window. Events are de-duplicated by path; the
// last event for a path wins.
func (s *Session) collect(ctx context.Context, source EventSource) ([]ChangeEvent, error) {
	var (
		order   []string
		latest  = make(map[string]ChangeEvent)
		timer   *time.Timer
		timeout <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	events := source.Events()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case err := <-source.Errors():
			return nil, errors.NewFilesystemError(errors.ErrCodeWatchFailed, "error while watching "+s.classifier.Root(), err)

		case event, ok := <-events:
			if !ok {
				return nil, errors.NewFilesystemError(errors.ErrCodeWatchFailed, "event source closed", nil)
			}
			path := canonical(event.Path)
			if _, seen := latest[path]; !seen {
				order = append(order, path)
			}
			event.Path = path
			latest[path] = event

			if timer == nil {
				timer = time.NewTimer(s.quiet)
				timeout = timer.C
			} else {
				timer.Reset(s.quiet)
			}

		case <-timeout:
			batch := make([]ChangeEvent, 0, len(order))
			for _, path := range order {
				batch = append(batch, latest[path])
			}
			return batch, nil
		}
	}
}

// apply handles one settled event and reports whether the tracked files
// changed.
func (s *Session) apply(ctx context.Context, event ChangeEvent, source EventSource) bool {
	if s.classifier.Ignored(event.Path) {
		return false
	}

	if event.Type.Removes() {
		return s.evict(event.Path)
	}

	info, err := os.Stat(event.Path)
	switch {
	case os.IsNotExist(err):
		return s.evict(event.Path)
	case err == nil && info.IsDir():
		transformed, err := s.sweep(ctx, event.Path, source)
		if err != nil {
			s.logger.Warn(ctx, err, "could not sweep new directory", "path", event.Path)
		}
		return transformed
	default:
		return s.transform(ctx, event.Path)
	}
}

// transform runs the transform of path if it is watched and reports whether
// it ran.
func (s *Session) transform(ctx context.Context, path string) bool {
	kind, output, ok := s.classifier.Classify(path)
	if !ok {
		return false
	}

	status, tracked := s.files[path]
	if !tracked {
		status = &FileStatus{Path: path, Kind: kind, Output: output}
		s.files[path] = status
	}

	var (
		result build.Result
		err    error
	)
	switch kind {
	case KindScript:
		result, err = s.transformer.BundleScript(ctx, path, output)
	default:
		result, err = s.transformer.TemplateFile(ctx, path, output)
	}

	status.Invocations++
	status.Err = err
	status.Warning = result.Warning
	status.Duration = result.Duration

	if err != nil {
		s.logger.Debug(ctx, kind.FailureVerb(), "path", path, "error", errors.FormatError(err))
		return true
	}
	s.logger.Debug(ctx, kind.Verb(), "path", path, "output", output, "duration", result.Duration)
	return true
}

// evict forgets path and every tracked file below it and reports whether
// anything was tracked.
func (s *Session) evict(path string) bool {
	evicted := false
	prefix := path + string(filepath.Separator)
	for tracked := range s.files {
		if tracked == path || strings.HasPrefix(tracked, prefix) {
			delete(s.files, tracked)
			evicted = true
		}
	}
	return evicted
}

func (s *Session) redraw() {
	files := s.Files()
	if s.out != nil {
		WriteStatus(s.out, s.classifier.Root(), files, s.batches)
	}
	if s.onSettled != nil {
		s.onSettled(files)
	}
}

// canonical makes path absolute and resolves symlinks in its directory. The
// final element is kept as named, so a removed file still canonicalizes to
// the path it was tracked under.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs
	}
	return filepath.Join(dir, filepath.Base(abs))
}
