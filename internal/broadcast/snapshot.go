package broadcast

import (
	"strings"
	"time"

	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/watcher"
)

// Snapshot is the status table sent to clients.
type Snapshot struct {
	Root      string       `json:"root"`
	Files     []FileReport `json:"files"`
	Timestamp time.Time    `json:"timestamp"`
}

// FileReport is one row of the status table.
type FileReport struct {
	Path        string `json:"path"`
	Kind        string `json:"kind"`
	Output      string `json:"output"`
	Invocations int    `json:"invocations"`
	OK          bool   `json:"ok"`
	Error       string `json:"error,omitempty"`
	Warning     string `json:"warning,omitempty"`
	DurationUS  int64  `json:"duration_us"`
}

// NewSnapshot converts the tracked files of a watch session.
func NewSnapshot(root string, files []watcher.FileStatus) Snapshot {
	reports := make([]FileReport, 0, len(files))
	for _, file := range files {
		reports = append(reports, FileReport{
			Path:        file.Path,
			Kind:        file.Kind.String(),
			Output:      file.Output,
			Invocations: file.Invocations,
			OK:          file.OK(),
			Error:       strings.TrimSuffix(errors.FormatStack(file.Err, 2), "\n"),
			Warning:     strings.TrimSuffix(errors.FormatStack(file.Warning, 2), "\n"),
			DurationUS:  file.Duration.Microseconds(),
		})
	}
	return Snapshot{Root: root, Files: reports, Timestamp: time.Now()}
}
