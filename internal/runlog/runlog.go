// Package runlog persists one JSON record per collector run for audit.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Record captures the outcome of a single collector run.
type Record struct {
	Timestamp    time.Time `json:"timestamp"`
	RunNumber    int       `json:"run_number"`
	Source       string    `json:"source,omitempty"`
	Strategy     string    `json:"strategy,omitempty"`
	Instrument   string    `json:"instrument,omitempty"`
	WeekEnding   string    `json:"week_ending,omitempty"`
	OutputPath   string    `json:"output_path,omitempty"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Writer persists run records to a directory as JSON files.
type Writer struct {
	dir   string
	seq   int
	nowFn func() time.Time
}

// NewWriter constructs a run log writer.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "runlog"
	}
	_ = os.MkdirAll(dir, 0o755)
	return &Writer{dir: dir, nowFn: time.Now}
}

// WriteRun writes a run record to a timestamped JSON file.
func (w *Writer) WriteRun(rec *Record) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("runlog: nil record")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}
	w.seq++
	rec.RunNumber = w.seq
	name := fmt.Sprintf("run_%s_%05d.json", rec.Timestamp.UTC().Format("20060102_150405"), w.seq)
	path := filepath.Join(w.dir, name)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
