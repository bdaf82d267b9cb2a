// Package runlog keeps a local history of generations, one JSON line each.
package runlog

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"level-layout/internal/gamemap"
	"level-layout/internal/generate"
)

const fileName = "generations.jsonl"

// Entry records the outcome of one generation.
type Entry struct {
	Timestamp  time.Time     `json:"timestamp"`
	Seed       string        `json:"seed"`
	TreeDigest string        `json:"tree_digest"`
	Rooms      int           `json:"rooms"`
	Hallways   int           `json:"hallways"`
	Unrouted   int           `json:"unrouted"`
	Bounds     *gamemap.Rect `json:"bounds,omitempty"`
	DurationMs int64         `json:"duration_ms"`
	Cached     bool          `json:"cached,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// NewEntry summarises layout. err, when set, is recorded in place of the
// layout's counts.
func NewEntry(seed, treeDigest string, layout *generate.Layout, elapsed time.Duration, err error) Entry {
	e := Entry{
		Timestamp:  time.Now().UTC(),
		Seed:       seed,
		TreeDigest: treeDigest,
		DurationMs: elapsed.Milliseconds(),
	}
	if err != nil {
		e.Error = err.Error()
		return e
	}
	if layout != nil {
		e.Rooms = len(layout.Rooms)
		e.Hallways = len(layout.Hallways)
		e.Unrouted = len(layout.Unrouted)
		e.Bounds = layout.Bounds
	}
	return e
}

// Save appends e to generations.jsonl. Errors are logged, never returned.
func Save(e Entry, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := Dir()
	if err != nil {
		logger.Warn("run log: cannot determine data dir", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("run log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, fileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("run log: cannot open file", "error", err)
		return
	}
	defer f.Close()
	data, err := json.Marshal(e)
	if err != nil {
		logger.Warn("run log: cannot marshal JSON", "error", err)
		return
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		logger.Warn("run log: write failed", "error", err)
	}
}

// Dir returns $XDG_DATA_HOME/level-layout, falling back to
// ~/.local/share/level-layout.
func Dir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "level-layout"), nil
}
