package hooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EventLog is an append-only JSON array file holding every event a hook
// has seen. One file exists per event kind (notification.json, stop.json).
type EventLog struct {
	path string
}

// NewEventLog creates a log handle for one event kind under dir.
func NewEventLog(dir, kind string) *EventLog {
	return &EventLog{path: filepath.Join(dir, kind+".json")}
}

// Path returns the log file location.
func (l *EventLog) Path() string {
	return l.path
}

// Append adds an event to the log. A missing or corrupt log file resets to
// an empty array rather than failing; the rewrite goes through a temporary
// file and rename so a crash never leaves a truncated log.
func (l *EventLog) Append(e Event) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	var entries []json.RawMessage
	if data, err := os.ReadFile(l.path); err == nil {
		if err := json.Unmarshal(data, &entries); err != nil {
			entries = nil
		}
	}

	entry, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	entries = append(entries, entry)

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode log: %w", err)
	}

	return writeFileAtomic(l.path, out)
}

// writeFileAtomic writes data to path via a temporary file and rename.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		if werr != nil {
			return fmt.Errorf("failed to write log: %w", werr)
		}
		return fmt.Errorf("failed to write log: %w", cerr)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit log: %w", err)
	}
	return nil
}
