package hooks

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// maxTranscriptLine bounds a single transcript entry. Tool results can
// carry whole files, so the default scanner buffer is far too small.
const maxTranscriptLine = 16 * 1024 * 1024

// ConvertTranscript reads a JSONL transcript at src and writes it to dst
// as a pretty-printed JSON array. Lines that do not parse as JSON are
// skipped rather than failing the conversion.
func ConvertTranscript(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	entries := []json.RawMessage{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxTranscriptLine)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		entries = append(entries, json.RawMessage(append([]byte(nil), line...)))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	return writeFileAtomic(dst, data)
}
