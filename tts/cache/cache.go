// Package cache provides a content-addressed store for generated audio,
// partitioned by voice identity so switching voices never serves stale
// audio recorded with another voice.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Ext is the file extension for stored audio.
const Ext = ".mp3"

// ErrNotFound is returned when no cache entry exists for a (voice, text)
// pair.
var ErrNotFound = errors.New("cache entry not found")

// Key returns the cache key for text: the hex MD5 digest of its raw bytes.
// No normalization is performed; the same text always yields the same key
// and file names stay compatible across versions.
func Key(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Entry describes one stored audio file.
type Entry struct {
	Key     string    // Content key (hex digest)
	Path    string    // Absolute file path
	Size    int64     // Size in bytes
	ModTime time.Time // Last modification time
}

// Store is a voice-namespaced audio cache rooted at a single directory.
// Entries are created once, never mutated and never evicted automatically;
// Prune is the explicit opt-in escape hatch.
type Store struct {
	root string
}

// New creates a Store rooted at dir. The directory itself is created
// lazily by Path.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file path for (voice, text), creating the voice
// directory if absent. Creation is idempotent.
func (s *Store) Path(voice, text string) (string, error) {
	dir := filepath.Join(s.root, voice)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return filepath.Join(dir, Key(text)+Ext), nil
}

// Exists reports whether a cache entry exists for (voice, text).
func (s *Store) Exists(voice, text string) bool {
	info, err := os.Stat(filepath.Join(s.root, voice, Key(text)+Ext))
	return err == nil && !info.IsDir()
}

// Read returns the audio bytes for (voice, text), or ErrNotFound.
func (s *Store) Read(voice, text string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, voice, Key(text)+Ext))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return data, nil
}

// Write stores audio bytes for (voice, text). The write is all-or-nothing:
// data goes to a temporary file in the same directory and is renamed into
// place, so a partial write is never visible to Exists or Read. Concurrent
// writers for the same pair race benignly; last rename wins.
func (s *Store) Write(voice, text string, data []byte) error {
	path, err := s.Path(voice, text)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		if werr != nil {
			return fmt.Errorf("failed to write cache entry: %w", werr)
		}
		return fmt.Errorf("failed to write cache entry: %w", cerr)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit cache entry: %w", err)
	}
	return nil
}

// Entries lists the stored entries for a voice, oldest first. A missing
// voice directory yields an empty list.
func (s *Store) Entries(voice string) ([]Entry, error) {
	dir := filepath.Join(s.root, voice)
	items, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}

	var entries []Entry
	for _, item := range items {
		if item.IsDir() || filepath.Ext(item.Name()) != Ext {
			continue
		}
		info, err := item.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Key:     item.Name()[:len(item.Name())-len(Ext)],
			Path:    filepath.Join(dir, item.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.Before(entries[j].ModTime)
	})
	return entries, nil
}

// Voices lists the voice namespaces present in the cache.
func (s *Store) Voices() ([]string, error) {
	items, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list cache voices: %w", err)
	}
	var voices []string
	for _, item := range items {
		if item.IsDir() {
			voices = append(voices, item.Name())
		}
	}
	return voices, nil
}

// Prune removes entries for voice that the policy marks evictable and
// returns how many were removed. Nothing calls Prune automatically.
func (s *Store) Prune(voice string, policy Policy) (int, error) {
	entries, err := s.Entries(voice)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if !policy.Evict(e) {
			continue
		}
		if err := os.Remove(e.Path); err != nil {
			return removed, fmt.Errorf("failed to remove cache entry: %w", err)
		}
		removed++
	}
	return removed, nil
}
