package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testVoice = "21m00Tcm4TlvDq8ikWAM"

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "known digest",
			text: "Work complete!",
			want: "fedf92ce2df196c3c133afda9aa83444",
		},
		{
			name: "empty text",
			text: "",
			want: "d41d8cd98f00b204e9800998ecf8427e",
		},
		{
			name: "unicode text",
			text: "tâche terminée",
			want: "52cba10e9fd2b77dbb0cff18751731d3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(tt.text)
			if got != tt.want {
				t.Errorf("Key(%q) = %s, want %s", tt.text, got, tt.want)
			}
			// deterministic
			if again := Key(tt.text); again != got {
				t.Errorf("Key(%q) not deterministic: %s vs %s", tt.text, got, again)
			}
		})
	}
}

func TestKeyDistinct(t *testing.T) {
	if Key("All done!") == Key("Task complete!") {
		t.Error("different texts produced the same key")
	}
	// No normalization: case and whitespace matter.
	if Key("All done!") == Key("all done!") {
		t.Error("case-variant texts should have different keys")
	}
	if Key("All done!") == Key("All done! ") {
		t.Error("whitespace-variant texts should have different keys")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	text := "Ready for your next move"
	data := []byte("fake mp3 bytes")

	if store.Exists(testVoice, text) {
		t.Fatal("entry should not exist before write")
	}
	if _, err := store.Read(testVoice, text); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Read before write: want ErrNotFound, got %v", err)
	}

	if err := store.Write(testVoice, text, data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !store.Exists(testVoice, text) {
		t.Fatal("entry should exist after write")
	}

	got, err := store.Read(testVoice, text)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Read = %q, want %q", got, data)
	}
}

func TestStorePathLayout(t *testing.T) {
	root := t.TempDir()
	store := New(root)
	text := "Job's done!"

	path, err := store.Path(testVoice, text)
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}

	want := filepath.Join(root, testVoice, Key(text)+Ext)
	if path != want {
		t.Errorf("Path = %s, want %s", path, want)
	}

	// Voice directory is created, idempotently.
	if _, err := os.Stat(filepath.Join(root, testVoice)); err != nil {
		t.Errorf("voice directory not created: %v", err)
	}
	if _, err := store.Path(testVoice, text); err != nil {
		t.Errorf("second Path call failed: %v", err)
	}
}

func TestStoreVoiceNamespacing(t *testing.T) {
	store := New(t.TempDir())
	text := "All set!"

	if err := store.Write("voice-a", text, []byte("audio-a")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if store.Exists("voice-b", text) {
		t.Error("entry for voice-a should not be visible under voice-b")
	}

	if err := store.Write("voice-b", text, []byte("audio-b")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := store.Read("voice-b", text)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "audio-b" {
		t.Errorf("voice-b entry = %q, want audio-b", got)
	}

	voices, err := store.Voices()
	if err != nil {
		t.Fatalf("Voices failed: %v", err)
	}
	if len(voices) != 2 {
		t.Errorf("Voices = %v, want 2 entries", voices)
	}
}

func TestStoreWriteLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store := New(root)

	if err := store.Write(testVoice, "hello", []byte("bytes")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	items, err := os.ReadDir(filepath.Join(root, testVoice))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, item := range items {
		if strings.HasPrefix(item.Name(), ".") {
			t.Errorf("temp file left behind: %s", item.Name())
		}
	}
	if len(items) != 1 {
		t.Errorf("expected exactly one entry, got %d", len(items))
	}
}

func TestStoreOverwrite(t *testing.T) {
	store := New(t.TempDir())
	text := "regenerated"

	if err := store.Write(testVoice, text, []byte("old")); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := store.Write(testVoice, text, []byte("new")); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}
	got, err := store.Read(testVoice, text)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Read = %q, want new", got)
	}
}

func TestStoreEntries(t *testing.T) {
	store := New(t.TempDir())

	entries, err := store.Entries(testVoice)
	if err != nil {
		t.Fatalf("Entries on missing voice failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if err := store.Write(testVoice, text, []byte(text)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	entries, err = store.Entries(testVoice)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != len(texts) {
		t.Fatalf("Entries = %d, want %d", len(entries), len(texts))
	}
	for _, e := range entries {
		if e.Size == 0 {
			t.Errorf("entry %s has zero size", e.Key)
		}
		if filepath.Ext(e.Path) != Ext {
			t.Errorf("entry path %s missing extension", e.Path)
		}
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].ModTime.Before(entries[i-1].ModTime) {
			t.Error("entries not sorted oldest first")
		}
	}
}

func TestPrune(t *testing.T) {
	store := New(t.TempDir())
	for _, text := range []string{"old one", "old two", "fresh"} {
		if err := store.Write(testVoice, text, []byte("x")); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	// Backdate two entries past the cutoff.
	past := time.Now().Add(-48 * time.Hour)
	for _, text := range []string{"old one", "old two"} {
		path := filepath.Join(store.Root(), testVoice, Key(text)+Ext)
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("Chtimes failed: %v", err)
		}
	}

	removed, err := store.Prune(testVoice, MaxAge(24*time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Prune removed %d, want 2", removed)
	}
	if !store.Exists(testVoice, "fresh") {
		t.Error("fresh entry should survive pruning")
	}
	if store.Exists(testVoice, "old one") {
		t.Error("old entry should have been evicted")
	}
}

func TestKeepAll(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Write(testVoice, "stays", []byte("x")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	removed, err := store.Prune(testVoice, KeepAll())
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("KeepAll evicted %d entries", removed)
	}
}
