package tts

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestDispatchError(t *testing.T) {
	underlying := fmt.Errorf("%w: connection refused", ErrSynthesisFailed)
	err := NewDispatchError(KindElevenLabs, "synthesize", underlying)

	if !errors.Is(err, ErrSynthesisFailed) {
		t.Error("DispatchError should unwrap to the underlying sentinel")
	}
	if err.IsTimeout() {
		t.Error("IsTimeout = true for a synthesis failure")
	}

	want := "elevenlabs: synthesize: " + underlying.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDispatchErrorTimeout(t *testing.T) {
	err := NewDispatchError(KindSystem, "speak", fmt.Errorf("%w: context deadline exceeded", ErrTimeout))
	if !err.IsTimeout() {
		t.Error("IsTimeout = false for a timeout")
	}
}

func TestDispatchResultJSONShape(t *testing.T) {
	result := DispatchResult{
		CacheHit:     true,
		CacheFile:    "/cache/voice/abc.mp3",
		Backend:      "cache",
		VoiceID:      DefaultElevenLabsVoice,
		FallbackUsed: false,
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, key := range []string{"cache_hit", "cache_file", "tts_backend", "voice_id", "fallback_used"} {
		if _, ok := m[key]; !ok {
			t.Errorf("key %s missing from metadata", key)
		}
	}
	if _, ok := m["error"]; ok {
		t.Error("empty error should be omitted")
	}
}

func TestDispatchResultTriggered(t *testing.T) {
	tests := []struct {
		backend string
		want    bool
	}{
		{"cache", true},
		{"elevenlabs", true},
		{"openai", true},
		{"system", true},
		{"none", false},
		{"", false},
	}
	for _, tt := range tests {
		r := DispatchResult{Backend: tt.backend}
		if got := r.Triggered(); got != tt.want {
			t.Errorf("Triggered() with backend %q = %v, want %v", tt.backend, got, tt.want)
		}
	}
}
