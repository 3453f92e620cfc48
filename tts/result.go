package tts

// DispatchResult describes one end-to-end speech dispatch. It is produced
// fresh per Speak call and handed to the caller for logging; the cache
// layer never persists it. Field names match the metadata shape the hook
// log has always used.
type DispatchResult struct {
	// CacheHit reports whether a cache entry existed for the text. It
	// stays true even when the cached audio turned out to be unplayable
	// and the audio was regenerated.
	CacheHit bool `json:"cache_hit"`

	// CacheFile is the content-addressed path the audio lives at (or
	// would live at), if the cache directory could be prepared.
	CacheFile string `json:"cache_file,omitempty"`

	// Backend is the backend that ultimately produced output: "cache",
	// "elevenlabs", "openai", "system" or "none".
	Backend string `json:"tts_backend"`

	// VoiceID is the voice identity used for this dispatch. On a cache
	// hit it reflects the voice the audio was generated with.
	VoiceID string `json:"voice_id,omitempty"`

	// FallbackUsed reports whether a non-premium, non-cache backend
	// served the request.
	FallbackUsed bool `json:"fallback_used"`

	// Error describes the last failure when no backend produced output,
	// or a non-fatal failure along the way (e.g. cache write error).
	Error string `json:"error,omitempty"`
}

// Triggered reports whether any backend produced audible output.
func (r DispatchResult) Triggered() bool {
	return r.Backend != "" && r.Backend != KindNone.String()
}
