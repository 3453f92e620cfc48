// Package tts selects, invokes and caches text-to-speech backends for
// short hook announcements.
package tts

// Kind identifies a speech backend.
type Kind int

const (
	// KindNone indicates no backend is available. Callers treat it as a
	// no-op outcome, not an error.
	KindNone Kind = iota
	// KindCache indicates audio served from the on-disk cache.
	KindCache
	// KindElevenLabs is the premium cloud backend. It is the only backend
	// whose output is cached.
	KindElevenLabs
	// KindOpenAI is the secondary cloud backend.
	KindOpenAI
	// KindSystem is the local OS voice.
	KindSystem
)

// String returns the backend name used in dispatch metadata.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCache:
		return "cache"
	case KindElevenLabs:
		return "elevenlabs"
	case KindOpenAI:
		return "openai"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Cacheable reports whether this backend's audio may be written to the
// cache. Only the premium backend returns raw MP3 suitable for reuse.
func (k Kind) Cacheable() bool {
	return k == KindElevenLabs
}
