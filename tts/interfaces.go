package tts

import "context"

// Backend converts text into playable audio.
type Backend interface {
	// Kind identifies the backend in selection order and metadata.
	Kind() Kind

	// Available reports whether the backend can currently be used
	// (credential present, executable on PATH).
	Available() bool

	// Synthesize converts text to audio bytes. Backends that drive the
	// OS voice directly return ErrSynthesisUnsupported and implement
	// Speaker instead.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Speaker is implemented by backends that produce audible output
// themselves, bypassing the Sink.
type Speaker interface {
	// Speak synthesizes and plays text in one step.
	Speak(ctx context.Context, text string) error
}

// Sink plays audio through an OS-level player.
type Sink interface {
	// Play writes data to a temporary file and plays it.
	Play(ctx context.Context, data []byte) error

	// PlayFile plays an audio file from disk.
	PlayFile(ctx context.Context, path string) error

	// Available reports whether any audio player is on PATH.
	Available() bool
}
