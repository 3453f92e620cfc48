package tts

import (
	"errors"
	"fmt"
)

// Common errors for the speech dispatch system.
var (
	// ErrBackendUnavailable indicates no credential or executable exists
	// for the requested backend.
	ErrBackendUnavailable = errors.New("speech backend is not available")

	// ErrSynthesisFailed indicates the backend accepted the request but
	// produced no usable audio.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrPlaybackFailed indicates no audio player could play the audio.
	ErrPlaybackFailed = errors.New("audio playback failed")

	// ErrTimeout indicates a backend or player exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrSynthesisUnsupported indicates the backend speaks directly and
	// cannot return audio bytes.
	ErrSynthesisUnsupported = errors.New("backend does not synthesize to bytes")

	// ErrNoBackend indicates every backend in the fallback chain failed
	// or none were available.
	ErrNoBackend = errors.New("no speech backend produced output")
)

// DispatchError carries the backend and operation that failed alongside
// the underlying error, so a DispatchResult can report where a fallback
// chain gave up.
type DispatchError struct {
	Backend Kind   // Backend that failed
	Op      string // Operation being performed (synthesize, play, write)
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *DispatchError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the underlying failure was a deadline.
func (e *DispatchError) IsTimeout() bool {
	return errors.Is(e.Err, ErrTimeout)
}

// NewDispatchError creates a DispatchError for the given backend and operation.
func NewDispatchError(backend Kind, op string, err error) *DispatchError {
	return &DispatchError{Backend: backend, Op: op, Err: err}
}
