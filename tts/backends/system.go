package backends

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/dgnsrekt/agenthooks/tts"
)

// System is the local OS voice. It has no network dependency and speaks
// directly through the platform speech command instead of returning bytes,
// so its output is never cached.
type System struct {
	volume int // -100..100, spd-say convention

	// lookPath and runCommand are swappable for tests.
	lookPath   func(file string) (string, error)
	runCommand func(ctx context.Context, name string, args ...string) error
}

// NewSystem creates the local voice backend from the configuration.
func NewSystem(cfg *tts.Config) *System {
	return &System{
		volume:   clampVolume(cfg.Volume),
		lookPath: exec.LookPath,
		runCommand: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// Kind identifies the backend.
func (s *System) Kind() tts.Kind {
	return tts.KindSystem
}

// Available reports whether any platform speech command is on PATH.
func (s *System) Available() bool {
	for _, cmd := range []string{"say", "spd-say", "espeak"} {
		if _, err := s.lookPath(cmd); err == nil {
			return true
		}
	}
	return false
}

// Synthesize is unsupported; the system voice plays directly.
func (s *System) Synthesize(context.Context, string) ([]byte, error) {
	return nil, tts.ErrSynthesisUnsupported
}

// Speak tries the platform speech commands in order: say (macOS), spd-say
// (speech-dispatcher) with volume, then espeak with its amplitude scale.
func (s *System) Speak(ctx context.Context, text string) error {
	var lastErr error

	if _, err := s.lookPath("say"); err == nil {
		if err := s.runCommand(ctx, "say", text); err == nil {
			return nil
		} else if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", tts.ErrTimeout, ctx.Err())
		} else {
			lastErr = err
		}
	}

	if _, err := s.lookPath("spd-say"); err == nil {
		if err := s.runCommand(ctx, "spd-say", "--volume", strconv.Itoa(s.volume), text); err == nil {
			return nil
		} else if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", tts.ErrTimeout, ctx.Err())
		} else {
			lastErr = err
		}
	}

	if _, err := s.lookPath("espeak"); err == nil {
		// espeak amplitude runs 0-200 with 100 as the default.
		amp := s.volume + 100
		if err := s.runCommand(ctx, "espeak", "-a", strconv.Itoa(amp), text); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("%w: %v", tts.ErrSynthesisFailed, lastErr)
	}
	return tts.ErrBackendUnavailable
}

func clampVolume(v int) int {
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}
