// Package audio plays MP3 audio through whichever OS-level player is
// installed.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/dgnsrekt/agenthooks/tts"
)

// playerCommand describes one candidate player and how to invoke it.
type playerCommand struct {
	name string
	args func(path string) []string
}

// Players are tried in order: afplay on macOS, mpg123 (best for MP3) and
// ffplay on Linux.
var players = []playerCommand{
	{name: "afplay", args: func(path string) []string {
		return []string{path}
	}},
	{name: "mpg123", args: func(path string) []string {
		return []string{"-q", path}
	}},
	{name: "ffplay", args: func(path string) []string {
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
	}},
}

// Player implements tts.Sink via subprocess audio players.
type Player struct {
	// lookPath and runCommand are swappable for tests.
	lookPath   func(file string) (string, error)
	runCommand func(ctx context.Context, name string, args ...string) error
}

// NewPlayer creates a subprocess-backed audio player.
func NewPlayer() *Player {
	return &Player{
		lookPath: exec.LookPath,
		runCommand: func(ctx context.Context, name string, args ...string) error {
			cmd := exec.CommandContext(ctx, name, args...)
			cmd.Stdout = nil
			cmd.Stderr = nil
			return cmd.Run()
		},
	}
}

// Available reports whether any known audio player is on PATH.
func (p *Player) Available() bool {
	for _, pc := range players {
		if _, err := p.lookPath(pc.name); err == nil {
			return true
		}
	}
	return false
}

// PlayFile plays an audio file, trying each installed player in order.
func (p *Player) PlayFile(ctx context.Context, path string) error {
	var lastErr error
	tried := false

	for _, pc := range players {
		if _, err := p.lookPath(pc.name); err != nil {
			continue
		}
		tried = true
		if err := p.runCommand(ctx, pc.name, pc.args(path)...); err == nil {
			return nil
		} else if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", tts.ErrTimeout, ctx.Err())
		} else {
			lastErr = err
		}
	}

	if !tried {
		return tts.ErrPlaybackFailed
	}
	return fmt.Errorf("%w: %v", tts.ErrPlaybackFailed, lastErr)
}

// Play writes data to a temporary file and plays it. The file is removed
// afterwards.
func (p *Player) Play(ctx context.Context, data []byte) error {
	tmp, err := os.CreateTemp("", "agenthooks-*.mp3")
	if err != nil {
		return fmt.Errorf("%w: %v", tts.ErrPlaybackFailed, err)
	}
	defer os.Remove(tmp.Name())

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil {
		return fmt.Errorf("%w: %v", tts.ErrPlaybackFailed, werr)
	}
	if cerr != nil {
		return fmt.Errorf("%w: %v", tts.ErrPlaybackFailed, cerr)
	}

	return p.PlayFile(ctx, tmp.Name())
}
