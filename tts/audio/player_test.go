package audio

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/dgnsrekt/agenthooks/tts"
)

type playCall struct {
	name string
	args []string
}

type fakePlayers struct {
	installed map[string]bool
	fail      map[string]error
	calls     []playCall
}

func (f *fakePlayers) lookPath(file string) (string, error) {
	if f.installed[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakePlayers) run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, playCall{name: name, args: args})
	return f.fail[name]
}

func newTestPlayer(fp *fakePlayers) *Player {
	p := NewPlayer()
	p.lookPath = fp.lookPath
	p.runCommand = fp.run
	return p
}

func TestPlayerAvailable(t *testing.T) {
	tests := []struct {
		name      string
		installed []string
		want      bool
	}{
		{name: "afplay on macOS", installed: []string{"afplay"}, want: true},
		{name: "mpg123 on linux", installed: []string{"mpg123"}, want: true},
		{name: "ffplay only", installed: []string{"ffplay"}, want: true},
		{name: "no players", installed: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakePlayers{installed: map[string]bool{}}
			for _, name := range tt.installed {
				fp.installed[name] = true
			}
			if got := newTestPlayer(fp).Available(); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlayFilePrefersAfplay(t *testing.T) {
	fp := &fakePlayers{installed: map[string]bool{"afplay": true, "mpg123": true, "ffplay": true}}
	p := newTestPlayer(fp)

	if err := p.PlayFile(context.Background(), "/tmp/x.mp3"); err != nil {
		t.Fatalf("PlayFile failed: %v", err)
	}
	if len(fp.calls) != 1 || fp.calls[0].name != "afplay" {
		t.Errorf("calls = %v, want a single afplay invocation", fp.calls)
	}
}

func TestPlayFileQuietFlags(t *testing.T) {
	tests := []struct {
		name     string
		player   string
		wantArgs []string
	}{
		{name: "mpg123 quiet", player: "mpg123", wantArgs: []string{"-q", "/tmp/x.mp3"}},
		{name: "ffplay headless", player: "ffplay", wantArgs: []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "/tmp/x.mp3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakePlayers{installed: map[string]bool{tt.player: true}}
			p := newTestPlayer(fp)

			if err := p.PlayFile(context.Background(), "/tmp/x.mp3"); err != nil {
				t.Fatalf("PlayFile failed: %v", err)
			}
			got := fp.calls[0].args
			if len(got) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", got, tt.wantArgs)
			}
			for i := range got {
				if got[i] != tt.wantArgs[i] {
					t.Errorf("args = %v, want %v", got, tt.wantArgs)
					break
				}
			}
		})
	}
}

func TestPlayFileFallsThrough(t *testing.T) {
	fp := &fakePlayers{
		installed: map[string]bool{"afplay": true, "mpg123": true},
		fail:      map[string]error{"afplay": errors.New("no audio device")},
	}
	p := newTestPlayer(fp)

	if err := p.PlayFile(context.Background(), "/tmp/x.mp3"); err != nil {
		t.Fatalf("PlayFile failed: %v", err)
	}
	if len(fp.calls) != 2 || fp.calls[1].name != "mpg123" {
		t.Errorf("calls = %v, want afplay then mpg123", fp.calls)
	}
}

func TestPlayFileNoPlayers(t *testing.T) {
	p := newTestPlayer(&fakePlayers{installed: map[string]bool{}})

	err := p.PlayFile(context.Background(), "/tmp/x.mp3")
	if !errors.Is(err, tts.ErrPlaybackFailed) {
		t.Errorf("PlayFile error = %v, want ErrPlaybackFailed", err)
	}
}

func TestPlayFileAllFail(t *testing.T) {
	fp := &fakePlayers{
		installed: map[string]bool{"mpg123": true},
		fail:      map[string]error{"mpg123": errors.New("corrupt stream")},
	}
	p := newTestPlayer(fp)

	err := p.PlayFile(context.Background(), "/tmp/x.mp3")
	if !errors.Is(err, tts.ErrPlaybackFailed) {
		t.Errorf("PlayFile error = %v, want ErrPlaybackFailed", err)
	}
}

func TestPlayFileTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fp := &fakePlayers{
		installed: map[string]bool{"mpg123": true},
		fail:      map[string]error{"mpg123": context.Canceled},
	}
	p := newTestPlayer(fp)

	err := p.PlayFile(ctx, "/tmp/x.mp3")
	if !errors.Is(err, tts.ErrTimeout) {
		t.Errorf("PlayFile error = %v, want ErrTimeout", err)
	}
}

func TestPlayCleansUpTempFile(t *testing.T) {
	var played string
	fp := &fakePlayers{installed: map[string]bool{"mpg123": true}}
	p := newTestPlayer(fp)
	p.runCommand = func(_ context.Context, _ string, args ...string) error {
		played = args[len(args)-1]
		return nil
	}

	if err := p.Play(context.Background(), []byte("mp3 data")); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if played == "" {
		t.Fatal("no file was played")
	}
	if _, err := os.Stat(played); !os.IsNotExist(err) {
		t.Errorf("temp file %s was not removed", played)
	}
}
