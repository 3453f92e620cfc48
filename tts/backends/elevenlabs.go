// Package backends provides the concrete speech backends: the ElevenLabs
// premium cloud voice, the OpenAI cloud voice and the local system voice.
package backends

import (
	"context"
	"fmt"
	"time"

	"github.com/haguro/elevenlabs-go"

	"github.com/dgnsrekt/agenthooks/tts"
)

// elevenLabsModel is the synthesis model used for hook announcements.
// Turbo keeps latency low for short phrases.
const elevenLabsModel = "eleven_turbo_v2_5"

// ElevenLabs is the premium cloud backend. Its MP3 output is the only
// audio the dispatcher caches.
type ElevenLabs struct {
	apiKey  string
	voiceID string
	timeout time.Duration
}

// NewElevenLabs creates the premium backend from the configuration.
func NewElevenLabs(cfg *tts.Config) *ElevenLabs {
	voice := cfg.ElevenLabsVoice
	if voice == "" {
		voice = tts.DefaultElevenLabsVoice
	}
	return &ElevenLabs{
		apiKey:  cfg.ElevenLabsKey,
		voiceID: voice,
		timeout: cfg.SynthTimeout,
	}
}

// Kind identifies the backend.
func (e *ElevenLabs) Kind() tts.Kind {
	return tts.KindElevenLabs
}

// Available reports whether an API key is configured.
func (e *ElevenLabs) Available() bool {
	return e.apiKey != ""
}

// Synthesize converts text to MP3 bytes via the ElevenLabs API.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if !e.Available() {
		return nil, tts.ErrBackendUnavailable
	}

	client := elevenlabs.NewClient(ctx, e.apiKey, e.timeout)
	audio, err := client.TextToSpeech(e.voiceID, elevenlabs.TextToSpeechRequest{
		Text:    text,
		ModelID: elevenLabsModel,
		VoiceSettings: &elevenlabs.VoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", tts.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", tts.ErrSynthesisFailed, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: empty response", tts.ErrSynthesisFailed)
	}
	return audio, nil
}
