package backends

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dgnsrekt/agenthooks/tts"
)

// OpenAI is the secondary cloud backend. Its output is played but never
// cached.
type OpenAI struct {
	apiKey string
	model  string
	voice  string

	// newClient is swappable for tests.
	newClient func(apiKey string) speechClient
}

type speechClient interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// NewOpenAI creates the secondary backend from the configuration.
func NewOpenAI(cfg *tts.Config) *OpenAI {
	return &OpenAI{
		apiKey: cfg.OpenAIKey,
		model:  cfg.OpenAIModel,
		voice:  cfg.OpenAIVoice,
		newClient: func(apiKey string) speechClient {
			return openai.NewClient(apiKey)
		},
	}
}

// Kind identifies the backend.
func (o *OpenAI) Kind() tts.Kind {
	return tts.KindOpenAI
}

// Available reports whether an API key is configured.
func (o *OpenAI) Available() bool {
	return o.apiKey != ""
}

// Synthesize converts text to MP3 bytes via the OpenAI speech API.
func (o *OpenAI) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if !o.Available() {
		return nil, tts.ErrBackendUnavailable
	}

	resp, err := o.newClient(o.apiKey).CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", tts.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", tts.ErrSynthesisFailed, err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", tts.ErrSynthesisFailed, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: empty response", tts.ErrSynthesisFailed)
	}
	return audio, nil
}
