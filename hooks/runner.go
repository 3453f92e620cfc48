package hooks

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/agenthooks/tts"
)

// SpeakFunc dispatches one utterance and reports what happened.
type SpeakFunc func(ctx context.Context, text string) tts.DispatchResult

// TTSMetadata is the speech record attached to a logged hook event.
type TTSMetadata struct {
	tts.DispatchResult
	TTSTriggered bool   `json:"tts_triggered"`
	Message      string `json:"message,omitempty"`
	Personalized bool   `json:"personalized,omitempty"`
	LLMGenerated bool   `json:"llm_generated,omitempty"`
	LLMBackend   string `json:"llm_backend,omitempty"`
}

// Runner executes hook events: parse stdin, optionally announce, append
// to the per-hook event log. It never treats a bad event as a failure.
type Runner struct {
	cfg    *tts.Config
	speak  SpeakFunc
	llm    *LLMGenerator
	logger *log.Logger
	rng    *rand.Rand
	now    func() time.Time
}

// NewRunner wires a runner from the configuration and speech dispatcher.
func NewRunner(cfg *tts.Config, speak SpeakFunc, llm *LLMGenerator, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		cfg:    cfg,
		speak:  speak,
		llm:    llm,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// Notification handles one notification event from in. Malformed input is
// dropped without logging anything.
func (r *Runner) Notification(ctx context.Context, in io.Reader, notify bool) error {
	event, err := ParseEvent(in)
	if err != nil {
		if errors.Is(err, ErrMalformedInput) {
			r.logger.Debug("dropping malformed notification event")
			return nil
		}
		return err
	}
	event["timestamp"] = r.now().UTC().Format(time.RFC3339)

	if notify && event.Message() != GenericWaitingMessage {
		msg, personalized := NotificationMessage(r.rng, r.cfg.DisplayName())
		result := r.speak(ctx, msg)
		event["tts_metadata"] = TTSMetadata{
			DispatchResult: result,
			TTSTriggered:   result.Triggered(),
			Message:        msg,
			Personalized:   personalized,
		}
	}

	return NewEventLog(r.cfg.LogDir, "notification").Append(event)
}

// Stop handles one stop event from in. When chat is set and the event
// carries a transcript path, the transcript is converted alongside the log.
func (r *Runner) Stop(ctx context.Context, in io.Reader, notify, chat bool) error {
	event, err := ParseEvent(in)
	if err != nil {
		if errors.Is(err, ErrMalformedInput) {
			r.logger.Debug("dropping malformed stop event")
			return nil
		}
		return err
	}
	event["timestamp"] = r.now().UTC().Format(time.RFC3339)

	if notify {
		var (
			msg          string
			backend      string
			llmGenerated bool
		)
		if r.llm != nil && r.rng.Float64() < llmMessageChance {
			msg, backend = r.llm.CompletionMessage(ctx, r.rng)
			llmGenerated = true
		} else {
			msg = PickCompletion(r.rng)
		}
		result := r.speak(ctx, msg)
		event["tts_metadata"] = TTSMetadata{
			DispatchResult: result,
			TTSTriggered:   result.Triggered(),
			Message:        msg,
			LLMGenerated:   llmGenerated,
			LLMBackend:     backend,
		}
	}

	if err := NewEventLog(r.cfg.LogDir, "stop").Append(event); err != nil {
		return err
	}

	if chat {
		if src := event.TranscriptPath(); src != "" {
			dst := filepath.Join(r.cfg.LogDir, "chat.json")
			if err := ConvertTranscript(src, dst); err != nil {
				r.logger.Warn("transcript conversion failed", "err", err)
			}
		}
	}
	return nil
}
