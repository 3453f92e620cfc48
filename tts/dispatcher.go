package tts

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/agenthooks/tts/cache"
)

// Dispatcher orchestrates cache lookup, on-miss generation, playback and
// fallback. Speak never returns an error; every failure is captured in the
// DispatchResult so hook entry points can stay best-effort.
type Dispatcher struct {
	cfg      *Config
	store    *cache.Store
	sink     Sink
	backends map[Kind]Backend
	logger   *log.Logger
}

// NewDispatcher wires a dispatcher from the configuration, cache store,
// audio sink and the set of concrete backends.
func NewDispatcher(cfg *Config, store *cache.Store, sink Sink, logger *log.Logger, backends ...Backend) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	m := make(map[Kind]Backend, len(backends))
	for _, b := range backends {
		m[b.Kind()] = b
	}
	return &Dispatcher{
		cfg:      cfg,
		store:    store,
		sink:     sink,
		backends: m,
		logger:   logger,
	}
}

// Capabilities probes the registered backends once. Selection and fallback
// both run off this snapshot.
func (d *Dispatcher) Capabilities() Capabilities {
	return Capabilities{
		Premium:   d.available(KindElevenLabs),
		Secondary: d.available(KindOpenAI),
		System:    d.available(KindSystem),
	}
}

func (d *Dispatcher) available(kind Kind) bool {
	b, ok := d.backends[kind]
	return ok && b.Available()
}

// Speak produces audible output for text using the best available path:
// cached audio, then the premium backend (caching its output), then the
// remaining backends in priority order. Each attempt is bounded by its own
// timeout; a failed or timed-out attempt is skipped without retry.
func (d *Dispatcher) Speak(ctx context.Context, text string) DispatchResult {
	voice := d.cfg.ElevenLabsVoice
	if voice == "" {
		voice = DefaultElevenLabsVoice
	}

	result := DispatchResult{
		Backend: KindNone.String(),
		VoiceID: voice,
	}

	var lastErr error

	path, err := d.store.Path(voice, text)
	if err != nil {
		// Cache unusable; generation and direct playback still work.
		d.logger.Warn("cache directory unavailable", "err", err)
		lastErr = err
	} else {
		result.CacheFile = path
	}

	// Cached audio first. A stale or unplayable entry falls through to
	// regeneration; the entry is left in place. Without an installed
	// player the lookup is pointless, so the direct backends get the
	// remaining attempts.
	if path != "" && d.store.Exists(voice, text) {
		result.CacheHit = true
		if d.sink.Available() {
			pctx, cancel := context.WithTimeout(ctx, d.cfg.PlaybackTimeout)
			err := d.sink.PlayFile(pctx, path)
			cancel()
			if err == nil {
				result.Backend = KindCache.String()
				return result
			}
			lastErr = NewDispatchError(KindCache, "play", err)
			d.logger.Warn("cached audio unplayable, regenerating", "path", path, "err", err)
		} else {
			lastErr = NewDispatchError(KindCache, "play", ErrPlaybackFailed)
			d.logger.Warn("no audio player installed, skipping cached audio", "path", path)
		}
	}

	// Premium backend: the only one whose output is cached.
	if premium, ok := d.backends[KindElevenLabs]; ok && premium.Available() {
		if err := d.generateAndPlay(ctx, premium, voice, text, path); err != nil {
			lastErr = err
			d.logger.Warn("premium backend failed", "err", err)
		} else {
			result.Backend = KindElevenLabs.String()
			return result
		}
	}

	// Remaining backends in priority order, no caching, no retry.
	for _, kind := range Chain(d.Capabilities()) {
		if kind == KindElevenLabs {
			continue
		}
		if err := d.attempt(ctx, d.backends[kind], text); err != nil {
			lastErr = err
			d.logger.Warn("fallback backend failed", "backend", kind, "err", err)
			continue
		}
		result.Backend = kind.String()
		result.FallbackUsed = true
		return result
	}

	// Exhausted.
	result.Backend = KindNone.String()
	if lastErr == nil {
		lastErr = ErrNoBackend
	}
	result.Error = lastErr.Error()
	return result
}

// generateAndPlay synthesizes with a cacheable backend, persists the audio
// and plays it. A cache write failure is logged but does not fail the
// dispatch; playback proceeds from memory.
func (d *Dispatcher) generateAndPlay(ctx context.Context, b Backend, voice, text, path string) error {
	sctx, cancel := context.WithTimeout(ctx, d.cfg.SynthTimeout)
	data, err := b.Synthesize(sctx, text)
	cancel()
	if err != nil {
		return NewDispatchError(b.Kind(), "synthesize", err)
	}

	if path != "" && b.Kind().Cacheable() {
		if err := d.store.Write(voice, text, data); err != nil {
			d.logger.Warn("cache write failed", "path", path, "err", err)
		}
	}

	pctx, cancel := context.WithTimeout(ctx, d.cfg.PlaybackTimeout)
	defer cancel()
	if err := d.sink.Play(pctx, data); err != nil {
		return NewDispatchError(b.Kind(), "play", err)
	}
	return nil
}

// attempt runs a single uncached backend: direct speakers play themselves,
// everything else synthesizes and goes through the sink.
func (d *Dispatcher) attempt(ctx context.Context, b Backend, text string) error {
	if sp, ok := b.(Speaker); ok {
		sctx, cancel := context.WithTimeout(ctx, d.cfg.SynthTimeout)
		defer cancel()
		if err := sp.Speak(sctx, text); err != nil {
			return NewDispatchError(b.Kind(), "speak", err)
		}
		return nil
	}

	sctx, cancel := context.WithTimeout(ctx, d.cfg.SynthTimeout)
	data, err := b.Synthesize(sctx, text)
	cancel()
	if err != nil {
		return NewDispatchError(b.Kind(), "synthesize", err)
	}

	pctx, cancel := context.WithTimeout(ctx, d.cfg.PlaybackTimeout)
	defer cancel()
	if err := d.sink.Play(pctx, data); err != nil {
		return NewDispatchError(b.Kind(), "play", err)
	}
	return nil
}

// Store exposes the dispatcher's cache store for the cache maintenance
// commands.
func (d *Dispatcher) Store() *cache.Store {
	return d.store
}
