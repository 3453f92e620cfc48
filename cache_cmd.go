package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dgnsrekt/agenthooks/hooks"
	"github.com/dgnsrekt/agenthooks/tts/audio"
	"github.com/dgnsrekt/agenthooks/tts/backends"
	"github.com/dgnsrekt/agenthooks/tts/cache"
)

var (
	verifyPlay  bool
	pruneMaxAge time.Duration

	cacheCmd = &cobra.Command{
		Use:   "cache",
		Short: "Manage the audio cache",
	}

	cacheWarmCmd = &cobra.Command{
		Use:   "warm",
		Short: "Pre-generate audio for every known announcement",
		Args:  cobra.NoArgs,
		RunE:  runCacheWarm,
	}

	cacheVerifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Report cache status for every known announcement",
		Args:  cobra.NoArgs,
		RunE:  runCacheVerify,
	}

	cacheBenchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Compare cached audio latency against synthesis latency",
		Args:  cobra.NoArgs,
		RunE:  runCacheBench,
	}

	cachePruneCmd = &cobra.Command{
		Use:   "prune",
		Short: "Evict cache entries older than --max-age",
		Args:  cobra.NoArgs,
		RunE:  runCachePrune,
	}
)

func init() {
	cacheVerifyCmd.Flags().BoolVar(&verifyPlay, "play", false, "play each cached entry while verifying")
	cachePruneCmd.Flags().DurationVar(&pruneMaxAge, "max-age", 0, "evict entries older than this duration")
	cacheCmd.AddCommand(cacheWarmCmd, cacheVerifyCmd, cacheBenchCmd, cachePruneCmd)
}

func runCacheWarm(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	premium := backends.NewElevenLabs(cfg)
	if !premium.Available() {
		return fmt.Errorf("cache warm needs an ElevenLabs API key")
	}

	store := cache.New(cfg.CacheDir)
	voice := cfg.ElevenLabsVoice

	var generated, skipped int
	var written uint64
	for _, msg := range hooks.AllMessages(cfg.DisplayName()) {
		if store.Exists(voice, msg) {
			skipped++
			continue
		}
		data, err := premium.Synthesize(cmd.Context(), msg)
		if err != nil {
			log.Error("synthesis failed", "message", msg, "err", err)
			continue
		}
		if err := store.Write(voice, msg, data); err != nil {
			log.Error("cache write failed", "message", msg, "err", err)
			continue
		}
		generated++
		written += uint64(len(data))
	}

	fmt.Printf("warmed %d messages (%s), %d already cached\n", generated, humanize.Bytes(written), skipped)
	return nil
}

func runCacheVerify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := cache.New(cfg.CacheDir)
	voice := cfg.ElevenLabsVoice
	player := audio.NewPlayer()

	var cached, missing int
	for _, msg := range hooks.AllMessages(cfg.DisplayName()) {
		if !store.Exists(voice, msg) {
			missing++
			fmt.Printf("  missing  %q\n", msg)
			continue
		}
		cached++
		fmt.Printf("  cached   %q\n", msg)
		if verifyPlay {
			path, err := store.Path(voice, msg)
			if err != nil {
				return err
			}
			ctx, cancel := contextWithTimeout(cmd, cfg.PlaybackTimeout)
			err = player.PlayFile(ctx, path)
			cancel()
			if err != nil {
				log.Error("playback failed", "message", msg, "err", err)
			}
		}
	}

	entries, err := store.Entries(voice)
	if err != nil {
		return err
	}
	var total uint64
	for _, e := range entries {
		total += uint64(e.Size)
	}
	fmt.Printf("\n%d cached, %d missing, %d entries on disk (%s)\n", cached, missing, len(entries), humanize.Bytes(total))
	return nil
}

func runCacheBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := cache.New(cfg.CacheDir)
	voice := cfg.ElevenLabsVoice

	var reads int
	var readTotal time.Duration
	for _, msg := range hooks.AllMessages(cfg.DisplayName()) {
		if !store.Exists(voice, msg) {
			continue
		}
		start := time.Now()
		if _, err := store.Read(voice, msg); err != nil {
			continue
		}
		readTotal += time.Since(start)
		reads++
	}
	if reads == 0 {
		fmt.Println("no cached entries; run `agenthooks cache warm` first")
	} else {
		fmt.Printf("cache read: %d entries, avg %v\n", reads, readTotal/time.Duration(reads))
	}

	premium := backends.NewElevenLabs(cfg)
	if !premium.Available() {
		fmt.Println("synthesis: skipped, no ElevenLabs API key")
		return nil
	}
	ctx, cancel := contextWithTimeout(cmd, cfg.SynthTimeout)
	defer cancel()
	start := time.Now()
	data, err := premium.Synthesize(ctx, "Benchmark complete")
	if err != nil {
		return fmt.Errorf("synthesis benchmark failed: %w", err)
	}
	fmt.Printf("synthesis: %s in %v\n", humanize.Bytes(uint64(len(data))), time.Since(start))
	return nil
}

func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), d)
}

func runCachePrune(_ *cobra.Command, _ []string) error {
	if pruneMaxAge <= 0 {
		return fmt.Errorf("--max-age must be a positive duration")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := cache.New(cfg.CacheDir)

	voices, err := store.Voices()
	if err != nil {
		return err
	}
	policy := cache.MaxAge(pruneMaxAge)
	var evicted int
	for _, voice := range voices {
		n, err := store.Prune(voice, policy)
		if err != nil {
			return err
		}
		evicted += n
	}
	fmt.Printf("evicted %d entries older than %s\n", evicted, pruneMaxAge)
	return nil
}
