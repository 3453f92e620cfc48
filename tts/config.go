package tts

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"
)

// DefaultElevenLabsVoice is the voice used when no voice is configured
// (Rachel). It doubles as the cache namespace for audio generated with it.
const DefaultElevenLabsVoice = "21m00Tcm4TlvDq8ikWAM"

// Config contains all speech and hook settings. It is constructed once at
// process start and passed by reference; nothing below it reads the
// environment on its own.
type Config struct {
	// Credentials. Presence selects backend capability.
	ElevenLabsKey string `env:"ELEVENLABS_API_KEY"`
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	AnthropicKey  string `env:"ANTHROPIC_API_KEY"`

	// Voice settings
	ElevenLabsVoice string `env:"ELEVENLABS_VOICE_ID" envDefault:"21m00Tcm4TlvDq8ikWAM"`
	OpenAIVoice     string `env:"OPENAI_TTS_VOICE" envDefault:"nova"`
	OpenAIModel     string `env:"OPENAI_TTS_MODEL" envDefault:"tts-1"`
	Volume          int    `env:"TTS_VOLUME" envDefault:"0"` // system voice only, -100..100

	// Personalization
	EngineerName string `env:"ENGINEER_NAME"`
	UserName     string `env:"USER"`

	// LLM completion messages
	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434/v1"`
	OllamaModel   string `env:"OLLAMA_MODEL" envDefault:"llama3.2"`

	// Paths. Empty means the per-user app directory.
	CacheDir string `env:"AGENTHOOKS_CACHE_DIR"`
	LogDir   string `env:"AGENTHOOKS_LOG_DIR"`
	LogFile  string `env:"AGENTHOOKS_LOGFILE"`

	// Timeouts
	SynthTimeout    time.Duration `env:"AGENTHOOKS_SYNTH_TIMEOUT" envDefault:"10s"`
	PlaybackTimeout time.Duration `env:"AGENTHOOKS_PLAYBACK_TIMEOUT" envDefault:"10s"`
	LLMTimeout      time.Duration `env:"AGENTHOOKS_LLM_TIMEOUT" envDefault:"2s"`
}

// Load builds the configuration from ~/.env, the process environment and
// any viper overrides, then fills in default directories.
func Load() (Config, error) {
	// ~/.env is optional, same as the dotenv behavior the hooks grew up with.
	if home, err := homedir.Dir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".env"))
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.applyViper()

	if cfg.CacheDir == "" || cfg.LogDir == "" {
		scope := gap.NewScope(gap.User, "agenthooks")
		if cfg.CacheDir == "" {
			if dir, err := scope.CacheDir(); err == nil {
				cfg.CacheDir = filepath.Join(dir, "tts")
			}
		}
		if cfg.LogDir == "" {
			if dirs, err := scope.DataDirs(); err == nil && len(dirs) > 0 {
				cfg.LogDir = filepath.Join(dirs[0], "logs")
			}
		}
	}

	cfg.CacheDir = expandPath(cfg.CacheDir)
	cfg.LogDir = expandPath(cfg.LogDir)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyViper overlays values from the optional config file. Only keys the
// user actually set are applied.
func (c *Config) applyViper() {
	if viper.IsSet("tts.voice") {
		c.ElevenLabsVoice = viper.GetString("tts.voice")
	}
	if viper.IsSet("tts.openai_voice") {
		c.OpenAIVoice = viper.GetString("tts.openai_voice")
	}
	if viper.IsSet("tts.openai_model") {
		c.OpenAIModel = viper.GetString("tts.openai_model")
	}
	if viper.IsSet("tts.volume") {
		c.Volume = viper.GetInt("tts.volume")
	}
	if viper.IsSet("cache.dir") {
		c.CacheDir = viper.GetString("cache.dir")
	}
	if viper.IsSet("log.dir") {
		c.LogDir = viper.GetString("log.dir")
	}
	if viper.IsSet("tts.synth_timeout") {
		if d, err := time.ParseDuration(viper.GetString("tts.synth_timeout")); err == nil {
			c.SynthTimeout = d
		}
	}
	if viper.IsSet("tts.playback_timeout") {
		if d, err := time.ParseDuration(viper.GetString("tts.playback_timeout")); err == nil {
			c.PlaybackTimeout = d
		}
	}
	if viper.IsSet("llm.timeout") {
		if d, err := time.ParseDuration(viper.GetString("llm.timeout")); err == nil {
			c.LLMTimeout = d
		}
	}
	if viper.IsSet("llm.ollama_base_url") {
		c.OllamaBaseURL = viper.GetString("llm.ollama_base_url")
	}
	if viper.IsSet("llm.ollama_model") {
		c.OllamaModel = viper.GetString("llm.ollama_model")
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ElevenLabsVoice == "" {
		c.ElevenLabsVoice = DefaultElevenLabsVoice
	}
	if c.Volume < -100 {
		c.Volume = -100
	}
	if c.Volume > 100 {
		c.Volume = 100
	}
	if c.SynthTimeout < time.Second {
		return fmt.Errorf("synth timeout must be at least 1 second, got %v", c.SynthTimeout)
	}
	if c.PlaybackTimeout < time.Second {
		return fmt.Errorf("playback timeout must be at least 1 second, got %v", c.PlaybackTimeout)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("llm timeout must be positive, got %v", c.LLMTimeout)
	}
	return nil
}

// DisplayName returns the name used to personalize announcements, or ""
// when none is configured.
func (c *Config) DisplayName() string {
	if name := strings.TrimSpace(c.EngineerName); name != "" {
		return name
	}
	return strings.TrimSpace(c.UserName)
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
