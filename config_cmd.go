package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# TTS (Text-to-Speech) configuration
tts:
  # ElevenLabs voice id (default is Rachel)
  voice: ""
  # OpenAI speech voice and model
  openai_voice: "nova"
  openai_model: "tts-1"
  # System voice volume, -100 to 100
  volume: 0
  # Per-attempt timeouts
  synth_timeout: "10s"
  playback_timeout: "10s"

cache:
  # Audio cache directory. Empty uses the per-user cache dir.
  dir: ""

log:
  # Event log directory. Empty uses the per-user data dir.
  dir: ""

# LLM completion messages for the stop hook
llm:
  timeout: "2s"
  ollama_base_url: "http://localhost:11434/v1"
  ollama_model: "llama3.2"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Edit the agenthooks config file",
	Long:    "\nEdit the agenthooks config file. We'll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.",
	Example: "agenthooks config\nagenthooks config --config path/to/config.yml",
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("agenthooks", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
