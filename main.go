// Package main provides the entry point for the agenthooks CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgnsrekt/agenthooks/hooks"
	"github.com/dgnsrekt/agenthooks/tts"
	"github.com/dgnsrekt/agenthooks/tts/audio"
	"github.com/dgnsrekt/agenthooks/tts/backends"
	"github.com/dgnsrekt/agenthooks/tts/cache"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string

	rootCmd = &cobra.Command{
		Use:           "agenthooks",
		Short:         "Agent lifecycle hooks with spoken announcements",
		Long:          "\nLog agent hook events and announce them out loud.\nReads one JSON event from stdin, appends it to a JSON-array log,\nand optionally speaks a short message about it.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// loadConfig builds the runtime configuration after viper has read any
// config file.
func loadConfig() (*tts.Config, error) {
	cfg, err := tts.Load()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newDispatcher wires the full speech stack: cache store, audio sink and
// every backend the host could possibly serve.
func newDispatcher(cfg *tts.Config, logger *log.Logger) *tts.Dispatcher {
	return tts.NewDispatcher(cfg, cache.New(cfg.CacheDir), audio.NewPlayer(), logger,
		backends.NewElevenLabs(cfg),
		backends.NewOpenAI(cfg),
		backends.NewSystem(cfg),
	)
}

// newRunner assembles the hook runner used by the notification and stop
// commands.
func newRunner(cfg *tts.Config, logger *log.Logger) *hooks.Runner {
	dispatcher := newDispatcher(cfg, logger)
	llm := hooks.NewLLMGenerator(cfg, logger)
	return hooks.NewRunner(cfg, dispatcher.Speak, llm, logger)
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))

	viper.SetDefault("tts.voice", "")
	viper.SetDefault("tts.volume", 0)
	viper.SetDefault("cache.dir", "")
	viper.SetDefault("log.dir", "")

	rootCmd.AddCommand(notificationCmd, stopCmd, cacheCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "agenthooks")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "agenthooks")}, dirs...)
	}

	if c := os.Getenv("AGENTHOOKS_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("agenthooks")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("agenthooks")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], "agenthooks.yml")
}
