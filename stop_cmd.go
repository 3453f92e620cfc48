package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	stopNotify bool
	stopChat   bool

	stopCmd = &cobra.Command{
		Use:   "stop",
		Short: "Handle a stop hook event from stdin",
		Long:  "\nRead one stop event as JSON from stdin and append it to the stop log.\nWith --notify a completion message is announced; with --chat the\nsession transcript is converted to a JSON array next to the logs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.Default()
			cfg, err := loadConfig()
			if err != nil {
				logger.Error("could not load config", "err", err)
				return nil
			}
			runner := newRunner(cfg, logger)
			if err := runner.Stop(cmd.Context(), os.Stdin, stopNotify, stopChat); err != nil {
				logger.Error("stop hook failed", "err", err)
			}
			return nil
		},
	}
)

func init() {
	stopCmd.Flags().BoolVar(&stopNotify, "notify", false, "announce completion out loud")
	stopCmd.Flags().BoolVar(&stopChat, "chat", false, "convert the session transcript to chat.json")
}
