package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	notificationNotify bool

	notificationCmd = &cobra.Command{
		Use:   "notification",
		Short: "Handle a notification hook event from stdin",
		Long:  "\nRead one notification event as JSON from stdin, append it to the\nnotification log and, with --notify, announce it out loud.",
		Args:  cobra.NoArgs,
		// A hook must never break the agent that calls it, so every failure
		// is swallowed after logging and the exit code stays zero.
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.Default()
			cfg, err := loadConfig()
			if err != nil {
				logger.Error("could not load config", "err", err)
				return nil
			}
			runner := newRunner(cfg, logger)
			if err := runner.Notification(cmd.Context(), os.Stdin, notificationNotify); err != nil {
				logger.Error("notification hook failed", "err", err)
			}
			return nil
		},
	}
)

func init() {
	notificationCmd.Flags().BoolVar(&notificationNotify, "notify", false, "announce the notification out loud")
}
