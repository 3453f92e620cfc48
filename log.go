package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLog sends diagnostics to AGENTHOOKS_LOGFILE when set and silences
// them otherwise. Hooks run inside another program's pipeline, so nothing
// may leak to stderr during normal operation.
func setupLog() (func() error, error) {
	if logFile := os.Getenv("AGENTHOOKS_LOGFILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
		if os.Getenv("DEBUG") != "" {
			log.SetReportCaller(true)
		}
		return f.Close, nil
	}
	log.SetOutput(io.Discard)
	return func() error { return nil }, nil
}
