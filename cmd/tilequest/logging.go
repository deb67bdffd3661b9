package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// logFile is where play sessions log, since the terminal belongs to the game.
const logFile = "tilequest.log"

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilequest",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// stderrLogger logs for commands that do not take over the terminal.
func stderrLogger() *log.Logger {
	return newLogger(os.Stderr)
}

// sessionLogger logs to ~/.tilequest/tilequest.log. The returned close
// function is never nil.
func sessionLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".tilequest")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	//nolint:errcheck // Best-effort close on exit
	return newLogger(f), func() { f.Close() }
}
