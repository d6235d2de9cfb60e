// Package applog configures the process-wide zerolog logger. UCI reserves
// stdout for protocol traffic, so every log line goes to stderr.
package applog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Init installs level as the global log level and returns a logger writing
// to stderr. Call once at process startup.
func Init(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return zerolog.New(stderrWriter()).With().Timestamp().Logger()
}

func stderrWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
}
