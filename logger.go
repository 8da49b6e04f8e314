package nativeext

import (
	"io"

	"github.com/phuslu/log"
)

// NewLogger creates a console logger writing to w at the given level.
func NewLogger(level string, w io.Writer) *log.Logger {
	if level == "" {
		level = "info"
	}
	return &log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:         w,
			EndWithMessage: true,
		},
	}
}
