package main

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/md2pdf-server/internal/config"
)

// newLogger creates the process logger from the log section.
// cfg must already be validated.
func newLogger(w io.Writer, cfg config.LogConfig) *log.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Prefix:          "md2pdf",
	})
	if cfg.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}
