package main

import (
	"errors"

	md2pdf "github.com/alnah/md2pdf-server"
	"github.com/alnah/md2pdf-server/internal/config"
)

// Exit codes for md2pdf-server.
const (
	ExitSuccess = 0 // Clean shutdown or passing check
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or config
	ExitBrowser = 4 // Rendering engine not usable
)

// exitCodeFor maps an error to an exit code. Errors must be wrapped with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, md2pdf.ErrBrowserNotFound) ||
		errors.Is(err, md2pdf.ErrBrowserLaunch) ||
		errors.Is(err, md2pdf.ErrBrowserConnect) ||
		errors.Is(err, md2pdf.ErrPageCreate) ||
		errors.Is(err, md2pdf.ErrPageLoad) ||
		errors.Is(err, md2pdf.ErrRenderTimeout) ||
		errors.Is(err, md2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigPath) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) {
		return ExitUsage
	}

	return ExitGeneral
}
