package main

import (
	"context"
	"io"
	"os"

	md2pdf "github.com/alnah/md2pdf-server"
	"github.com/alnah/md2pdf-server/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv func(string) (string, bool)
	Environ   func() []string

	// NewLauncher builds the browser launcher for a configuration.
	NewLauncher func(config.BrowserConfig) md2pdf.Launcher

	// Serve runs the HTTP service until ctx is done. Swapped in tests.
	Serve func(ctx context.Context, srv runner) error
}

// runner is the part of *server.Server the serve command drives.
type runner interface {
	Run(ctx context.Context) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		LookupEnv:   os.LookupEnv,
		Environ:     os.Environ,
		NewLauncher: newRodLauncher,
		Serve: func(ctx context.Context, srv runner) error {
			return srv.Run(ctx)
		},
	}
}

func newRodLauncher(cfg config.BrowserConfig) md2pdf.Launcher {
	return &md2pdf.RodLauncher{Bin: cfg.Bin, NoSandbox: cfg.NoSandbox}
}
