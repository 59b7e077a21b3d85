package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	md2pdf "github.com/alnah/md2pdf-server"
	"github.com/alnah/md2pdf-server/internal/config"
	"github.com/alnah/md2pdf-server/internal/hints"
	"github.com/alnah/md2pdf-server/internal/server"
)

// runServeCmd runs the HTTP service until SIGINT/SIGTERM.
func runServeCmd(args []string, env *Environment) int {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	cfg, _, err := resolveConfig(&flags.commonFlags, env)
	if err == nil {
		mergeServeFlags(flags, cfg)
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	logger := newLogger(env.Stderr, cfg.Log)
	warnUnknownEnvVars(logger, env.Environ())

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS, in
	// which case the runtime default stays in effect.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Debugf))

	conv, err := newConverter(cfg, env, logger)
	if err != nil {
		logger.Error("initializing converter", "err", err)
		return exitCodeFor(err)
	}

	srv := server.New(conv, serverOptions(cfg, logger))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	logger.Info("starting md2pdf-server",
		"version", Version,
		"addr", cfg.Server.Addr,
		"max_concurrent", cfg.Browser.MaxConcurrent,
		"no_sandbox", cfg.Browser.NoSandbox)
	logBrowser(logger, cfg.Browser)

	if err := env.Serve(ctx, srv); err != nil {
		logger.Error("server failed", "err", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func newConverter(cfg *config.Config, env *Environment, logger *log.Logger) (*md2pdf.Converter, error) {
	return md2pdf.NewConverter(
		md2pdf.WithLauncher(env.NewLauncher(cfg.Browser)),
		md2pdf.WithNoSandbox(cfg.Browser.NoSandbox),
		md2pdf.WithMaxConcurrent(cfg.Browser.MaxConcurrent),
		md2pdf.WithLoadTimeout(cfg.Browser.LoadTimeout.Std()),
		md2pdf.WithIdleWindow(cfg.Browser.IdleWindow.Std()),
		md2pdf.WithLogger(logger),
	)
}

func serverOptions(cfg *config.Config, logger *log.Logger) server.Options {
	return server.Options{
		Addr:              cfg.Server.Addr,
		MaxBodyBytes:      cfg.Server.MaxBodyBytes,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout.Std(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Std(),
		CORSOrigins:       cfg.Server.CORSOrigins,
		Logger:            logger,
	}
}

// logBrowser reports which browser conversions will use. A missing browser
// is not fatal: /health must keep answering.
func logBrowser(logger *log.Logger, cfg config.BrowserConfig) {
	bin, err := md2pdf.ResolveBrowserBin(cfg.Bin)
	if err != nil {
		logger.Warn("no browser found, conversions will fail", "hint", hints.ForBrowserLaunch(cfg.NoSandbox))
		return
	}
	logger.Info("browser", "bin", bin)
}
