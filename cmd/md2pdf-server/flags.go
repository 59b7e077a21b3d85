package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/md2pdf-server/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config     string
	verbose    bool
	browserBin string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	commonFlags
	addr          string
	maxConcurrent int

	fs *flag.FlagSet
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	commonFlags
	json bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium executable")
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", stderr)
	addCommonFlags(fs, &f.commonFlags)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default \":3001\")")
	fs.IntVar(&f.maxConcurrent, "max-concurrent", 0, "max simultaneous browsers (0 = unbounded)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	f.fs = fs
	return f, nil
}

func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", stderr)
	addCommonFlags(fs, &f.commonFlags)
	fs.BoolVar(&f.json, "json", false, "machine-readable report")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func parseConfigFlags(args []string, stderr io.Writer) (*commonFlags, error) {
	f := &commonFlags{}
	fs := newFlagSet("config", stderr)
	addCommonFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// mergeCommonFlags applies flags that override every other source.
func mergeCommonFlags(f *commonFlags, cfg *config.Config) {
	if f.browserBin != "" {
		cfg.Browser.Bin = f.browserBin
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}
}

// mergeServeFlags applies serve-only flags; only explicitly set flags count.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	mergeCommonFlags(&f.commonFlags, cfg)
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.fs != nil && f.fs.Changed("max-concurrent") {
		cfg.Browser.MaxConcurrent = f.maxConcurrent
	}
}
