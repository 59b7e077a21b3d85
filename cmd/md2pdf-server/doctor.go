package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	md2pdf "github.com/alnah/md2pdf-server"
	"github.com/alnah/md2pdf-server/internal/config"
	"github.com/alnah/md2pdf-server/internal/hints"
)

// doctorTimeout bounds a whole diagnostic run on top of the load timeout.
const doctorTimeout = 90 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status  string                   `json:"status"` // "ready" or "errors"
	Browser browserInfo              `json:"browser"`
	Env     envInfo                  `json:"environment"`
	Checks  *md2pdf.DiagnosticReport `json:"checks"`
	Hint    string                   `json:"hint,omitempty"`
}

type browserInfo struct {
	Bin     string `json:"bin,omitempty"`
	Found   bool   `json:"found"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

// runDoctorCmd renders a test page through the configured browser and
// reports each step. Exit codes: 0 = ready, 4 = rendering engine unusable.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	cfg, _, err := resolveConfig(&flags.commonFlags, env)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), doctorTimeout)
	defer cancel()

	result := runDoctor(ctx, cfg, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status != "ready" {
		return ExitBrowser
	}
	return ExitSuccess
}

func runDoctor(ctx context.Context, cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Browser: browserInfo{Sandbox: !cfg.Browser.NoSandbox},
		Env: envInfo{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			Container: hints.IsInContainer(),
			CI:        hints.InCI(),
		},
	}
	if bin, err := md2pdf.ResolveBrowserBin(cfg.Browser.Bin); err == nil {
		result.Browser.Bin = bin
		result.Browser.Found = true
	}

	renderer := md2pdf.NewRenderPipeline()
	renderer.LoadTimeout = cfg.Browser.LoadTimeout.Std()
	renderer.IdleWindow = cfg.Browser.IdleWindow.Std()

	result.Checks = md2pdf.Diagnose(ctx, env.NewLauncher(cfg.Browser), renderer)

	result.Status = "ready"
	if !result.Checks.OK {
		result.Status = "errors"
	}
	switch result.Checks.Kind {
	case md2pdf.KindLaunch:
		result.Hint = hints.ForBrowserLaunch(cfg.Browser.NoSandbox)
	case md2pdf.KindRenderTimeout:
		result.Hint = hints.ForRenderTimeout()
	}
	return result
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2pdf-server doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser")
	if r.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Browser.Bin)
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	if r.Browser.Sandbox {
		fmt.Fprintln(w, "  [OK] Sandbox: enabled")
	} else {
		fmt.Fprintln(w, "  [OK] Sandbox: disabled")
	}
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Rendering")
	for _, st := range r.Checks.Stages {
		d := st.Duration.Round(time.Millisecond)
		if st.OK {
			fmt.Fprintf(w, "  [OK] %s (%s)\n", st.Name, d)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s: %s\n", st.Name, st.Error)
		}
	}
	if r.Checks.PDFBytes > 0 {
		fmt.Fprintf(w, "  PDF size: %d bytes\n", r.Checks.PDFBytes)
	}
	fmt.Fprintln(w)

	if r.Status == "ready" {
		fmt.Fprintln(w, "Status: Ready to convert")
		return
	}
	fmt.Fprintf(w, "Status: Not ready (%s)%s\n", r.Checks.Kind, hints.Format(r.Hint))
}
