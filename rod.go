package md2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/md2pdf-server/internal/process"
)

// DefaultBrowserFlags disable interactive and hardware-dependent features for
// a trusted server environment. Sandboxing is controlled by RodLauncher.NoSandbox.
var DefaultBrowserFlags = []string{
	"disable-setuid-sandbox",
	"disable-dev-shm-usage",
	"disable-accelerated-2d-canvas",
	"no-first-run",
	"disable-gpu",
}

// cleanupTimeout bounds the wait for the browser to exit before its profile
// directory is removed.
const cleanupTimeout = 5 * time.Second

// Compile-time interface checks.
var (
	_ Launcher = (*RodLauncher)(nil)
	_ Session  = (*rodSession)(nil)
	_ Page     = (*rodPage)(nil)
)

// RodLauncher starts headless Chrome/Chromium through go-rod.
// The binary is never downloaded: Bin, then ROD_BROWSER_BIN, then a lookup of
// installed browsers.
type RodLauncher struct {
	Bin       string
	NoSandbox bool
	Flags     []string // nil means DefaultBrowserFlags
}

// ResolveBrowserBin returns the browser executable RodLauncher would use.
func ResolveBrowserBin(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, nil
	}
	if bin, found := launcher.LookPath(); found {
		return bin, nil
	}
	return "", ErrBrowserNotFound
}

// Launch starts a browser process and connects to it.
func (r *RodLauncher) Launch(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bin, err := ResolveBrowserBin(r.Bin)
	if err != nil {
		return nil, err
	}

	l := launcher.New().
		Bin(bin).
		Headless(true).
		NoSandbox(r.NoSandbox)

	browserFlags := r.Flags
	if browserFlags == nil {
		browserFlags = DefaultBrowserFlags
	}
	for _, f := range browserFlags {
		l = l.Set(flags.Flag(f))
	}

	u, err := l.Launch()
	if err != nil {
		killLauncher(l)
		_ = waitCleanup(l, cleanupTimeout)
		return nil, err
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		killLauncher(l)
		_ = waitCleanup(l, cleanupTimeout)
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	return &rodSession{browser: browser, launcher: l}, nil
}

// rodSession owns one browser process.
type rodSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func (s *rodSession) NewPage(ctx context.Context) (Page, error) {
	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	return &rodPage{page: page}, nil
}

// Close asks the browser to exit, kills its process group if it refuses, and
// removes the temporary profile directory.
func (s *rodSession) Close() error {
	var errs []error
	if err := s.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing browser: %w", err))
		killLauncher(s.launcher)
	}
	if err := waitCleanup(s.launcher, cleanupTimeout); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// rodPage is one tab.
type rodPage struct {
	page *rod.Page
}

func (p *rodPage) SetContent(ctx context.Context, html string, timeout, idle time.Duration) error {
	tp := p.page.Context(ctx).Timeout(timeout)
	defer tp.CancelTimeout()

	// Subscribe before loading so no request event is missed.
	wait := tp.WaitRequestIdle(idle, nil, nil, nil)

	if err := tp.SetDocumentContent(html); err != nil {
		if errors.Is(tp.GetContext().Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrRenderTimeout, timeout)
		}
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	wait()

	if err := tp.GetContext().Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrRenderTimeout, timeout)
		}
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return nil
}

func (p *rodPage) PDF(ctx context.Context, opts PDFOptions) ([]byte, error) {
	reader, err := p.page.Context(ctx).PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(opts.PaperWidth),
		PaperHeight:     floatPtr(opts.PaperHeight),
		MarginTop:       floatPtr(opts.MarginTop),
		MarginBottom:    floatPtr(opts.MarginBottom),
		MarginLeft:      floatPtr(opts.MarginLeft),
		MarginRight:     floatPtr(opts.MarginRight),
		PrintBackground: opts.PrintBackground,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return buf, nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}

// killLauncher force-kills the browser and its children without the
// launcher's built-in settle delay.
func killLauncher(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		_ = process.KillProcessGroup(pid)
	}
}

// waitCleanup removes the profile directory once the process has exited.
// A process that has not exited within timeout is reported, not waited for.
func waitCleanup(l *launcher.Launcher, timeout time.Duration) error {
	if l.PID() == 0 {
		return nil
	}
	done := make(chan struct{})
	go func() {
		l.Cleanup()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("browser process %d did not exit within %s", l.PID(), timeout)
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
