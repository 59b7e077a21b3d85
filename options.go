package md2pdf

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/md2pdf-server/internal/pipeline"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings resolved in NewConverter.
type converterConfig struct {
	browserBin    string
	noSandbox     bool
	browserFlags  []string
	maxConcurrent int
}

// WithLauncher replaces the go-rod launcher, e.g. with a remote browser or a
// test double. Browser binary and flag options are ignored when set.
func WithLauncher(l Launcher) Option {
	return func(c *Converter) {
		c.launcher = l
	}
}

// WithBrowserBin sets the Chrome/Chromium executable.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithNoSandbox controls the Chrome sandbox. It is disabled by default, which
// running as root in most containers requires; pass false to enable it.
func WithNoSandbox(disabled bool) Option {
	return func(c *Converter) {
		c.cfg.noSandbox = disabled
	}
}

// WithBrowserFlags replaces DefaultBrowserFlags.
func WithBrowserFlags(flags ...string) Option {
	return func(c *Converter) {
		c.cfg.browserFlags = flags
	}
}

// WithMaxConcurrent bounds simultaneously running browsers. Zero, the
// default, leaves process spawning unbounded.
// Panics if n < 0 (programmer error).
func WithMaxConcurrent(n int) Option {
	if n < 0 {
		panic("md2pdf: WithMaxConcurrent must not be negative")
	}
	return func(c *Converter) {
		c.cfg.maxConcurrent = n
	}
}

// WithLoadTimeout bounds the wait for the page to reach network idle.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithLoadTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2pdf: WithLoadTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.renderer.LoadTimeout = d
	}
}

// WithIdleWindow sets how long the network must stay quiet before the page
// counts as settled.
// Panics if d <= 0 (programmer error).
func WithIdleWindow(d time.Duration) Option {
	if d <= 0 {
		panic("md2pdf: WithIdleWindow duration must be positive")
	}
	return func(c *Converter) {
		c.renderer.IdleWindow = d
	}
}

// WithPDFOptions overrides the A4 export settings.
func WithPDFOptions(opts PDFOptions) Option {
	return func(c *Converter) {
		c.renderer.PDF = opts
	}
}

// WithLogger sets the fallback logger used when the conversion context
// carries none.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithClassifier replaces the failure classifier.
func WithClassifier(cl Classifier) Option {
	return func(c *Converter) {
		c.classifier = cl
	}
}

// WithClock sets the time source used for filenames and durations.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// withHTMLConverter injects a Markdown converter (tests).
func withHTMLConverter(h pipeline.HTMLConverter) Option {
	return func(c *Converter) {
		c.htmlConverter = h
	}
}

// withPageCounter injects the page counter (tests).
func withPageCounter(fn func([]byte) (int, error)) Option {
	return func(c *Converter) {
		c.countPages = fn
	}
}
