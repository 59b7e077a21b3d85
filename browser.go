package md2pdf

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"
)

// Launcher starts one headless browser process per call.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// Session is a running browser process owned by a single conversion.
type Session interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is a rendering surface inside a Session.
type Page interface {
	// SetContent loads html and blocks until no network request has been in
	// flight for idle, or until timeout elapses (ErrRenderTimeout).
	SetContent(ctx context.Context, html string, timeout, idle time.Duration) error
	PDF(ctx context.Context, opts PDFOptions) ([]byte, error)
	Close() error
}

// ManagerStats counts browser lifecycle events.
type ManagerStats struct {
	Launches int64 // launch attempts
	Releases int64 // termination attempts
	Active   int64 // sessions acquired and not yet released
}

// BrowserManager launches one browser per acquisition and guarantees a
// single termination attempt per successful launch. There is no pooling:
// every acquisition pays full startup cost.
type BrowserManager struct {
	launcher Launcher
	logger   *log.Logger
	sem      *semaphore.Weighted // nil means unbounded

	launches atomic.Int64
	releases atomic.Int64
	active   atomic.Int64
}

// NewBrowserManager creates a manager around launcher. maxConcurrent > 0
// bounds the number of simultaneously running browsers; 0 leaves it
// unbounded.
func NewBrowserManager(launcher Launcher, maxConcurrent int, logger *log.Logger) *BrowserManager {
	m := &BrowserManager{launcher: launcher, logger: logger}
	if maxConcurrent > 0 {
		m.sem = semaphore.NewWeighted(int64(maxConcurrent))
	}
	return m
}

// Handle is an acquired browser session. Release it exactly once; extra
// calls are no-ops.
type Handle struct {
	session Session
	once    sync.Once
	started time.Time
}

// Session returns the underlying browser session.
func (h *Handle) Session() Session {
	return h.session
}

// Acquire launches a new browser process.
func (m *BrowserManager) Acquire(ctx context.Context) (*Handle, error) {
	if m.sem != nil {
		// Waiting for a slot is cancellation, not a launch failure.
		if err := m.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
	}

	m.launches.Add(1)
	s, err := m.launcher.Launch(ctx)
	if err != nil {
		m.releaseSlot()
		return nil, fmt.Errorf("%w: %w", ErrBrowserLaunch, err)
	}

	m.active.Add(1)
	loggerFrom(ctx, m.logger).Debug("browser launched")
	return &Handle{session: s, started: time.Now()}, nil
}

// Release terminates the browser behind h. Close failures are logged and
// never returned: they must not change an outcome already decided.
func (m *BrowserManager) Release(ctx context.Context, h *Handle) {
	if h == nil {
		return
	}
	h.once.Do(func() {
		m.releases.Add(1)
		err := h.session.Close()
		m.active.Add(-1)
		m.releaseSlot()

		logger := loggerFrom(ctx, m.logger)
		if err != nil {
			logger.Warn("browser close failed", "err", err)
			return
		}
		logger.Info("browser closed", "lifetime", time.Since(h.started).Round(time.Millisecond))
	})
}

// WithSession acquires a browser, runs fn with it and releases it on every
// exit path, including panics raised by fn.
func (m *BrowserManager) WithSession(ctx context.Context, fn func(Session) error) error {
	h, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	defer m.Release(ctx, h)

	return fn(h.session)
}

// Stats returns a snapshot of lifecycle counters.
func (m *BrowserManager) Stats() ManagerStats {
	return ManagerStats{
		Launches: m.launches.Load(),
		Releases: m.releases.Load(),
		Active:   m.active.Load(),
	}
}

func (m *BrowserManager) releaseSlot() {
	if m.sem != nil {
		m.sem.Release(1)
	}
}
