package md2pdf

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// fakeLauncher implements Launcher, creating a fresh fakeSession per launch.
type fakeLauncher struct {
	Err         error
	NewSession  func() *fakeSession // nil means a default working session
	launches    atomic.Int64
	mu          sync.Mutex
	sessions    []*fakeSession
	launchDelay time.Duration
}

func (f *fakeLauncher) Launch(ctx context.Context) (Session, error) {
	f.launches.Add(1)
	if f.launchDelay > 0 {
		time.Sleep(f.launchDelay)
	}
	if f.Err != nil {
		return nil, f.Err
	}
	s := &fakeSession{page: &fakePage{}}
	if f.NewSession != nil {
		s = f.NewSession()
	}
	f.mu.Lock()
	f.sessions = append(f.sessions, s)
	f.mu.Unlock()
	return s, nil
}

func (f *fakeLauncher) Launches() int64 {
	return f.launches.Load()
}

// Closes sums Close calls over every session handed out.
func (f *fakeLauncher) Closes() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, s := range f.sessions {
		n += s.closes.Load()
	}
	return n
}

// fakeSession implements Session.
type fakeSession struct {
	page       *fakePage
	NewPageErr error
	CloseErr   error
	closes     atomic.Int64
}

func (s *fakeSession) NewPage(ctx context.Context) (Page, error) {
	if s.NewPageErr != nil {
		return nil, s.NewPageErr
	}
	return s.page, nil
}

func (s *fakeSession) Close() error {
	s.closes.Add(1)
	return s.CloseErr
}

// fakePage implements Page and records how it was driven.
type fakePage struct {
	SetContentErr error
	SetContentFn  func(ctx context.Context, html string) error
	PDFResult     []byte
	PDFErr        error
	PDFFn         func(html string) []byte
	PanicOnPDF    bool

	mu          sync.Mutex
	html        string
	timeout     time.Duration
	idle        time.Duration
	pdfOpts     PDFOptions
	pdfCalls    int
	closeCalled bool
}

func (p *fakePage) SetContent(ctx context.Context, html string, timeout, idle time.Duration) error {
	p.mu.Lock()
	p.html, p.timeout, p.idle = html, timeout, idle
	p.mu.Unlock()
	if p.SetContentFn != nil {
		return p.SetContentFn(ctx, html)
	}
	return p.SetContentErr
}

func (p *fakePage) PDF(ctx context.Context, opts PDFOptions) ([]byte, error) {
	p.mu.Lock()
	p.pdfOpts = opts
	p.pdfCalls++
	html := p.html
	p.mu.Unlock()

	if p.PanicOnPDF {
		panic("renderer exploded")
	}
	if p.PDFErr != nil {
		return nil, p.PDFErr
	}
	if p.PDFFn != nil {
		return p.PDFFn(html), nil
	}
	if p.PDFResult != nil {
		return p.PDFResult, nil
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	p.closeCalled = true
	p.mu.Unlock()
	return nil
}

// stubHTMLConverter implements pipeline.HTMLConverter.
type stubHTMLConverter struct {
	Err error
}

func (s *stubHTMLConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return "<p>" + content + "</p>", nil
}

var errBoom = errors.New("boom")
