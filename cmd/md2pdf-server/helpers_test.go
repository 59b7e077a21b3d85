package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	md2pdf "github.com/alnah/md2pdf-server"
	"github.com/alnah/md2pdf-server/internal/config"
)

// stubLauncher implements md2pdf.Launcher without a real browser.
type stubLauncher struct {
	launchErr error
	pdfErr    error
}

func (l *stubLauncher) Launch(ctx context.Context) (md2pdf.Session, error) {
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	return &stubSession{pdfErr: l.pdfErr}, nil
}

type stubSession struct{ pdfErr error }

func (s *stubSession) NewPage(ctx context.Context) (md2pdf.Page, error) {
	return &stubPage{pdfErr: s.pdfErr}, nil
}
func (s *stubSession) Close() error { return nil }

type stubPage struct{ pdfErr error }

func (p *stubPage) SetContent(ctx context.Context, html string, timeout, idle time.Duration) error {
	return nil
}
func (p *stubPage) PDF(ctx context.Context, opts md2pdf.PDFOptions) ([]byte, error) {
	if p.pdfErr != nil {
		return nil, p.pdfErr
	}
	return []byte("%PDF-1.4 doctor"), nil
}
func (p *stubPage) Close() error { return nil }

var errNoChrome = errors.New("exec: \"chrome\": executable file not found")

// testEnv returns an Environment with captured output, a fixed variable set
// and a stub launcher.
func testEnv(vars map[string]string, l md2pdf.Launcher) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	if l == nil {
		l = &stubLauncher{}
	}
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		LookupEnv: func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		},
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewLauncher: func(config.BrowserConfig) md2pdf.Launcher { return l },
		Serve: func(ctx context.Context, srv runner) error {
			return nil
		},
	}
	return env, &stdout, &stderr
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "md2pdf-server.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
