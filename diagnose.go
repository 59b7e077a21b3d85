package md2pdf

import (
	"context"
	"time"
)

// DiagnosticHTML is the literal page rendered by Diagnose.
const DiagnosticHTML = `<h1>PDF generation test</h1><p>This is a test page.</p>`

// Diagnostic stage names, in execution order.
const (
	DiagLaunch  = "launch browser"
	DiagPage    = "create page"
	DiagContent = "set content"
	DiagPDF     = "generate pdf"
	DiagClose   = "close browser"
)

// DiagnosticStage is the outcome of one harness step.
type DiagnosticStage struct {
	Name     string        `json:"name"`
	OK       bool          `json:"ok"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// DiagnosticReport is the outcome of a Diagnose run.
type DiagnosticReport struct {
	OK       bool              `json:"ok"`
	Kind     Kind              `json:"kind,omitempty"`
	PDFBytes int               `json:"pdf_bytes"`
	Stages   []DiagnosticStage `json:"stages"`
}

// Diagnose checks that the rendering engine works in this environment by
// running launch, page, content, PDF and close as separate steps against
// DiagnosticHTML. It stops at the first failing step but always closes a
// launched browser.
func Diagnose(ctx context.Context, l Launcher, r *RenderPipeline) *DiagnosticReport {
	if r == nil {
		r = NewRenderPipeline()
	}
	report := &DiagnosticReport{}
	classifier := DefaultClassifier()

	step := func(name string, stage Stage, fn func() error) bool {
		start := time.Now()
		err := fn()
		st := DiagnosticStage{Name: name, OK: err == nil, Duration: time.Since(start)}
		if err != nil {
			st.Error = err.Error()
			if report.Kind == "" {
				report.Kind = classifier.Classify(stage, err).Kind
			}
		}
		report.Stages = append(report.Stages, st)
		return err == nil
	}

	var session Session
	if !step(DiagLaunch, StageLaunch, func() (err error) {
		session, err = l.Launch(ctx)
		return err
	}) {
		return report
	}

	func() {
		var page Page
		if !step(DiagPage, StageLoad, func() (err error) {
			page, err = session.NewPage(ctx)
			return err
		}) {
			return
		}
		defer func() { _ = page.Close() }()

		if !step(DiagContent, StageLoad, func() error {
			return page.SetContent(ctx, DiagnosticHTML, r.LoadTimeout, r.IdleWindow)
		}) {
			return
		}

		step(DiagPDF, StageExport, func() error {
			pdf, err := page.PDF(ctx, r.PDF)
			report.PDFBytes = len(pdf)
			return err
		})
	}()

	closed := step(DiagClose, StageUnknown, session.Close)

	report.OK = closed && report.Kind == ""
	return report
}
