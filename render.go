package md2pdf

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RenderPipeline loads a document into a fresh page of a browser session and
// exports it as PDF. It never retries: a timeout or export failure is final.
type RenderPipeline struct {
	LoadTimeout time.Duration
	IdleWindow  time.Duration
	PDF         PDFOptions
}

// NewRenderPipeline returns a pipeline with the default 30s load bound,
// 500ms idle window and A4 export settings.
func NewRenderPipeline() *RenderPipeline {
	return &RenderPipeline{
		LoadTimeout: DefaultLoadTimeout,
		IdleWindow:  DefaultIdleWindow,
		PDF:         DefaultPDFOptions(),
	}
}

// Render produces the PDF bytes for doc. Returned errors wrap ErrPageCreate,
// ErrPageLoad, ErrRenderTimeout or ErrPDFGeneration so callers can tell which
// step failed.
func (p *RenderPipeline) Render(ctx context.Context, s Session, doc RenderedDocument) ([]byte, error) {
	logger := loggerFrom(ctx, nil)

	page, err := s.NewPage(ctx)
	if err != nil {
		return nil, wrapIfNot(err, ErrPageCreate)
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.Debug("page close failed", "err", err)
		}
	}()

	loadStart := time.Now()
	if err := page.SetContent(ctx, doc.HTML(), p.LoadTimeout, p.IdleWindow); err != nil {
		if errors.Is(err, ErrRenderTimeout) {
			return nil, err
		}
		return nil, wrapIfNot(err, ErrPageLoad)
	}
	logger.Debug("content loaded", "html_bytes", doc.Len(), "duration", time.Since(loadStart).Round(time.Millisecond))

	pdf, err := page.PDF(ctx, p.PDF)
	if err != nil {
		return nil, wrapIfNot(err, ErrPDFGeneration)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrPDFGeneration)
	}
	return pdf, nil
}

// stageOf maps a render or launch error to the stage that raised it.
func stageOf(err error) Stage {
	switch {
	case errors.Is(err, ErrEmptyMarkdown):
		return StageValidate
	case errors.Is(err, ErrBrowserLaunch),
		errors.Is(err, ErrBrowserNotFound),
		errors.Is(err, ErrBrowserConnect):
		return StageLaunch
	case errors.Is(err, ErrPageCreate),
		errors.Is(err, ErrPageLoad),
		errors.Is(err, ErrRenderTimeout):
		return StageLoad
	case errors.Is(err, ErrPDFGeneration):
		return StageExport
	default:
		return StageUnknown
	}
}

func wrapIfNot(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
