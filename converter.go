package md2pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/md2pdf-server/internal/assets"
	"github.com/alnah/md2pdf-server/internal/hints"
	"github.com/alnah/md2pdf-server/internal/pdfinfo"
	"github.com/alnah/md2pdf-server/internal/pipeline"
)

// Compile-time interface checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ Classifier             = (*PatternClassifier)(nil)
)

// Converter orchestrates one conversion per call: Markdown to HTML, document
// shell, a dedicated browser, PDF export, and guaranteed browser release.
// Converter holds no per-request state and is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	htmlConverter pipeline.HTMLConverter
	templater     *pipeline.Templater
	launcher      Launcher
	manager       *BrowserManager
	renderer      *RenderPipeline
	classifier    Classifier
	countPages    func([]byte) (int, error)
	logger        *log.Logger
	now           func() time.Time
}

// NewConverter creates a Converter. Without options it launches the locally
// installed Chrome with the sandbox disabled, as a trusted server does, and no
// concurrency limit.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{noSandbox: true},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		renderer:      NewRenderPipeline(),
		classifier:    DefaultClassifier(),
		countPages:    pdfinfo.PageCount,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	templater, err := pipeline.NewTemplater(assets.NewEmbeddedLoader())
	if err != nil {
		return nil, fmt.Errorf("initializing templater: %w", err)
	}
	c.templater = templater

	if c.launcher == nil {
		c.launcher = &RodLauncher{
			Bin:       c.cfg.browserBin,
			NoSandbox: c.cfg.noSandbox,
			Flags:     c.cfg.browserFlags,
		}
	}
	c.manager = NewBrowserManager(c.launcher, c.cfg.maxConcurrent, c.logger)

	return c, nil
}

// Convert renders markdown to a PDF artifact. On failure the returned error
// is always a classified *Error and no partial output is returned.
// ctx cancellation is honored while waiting for a concurrency slot and by the
// browser calls; the service layer detaches it from the client connection.
func (c *Converter) Convert(ctx context.Context, markdown string) (art *Artifact, err error) {
	logger := loggerFrom(ctx, c.logger)

	if markdown == "" {
		return nil, c.classifier.Classify(StageValidate, ErrEmptyMarkdown)
	}

	start := c.now()
	logger.Info("generating pdf", "markdown_bytes", len(markdown))

	defer func() {
		if r := recover(); r != nil {
			art = nil
			err = c.classifier.Classify(StageUnknown, fmt.Errorf("%w: %v", ErrInternal, r))
		}
		if err != nil {
			c.logFailure(logger, err)
		}
	}()

	fragment, err := c.htmlConverter.ToHTML(ctx, markdown)
	if err != nil {
		return nil, c.classifier.Classify(StageTemplate, err)
	}
	doc := NewRenderedDocument(c.templater.Wrap(fragment))

	var pdf []byte
	err = c.manager.WithSession(ctx, func(s Session) error {
		var renderErr error
		pdf, renderErr = c.renderer.Render(ctx, s, doc)
		return renderErr
	})
	if err != nil {
		return nil, c.classifier.Classify(stageOf(err), err)
	}

	completed := c.now()
	art = &Artifact{
		PDF:         pdf,
		Filename:    ArtifactFilename(completed),
		CompletedAt: completed,
	}
	if pages, perr := c.countPages(pdf); perr == nil {
		art.Pages = pages
	} else {
		logger.Debug("page count unavailable", "err", perr)
	}

	logger.Info("pdf generated",
		"bytes", len(pdf),
		"pages", art.Pages,
		"duration", completed.Sub(start).Round(time.Millisecond))
	return art, nil
}

// Stats reports browser lifecycle counters.
func (c *Converter) Stats() ManagerStats {
	return c.manager.Stats()
}

func (c *Converter) logFailure(logger *log.Logger, err error) {
	report := AsError(err)
	if report.Kind == KindValidation {
		return
	}
	fields := []any{"kind", report.Kind, "stage", report.Stage, "err", report.Detail}
	switch report.Kind {
	case KindLaunch:
		fields = append(fields, "hint", hints.ForBrowserLaunch(c.cfg.noSandbox))
	case KindRenderTimeout:
		fields = append(fields, "hint", hints.ForRenderTimeout())
	}
	logger.Error("pdf generation failed", fields...)
}
