package md2pdf

import (
	"fmt"
	"time"
)

// A4 paper in inches, the unit Chrome's printToPDF expects.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	mmPerInch      = 25.4
)

// Default page margins in millimeters.
const (
	DefaultMarginTopMM    = 20
	DefaultMarginBottomMM = 20
	DefaultMarginLeftMM   = 15
	DefaultMarginRightMM  = 15
)

// Default render timings.
const (
	DefaultLoadTimeout = 30 * time.Second
	DefaultIdleWindow  = 500 * time.Millisecond
)

// RenderedDocument is the complete HTML document handed to the browser.
// It is immutable once built.
type RenderedDocument struct {
	html string
}

// NewRenderedDocument wraps a complete HTML document.
func NewRenderedDocument(html string) RenderedDocument {
	return RenderedDocument{html: html}
}

// HTML returns the document text.
func (d RenderedDocument) HTML() string {
	return d.html
}

// Len returns the document size in bytes.
func (d RenderedDocument) Len() int {
	return len(d.html)
}

// Artifact is a successfully exported PDF.
type Artifact struct {
	PDF         []byte
	Filename    string
	Pages       int // 0 when the page count could not be read
	CompletedAt time.Time
}

// ArtifactFilename returns the suggested download name for a document
// completed at t: document-<epoch-millis>.pdf.
func ArtifactFilename(t time.Time) string {
	return fmt.Sprintf("document-%d.pdf", t.UnixMilli())
}

// PDFOptions configures the export step. All lengths are in inches.
type PDFOptions struct {
	PaperWidth      float64
	PaperHeight     float64
	MarginTop       float64
	MarginBottom    float64
	MarginLeft      float64
	MarginRight     float64
	PrintBackground bool
}

// DefaultPDFOptions returns A4 with 20 mm top/bottom and 15 mm left/right
// margins, backgrounds included.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PaperWidth:      a4WidthInches,
		PaperHeight:     a4HeightInches,
		MarginTop:       mmToInches(DefaultMarginTopMM),
		MarginBottom:    mmToInches(DefaultMarginBottomMM),
		MarginLeft:      mmToInches(DefaultMarginLeftMM),
		MarginRight:     mmToInches(DefaultMarginRightMM),
		PrintBackground: true,
	}
}

func mmToInches(mm float64) float64 {
	return mm / mmPerInch
}
