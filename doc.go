// Package md2pdf converts Markdown documents to PDF through headless Chrome.
//
// # Quick Start
//
//	conv, err := md2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	art, err := conv.Convert(ctx, "# Hello\n\nWorld")
//	if err != nil {
//	    report := md2pdf.AsError(err)
//	    log.Fatal(report.Kind, report.Message)
//	}
//	os.WriteFile(art.Filename, art.PDF, 0644)
//
// # Conversion Pipeline
//
//  1. Markdown to an HTML fragment via Goldmark (GFM, footnotes, chroma highlighting)
//  2. Fragment wrapped in a fixed document shell with an embedded stylesheet
//  3. A dedicated browser process launched for the request (BrowserManager)
//  4. Content loaded and awaited until the network is idle (RenderPipeline)
//  5. A4 PDF export, then the browser is closed on every exit path
//
// There is no browser pool. Each conversion owns its browser exclusively, so
// concurrent conversions never share state. WithMaxConcurrent bounds how many
// browsers run at once; the default leaves it unbounded.
//
// # Errors
//
// Convert returns a *Error for every failure. Its Kind is one of
// KindValidation, KindLaunch, KindRenderTimeout, KindExport or KindUnknown and
// its Message is safe to show to callers. The underlying sentinel (ErrBrowserLaunch,
// ErrRenderTimeout, ErrPDFGeneration, ...) stays reachable through errors.Is.
//
// # Logging
//
// Conversions log through a charmbracelet/log logger taken from the context
// (ContextWithLogger) or set with WithLogger.
package md2pdf
