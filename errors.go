package md2pdf

import "errors"

// Sentinel errors for conversion stages.
var (
	ErrEmptyMarkdown   = errors.New("markdown content is required")
	ErrBrowserNotFound = errors.New("browser executable not found")
	ErrBrowserLaunch   = errors.New("failed to launch browser")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page content")
	ErrRenderTimeout   = errors.New("page did not reach network idle before timeout")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrInternal        = errors.New("internal error")
)
