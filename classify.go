package md2pdf

import (
	"errors"
	"slices"
	"strings"
)

// Kind is the user-facing category of a failed conversion.
type Kind string

// Failure kinds.
const (
	KindValidation    Kind = "ValidationFailure"
	KindLaunch        Kind = "LaunchFailure"
	KindRenderTimeout Kind = "RenderTimeout"
	KindExport        Kind = "ExportFailure"
	KindUnknown       Kind = "UnknownFailure"
)

// Stage identifies the pipeline step that raised a failure.
type Stage int

// Pipeline stages in execution order.
const (
	StageValidate Stage = iota
	StageTemplate
	StageLaunch
	StageLoad
	StageExport

	// StageUnknown marks failures raised outside a known stage.
	StageUnknown Stage = -1
)

func (s Stage) String() string {
	switch s {
	case StageValidate:
		return "validate"
	case StageTemplate:
		return "template"
	case StageLaunch:
		return "launch"
	case StageLoad:
		return "load"
	case StageExport:
		return "export"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MessageValidation    = "Markdown content is required"
	MessageLaunch        = "Failed to launch the rendering engine, make sure Chrome or Chromium is installed"
	MessageRenderTimeout = "Failed to generate PDF: content did not finish loading in time"
	messageFailurePrefix = "Failed to generate PDF"
)

// Error is the classified report of a failed conversion.
type Error struct {
	Kind    Kind
	Stage   Stage
	Message string // user-facing
	Detail  string // raw diagnostic text, may be empty
	Err     error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + " (" + e.Detail + ")"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a classified *Error from err. Errors that were never
// classified are reported as KindUnknown.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return DefaultClassifier().Classify(StageUnknown, err)
}

// Classifier maps raw stage failures to user-facing reports.
type Classifier interface {
	Classify(stage Stage, err error) *Error
}

// DefaultTransportPatterns are failure substrings that mean the browser
// transport broke right after launch. They are only consulted for failures
// raised while the session is being set up, so a browser that dies during
// export is still reported as an export failure.
var DefaultTransportPatterns = []string{
	"socket hang up",
	"connection refused",
	"connection reset",
	"broken pipe",
	"websocket: close",
	"unexpected EOF",
}

// PatternClassifier derives the kind from the stage, except that a failure
// raised before export whose text contains one of Patterns is reported as a
// launch failure.
type PatternClassifier struct {
	Patterns []string
}

// Compile-time interface check.
var _ Classifier = (*PatternClassifier)(nil)

// DefaultClassifier returns a PatternClassifier with its own copy of
// DefaultTransportPatterns.
func DefaultClassifier() *PatternClassifier {
	return &PatternClassifier{Patterns: slices.Clone(DefaultTransportPatterns)}
}

// Classify builds the report for err raised during stage.
func (c *PatternClassifier) Classify(stage Stage, err error) *Error {
	if err == nil {
		return nil
	}
	detail := err.Error()
	report := &Error{Stage: stage, Detail: detail, Err: err}

	if stage == StageValidate || errors.Is(err, ErrEmptyMarkdown) {
		report.Kind = KindValidation
		report.Message = MessageValidation
		report.Detail = ""
		return report
	}

	if stage == StageLaunch || (transportStage(stage) && c.matchesTransport(detail)) {
		report.Kind = KindLaunch
		report.Message = MessageLaunch
		return report
	}

	switch {
	case stage == StageLoad && errors.Is(err, ErrRenderTimeout):
		report.Kind = KindRenderTimeout
		report.Message = MessageRenderTimeout
	case stage == StageExport:
		report.Kind = KindExport
		report.Message = messageFailurePrefix + ": " + detail
	default:
		report.Kind = KindUnknown
		report.Message = messageFailurePrefix + ": " + detail
	}
	return report
}

// transportStage reports whether a broken transport at stage can still mean
// the browser never came up properly.
func transportStage(stage Stage) bool {
	return stage == StageLoad || stage == StageUnknown
}

func (c *PatternClassifier) matchesTransport(text string) bool {
	for _, p := range c.Patterns {
		if p != "" && strings.Contains(text, p) {
			return true
		}
	}
	return false
}
