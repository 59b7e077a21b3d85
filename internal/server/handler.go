package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	md2pdf "github.com/alnah/md2pdf-server"
)

// HeaderPDFPages reports the page count of the returned PDF when known.
const HeaderPDFPages = "X-PDF-Pages"

// Converter turns Markdown into a PDF artifact. *md2pdf.Converter implements it.
type Converter interface {
	Convert(ctx context.Context, markdown string) (*md2pdf.Artifact, error)
}

// Compile-time interface check.
var _ Converter = (*md2pdf.Converter)(nil)

type generateRequest struct {
	Markdown string `json:"markdown"`
}

func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("request body too large", "limit", tooLarge.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: MessageBodyTooLarge})
			return
		}
		logger.Warn("invalid request body", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: MessageInvalidJSON})
		return
	}

	// A client that hangs up must not abort browser work already under way.
	ctx := context.WithoutCancel(r.Context())

	art, err := s.conv.Convert(ctx, req.Markdown)
	if err != nil {
		writeConversionError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	h.Set("Content-Length", strconv.Itoa(len(art.PDF)))
	if art.Pages > 0 {
		h.Set(HeaderPDFPages, strconv.Itoa(art.Pages))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(art.PDF); err != nil {
		logger.Debug("writing pdf response failed", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: MessageHealthy})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
}

func (s *Server) requestLogger(r *http.Request) *log.Logger {
	if l := md2pdf.LoggerFromContext(r.Context()); l != nil {
		return l
	}
	return s.logger
}
