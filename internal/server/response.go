package server

import (
	"encoding/json"
	"net/http"

	md2pdf "github.com/alnah/md2pdf-server"
)

// Client-facing messages for request decoding failures.
const (
	MessageInvalidJSON  = "Invalid JSON body"
	MessageBodyTooLarge = "Request body too large"
	MessageHealthy      = "PDF generation service is running"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeConversionError renders a classified conversion failure.
func writeConversionError(w http.ResponseWriter, err error) {
	report := md2pdf.AsError(err)
	body := errorResponse{Error: report.Message}
	if report.Kind != md2pdf.KindValidation {
		body.Details = report.Detail
	}
	writeJSON(w, statusForKind(report.Kind), body)
}

func statusForKind(kind md2pdf.Kind) int {
	switch kind {
	case md2pdf.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
