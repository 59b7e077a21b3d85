// Package server exposes the conversion service over HTTP.
//
// Routes:
//
//	POST /api/generate-pdf  {"markdown": "..."} -> application/pdf
//	GET  /health            liveness, independent of the rendering engine
//
// Every request gets a request id (inbound X-Request-ID or a new UUID) that is
// echoed in the response and attached to the logger handed to the converter.
package server
