package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/validation"
)

// Error codes carried in the envelope.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeBadRequest   = "BAD_REQUEST"
	CodeInternal     = "INTERNAL_ERROR"
	CodeRateLimited  = "RATE_LIMITED"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Response is the envelope for every API response.
type Response struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Error    *APIError   `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Count     *int      `json:"count,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, resp *Response) {
	resp.Metadata.Timestamp = time.Now().UTC()

	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("failed to marshal JSON response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.log.Warn("failed to write JSON response: %v", err)
	}
}

func (s *Server) respondData(w http.ResponseWriter, data interface{}) {
	s.respondJSON(w, http.StatusOK, &Response{Status: "success", Data: data})
}

func (s *Server) respondList(w http.ResponseWriter, data interface{}, n int) {
	s.respondJSON(w, http.StatusOK, &Response{Status: "success", Data: data, Metadata: Metadata{Count: &n}})
}

func (s *Server) respondError(w http.ResponseWriter, status int, apiErr *APIError) {
	s.respondJSON(w, status, &Response{Status: "error", Error: apiErr})
}

// respondErr maps an error from the engine, catalog or validation layer to
// an HTTP status and envelope.
func (s *Server) respondErr(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		s.respondError(w, http.StatusBadRequest, &APIError{Code: CodeValidation, Message: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, astro.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, &APIError{Code: CodeInvalidInput, Message: err.Error()})
	case errors.Is(err, catalog.ErrUnknownStar):
		s.respondError(w, http.StatusNotFound, &APIError{Code: CodeNotFound, Message: err.Error()})
	default:
		s.log.Error("request failed: %s", sanitizeLogValue(err.Error()))
		s.respondError(w, http.StatusInternalServerError, &APIError{Code: CodeInternal, Message: "internal error"})
	}
}

func (s *Server) notFound(w http.ResponseWriter, format string, args ...interface{}) {
	s.respondError(w, http.StatusNotFound, &APIError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)})
}

func (s *Server) badRequest(w http.ResponseWriter, format string, args ...interface{}) {
	s.respondError(w, http.StatusBadRequest, &APIError{Code: CodeBadRequest, Message: fmt.Sprintf(format, args...)})
}

// decodeBody decodes a JSON body into v and validates it.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &validation.Error{Fields: []validation.FieldError{{
			Field: "body", Tag: "json", Message: "malformed JSON body: " + err.Error(),
		}}}
	}
	return validation.Struct(v)
}

// sanitizeLogValue removes control characters from strings to prevent log
// injection.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
