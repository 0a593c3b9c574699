// Package pages holds the shared plumbing for the tool endpoints: request
// decoding, validation, the JSON error envelope, and per-tool metrics.
package pages

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/models/dto"

	structValidator "github.com/go-playground/validator/v10"
)

const (
	ContentType     = "Content-Type"
	ContentTypeJSON = "application/json"

	// RequestsTotal counts tool requests, labeled by tool and outcome.
	RequestsTotal     = "tool_requests_total"
	RequestsTotalHelp = "Total number of tool requests, labeled by tool and status"

	StatusSuccess = "success"
	StatusError   = "error"
)

var DurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// DurationMetric returns the histogram name for a tool's generation time.
func DurationMetric(tool string) string {
	return tool + "_generation_duration_seconds"
}

// Base carries the dependencies every tool handler shares.
type Base struct {
	Tool      string
	Generator interfaces.TextGenerator
	Metrics   interfaces.Metrics
	Logger    interfaces.Logger
	Validator *structValidator.Validate
}

// DecodeAndValidate enforces POST + JSON, decodes the body into v, and runs
// struct validation. On failure it renders the error envelope and reports
// false; the handler just returns.
func (b *Base) DecodeAndValidate(w http.ResponseWriter, req *http.Request, v interface{}) bool {
	if req.Method != http.MethodPost {
		b.Fail(w, http.StatusMethodNotAllowed,
			fmt.Errorf("method %s not allowed", req.Method), "Method not allowed")
		return false
	}

	if req.Header.Get(ContentType) != ContentTypeJSON {
		b.Fail(w, http.StatusBadRequest,
			fmt.Errorf("invalid content-type: %s", req.Header.Get(ContentType)),
			"Request Content-Type must be application/json")
		return false
	}

	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		b.Fail(w, http.StatusBadRequest, err, "Invalid request body")
		return false
	}

	if err := b.Validator.Struct(v); err != nil {
		errors := err.(structValidator.ValidationErrors)
		b.Fail(w, http.StatusBadRequest,
			fmt.Errorf("invalid request data: %s", errors), "Request data validation failed")
		return false
	}

	return true
}

// OK renders a 200 JSON response and counts the success.
func (b *Base) OK(w http.ResponseWriter, v interface{}) {
	if b.Metrics != nil {
		b.Metrics.IncCounterVec(RequestsTotal, b.Tool, StatusSuccess)
	}
	w.Header().Set(ContentType, ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		b.Logger.Error("Failed to encode response", "tool", b.Tool, "error", err)
	}
}

// Fail renders the JSON error envelope and counts the failure.
func (b *Base) Fail(w http.ResponseWriter, status int, err error, message string) {
	if b.Metrics != nil {
		b.Metrics.IncCounterVec(RequestsTotal, b.Tool, StatusError)
	}
	b.Logger.Warn("Tool request failed", "tool", b.Tool, "status", status, "error", err)

	w.Header().Set(ContentType, ContentTypeJSON)
	w.WriteHeader(status)
	resp := dto.ErrorResponseDTO{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// Observe records the generation duration for this tool.
func (b *Base) Observe(start time.Time) {
	if b.Metrics != nil {
		b.Metrics.ObserveHistogram(DurationMetric(b.Tool), time.Since(start).Seconds())
	}
}
