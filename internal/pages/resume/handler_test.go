package resume

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/careercraft/careercraft/internal/interfaces/mocks"
	"github.com/careercraft/careercraft/pkg/zerolog"
	"github.com/stretchr/testify/mock"

	structValidator "github.com/go-playground/validator/v10"
)

const validBody = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"phone": "+44 20 7946 0958",
	"education": "Mathematics",
	"experience": "Analytical Engine programming",
	"skills": "Algorithms",
	"projects": "Notes on the Analytical Engine"
}`

func newTestHandler(t *testing.T, resumeText string) *Handler {
	t.Helper()
	generator := mocks.NewMockTextGenerator(t)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "professional resume builder")
	}), mock.Anything).Return(resumeText, nil).Maybe()
	return NewHandler(generator, nil, zerolog.NewZerologLogger("test"), structValidator.New())
}

func TestHandler_Generate(t *testing.T) {
	h := newTestHandler(t, "Ada Lovelace\nMathematician and programmer.")

	req := httptest.NewRequest(http.MethodPost, "/api/resume/generate", bytes.NewBufferString(validBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Resume, "Ada Lovelace") {
		t.Errorf("Resume = %q", resp.Resume)
	}

	pdfBytes, err := base64.StdEncoding.DecodeString(resp.PDFBase64)
	if err != nil {
		t.Fatalf("pdf_base64 is not valid base64: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("decoded payload is not a PDF document")
	}
}

func TestHandler_GeneratePDFFormat(t *testing.T) {
	h := newTestHandler(t, "Ada Lovelace")

	req := httptest.NewRequest(http.MethodPost, "/api/resume/generate?format=pdf", bytes.NewBufferString(validBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "resume.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Error("response body is not a PDF document")
	}
}

func TestHandler_GenerateValidation(t *testing.T) {
	h := newTestHandler(t, "")

	body := `{"name":"Ada","email":"not-an-email","phone":"1","education":"a","experience":"b","skills":"c","projects":"d"}`
	req := httptest.NewRequest(http.MethodPost, "/api/resume/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rr.Code)
	}
}

func TestRenderPDF(t *testing.T) {
	got, err := RenderPDF("Line one\nLine two with typographic punctuation — and more.")
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(got, []byte("%PDF")) {
		t.Error("RenderPDF() output does not start with a PDF header")
	}
}
