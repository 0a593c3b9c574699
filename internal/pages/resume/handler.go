// Package resume implements the resume builder: a generated resume text
// plus a rendered PDF.
package resume

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/pages"

	structValidator "github.com/go-playground/validator/v10"
)

const ToolName = "resume"

const promptTemplate = `
You are a professional resume builder. Based on the following details, create a well-structured resume.
Name: %s
Email: %s
Phone: %s
Education: %s
Experience: %s
Skills: %s
Projects: %s

Provide a detailed and formatted resume.
`

type GenerateRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,max=50"`
	Education  string `json:"education" validate:"required,max=5000"`
	Experience string `json:"experience" validate:"required,max=5000"`
	Skills     string `json:"skills" validate:"required,max=5000"`
	Projects   string `json:"projects" validate:"required,max=5000"`
}

type GenerateResponse struct {
	Resume string `json:"resume"`
	// PDFBase64 is the rendered document; ?format=pdf streams it instead.
	PDFBase64 string `json:"pdf_base64"`
}

// Handler serves POST /api/resume/generate.
type Handler struct {
	pages.Base
}

func NewHandler(generator interfaces.TextGenerator, metrics interfaces.Metrics,
	logger interfaces.Logger, validate *structValidator.Validate,
) *Handler {
	return &Handler{Base: pages.Base{
		Tool:      ToolName,
		Generator: generator,
		Metrics:   metrics,
		Logger:    logger,
		Validator: validate,
	}}
}

// Generate produces the resume text and its PDF rendering.
func (h *Handler) Generate(w http.ResponseWriter, req *http.Request) {
	request := &GenerateRequest{}
	if !h.DecodeAndValidate(w, req, request) {
		return
	}

	prompt := fmt.Sprintf(promptTemplate,
		request.Name, request.Email, request.Phone,
		request.Education, request.Experience, request.Skills, request.Projects)

	start := time.Now()
	content, err := h.Generator.Generate(req.Context(), prompt, interfaces.GenerateOptions{})
	h.Observe(start)
	if err != nil {
		h.Fail(w, http.StatusBadGateway, err, "Failed to generate resume")
		return
	}

	pdfBytes, err := RenderPDF(content)
	if err != nil {
		h.Fail(w, http.StatusInternalServerError, err, "Failed to render resume PDF")
		return
	}

	if req.URL.Query().Get("format") == "pdf" {
		if h.Metrics != nil {
			h.Metrics.IncCounterVec(pages.RequestsTotal, ToolName, pages.StatusSuccess)
		}
		w.Header().Set(pages.ContentType, "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdfBytes)
		return
	}

	h.OK(w, &GenerateResponse{
		Resume:    content,
		PDFBase64: base64.StdEncoding.EncodeToString(pdfBytes),
	})
}
