// Package career implements the career counseling chatbot endpoint.
package career

import (
	"net/http"
	"strings"
	"time"

	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/pages"

	structValidator "github.com/go-playground/validator/v10"
)

const ToolName = "career"

// promptTemplate mirrors the counselor persona and roadmap format the
// generation backend is tuned to answer.
const promptTemplate = `
You are a career counselor. Based on the following details, provide a detailed career roadmap for the student.
Education: {Education}
Goals: {Goals}

Provide a step-by-step guide on how the student can achieve their career goals.
`

type RoadmapRequest struct {
	Education string `json:"education" validate:"required,max=2000"`
	Goals     string `json:"goals" validate:"required,max=2000"`
}

type RoadmapResponse struct {
	Roadmap string `json:"roadmap"`
}

// Handler serves POST /api/career/roadmap.
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

// Roadmap generates a step-by-step career roadmap from education and goals.
func (h *Handler) Roadmap(w http.ResponseWriter, req *http.Request) {
	request := &RoadmapRequest{}
	if !h.DecodeAndValidate(w, req, request) {
		return
	}

	prompt := buildPrompt(request.Education, request.Goals)

	start := time.Now()
	roadmap, err := h.Generator.Generate(req.Context(), prompt, interfaces.GenerateOptions{})
	h.Observe(start)
	if err != nil {
		h.Fail(w, http.StatusBadGateway, err, "Failed to generate career roadmap")
		return
	}

	h.OK(w, &RoadmapResponse{Roadmap: roadmap})
}

func buildPrompt(education, goals string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{Education}", education)
	return strings.ReplaceAll(prompt, "{Goals}", goals)
}
