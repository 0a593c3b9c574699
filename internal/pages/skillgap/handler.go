// Package skillgap implements the skill-gap analyzer: the model returns a
// JSON envelope which is decoded into a typed report.
package skillgap

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/pages"

	structValidator "github.com/go-playground/validator/v10"
)

const ToolName = "skillgap"

// promptTemplate pins the JSON envelope shape the parser expects. The key
// names with spaces are part of the contract.
const promptTemplate = `
You are an AI specializing in skill gap analysis. You will receive a list of skills required for a specific job
and a list of skills the user currently possesses. Your task is to identify the skill gaps and suggest resources or
courses to help the user acquire the missing skills. Provide the analysis in the following format:
{
  "Required Skills": ["skill1", "skill2", ...],
  "Current Skills": ["skillA", "skillB", ...],
  "Missing Skills": ["skillX", "skillY", ...],
  "Suggested Resources": [
    {
      "skill": "skillX",
      "resources": [
        {"name": "Resource 1", "link": "https://example.com/resource1"},
        {"name": "Resource 2", "link": "https://example.com/resource2"}
      ]
    },
    ...
  ]
}
Return only valid JSON. Do not include explanations, markdown, or text before or after the JSON.
`

type AnalyzeRequest struct {
	RequiredSkills []string `json:"required_skills" validate:"required,min=1,dive,required,max=100"`
	CurrentSkills  []string `json:"current_skills" validate:"required,min=1,dive,required,max=100"`
}

// Handler serves POST /api/skillgap/analyze.
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

// Analyze generates and parses the skill-gap report.
func (h *Handler) Analyze(w http.ResponseWriter, req *http.Request) {
	request := &AnalyzeRequest{}
	if !h.DecodeAndValidate(w, req, request) {
		return
	}

	prompt := buildPrompt(request.RequiredSkills, request.CurrentSkills)

	start := time.Now()
	raw, err := h.Generator.Generate(req.Context(), prompt, interfaces.GenerateOptions{})
	h.Observe(start)
	if err != nil {
		h.Fail(w, http.StatusBadGateway, err, "Failed to analyze skill gap")
		return
	}

	report, err := ParseReport(raw)
	if err != nil {
		h.Fail(w, http.StatusBadGateway, err, "Model response did not match the expected format")
		return
	}

	h.OK(w, report)
}

func buildPrompt(required, current []string) string {
	return fmt.Sprintf("%s\nRequired Skills: %s\nCurrent Skills: %s\n",
		promptTemplate,
		strings.Join(required, ", "),
		strings.Join(current, ", "))
}
