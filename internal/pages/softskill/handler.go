// Package softskill implements the soft-skill self-assessment endpoints.
package softskill

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/pages"

	structValidator "github.com/go-playground/validator/v10"
)

const ToolName = "softskills"

// improvementThreshold is the self-rating below which a skill gets
// curated study material attached to the response.
const improvementThreshold = 4

const feedbackPreamble = "Based on the following self-assessment of soft skills, provide a detailed analysis and suggestions for improvement.\n\n"

// Answer is one questionnaire response. The response text is expected to
// lead with the numeric self-rating, matching the question's phrasing.
type Answer struct {
	Skill    string `json:"skill" validate:"required"`
	Response string `json:"response" validate:"required,max=2000"`
}

type AssessRequest struct {
	Answers []Answer `json:"answers" validate:"required,min=1,dive"`
}

// Improvement carries the study material for a low-rated skill.
type Improvement struct {
	Skill       string   `json:"skill"`
	Rating      int      `json:"rating"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

type AssessResponse struct {
	Feedback     string        `json:"feedback"`
	Improvements []Improvement `json:"improvements"`
}

type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

// Handler serves GET /api/softskills/questions and POST /api/softskills/assess.
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

// Questions returns the questionnaire in its fixed skill order.
func (h *Handler) Questions(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		h.Fail(w, http.StatusMethodNotAllowed,
			fmt.Errorf("method %s not allowed", req.Method), "Method not allowed")
		return
	}

	resp := &QuestionsResponse{Questions: make([]Question, 0, len(SkillOrder))}
	for _, skill := range SkillOrder {
		resp.Questions = append(resp.Questions, questions[skill])
	}

	h.OK(w, resp)
}

// Assess turns the completed questionnaire into overall feedback plus
// targeted resources for every skill rated below the threshold.
func (h *Handler) Assess(w http.ResponseWriter, req *http.Request) {
	request := &AssessRequest{}
	if !h.DecodeAndValidate(w, req, request) {
		return
	}

	answered := make(map[string]bool, len(request.Answers))
	for _, answer := range request.Answers {
		if _, ok := questions[answer.Skill]; !ok {
			h.Fail(w, http.StatusBadRequest,
				fmt.Errorf("unknown skill: %s", answer.Skill), "Unknown skill in answers")
			return
		}
		answered[answer.Skill] = true
	}
	// Feedback is only meaningful over the whole questionnaire.
	for _, skill := range SkillOrder {
		if !answered[skill] {
			h.Fail(w, http.StatusBadRequest,
				fmt.Errorf("missing answer for skill: %s", skill), "All questions must be answered")
			return
		}
	}

	start := time.Now()
	feedback, err := h.Generator.Generate(req.Context(), buildPrompt(request.Answers), interfaces.GenerateOptions{})
	h.Observe(start)
	if err != nil {
		h.Fail(w, http.StatusBadGateway, err, "Failed to generate assessment feedback")
		return
	}

	h.OK(w, &AssessResponse{
		Feedback:     feedback,
		Improvements: collectImprovements(request.Answers),
	})
}

func buildPrompt(answers []Answer) string {
	var sb strings.Builder
	sb.WriteString(feedbackPreamble)
	for _, answer := range answers {
		sb.WriteString("Q: ")
		sb.WriteString(questions[answer.Skill].Question)
		sb.WriteString("\nA: ")
		sb.WriteString(answer.Response)
		sb.WriteString("\n")
	}
	return sb.String()
}

func collectImprovements(answers []Answer) []Improvement {
	improvements := []Improvement{}
	for _, answer := range answers {
		rating, ok := parseRating(answer.Response)
		if !ok || rating >= improvementThreshold {
			continue
		}
		improvements = append(improvements, Improvement{
			Skill:       answer.Skill,
			Rating:      rating,
			Description: descriptions[answer.Skill],
			Resources:   resources[answer.Skill],
		})
	}
	return improvements
}

// parseRating reads the leading numeric field of a response. Responses
// that do not start with a number carry no usable rating.
func parseRating(response string) (int, bool) {
	fields := strings.Fields(response)
	if len(fields) == 0 {
		return 0, false
	}
	rating, err := strconv.Atoi(strings.TrimRight(fields[0], ".,:;"))
	if err != nil {
		return 0, false
	}
	return rating, true
}
