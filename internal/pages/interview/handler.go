// Package interview implements the interview preparation endpoint:
// tailored question/answer pairs for a job role and description.
package interview

import (
	"fmt"
	"net/http"
	"time"

	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/pages"

	structValidator "github.com/go-playground/validator/v10"
)

const (
	ToolName = "interview"

	DefaultNumQuestions = 10
	MaxNumQuestions     = 50
)

// promptTemplate pins the exact "Question N:/Answer N:" line format the
// response parser expects.
const promptTemplate = `
You are an AI assistant specializing in interview preparation. Provide a list of exactly %d common interview questions
and detailed answers based on the given job role, experience level, job description, and number of questions.
Provide the questions and answers in the following format:
Question 1:
[Question]
Answer 1:
[Answer]
Question 2:
[Question]
Answer 2:
[Answer]
...
`

type QuestionsRequest struct {
	JobRole         string `json:"job_role" validate:"required,max=200"`
	ExperienceLevel int    `json:"experience_level" validate:"min=0,max=30"`
	JobDescription  string `json:"job_description" validate:"required,max=10000"`
	NumQuestions    int    `json:"num_questions" validate:"min=0,max=50"`
}

type QuestionsResponse struct {
	Pairs []QAPair `json:"pairs"`
}

// Handler serves POST /api/interview/questions.
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

// Questions generates and parses the question/answer list.
func (h *Handler) Questions(w http.ResponseWriter, req *http.Request) {
	request := &QuestionsRequest{}
	if !h.DecodeAndValidate(w, req, request) {
		return
	}
	if request.NumQuestions == 0 {
		request.NumQuestions = DefaultNumQuestions
	}

	prompt := buildPrompt(request)

	start := time.Now()
	raw, err := h.Generator.Generate(req.Context(), prompt, interfaces.GenerateOptions{})
	h.Observe(start)
	if err != nil {
		h.Fail(w, http.StatusBadGateway, err, "Failed to generate interview questions")
		return
	}

	pairs := ParseQAPairs(raw, request.NumQuestions)
	if len(pairs) == 0 {
		h.Fail(w, http.StatusBadGateway,
			fmt.Errorf("no question/answer pairs in model response"),
			"Model response did not match the expected format")
		return
	}

	h.OK(w, &QuestionsResponse{Pairs: pairs})
}

func buildPrompt(req *QuestionsRequest) string {
	inputData := fmt.Sprintf(`
Job Role: %s
Experience Level: %d
Job Description: %s
Number of Questions: %d
`, req.JobRole, req.ExperienceLevel, req.JobDescription, req.NumQuestions)

	return fmt.Sprintf(promptTemplate, req.NumQuestions) + inputData
}
