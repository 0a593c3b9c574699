// Package mockinterview implements the interactive mock interview: seeded
// questions, per-answer feedback with generated follow-ups, and a final
// score.
package mockinterview

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/pages"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	ToolName = "mock_interview"

	// sessionTTL bounds how long an abandoned interview is kept.
	sessionTTL = time.Hour
)

type StartRequest struct {
	JobType         string `json:"job_type" validate:"required,max=500"`
	ExperienceLevel string `json:"experience_level" validate:"required,max=200"`
	InterviewFormat string `json:"interview_format" validate:"required,max=200"`
	FocusAreas      string `json:"focus_areas" validate:"required,max=500"`
}

type StartResponse struct {
	SessionID      string `json:"session_id"`
	Question       string `json:"question"`
	QuestionNumber int    `json:"question_number"`
}

type AnswerRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid4"`
	Answer    string `json:"answer" validate:"required,max=10000"`
}

type AnswerResponse struct {
	Feedback       string `json:"feedback"`
	Score          int    `json:"score"`
	NextQuestion   string `json:"next_question"`
	QuestionNumber int    `json:"question_number"`
}

type FinishRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid4"`
}

type FinishResponse struct {
	TotalScore int    `json:"total_score"`
	Verdict    string `json:"verdict"`
}

// interview is the transient per-session state; it exists only for the
// duration of the interactive session.
type interview struct {
	questions []string
	current   int
	scores    []int
	touched   time.Time
}

// Handler serves the /api/mock endpoints.
type Handler struct {
	pages.Base

	mu       sync.Mutex
	sessions map[string]*interview
}

func NewHandler(generator interfaces.TextGenerator, metrics interfaces.Metrics,
	logger interfaces.Logger, validate *structValidator.Validate,
) *Handler {
	return &Handler{
		Base: pages.Base{
			Tool:      ToolName,
			Generator: generator,
			Metrics:   metrics,
			Logger:    logger,
			Validator: validate,
		},
		sessions: make(map[string]*interview),
	}
}

// Start seeds a new interview session from the candidate's profile.
func (h *Handler) Start(w http.ResponseWriter, req *http.Request) {
	request := &StartRequest{}
	if !h.DecodeAndValidate(w, req, request) {
		return
	}

	id := uuid.NewString()
	session := &interview{
		questions: seedQuestions(request),
		touched:   time.Now(),
	}

	h.mu.Lock()
	h.sweepLocked()
	h.sessions[id] = session
	h.mu.Unlock()

	h.OK(w, &StartResponse{
		SessionID:      id,
		Question:       session.questions[0],
		QuestionNumber: 1,
	})
}

// Answer scores the submitted answer and returns feedback plus a generated
// follow-up question. Feedback and follow-up are fetched by one auxiliary
// goroutine that is joined before responding.
func (h *Handler) Answer(w http.ResponseWriter, req *http.Request) {
	request := &AnswerRequest{}
	if !h.DecodeAndValidate(w, req, request) {
		return
	}

	h.mu.Lock()
	session, ok := h.sessions[request.SessionID]
	var question string
	if ok {
		if session.current >= len(session.questions) {
			ok = false
		} else {
			question = session.questions[session.current]
			session.touched = time.Now()
		}
	}
	h.mu.Unlock()
	if !ok {
		h.Fail(w, http.StatusNotFound,
			fmt.Errorf("unknown or exhausted session: %s", request.SessionID),
			"No active interview for this session")
		return
	}

	type generated struct {
		feedback string
		followUp string
		err      error
	}
	ch := make(chan generated, 1)

	start := time.Now()
	go func() {
		var out generated
		out.feedback, out.err = h.Generator.Generate(req.Context(),
			feedbackPrompt(question, request.Answer), interfaces.GenerateOptions{})
		if out.err == nil {
			out.followUp, out.err = h.Generator.Generate(req.Context(),
				followUpPrompt(request.Answer), interfaces.GenerateOptions{})
		}
		ch <- out
	}()

	score := scoreAnswer(request.Answer)

	result := <-ch
	h.Observe(start)
	if result.err != nil {
		h.Fail(w, http.StatusBadGateway, result.err, "Failed to generate interview feedback")
		return
	}

	h.mu.Lock()
	session.scores = append(session.scores, score)
	session.questions = append(session.questions, result.followUp)
	session.current++
	next := session.questions[session.current]
	number := session.current + 1
	h.mu.Unlock()

	h.OK(w, &AnswerResponse{
		Feedback:       result.feedback,
		Score:          score,
		NextQuestion:   next,
		QuestionNumber: number,
	})
}

// Finish closes the session and reports the averaged score with a verdict.
func (h *Handler) Finish(w http.ResponseWriter, req *http.Request) {
	request := &FinishRequest{}
	if !h.DecodeAndValidate(w, req, request) {
		return
	}

	h.mu.Lock()
	session, ok := h.sessions[request.SessionID]
	delete(h.sessions, request.SessionID)
	h.mu.Unlock()
	if !ok {
		h.Fail(w, http.StatusNotFound,
			fmt.Errorf("unknown session: %s", request.SessionID),
			"No active interview for this session")
		return
	}

	total := 0
	if len(session.scores) > 0 {
		sum := 0
		for _, s := range session.scores {
			sum += s
		}
		total = sum / len(session.scores)
	}

	h.OK(w, &FinishResponse{
		TotalScore: total,
		Verdict:    verdict(total),
	})
}

// sweepLocked drops sessions idle past the TTL. Caller holds h.mu.
func (h *Handler) sweepLocked() {
	cutoff := time.Now().Add(-sessionTTL)
	for id, s := range h.sessions {
		if s.touched.Before(cutoff) {
			delete(h.sessions, id)
		}
	}
}
