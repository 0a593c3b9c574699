package mockinterview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/careercraft/careercraft/internal/interfaces/mocks"
	"github.com/careercraft/careercraft/pkg/zerolog"
	"github.com/stretchr/testify/mock"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func newTestHandler(t *testing.T) (*Handler, *mocks.MockTextGenerator) {
	t.Helper()
	generator := mocks.NewMockTextGenerator(t)
	h := NewHandler(generator, nil, zerolog.NewZerologLogger("test"), structValidator.New())
	return h, generator
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestHandler_InterviewFlow(t *testing.T) {
	h, generator := newTestHandler(t)

	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Provide feedback")
	}), mock.Anything).Return("Solid answer, add concrete examples.", nil)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "follow-up question")
	}), mock.Anything).Return("How would you scale that approach?", nil)

	// Start
	rr := postJSON(t, h.Start, "/api/mock/start",
		`{"job_type":"backend","experience_level":"senior","interview_format":"technical","focus_areas":"APIs"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("Start got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var startResp StartResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &startResp); err != nil {
		t.Fatalf("failed to decode start response: %v", err)
	}
	if startResp.SessionID == "" || startResp.QuestionNumber != 1 {
		t.Fatalf("unexpected start response: %+v", startResp)
	}

	// Answer
	answer := strings.Repeat("detail ", 30) // 30 words -> score 6
	rr = postJSON(t, h.Answer, "/api/mock/answer",
		fmt.Sprintf(`{"session_id":"%s","answer":"%s"}`, startResp.SessionID, strings.TrimSpace(answer)))
	if rr.Code != http.StatusOK {
		t.Fatalf("Answer got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var answerResp AnswerResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &answerResp); err != nil {
		t.Fatalf("failed to decode answer response: %v", err)
	}
	if answerResp.Score != 6 {
		t.Errorf("Score = %d, want 6", answerResp.Score)
	}
	if answerResp.Feedback != "Solid answer, add concrete examples." {
		t.Errorf("unexpected feedback: %q", answerResp.Feedback)
	}
	if answerResp.QuestionNumber != 2 {
		t.Errorf("QuestionNumber = %d, want 2", answerResp.QuestionNumber)
	}

	// The generated follow-up is appended to the question list.
	h.mu.Lock()
	session := h.sessions[startResp.SessionID]
	lastQuestion := session.questions[len(session.questions)-1]
	h.mu.Unlock()
	if lastQuestion != "How would you scale that approach?" {
		t.Errorf("follow-up not appended, got %q", lastQuestion)
	}

	// Finish
	rr = postJSON(t, h.Finish, "/api/mock/finish",
		fmt.Sprintf(`{"session_id":"%s"}`, startResp.SessionID))
	if rr.Code != http.StatusOK {
		t.Fatalf("Finish got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var finishResp FinishResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &finishResp); err != nil {
		t.Fatalf("failed to decode finish response: %v", err)
	}
	if finishResp.TotalScore != 6 {
		t.Errorf("TotalScore = %d, want 6", finishResp.TotalScore)
	}
	if finishResp.Verdict != verdict(6) {
		t.Errorf("Verdict = %q, want %q", finishResp.Verdict, verdict(6))
	}

	// The session is gone after Finish.
	rr = postJSON(t, h.Finish, "/api/mock/finish",
		fmt.Sprintf(`{"session_id":"%s"}`, startResp.SessionID))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Finish on closed session got status %d, want 404", rr.Code)
	}
}

func TestHandler_AnswerUnknownSession(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := postJSON(t, h.Answer, "/api/mock/answer",
		fmt.Sprintf(`{"session_id":"%s","answer":"some answer"}`, uuid.NewString()))
	if rr.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rr.Code)
	}
}

func TestHandler_StartValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := postJSON(t, h.Start, "/api/mock/start", `{"job_type":"backend"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rr.Code)
	}
}
