package interview

import (
	"bytes"
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

func TestHandler_Questions(t *testing.T) {
	modelOutput := "Question 1: What is Go?\nAnswer 1: A compiled language.\nQuestion 2: What is a slice?\nAnswer 2: A view over an array."

	tests := []struct {
		name           string
		body           string
		generateOut    string
		wantStatusCode int
		wantPairs      int
	}{
		{
			name:           "successful generation",
			body:           `{"job_role":"Backend Engineer","experience_level":3,"job_description":"Go services","num_questions":2}`,
			generateOut:    modelOutput,
			wantStatusCode: http.StatusOK,
			wantPairs:      2,
		},
		{
			name:           "default question count applies",
			body:           `{"job_role":"Backend Engineer","job_description":"Go services"}`,
			generateOut:    modelOutput,
			wantStatusCode: http.StatusOK,
			wantPairs:      2,
		},
		{
			name:           "unparseable model output",
			body:           `{"job_role":"Backend Engineer","job_description":"Go services"}`,
			generateOut:    "I refuse to follow formats.",
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:           "missing job role",
			body:           `{"job_description":"Go services"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "too many questions requested",
			body:           `{"job_role":"Backend Engineer","job_description":"Go services","num_questions":100}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := mocks.NewMockTextGenerator(t)
			generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
				return strings.Contains(p, "interview preparation")
			}), mock.Anything).Return(tt.generateOut, nil).Maybe()

			h := NewHandler(generator, nil, zerolog.NewZerologLogger("test"), structValidator.New())

			req := httptest.NewRequest(http.MethodPost, "/api/interview/questions",
				bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			h.Questions(rr, req)

			if rr.Code != tt.wantStatusCode {
				t.Errorf("got status %d, want %d: %s", rr.Code, tt.wantStatusCode, rr.Body.String())
			}
			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var resp QuestionsResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Pairs) != tt.wantPairs {
				t.Errorf("got %d pairs, want %d", len(resp.Pairs), tt.wantPairs)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(&QuestionsRequest{
		JobRole:        "SRE",
		ExperienceLevel: 5,
		JobDescription: "Keep the lights on",
		NumQuestions:   7,
	})
	if !strings.Contains(prompt, "exactly 7 common interview questions") {
		t.Errorf("prompt missing question count: %s", prompt)
	}
	if !strings.Contains(prompt, "Job Role: SRE") {
		t.Errorf("prompt missing job role: %s", prompt)
	}
}
