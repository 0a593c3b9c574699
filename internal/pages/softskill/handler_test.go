package softskill

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

func newTestHandler(t *testing.T) (*Handler, *mocks.MockTextGenerator) {
	t.Helper()
	generator := mocks.NewMockTextGenerator(t)
	h := NewHandler(generator, nil, zerolog.NewZerologLogger("test"), structValidator.New())
	return h, generator
}

func TestHandler_Questions(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/softskills/questions", nil)
	rr := httptest.NewRecorder()
	h.Questions(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}

	var resp QuestionsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Questions) != len(SkillOrder) {
		t.Fatalf("got %d questions, want %d", len(resp.Questions), len(SkillOrder))
	}
	for i, q := range resp.Questions {
		if q.Skill != SkillOrder[i] {
			t.Errorf("question %d skill = %q, want %q", i, q.Skill, SkillOrder[i])
		}
		if q.Question == "" || q.Placeholder == "" {
			t.Errorf("question %d has empty fields: %+v", i, q)
		}
	}
}

func TestHandler_QuestionsRejectsPost(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/softskills/questions", nil)
	rr := httptest.NewRecorder()
	h.Questions(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("got status %d, want 405", rr.Code)
	}
}

func TestHandler_Assess(t *testing.T) {
	h, generator := newTestHandler(t)

	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "self-assessment of soft skills") &&
			strings.Contains(p, "Q: ") && strings.Contains(p, "A: ")
	}), mock.Anything).Return("Overall a balanced profile.", nil)

	body := `{"answers":[
		{"skill":"Teamwork","response":"5 I led a four-person project team."},
		{"skill":"Problem Solving","response":"4 I break problems into smaller parts."},
		{"skill":"Communication","response":"2. I struggle presenting to groups."},
		{"skill":"Adaptability","response":"I adjust quickly but never rated myself."},
		{"skill":"Critical Thinking","response":"4 I question assumptions before deciding."},
		{"skill":"Time Management","response":"5 I plan each week in advance."},
		{"skill":"Interpersonal","response":"4 I keep good relationships with colleagues."}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/softskills/assess", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Assess(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp AssessResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Feedback != "Overall a balanced profile." {
		t.Errorf("Feedback = %q", resp.Feedback)
	}

	// Only the skill rated below the threshold gets study material; the
	// unrated answer carries no usable rating and is skipped.
	if len(resp.Improvements) != 1 {
		t.Fatalf("got %d improvements, want 1: %+v", len(resp.Improvements), resp.Improvements)
	}
	imp := resp.Improvements[0]
	if imp.Skill != "Communication" || imp.Rating != 2 {
		t.Errorf("unexpected improvement: %+v", imp)
	}
	if imp.Description == "" || len(imp.Resources) == 0 {
		t.Errorf("improvement missing study material: %+v", imp)
	}
}

func TestHandler_AssessIncompleteQuestionnaire(t *testing.T) {
	h, _ := newTestHandler(t)

	// One skill answered out of seven; no feedback without the full set.
	body := `{"answers":[{"skill":"Teamwork","response":"5 I led a project team."}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/softskills/assess", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Assess(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400: %s", rr.Code, rr.Body.String())
	}
}

func TestHandler_AssessUnknownSkill(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"answers":[{"skill":"Juggling","response":"5 very good"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/softskills/assess", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Assess(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rr.Code)
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
		wantOK   bool
	}{
		{name: "leading integer", response: "4 and here is why", want: 4, wantOK: true},
		{name: "integer with punctuation", response: "3. I manage fine.", want: 3, wantOK: true},
		{name: "no rating", response: "I think I do well", wantOK: false},
		{name: "empty response", response: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseRating(tt.response)
			if ok != tt.wantOK {
				t.Fatalf("parseRating() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("parseRating() = %d, want %d", got, tt.want)
			}
		})
	}
}
