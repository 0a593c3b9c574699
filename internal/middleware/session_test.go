package middleware

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careercraft/careercraft/internal/auth"
	"golang.org/x/time/rate"
)

func TestSessionMiddleware(t *testing.T) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate second key: %v", err)
	}

	validToken, err := auth.CreateToken("alice", privateKey)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}
	foreignToken, err := auth.CreateToken("alice", otherKey)
	if err != nil {
		t.Fatalf("failed to create foreign token: %v", err)
	}

	tests := []struct {
		name           string
		cookie         *http.Cookie
		wantStatusCode int
		wantUsername   string
	}{
		{
			name:           "valid session",
			cookie:         &http.Cookie{Name: auth.SessionCookieName, Value: validToken},
			wantStatusCode: http.StatusOK,
			wantUsername:   "alice",
		},
		{
			name:           "missing cookie",
			cookie:         nil,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "token signed with a different key",
			cookie:         &http.Cookie{Name: auth.SessionCookieName, Value: foreignToken},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			cookie:         &http.Cookie{Name: auth.SessionCookieName, Value: "not-a-token"},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUsername string
			handler := SessionMiddleware(&privateKey.PublicKey)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					gotUsername, _ = UsernameFromContext(r.Context())
					w.WriteHeader(http.StatusOK)
				}))

			req := httptest.NewRequest(http.MethodPost, "/api/career/roadmap", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatusCode {
				t.Errorf("got status %d, want %d", rr.Code, tt.wantStatusCode)
			}
			if tt.wantUsername != "" && gotUsername != tt.wantUsername {
				t.Errorf("username in context = %q, want %q", gotUsername, tt.wantUsername)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	// One request per minute with a burst of two: the third call in quick
	// succession must be rejected.
	limiter := rate.NewLimiter(rate.Every(time.Minute), 2)
	handler := RateLimitMiddleware(limiter)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("requests within burst got %v, want 200s", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("request over burst got %d, want %d", codes[2], http.StatusTooManyRequests)
	}
}
