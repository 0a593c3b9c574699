package middleware

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"net/http"

	"github.com/careercraft/careercraft/internal/auth"
	"github.com/careercraft/careercraft/internal/models/dto"
)

type contextKey string

// UsernameContextKey is where the authenticated username lands for
// downstream handlers.
const UsernameContextKey contextKey = "username"

// SessionMiddleware gates the tool endpoints behind a valid session
// cookie. Missing or invalid tokens get a 401 and never reach the
// wrapped handler.
func SessionMiddleware(publicKey *ecdsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil {
				unauthorized(w, "Authentication required")
				return
			}

			claims, err := auth.VerifyToken(cookie.Value, publicKey)
			if err != nil {
				unauthorized(w, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), UsernameContextKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext reports the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameContextKey).(string)
	return username, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	resp := dto.ErrorResponseDTO{Error: "unauthorized", Message: message}
	_ = json.NewEncoder(w).Encode(resp)
}
