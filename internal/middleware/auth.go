package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crucial707/student-records/internal/auth"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type key string

const SubjectKey key = "subject"

// TokenVerifier resolves a bearer token to its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticator rejects requests without a valid "Authorization: Bearer <token>" header.
// Every rejection is a 401 carrying a WWW-Authenticate: Bearer challenge.
func Authenticator(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				Unauthorized(w, "Not authenticated")
				return
			}

			subject, err := tokens.Verify(tokenStr)
			if err != nil {
				reason, detail := "invalid", "Could not validate credentials"
				switch {
				case errors.Is(err, auth.ErrExpiredToken):
					reason = "expired"
				case errors.Is(err, auth.ErrMissingSubject):
					reason, detail = "missing_subject", "Invalid authentication credentials"
				}
				slog.Debug("token rejected",
					"request_id", chimw.GetReqID(r.Context()),
					"reason", reason)
				Unauthorized(w, detail)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject returns the authenticated subject stored by Authenticator.
func GetSubject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(SubjectKey).(string)
	return s, ok && s != ""
}

// Unauthorized writes a 401 JSON response with a bearer challenge.
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
