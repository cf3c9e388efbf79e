package handlers

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/crucial707/student-records/internal/auth"
	"github.com/crucial707/student-records/internal/metrics"
)

// TokenIssuer mints bearer tokens for an authenticated subject.
type TokenIssuer interface {
	Create(subject string, ttl time.Duration) (string, error)
}

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Credentials auth.Credentials
	Tokens      TokenIssuer
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ==========================
// Login (OAuth2 password form; JSON body also accepted)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	input, err := readLoginInput(r)
	if err != nil {
		JSONError(w, "invalid login request", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		if fields, ok := validationFields(err); ok {
			JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
			return
		}
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if !h.Credentials.Verify(input.Username, input.Password) {
		metrics.IncLoginAttempt(false)
		slog.Warn("login failed", "username", input.Username)
		w.Header().Set("WWW-Authenticate", "Bearer")
		JSONError(w, "Incorrect username or password", http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Create(input.Username, 0)
	if err != nil {
		slog.Error("issue token", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	metrics.IncLoginAttempt(true)

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func readLoginInput(r *http.Request) (loginInput, error) {
	var input loginInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, err
	}

	if err := r.ParseForm(); err != nil {
		return input, err
	}
	input.Username = r.PostForm.Get("username")
	input.Password = r.PostForm.Get("password")
	return input, nil
}
