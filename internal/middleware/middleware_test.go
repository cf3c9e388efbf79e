package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/student-records/internal/auth"
)

type stubVerifier struct {
	subject string
	err     error
}

func (s stubVerifier) Verify(token string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.subject, nil
}

func subjectEcho(w http.ResponseWriter, r *http.Request) {
	subject, _ := GetSubject(r.Context())
	w.Write([]byte(subject))
}

func TestAuthenticator(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   stubVerifier
		wantStatus int
		wantDetail string
		wantBody   string
	}{
		{"missing header", "", stubVerifier{subject: "admin"}, http.StatusUnauthorized, "Not authenticated", ""},
		{"basic scheme", "Basic abc", stubVerifier{subject: "admin"}, http.StatusUnauthorized, "Not authenticated", ""},
		{"empty bearer", "Bearer ", stubVerifier{subject: "admin"}, http.StatusUnauthorized, "Not authenticated", ""},
		{"invalid token", "Bearer xyz", stubVerifier{err: auth.ErrInvalidToken}, http.StatusUnauthorized, "Could not validate credentials", ""},
		{"expired token", "Bearer xyz", stubVerifier{err: auth.ErrExpiredToken}, http.StatusUnauthorized, "Could not validate credentials", ""},
		{"no subject", "Bearer xyz", stubVerifier{err: auth.ErrMissingSubject}, http.StatusUnauthorized, "Invalid authentication credentials", ""},
		{"valid", "Bearer xyz", stubVerifier{subject: "admin"}, http.StatusOK, "", "admin"},
		{"lowercase scheme", "bearer xyz", stubVerifier{subject: "admin"}, http.StatusOK, "", "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Authenticator(tt.verifier)(http.HandlerFunc(subjectEcho))
			req := httptest.NewRequest("GET", "/students/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if got := rr.Header().Get("WWW-Authenticate"); got != "Bearer" {
					t.Errorf("WWW-Authenticate: got %q, want Bearer", got)
				}
				var out map[string]string
				if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if out["detail"] != tt.wantDetail {
					t.Errorf("detail: got %q, want %q", out["detail"], tt.wantDetail)
				}
				return
			}
			if rr.Body.String() != tt.wantBody {
				t.Errorf("body: got %q, want %q", rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAuthenticator_WithTokenService(t *testing.T) {
	tokens := auth.NewTokenService([]byte("secret"), 0)
	token, err := tokens.Create("admin", 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	h := Authenticator(tokens)(http.HandlerFunc(subjectEcho))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "admin" {
		t.Errorf("got %d %q, want 200 admin", rr.Code, rr.Body.String())
	}
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Internal server error") {
		t.Errorf("body: %s", rr.Body.String())
	}
}

func TestMaxBytes(t *testing.T) {
	var readErr error
	h := MaxBytes(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))
	req := httptest.NewRequest("POST", "/students/1", strings.NewReader("too large"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	if !errors.As(readErr, &maxErr) {
		t.Errorf("read error: got %v, want *http.MaxBytesError", readErr)
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://app.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("OPTIONS", "/students/1", nil)
	req.Header.Set("Origin", "http://app.example")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status: got %d, want 204", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://app.example" {
		t.Errorf("allow origin: got %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unexpected CORS header for unknown origin")
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	for _, name := range []string{"X-Content-Type-Options", "X-Frame-Options", "Strict-Transport-Security"} {
		if rr.Header().Get(name) == "" {
			t.Errorf("missing header %s", name)
		}
	}
}
