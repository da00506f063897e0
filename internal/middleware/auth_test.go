package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"portfolio/internal/session"
)

func withSession(r *http.Request, data *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKey, data))
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	h := RequireAuth(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/studio", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/studio/login" {
		t.Errorf("redirect target: got %q", loc)
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	h := RequireAuth(okHandler())

	r := withSession(httptest.NewRequest(http.MethodGet, "/studio", nil), &session.Data{
		UserID: uuid.New(),
		Email:  "admin@test.local",
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
}

func TestRequire2FARedirectsUnverified(t *testing.T) {
	h := Require2FA(okHandler())

	r := withSession(httptest.NewRequest(http.MethodGet, "/studio", nil), &session.Data{
		UserID:    uuid.New(),
		TwoFADone: false,
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/studio/2fa/setup" {
		t.Errorf("redirect target: got %q", loc)
	}
}

func TestRequire2FAPassesVerified(t *testing.T) {
	h := Require2FA(okHandler())

	r := withSession(httptest.NewRequest(http.MethodGet, "/studio", nil), &session.Data{
		UserID:    uuid.New(),
		TwoFADone: true,
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
}

func TestSessionFromCtxEmpty(t *testing.T) {
	if SessionFromCtx(context.Background()) != nil {
		t.Error("empty context should yield nil session")
	}
}
