package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCSRFSetsCookieOnGet(t *testing.T) {
	h := CSRF(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/studio", nil))

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == CSRFCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("GET should set the CSRF cookie")
	}
	if w.Code != http.StatusOK {
		t.Errorf("GET status: got %d", w.Code)
	}
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	h := CSRF(okHandler())

	r := httptest.NewRequest(http.MethodPost, "/studio/projects", nil)
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "aaaa"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("POST without token: got %d, want 403", w.Code)
	}
}

func TestCSRFAcceptsMatchingHeader(t *testing.T) {
	h := CSRF(okHandler())

	r := httptest.NewRequest(http.MethodPost, "/studio/upload", nil)
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token123"})
	r.Header.Set(CSRFHeaderName, "token123")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("POST with matching header: got %d, want 200", w.Code)
	}
}

func TestCSRFAcceptsMatchingFormField(t *testing.T) {
	h := CSRF(okHandler())

	form := url.Values{CSRFFormField: {"token456"}}
	r := httptest.NewRequest(http.MethodPost, "/studio/projects", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token456"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("POST with matching form field: got %d, want 200", w.Code)
	}
}

func TestCSRFRejectsMismatchedToken(t *testing.T) {
	h := CSRF(okHandler())

	r := httptest.NewRequest(http.MethodPost, "/studio/projects", nil)
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "real"})
	r.Header.Set(CSRFHeaderName, "forged")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("POST with forged token: got %d, want 403", w.Code)
	}
}
