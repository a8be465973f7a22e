package ui

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

// Double-submit scheme: the token travels in an HttpOnly cookie and again in
// the form body (or the X-CSRF-Token header for scripted posts). A mutation
// is accepted only when both copies agree.
const (
	csrfCookieName = "clinic_csrf"
	csrfFormField  = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
)

type csrfContextKey struct{}

// EnsureCSRFToken guarantees the browser holds a CSRF cookie and exposes the
// token to page renderers through the request context. Issued once per
// browser, not per request.
func (h *Handler) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfCookieToken(r)
		if token == "" {
			token = newCSRFToken()
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.Production,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), csrfContextKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCSRF rejects state-changing requests whose submitted token does not
// match the cookie. Safe methods pass through untouched.
func (h *Handler) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !mutatesState(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		cookieToken := csrfCookieToken(r)
		submitted := submittedCSRFToken(r)
		if cookieToken == "" || subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) != 1 {
			renderHTML(w, http.StatusForbidden, errorPage("CSRF Validation Failed", "The request could not be verified. Reload the page and try again."))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func mutatesState(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// submittedCSRFToken prefers the header so scripted clients need not fake a
// form body.
func submittedCSRFToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(csrfHeaderName)); token != "" {
		return token
	}
	_ = r.ParseForm()
	return strings.TrimSpace(r.Form.Get(csrfFormField))
}

func csrfCookieToken(r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func newCSRFToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// csrfField renders the hidden input every mutating form must carry.
func csrfField(r *http.Request) gomponents.Node {
	token, _ := r.Context().Value(csrfContextKey{}).(string)
	if token == "" {
		token = csrfCookieToken(r)
	}
	return html.Input(
		html.Type("hidden"),
		html.Name(csrfFormField),
		html.Value(token),
	)
}

// csrfFieldProvider defers rendering so pages can embed the field without
// holding the request.
func csrfFieldProvider(r *http.Request) func() gomponents.Node {
	return func() gomponents.Node {
		return csrfField(r)
	}
}
