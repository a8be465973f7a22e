// Package session bridges the browser cookie and the API bearer token. The
// dashboard keeps no server-side session store: the cookie carries the API
// token itself, and the principal is re-fetched per request so permission
// changes take effect on the next page load.
package session

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clinic-admin/internal/domain"
)

// Manager owns the session cookie and the middleware around it.
type Manager struct {
	CookieName string
	Production bool
	// MaxAge bounds the cookie lifetime when the token carries no usable
	// expiry claim.
	MaxAge time.Duration

	// me resolves a token into the authenticated principal. The restapi
	// client provides it; tests substitute a stub.
	me func(token string, r *http.Request) (domain.Principal, error)

	// OnError renders a failure that is neither "not signed in" nor
	// "forbidden", e.g. the API being down. The UI layer installs its error
	// page here; nil writes a plain 503.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// NewManager wires a manager over the principal lookup.
func NewManager(cookieName string, production bool, maxAge time.Duration, me func(token string, r *http.Request) (domain.Principal, error)) *Manager {
	return &Manager{
		CookieName: cookieName,
		Production: production,
		MaxAge:     maxAge,
		me:         me,
	}
}

// Set writes the session cookie. The cookie expires when the token does;
// tokens without a readable exp claim fall back to the configured max age.
func (m *Manager) Set(w http.ResponseWriter, token string) {
	expires := time.Now().Add(m.MaxAge)
	if exp, ok := tokenExpiry(token); ok && exp.Before(expires) {
		expires = exp
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Production,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

// Clear drops the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Production,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Token extracts the session token from the request, if any.
func (m *Manager) Token(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.CookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	return strings.TrimSpace(cookie.Value), true
}

// tokenExpiry reads the exp claim without verifying the signature. The
// dashboard never trusts the claim for authorization, only for aligning the
// cookie lifetime; the backend re-validates the token on every call.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Require authenticates the request. Requests without a cookie are sent to
// the login page with a next parameter; a token the API rejects clears the
// cookie and does the same. On success both the token and the principal are
// placed in the request context.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := m.Token(r)
		if !ok {
			m.RedirectToLogin(w, r)
			return
		}

		principal, err := m.me(token, r)
		if err != nil {
			var unauthorized *domain.UnauthorizedError
			if errors.As(err, &unauthorized) {
				m.Clear(w)
				m.RedirectToLogin(w, r)
				return
			}
			m.renderError(w, r, err)
			return
		}

		ctx := domain.WithToken(r.Context(), token)
		ctx = domain.WithPrincipal(ctx, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermissions gates a route on the principal holding at least one of
// the listed permissions. An empty list is an open gate. Callers must mount
// it inside Require so the principal is present.
func (m *Manager) RequirePermissions(perms ...string) func(http.Handler) http.Handler {
	for _, p := range perms {
		domain.MustPermission(p)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := domain.PrincipalFromContext(r.Context())
			if !ok {
				m.RedirectToLogin(w, r)
				return
			}
			if !principal.Permissions.HasAny(perms...) {
				http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectToLogin sends the client to the login page, carrying the current
// path in a next parameter for safe GET requests.
func (m *Manager) RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if next := r.URL.Path; next != "" && next != "/" && r.Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(next)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (m *Manager) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if m.OnError != nil {
		m.OnError(w, r, err)
		return
	}
	http.Error(w, "service unavailable", http.StatusServiceUnavailable)
}

// SafeNext validates a post-login redirect target. Only same-site absolute
// paths are allowed; anything else falls back to the dashboard root.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/dashboard"
	}
	return next
}
