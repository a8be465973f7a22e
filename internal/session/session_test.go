package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"clinic-admin/internal/domain"
)

func stubManager(me func(token string, r *http.Request) (domain.Principal, error)) *Manager {
	return NewManager("clinic_session", false, 24*time.Hour, me)
}

func okPrincipal(perms ...string) func(string, *http.Request) (domain.Principal, error) {
	set := make(domain.PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return func(token string, r *http.Request) (domain.Principal, error) {
		return domain.Principal{ID: 1, DisplayName: "Dr. An", Permissions: set}, nil
	}
}

func TestRequire_NoCookieRedirectsToLoginWithNext(t *testing.T) {
	m := stubManager(okPrincipal())
	h := m.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/patients", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login?next=%2Fdashboard%2Fpatients", rec.Header().Get("Location"))
}

func TestRequire_RejectedTokenClearsCookie(t *testing.T) {
	m := stubManager(func(token string, r *http.Request) (domain.Principal, error) {
		return domain.Principal{}, domain.ErrUnauthorized("token expired")
	})
	h := m.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "clinic_session", Value: "stale"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "clinic_session", cookies[0].Name)
	require.Less(t, cookies[0].MaxAge, 0)
}

func TestRequire_PutsTokenAndPrincipalInContext(t *testing.T) {
	m := stubManager(okPrincipal(domain.PermViewPatient))
	var gotToken string
	var gotPrincipal domain.Principal
	h := m.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken, _ = domain.TokenFromContext(r.Context())
		gotPrincipal, _ = domain.PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "clinic_session", Value: "tok-1"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "tok-1", gotToken)
	require.Equal(t, "Dr. An", gotPrincipal.DisplayName)
}

func TestRequire_APIDownUsesErrorRenderer(t *testing.T) {
	m := stubManager(func(string, *http.Request) (domain.Principal, error) {
		return domain.Principal{}, domain.ErrUnavailable("api down")
	})
	rendered := false
	m.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		rendered = true
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "clinic_session", Value: "tok"})
	rec := httptest.NewRecorder()
	m.Require(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	require.True(t, rendered)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequirePermissions_AnyOfGrantsAccess(t *testing.T) {
	m := stubManager(nil)
	gate := m.RequirePermissions(domain.PermViewUnit, domain.PermViewUsage)

	var ran bool
	h := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true }))

	p := domain.Principal{Permissions: domain.PermissionSet{domain.PermViewUsage: {}}}
	req := httptest.NewRequest(http.MethodGet, "/dashboard/usages", nil)
	req = req.WithContext(domain.WithPrincipal(req.Context(), p))
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, ran)
}

func TestRequirePermissions_MissingAllRedirectsUnauthorized(t *testing.T) {
	m := stubManager(nil)
	gate := m.RequirePermissions(domain.PermViewAccount)

	h := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	p := domain.Principal{Permissions: domain.PermissionSet{}}
	req := httptest.NewRequest(http.MethodGet, "/dashboard/accounts", nil)
	req = req.WithContext(domain.WithPrincipal(req.Context(), p))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/unauthorized", rec.Header().Get("Location"))
}

func TestRequirePermissions_UnknownPermissionPanicsAtWiring(t *testing.T) {
	m := stubManager(nil)
	require.Panics(t, func() { m.RequirePermissions("accounts.view_typo") })
}

func TestSet_CookieExpiryFollowsTokenExp(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	}).SignedString([]byte("dev-secret"))
	require.NoError(t, err)

	m := stubManager(nil)
	rec := httptest.NewRecorder()
	m.Set(rec, token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.WithinDuration(t, exp, cookies[0].Expires, 2*time.Second)
	require.True(t, cookies[0].HttpOnly)
}

func TestSet_OpaqueTokenFallsBackToMaxAge(t *testing.T) {
	m := stubManager(nil)
	rec := httptest.NewRecorder()
	m.Set(rec, "not-a-jwt")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), cookies[0].Expires, 5*time.Second)
}

func TestSafeNext(t *testing.T) {
	require.Equal(t, "/dashboard/patients", SafeNext("/dashboard/patients"))
	require.Equal(t, "/dashboard", SafeNext(""))
	require.Equal(t, "/dashboard", SafeNext("https://evil.example"))
	require.Equal(t, "/dashboard", SafeNext("//evil.example"))
}
