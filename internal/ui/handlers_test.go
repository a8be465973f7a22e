package ui

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
	"clinic-admin/internal/restapi"
	"clinic-admin/internal/session"
)

const testToken = "test-token"

func perms(ps ...string) domain.PermissionSet {
	set := make(domain.PermissionSet, len(ps))
	for _, p := range ps {
		set[p] = struct{}{}
	}
	return set
}

type testEnv struct {
	router chi.Router
	apiMux *http.ServeMux
	// apiCalls counts requests per method+path so tests can assert that a
	// rejected form never reached the backend.
	apiCalls map[string]int
}

func newTestEnv(t *testing.T, principal domain.Principal) *testEnv {
	t.Helper()

	env := &testEnv{apiMux: http.NewServeMux(), apiCalls: map[string]int{}}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.apiCalls[r.Method+" "+r.URL.Path]++
		env.apiMux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)

	client := restapi.NewWithBase(api.URL, 5*time.Second)
	sessions := session.NewManager("clinic_session", false, time.Hour, func(token string, _ *http.Request) (domain.Principal, error) {
		if token != testToken {
			return domain.Principal{}, domain.ErrUnauthorized("bad token")
		}
		return principal, nil
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(client, sessions, bus.New(logger), logger, false)

	r := chi.NewRouter()
	MountRoutes(r, h)
	env.router = r
	return env
}

func (e *testEnv) serveJSON(path string, value any) {
	e.apiMux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(value)
	})
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.AddCookie(&http.Cookie{Name: "clinic_session", Value: testToken})
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, r)
	return rr
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("X-CSRF-Token", "csrf-tok")
	r.AddCookie(&http.Cookie{Name: "clinic_session", Value: testToken})
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "csrf-tok"})
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, r)
	return rr
}

func TestAccountsList_HidesSelfDelete(t *testing.T) {
	principal := domain.Principal{
		ID:          1,
		DisplayName: "Admin",
		Permissions: perms(domain.PermViewAccount, domain.PermAddAccount, domain.PermEditAccount, domain.PermDelAccount),
	}
	env := newTestEnv(t, principal)
	env.serveJSON("/api/users/", []domain.Account{
		{ID: 1, LoginName: "admin", DisplayName: "Admin"},
		{ID: 2, LoginName: "letan", DisplayName: "Lễ tân"},
	})

	rr := env.get("/dashboard/accounts/")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, "/dashboard/accounts/2/delete")
	require.NotContains(t, body, "/dashboard/accounts/1/delete")
}

func TestAccountsDelete_SelfForbidden(t *testing.T) {
	principal := domain.Principal{
		ID:          1,
		DisplayName: "Admin",
		Permissions: perms(domain.PermViewAccount, domain.PermDelAccount),
	}
	env := newTestEnv(t, principal)

	rr := env.postForm("/dashboard/accounts/1/delete", url.Values{})
	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Zero(t, env.apiCalls["DELETE /api/users/1/"])
}

func TestAccountsList_ViewOnlyHidesControls(t *testing.T) {
	principal := domain.Principal{
		ID:          5,
		DisplayName: "Viewer",
		Permissions: perms(domain.PermViewAccount),
	}
	env := newTestEnv(t, principal)
	env.serveJSON("/api/users/", []domain.Account{
		{ID: 2, LoginName: "letan", DisplayName: "Lễ tân"},
	})

	rr := env.get("/dashboard/accounts/")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.NotContains(t, body, "/dashboard/accounts/new")
	require.NotContains(t, body, "/dashboard/accounts/2/edit")
	require.NotContains(t, body, "/dashboard/accounts/2/delete")
}

func TestAccountsMutations_RequirePermission(t *testing.T) {
	principal := domain.Principal{
		ID:          5,
		DisplayName: "Viewer",
		Permissions: perms(domain.PermViewAccount),
	}
	env := newTestEnv(t, principal)

	rr := env.postForm("/dashboard/accounts/2/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/unauthorized", rr.Header().Get("Location"))
	require.Zero(t, env.apiCalls["DELETE /api/users/2/"])
}

func TestChangePassword_MismatchNeverCallsAPI(t *testing.T) {
	principal := domain.Principal{ID: 1, DisplayName: "Admin"}
	env := newTestEnv(t, principal)

	form := url.Values{}
	form.Set("currentPassword", "old")
	form.Set("newPassword", "new-secret")
	form.Set("confirmPassword", "different")
	rr := env.postForm("/dashboard/change-password", form)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "Xác nhận mật khẩu không khớp.")
	require.Zero(t, env.apiCalls["PUT /api/auth/change-password/"])
}

func TestPatientsDelete_ConflictFlashesAndRedirects(t *testing.T) {
	principal := domain.Principal{
		ID:          1,
		DisplayName: "Admin",
		Permissions: perms(domain.PermViewPatient, domain.PermDelPatient),
	}
	env := newTestEnv(t, principal)
	env.apiMux.HandleFunc("/api/patients/7/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail": "patient has related records"}`))
	})

	rr := env.postForm("/dashboard/patients/7/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/dashboard/patients", rr.Header().Get("Location"))
	require.Contains(t, rr.Header().Get("Set-Cookie"), flashCookieName+"=")
}

func TestDashboardUnknownPath_RendersInChromeNotFound(t *testing.T) {
	principal := domain.Principal{ID: 1, DisplayName: "Admin"}
	env := newTestEnv(t, principal)

	rr := env.get("/dashboard/does-not-exist")
	require.Equal(t, http.StatusNotFound, rr.Code)
	// Sidebar brand proves the dashboard chrome rendered around the 404.
	require.Contains(t, rr.Body.String(), "Phòng khám")
}

func TestUnknownTopLevelPath_RedirectsToLogin(t *testing.T) {
	principal := domain.Principal{ID: 1}
	env := newTestEnv(t, principal)

	r := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, r)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestDashboard_WithoutSessionRedirectsWithNext(t *testing.T) {
	principal := domain.Principal{ID: 1}
	env := newTestEnv(t, principal)

	r := httptest.NewRequest(http.MethodGet, "/dashboard/patients/", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, r)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/login?next=%2Fdashboard%2Fpatients%2F", rr.Header().Get("Location"))
}

func TestRecordsNew_RendersExamForm(t *testing.T) {
	principal := domain.Principal{
		ID:          1,
		Permissions: perms(domain.PermViewRecord, domain.PermAddRecord),
	}
	env := newTestEnv(t, principal)
	env.serveJSON("/api/patients/", []domain.Patient{{ID: 1, FullName: "Nguyễn Văn An"}})
	env.serveJSON("/api/disease-types/", []domain.DiseaseType{{ID: 1, Name: "Cảm cúm"}})
	env.serveJSON("/api/thuoc/", []domain.Medicine{{ID: 1, Name: "Paracetamol"}})

	rr := env.get("/dashboard/medical-records/new")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, "Triệu chứng")
	require.Contains(t, body, "Nguyễn Văn An")
	require.Contains(t, body, "Paracetamol")
}

func TestResourceFetch_TokenRejectedMidSessionEndsSession(t *testing.T) {
	principal := domain.Principal{
		ID:          1,
		Permissions: perms(domain.PermViewPatient),
	}
	env := newTestEnv(t, principal)
	env.apiMux.HandleFunc("/api/patients/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "token expired"}`))
	})

	rr := env.get("/dashboard/patients/")

	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/login?next=%2Fdashboard%2Fpatients%2F", rr.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == "clinic_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	require.Empty(t, sessionCookie.Value)
	require.Negative(t, sessionCookie.MaxAge)
}

func TestSectionGate_RedirectsUnauthorized(t *testing.T) {
	principal := domain.Principal{
		ID:          9,
		DisplayName: "No access",
		Permissions: perms(domain.PermViewPatient),
	}
	env := newTestEnv(t, principal)

	rr := env.get("/dashboard/accounts/")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/unauthorized", rr.Header().Get("Location"))
}

func TestWaitingSetStatus_RejectsUnknownStatus(t *testing.T) {
	principal := domain.Principal{
		ID:          1,
		DisplayName: "Admin",
		Permissions: perms(domain.PermViewWaiting, domain.PermEditWaiting),
	}
	env := newTestEnv(t, principal)

	form := url.Values{}
	form.Set("status", "teleported")
	rr := env.postForm("/dashboard/waiting/3/status", form)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Zero(t, env.apiCalls["PUT /api/waiting-list/3/"])
}

func TestMedicinesList_AppliesServerSideFilters(t *testing.T) {
	principal := domain.Principal{
		ID:          1,
		DisplayName: "Admin",
		Permissions: perms(domain.PermViewMedicine),
	}
	env := newTestEnv(t, principal)
	env.serveJSON("/api/thuoc/", []domain.Medicine{
		{ID: 1, Name: "Paracetamol", Unit: domain.Unit{ID: 1, Name: "viên"}, Stock: 100},
		{ID: 2, Name: "Amoxicillin", Unit: domain.Unit{ID: 2, Name: "vỉ"}, Stock: 3},
	})
	env.serveJSON("/api/units/", []domain.Unit{{ID: 1, Name: "viên"}, {ID: 2, Name: "vỉ"}})

	rr := env.get("/dashboard/medicines/?low=1")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, "Amoxicillin")
	require.NotContains(t, body, "Paracetamol")
}
