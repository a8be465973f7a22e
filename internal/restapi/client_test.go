package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clinic-admin/internal/domain"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithBase(srv.URL, 2*time.Second)
}

func authedCtx(token string) context.Context {
	return domain.WithToken(context.Background(), token)
}

func TestLogin_ReturnsToken(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access": "tok-123"}`))
	}))

	token, err := c.Login(context.Background(), "an", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)
}

func TestLogin_BadCredentials(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid credentials"}`))
	}))

	_, err := c.Login(context.Background(), "an", "wrong")
	var ue *domain.UnauthorizedError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "invalid credentials", ue.Message)
}

func TestMe_AttachesBearerToken(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id": 5, "displayName": "Dr. An", "permissions": ["pharmacy.view_thuoc"]}`))
	}))

	p, err := c.Me(authedCtx("tok-123"))
	require.NoError(t, err)
	require.Equal(t, int64(5), p.ID)
	require.True(t, p.Permissions.Has(domain.PermViewMedicine))
}

func TestResourceList_BareArrayAndEnvelopeAgree(t *testing.T) {
	const payload = `[{"id": 1, "name": "Paracetamol"}, {"id": 2, "name": "Amoxicillin"}]`

	bare := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	enveloped := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 2, "results": ` + payload + `}`))
	}))

	a, err := NewResource[domain.DiseaseType](bare, "/api/disease-types/").List(context.Background())
	require.NoError(t, err)
	b, err := NewResource[domain.DiseaseType](enveloped, "/api/disease-types/").List(context.Background())
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 2)
}

func TestResourceList_NullResultsIsEmptyNotNil(t *testing.T) {
	for _, body := range []string{`null`, `{"results": null}`, `[]`, `{"results": []}`} {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		got, err := NewResource[domain.Unit](c, "/api/units/").List(context.Background())
		require.NoError(t, err, "body %s", body)
		require.NotNil(t, got, "body %s", body)
		require.Empty(t, got, "body %s", body)
	}
}

func TestResourceList_MedicineCount(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/thuoc/", r.URL.Path)
		w.Write([]byte(`{"results": [
			{"id": 1, "name": "Paracetamol 500mg", "price": 2000, "stock": 120, "unit": {"id": 1, "name": "Viên"}},
			{"id": 2, "name": "Vitamin C", "price": 1500, "stock": 80, "unit": {"id": 1, "name": "Viên"}},
			{"id": 3, "name": "Siro ho", "price": 35000, "stock": 12, "unit": {"id": 2, "name": "Chai"}}
		]}`))
	}))

	meds, err := NewResource[domain.Medicine](c, "/api/thuoc/").List(authedCtx("t"))
	require.NoError(t, err)
	require.Len(t, meds, 3)
	require.Equal(t, "Chai", meds[2].Unit.Name)
}

func TestResourceDelete_Any2xxIsSuccess(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNoContent, http.StatusAccepted} {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "/api/units/9/", r.URL.Path)
			w.WriteHeader(status)
		}))
		err := NewResource[domain.Unit](c, "/api/units/").Delete(authedCtx("t"), 9)
		require.NoError(t, err, "status %d", status)
	}
}

func TestResourceDelete_ConflictIsTyped(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail": "unit is referenced by medicines"}`))
	}))
	err := NewResource[domain.Unit](c, "/api/units/").Delete(authedCtx("t"), 9)
	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	require.Contains(t, ce.Message, "referenced")
}

func TestResourceCreate_FieldValidationErrors(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"loginName": ["already taken"], "email": ["invalid address"]}`))
	}))
	_, err := NewResource[domain.Account](c, "/api/users/").Create(authedCtx("t"), map[string]string{})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, []string{"already taken"}, ve.Fields["loginName"])
	require.Equal(t, []string{"invalid address"}, ve.Fields["email"])
}

func TestResourceGet_NotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	_, err := NewResource[domain.Patient](c, "/api/patients/").Get(authedCtx("t"), 404)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUnreachableAPIIsUnavailable(t *testing.T) {
	c := NewWithBase("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.Me(authedCtx("t"))
	var ue *domain.UnavailableError
	require.ErrorAs(t, err, &ue)
}

func TestServerErrorIsUnavailable(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	_, err := c.DashboardSummary(authedCtx("t"))
	var ue *domain.UnavailableError
	require.True(t, errors.As(err, &ue))
}

func TestRevenueReport_QueryParams(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/reports/revenue/", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("month"))
		require.Equal(t, "2026", r.URL.Query().Get("year"))
		w.Write([]byte(`[{"date": "2026-03-01", "patientCount": 12, "revenue": 4500000, "percentage": 8.2}]`))
	}))
	rows, err := c.Revenue(authedCtx("t"), 3, 2026)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 12, rows[0].PatientCount)
}
