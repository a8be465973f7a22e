package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPatients_TableOutput(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `[
		{"id": 1, "fullName": "Nguyễn Văn An", "gender": "male", "birthYear": 1980, "phone": "0901234567", "address": "Hà Nội"},
		{"id": 2, "fullName": "Trần Thị Bình", "gender": "female", "birthYear": 1992, "phone": "", "address": ""}
	]`))
	defer srv.Close()

	restore := captureStdout(t)
	cmd := newTestRootCmd(t, srv, "list", "patients")
	err := cmd.Execute()
	out := restore()

	require.NoError(t, err)
	assert.Contains(t, out, "Nguyễn Văn An")
	assert.Contains(t, out, "Trần Thị Bình")
	assert.Contains(t, out, "1980")
}

func TestListMedicines_LowStockFilter(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `{"results": [
		{"id": 1, "name": "Paracetamol", "unit": {"id": 1, "name": "viên"}, "price": 500, "stock": 200},
		{"id": 2, "name": "Amoxicillin", "unit": {"id": 2, "name": "vỉ"}, "price": 25000, "stock": 3}
	]}`))
	defer srv.Close()

	restore := captureStdout(t)
	cmd := newTestRootCmd(t, srv, "list", "medicines", "--low-stock", "10")
	err := cmd.Execute()
	out := restore()

	require.NoError(t, err)
	assert.Contains(t, out, "Amoxicillin")
	assert.NotContains(t, out, "Paracetamol")
}

func TestList_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	restore := captureStdout(t)
	cmd := newTestRootCmd(t, srv, "--token", "secret-token", "list", "patients")
	err := cmd.Execute()
	restore()

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestReportRevenue_SendsPeriodQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"date": "2026-03-01", "patientCount": 4, "revenue": 1200000, "percentage": 40.0}]`))
	}))
	defer srv.Close()

	restore := captureStdout(t)
	cmd := newTestRootCmd(t, srv, "report", "revenue", "--month", "3", "--year", "2026")
	err := cmd.Execute()
	out := restore()

	require.NoError(t, err)
	assert.Contains(t, gotQuery, "month=3")
	assert.Contains(t, gotQuery, "year=2026")
	assert.Contains(t, out, "2026-03-01")
	assert.Contains(t, out, "Total: 1200000")
}

func TestHostPrecedence_EnvBeatsProfile(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `[]`))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	require.NoError(t, SaveUserConfig(&UserConfig{
		CurrentProfile: "default",
		Profiles:       map[string]Profile{"default": {Host: "http://unreachable.invalid"}},
	}))
	t.Setenv("CLINIC_HOST", srv.URL)

	restore := captureStdout(t)
	cmd := newRootCmd()
	cmd.SetArgs([]string{"list", "patients"})
	err := cmd.Execute()
	restore()

	require.NoError(t, err)
}

func TestUnknownOutputFormat_Fails(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `[]`))
	defer srv.Close()

	cmd := newTestRootCmd(t, srv, "-o", "yaml", "list", "patients")
	err := cmd.Execute()
	require.Error(t, err)
}

func TestListPatients_APIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusUnauthorized, `{"detail": "token expired"}`))
	defer srv.Close()

	cmd := newTestRootCmd(t, srv, "list", "patients")
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}
