package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-admin/internal/domain"
)

func permSet(perms ...string) domain.PermissionSet {
	s := make(domain.PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

func keys(tree []Node) []string {
	var out []string
	for _, n := range tree {
		out = append(out, n.Key)
		out = append(out, keys(n.Children)...)
	}
	return out
}

func TestFilter_ParentSurvivesOnlyWithChild(t *testing.T) {
	got := Filter(Tree(), permSet(domain.PermViewUnit))
	ks := keys(got)
	require.Contains(t, ks, "pharmacy")
	require.Contains(t, ks, "units")
	require.NotContains(t, ks, "medicines")
	require.NotContains(t, ks, "usages")
	// Groups whose children were all removed disappear entirely.
	require.NotContains(t, ks, "he-thong")
	require.NotContains(t, ks, "kham-benh")
	require.NotContains(t, ks, "bao-cao")
}

func TestFilter_NoPermissionsLeavesOnlyHome(t *testing.T) {
	got := Filter(Tree(), permSet())
	require.Equal(t, []string{HomeKey}, keys(got))
}

func TestFilter_PreservesOrder(t *testing.T) {
	full := keys(Filter(Tree(), permSet(
		domain.PermViewWaiting, domain.PermViewPatient,
		domain.PermViewMedicine, domain.PermViewInvoice,
	)))
	require.Equal(t, []string{HomeKey, "kham-benh", "waiting", "patients", "pharmacy", "medicines", "invoices"}, full)
}

func TestResolveActiveKey(t *testing.T) {
	tree := Tree()
	cases := []struct {
		path string
		want string
	}{
		{"/dashboard", HomeKey},
		{"/dashboard/", HomeKey},
		{"/dashboard/patients", "patients"},
		{"/dashboard/patients/", "patients"},
		{"/dashboard/reports/revenue", "reports/revenue"},
		{"/dashboard/reports/medication", "reports/medication"},
		// Detail pages fall back to the first segment.
		{"/dashboard/patients/42/edit", "patients"},
		{"/dashboard/accounts/7", "accounts"},
		// Unknown paths fall back to home.
		{"/dashboard/no-such-page", HomeKey},
		{"/dashboard/reports/unknown/extra", HomeKey},
		{"/somewhere-else", HomeKey},
	}
	for _, c := range cases {
		require.Equal(t, c.want, ResolveActiveKey(tree, c.path), "path %s", c.path)
	}
}

func TestResolveActiveKey_AlwaysInTree(t *testing.T) {
	tree := Tree()
	paths := []string{
		"/dashboard", "/dashboard/patients", "/dashboard/patients/9",
		"/dashboard/reports/revenue", "/dashboard/xyz", "/dashboard/a/b/c/d",
		"/", "/login",
	}
	for _, p := range paths {
		key := ResolveActiveKey(tree, p)
		require.True(t, findKey(tree, key), "key %q for %q not in tree", key, p)
	}
}

func TestBreadcrumb_SyntacticLabels(t *testing.T) {
	got := Breadcrumb("/dashboard/medical-records/12/edit")
	require.Equal(t, []Crumb{
		{Label: "Trang chủ", Path: "/dashboard"},
		{Label: "Medical records", Path: "/dashboard/medical-records"},
		{Label: "12", Path: "/dashboard/medical-records/12"},
		{Label: "Edit", Path: "/dashboard/medical-records/12/edit"},
	}, got)
}

func TestBreadcrumb_HomeOnly(t *testing.T) {
	require.Len(t, Breadcrumb("/dashboard"), 1)
	require.Len(t, Breadcrumb("/dashboard/"), 1)
}
