package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermissionConstantsAreInSchema(t *testing.T) {
	all := []string{
		PermViewAccount, PermAddAccount, PermEditAccount, PermDelAccount,
		PermViewGroup, PermAddGroup, PermEditGroup, PermDelGroup,
		PermViewPatient, PermAddPatient, PermEditPatient, PermDelPatient,
		PermViewWaiting, PermAddWaiting, PermEditWaiting, PermDelWaiting,
		PermViewRecord, PermAddRecord, PermEditRecord, PermDelRecord,
		PermViewDisease, PermAddDisease, PermEditDisease, PermDelDisease,
		PermViewMedicine, PermAddMedicine, PermEditMedicine, PermDelMedicine,
		PermViewUnit, PermAddUnit, PermEditUnit, PermDelUnit,
		PermViewUsage, PermAddUsage, PermEditUsage, PermDelUsage,
		PermViewInvoice, PermAddInvoice, PermEditInvoice, PermDelInvoice,
		PermViewReports,
	}
	for _, p := range all {
		require.True(t, KnownPermission(p), "constant %q missing from permissions.yaml", p)
	}
	// 10 CRUD entities x 4 actions + the view-only report permission.
	require.Equal(t, 41, KnownPermissionCount())
}

func TestKnownPermission_RejectsUnknown(t *testing.T) {
	require.False(t, KnownPermission("accounts.fly_taikhoan"))
	require.False(t, KnownPermission(""))
	require.Panics(t, func() { MustPermission("reports.delete_baocao") })
}

func TestPermissionSet_HasAny(t *testing.T) {
	var p Principal
	err := json.Unmarshal([]byte(`{
		"id": 7,
		"displayName": "Dr. An",
		"loginName": "an",
		"permissions": ["accounts.view_taikhoan", "pharmacy.view_thuoc"],
		"groups": [{"id": 1, "name": "Doctors"}]
	}`), &p)
	require.NoError(t, err)

	require.True(t, p.Permissions.Has(PermViewAccount))
	require.False(t, p.Permissions.Has(PermAddAccount))
	require.True(t, p.Permissions.HasAny(PermAddAccount, PermViewMedicine))
	require.False(t, p.Permissions.HasAny(PermAddAccount, PermDelAccount))
	require.True(t, p.Permissions.HasAny(), "empty gate is open")
	require.Equal(t, "Dr. An", p.Label())
}
