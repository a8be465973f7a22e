package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Permission strings gate menu visibility, route access, and per-action
// controls. Raw literals appear only here; everything else references these
// constants, and all of them are validated against the embedded schema at
// package init so a typo fails fast instead of silently hiding a page.
const (
	PermViewAccount = "accounts.view_taikhoan"
	PermAddAccount  = "accounts.add_taikhoan"
	PermEditAccount = "accounts.change_taikhoan"
	PermDelAccount  = "accounts.delete_taikhoan"

	PermViewGroup = "accounts.view_nhomquyen"
	PermAddGroup  = "accounts.add_nhomquyen"
	PermEditGroup = "accounts.change_nhomquyen"
	PermDelGroup  = "accounts.delete_nhomquyen"

	PermViewPatient = "patients.view_benhnhan"
	PermAddPatient  = "patients.add_benhnhan"
	PermEditPatient = "patients.change_benhnhan"
	PermDelPatient  = "patients.delete_benhnhan"

	PermViewWaiting = "patients.view_danhsachcho"
	PermAddWaiting  = "patients.add_danhsachcho"
	PermEditWaiting = "patients.change_danhsachcho"
	PermDelWaiting  = "patients.delete_danhsachcho"

	PermViewRecord = "records.view_phieukham"
	PermAddRecord  = "records.add_phieukham"
	PermEditRecord = "records.change_phieukham"
	PermDelRecord  = "records.delete_phieukham"

	PermViewDisease = "records.view_loaibenh"
	PermAddDisease  = "records.add_loaibenh"
	PermEditDisease = "records.change_loaibenh"
	PermDelDisease  = "records.delete_loaibenh"

	PermViewMedicine = "pharmacy.view_thuoc"
	PermAddMedicine  = "pharmacy.add_thuoc"
	PermEditMedicine = "pharmacy.change_thuoc"
	PermDelMedicine  = "pharmacy.delete_thuoc"

	PermViewUnit = "pharmacy.view_donvi"
	PermAddUnit  = "pharmacy.add_donvi"
	PermEditUnit = "pharmacy.change_donvi"
	PermDelUnit  = "pharmacy.delete_donvi"

	PermViewUsage = "pharmacy.view_cachdung"
	PermAddUsage  = "pharmacy.add_cachdung"
	PermEditUsage = "pharmacy.change_cachdung"
	PermDelUsage  = "pharmacy.delete_cachdung"

	PermViewInvoice = "billing.view_hoadon"
	PermAddInvoice  = "billing.add_hoadon"
	PermEditInvoice = "billing.change_hoadon"
	PermDelInvoice  = "billing.delete_hoadon"

	PermViewReports = "reports.view_baocao"
)

//go:embed permissions.yaml
var permissionSchema []byte

type permissionSchemaDoc struct {
	Domains map[string]struct {
		Entities []string `yaml:"entities"`
		Actions  []string `yaml:"actions"`
	} `yaml:"domains"`
}

var knownPermissions map[string]struct{}

func init() {
	var doc permissionSchemaDoc
	if err := yaml.Unmarshal(permissionSchema, &doc); err != nil {
		panic(fmt.Sprintf("domain: parse permissions.yaml: %v", err))
	}
	knownPermissions = make(map[string]struct{})
	for name, d := range doc.Domains {
		for _, action := range d.Actions {
			for _, entity := range d.Entities {
				knownPermissions[fmt.Sprintf("%s.%s_%s", name, action, entity)] = struct{}{}
			}
		}
	}
}

// KnownPermission reports whether perm is in the schema-defined closed set.
func KnownPermission(perm string) bool {
	_, ok := knownPermissions[perm]
	return ok
}

// MustPermission validates perm against the schema and returns it. Call sites
// that wire permissions into the menu tree or route table use this so an
// unknown string panics at startup.
func MustPermission(perm string) string {
	if !KnownPermission(perm) {
		panic(fmt.Sprintf("domain: unknown permission %q", perm))
	}
	return perm
}

// KnownPermissionCount returns the size of the closed set (test support).
func KnownPermissionCount() int {
	return len(knownPermissions)
}
