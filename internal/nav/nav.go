// Package nav holds the declarative menu tree and the derived navigation
// state: the permission-filtered sidebar, the active menu key for the current
// URL, and the breadcrumb trail.
package nav

import (
	"strings"

	"clinic-admin/internal/domain"
)

// Prefix is the fixed root under which every protected page lives.
const Prefix = "/dashboard"

// HomeKey is the fallback active key when no tree node matches the URL.
const HomeKey = "home"

// Node is one entry of the static menu tree. A node either links to a page
// (leaf, Path set) or groups children (Path empty). Permission gates
// visibility for leaves; a parent is visible iff at least one child survives
// filtering.
type Node struct {
	Key        string
	Label      string
	Path       string
	Icon       string
	Permission string
	Children   []Node
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Label string
	Path  string
}

// Tree returns the menu tree. It is rebuilt per call (cheap, a few dozen
// nodes) so callers can filter it destructively.
func Tree() []Node {
	return []Node{
		{Key: HomeKey, Label: "Tổng quan", Path: Prefix, Icon: "house"},
		{Key: "kham-benh", Label: "Khám bệnh", Icon: "stethoscope", Children: []Node{
			{Key: "waiting", Label: "Danh sách chờ khám", Path: Prefix + "/waiting", Icon: "clock", Permission: domain.MustPermission(domain.PermViewWaiting)},
			{Key: "medical-records", Label: "Quản lý phiếu khám bệnh", Path: Prefix + "/medical-records", Icon: "clipboard-list", Permission: domain.MustPermission(domain.PermViewRecord)},
		}},
		{Key: "patients", Label: "Quản lý bệnh nhân", Path: Prefix + "/patients", Icon: "users", Permission: domain.MustPermission(domain.PermViewPatient)},
		{Key: "pharmacy", Label: "Kho thuốc", Icon: "pill", Children: []Node{
			{Key: "medicines", Label: "Tra cứu thuốc", Path: Prefix + "/medicines", Icon: "search", Permission: domain.MustPermission(domain.PermViewMedicine)},
			{Key: "units", Label: "Đơn vị tính", Path: Prefix + "/units", Icon: "ruler", Permission: domain.MustPermission(domain.PermViewUnit)},
			{Key: "usages", Label: "Cách dùng", Path: Prefix + "/usages", Icon: "book-open", Permission: domain.MustPermission(domain.PermViewUsage)},
		}},
		{Key: "disease-types", Label: "Loại bệnh", Path: Prefix + "/disease-types", Icon: "activity", Permission: domain.MustPermission(domain.PermViewDisease)},
		{Key: "invoices", Label: "Hóa đơn", Path: Prefix + "/invoices", Icon: "receipt", Permission: domain.MustPermission(domain.PermViewInvoice)},
		{Key: "bao-cao", Label: "Báo cáo", Icon: "chart-column", Children: []Node{
			{Key: "reports/revenue", Label: "Doanh thu", Path: Prefix + "/reports/revenue", Icon: "banknote", Permission: domain.MustPermission(domain.PermViewReports)},
			{Key: "reports/medication", Label: "Sử dụng thuốc", Path: Prefix + "/reports/medication", Icon: "tablets", Permission: domain.MustPermission(domain.PermViewReports)},
		}},
		{Key: "he-thong", Label: "Hệ thống", Icon: "settings", Children: []Node{
			{Key: "accounts", Label: "Quản lý tài khoản", Path: Prefix + "/accounts", Icon: "user-cog", Permission: domain.MustPermission(domain.PermViewAccount)},
			{Key: "groups", Label: "Nhóm quyền", Path: Prefix + "/groups", Icon: "shield", Permission: domain.MustPermission(domain.PermViewGroup)},
		}},
	}
}

// Visible reports whether a node survives filtering with the permission set.
func Visible(n Node, perms domain.PermissionSet) bool {
	if len(n.Children) > 0 {
		return len(Filter(n.Children, perms)) > 0
	}
	return n.Permission == "" || perms.Has(n.Permission)
}

// Filter produces a new tree containing only visible nodes, preserving
// relative order. A parent's children are replaced by the filtered children;
// parents with zero surviving children are dropped entirely.
func Filter(tree []Node, perms domain.PermissionSet) []Node {
	out := make([]Node, 0, len(tree))
	for _, n := range tree {
		if len(n.Children) > 0 {
			kids := Filter(n.Children, perms)
			if len(kids) == 0 {
				continue
			}
			n.Children = kids
			out = append(out, n)
			continue
		}
		if n.Permission == "" || perms.Has(n.Permission) {
			out = append(out, n)
		}
	}
	return out
}

// ResolveActiveKey derives the active menu key from the current URL path.
// The segments after the dashboard prefix are joined with "/" to form the
// candidate key; the first depth-first tree match wins. If none matches, the
// first segment alone is tried; failing that, HomeKey.
func ResolveActiveKey(tree []Node, path string) string {
	segs := pathSegments(path)
	if len(segs) == 0 {
		return HomeKey
	}
	if key := strings.Join(segs, "/"); findKey(tree, key) {
		return key
	}
	if findKey(tree, segs[0]) {
		return segs[0]
	}
	return HomeKey
}

func findKey(tree []Node, key string) bool {
	for _, n := range tree {
		if n.Key == key {
			return true
		}
		if findKey(n.Children, key) {
			return true
		}
	}
	return false
}

// Breadcrumb derives the trail from the URL path alone. The first entry is
// always the dashboard home; each further segment appends its cumulative
// path with a cosmetic label (first letter upper-cased, hyphens to spaces).
// Labels are purely syntactic and can diverge from the menu's configured
// labels; that mismatch is long-standing behavior and is kept as is.
func Breadcrumb(path string) []Crumb {
	crumbs := []Crumb{{Label: "Trang chủ", Path: Prefix}}
	cum := Prefix
	for _, seg := range pathSegments(path) {
		cum += "/" + seg
		crumbs = append(crumbs, Crumb{Label: segmentLabel(seg), Path: cum})
	}
	return crumbs
}

// pathSegments returns the URL segments after the dashboard prefix. A path
// outside the prefix, or equal to it, yields no segments.
func pathSegments(path string) []string {
	path = strings.TrimSuffix(path, "/")
	if path == Prefix || !strings.HasPrefix(path, Prefix+"/") {
		return nil
	}
	rest := strings.TrimPrefix(path, Prefix+"/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

func segmentLabel(seg string) string {
	seg = strings.ReplaceAll(seg, "-", " ")
	if seg == "" {
		return seg
	}
	return strings.ToUpper(seg[:1]) + seg[1:]
}
