package ui

import (
	"strconv"

	"clinic-admin/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

func groupsListPage(pc pageContext, groups []domain.GroupDetail, csrfField func() Node) Node {
	canEdit := pc.Principal.Permissions.Has(domain.PermEditGroup)
	canDelete := pc.Principal.Permissions.Has(domain.PermDelGroup)
	canAdd := pc.Principal.Permissions.Has(domain.PermAddGroup)

	tableRows := make([]Node, 0, len(groups))
	for _, g := range groups {
		idStr := strconv.FormatInt(g.ID, 10)
		var actionItems []Node
		if canEdit {
			actionItems = append(actionItems, actionMenuLink("/dashboard/groups/"+idStr+"/edit", "Sửa"))
		}
		if canDelete {
			actionItems = append(actionItems, actionMenuPost("/dashboard/groups/"+idStr+"/delete", "Xóa", csrfField, true))
		}
		actions := Node(nil)
		if len(actionItems) > 0 {
			actions = actionMenu("Actions", actionItems...)
		}
		tableRows = append(tableRows, Tr(
			data.Show(containsExpr(g.Name)),
			Td(Text(g.Name)),
			Td(Text(countText(len(g.Permissions), "quyền"))),
			Td(actions),
		))
	}

	tableNode := Node(emptyStateCard("Chưa có nhóm quyền nào.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text("Tên nhóm")), Th(Text("Số quyền")), Th())),
			TBody(Group(tableRows)),
		))
	}

	toolbar := pageToolbar("Nhóm quyền quyết định nhân viên thấy và làm được gì.", "", "")
	if canAdd {
		toolbar = pageToolbar("Nhóm quyền quyết định nhân viên thấy và làm được gì.", "/dashboard/groups/new", "Thêm nhóm quyền")
	}

	return appPage("Nhóm quyền", pc,
		toolbar,
		quickFilterCard("Lọc theo tên nhóm"),
		tableNode,
	)
}

type groupFormData struct {
	Title       string
	Action      string
	Group       domain.GroupDetail
	Error       string
	FieldErrors map[string][]string
}

// permissionSection is one block of checkboxes on the group form.
type permissionSection struct {
	Title string
	Perms [][2]string // permission string, label
}

var permissionSections = []permissionSection{
	{"Tài khoản", [][2]string{
		{domain.PermViewAccount, "Xem tài khoản"}, {domain.PermAddAccount, "Thêm tài khoản"},
		{domain.PermEditAccount, "Sửa tài khoản"}, {domain.PermDelAccount, "Xóa tài khoản"},
		{domain.PermViewGroup, "Xem nhóm quyền"}, {domain.PermAddGroup, "Thêm nhóm quyền"},
		{domain.PermEditGroup, "Sửa nhóm quyền"}, {domain.PermDelGroup, "Xóa nhóm quyền"},
	}},
	{"Bệnh nhân", [][2]string{
		{domain.PermViewPatient, "Xem bệnh nhân"}, {domain.PermAddPatient, "Thêm bệnh nhân"},
		{domain.PermEditPatient, "Sửa bệnh nhân"}, {domain.PermDelPatient, "Xóa bệnh nhân"},
		{domain.PermViewWaiting, "Xem danh sách chờ"}, {domain.PermAddWaiting, "Thêm vào danh sách chờ"},
		{domain.PermEditWaiting, "Cập nhật danh sách chờ"}, {domain.PermDelWaiting, "Xóa khỏi danh sách chờ"},
	}},
	{"Khám bệnh", [][2]string{
		{domain.PermViewRecord, "Xem phiếu khám"}, {domain.PermAddRecord, "Thêm phiếu khám"},
		{domain.PermEditRecord, "Sửa phiếu khám"}, {domain.PermDelRecord, "Xóa phiếu khám"},
		{domain.PermViewDisease, "Xem loại bệnh"}, {domain.PermAddDisease, "Thêm loại bệnh"},
		{domain.PermEditDisease, "Sửa loại bệnh"}, {domain.PermDelDisease, "Xóa loại bệnh"},
	}},
	{"Kho thuốc", [][2]string{
		{domain.PermViewMedicine, "Xem thuốc"}, {domain.PermAddMedicine, "Thêm thuốc"},
		{domain.PermEditMedicine, "Sửa thuốc"}, {domain.PermDelMedicine, "Xóa thuốc"},
		{domain.PermViewUnit, "Xem đơn vị tính"}, {domain.PermAddUnit, "Thêm đơn vị tính"},
		{domain.PermEditUnit, "Sửa đơn vị tính"}, {domain.PermDelUnit, "Xóa đơn vị tính"},
		{domain.PermViewUsage, "Xem cách dùng"}, {domain.PermAddUsage, "Thêm cách dùng"},
		{domain.PermEditUsage, "Sửa cách dùng"}, {domain.PermDelUsage, "Xóa cách dùng"},
	}},
	{"Hóa đơn và báo cáo", [][2]string{
		{domain.PermViewInvoice, "Xem hóa đơn"}, {domain.PermAddInvoice, "Thêm hóa đơn"},
		{domain.PermEditInvoice, "Sửa hóa đơn"}, {domain.PermDelInvoice, "Xóa hóa đơn"},
		{domain.PermViewReports, "Xem báo cáo"},
	}},
}

func groupFormPage(pc pageContext, d groupFormData, csrfField func() Node) Node {
	selected := make(map[string]bool, len(d.Group.Permissions))
	for _, p := range d.Group.Permissions {
		selected[p] = true
	}

	sections := make([]Node, 0, len(permissionSections))
	for _, section := range permissionSections {
		boxes := make([]Node, 0, len(section.Perms))
		for _, perm := range section.Perms {
			attrs := []Node{Type("checkbox"), Name("permissions"), Value(perm[0])}
			if selected[perm[0]] {
				attrs = append(attrs, Checked())
			}
			boxes = append(boxes, Label(Class("perm-checkbox"), Input(attrs...), Text(" "+perm[1])))
		}
		sections = append(sections,
			FieldSet(Class("perm-section"),
				Legend(Text(section.Title)),
				Div(Class("perm-grid"), Group(boxes)),
			),
		)
	}

	return appPage(d.Title, pc,
		formErrorBanner(d.Error),
		fieldErrorList(d.FieldErrors),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action(d.Action),
				csrfField(),
				textField("Tên nhóm", "name", d.Group.Name, true),
				Group(sections),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Lưu"))),
			),
		),
	)
}
