package ui

import (
	"strconv"
	"strings"

	"clinic-admin/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

type accountRowData struct {
	ID          int64
	LoginName   string
	DisplayName string
	Email       string
	IsActive    bool
	Groups      []string
	IsSelf      bool
}

func accountsListPage(pc pageContext, rows []accountRowData, csrfField func() Node) Node {
	canEdit := pc.Principal.Permissions.Has(domain.PermEditAccount)
	canDelete := pc.Principal.Permissions.Has(domain.PermDelAccount)
	canAdd := pc.Principal.Permissions.Has(domain.PermAddAccount)

	tableRows := make([]Node, 0, len(rows))
	for _, row := range rows {
		idStr := strconv.FormatInt(row.ID, 10)
		status := statusLabel("Hoạt động", "success")
		if !row.IsActive {
			status = statusLabel("Khóa", "danger")
		}

		var actionItems []Node
		if canEdit {
			actionItems = append(actionItems, actionMenuLink("/dashboard/accounts/"+idStr+"/edit", "Sửa"))
		}
		if canDelete && !row.IsSelf {
			actionItems = append(actionItems, actionMenuPost("/dashboard/accounts/"+idStr+"/delete", "Xóa", csrfField, true))
		}
		actions := Node(nil)
		if len(actionItems) > 0 {
			actions = actionMenu("Actions", actionItems...)
		}

		tableRows = append(tableRows, Tr(
			data.Show(containsExpr(row.LoginName+" "+row.DisplayName+" "+row.Email)),
			Td(Text(row.LoginName)),
			Td(Text(row.DisplayName)),
			Td(Text(row.Email)),
			Td(Text(strings.Join(row.Groups, ", "))),
			Td(status),
			Td(actions),
		))
	}

	tableNode := Node(emptyStateCard("Chưa có tài khoản nào.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text("Tên đăng nhập")), Th(Text("Họ tên")), Th(Text("Email")), Th(Text("Nhóm quyền")), Th(Text("Trạng thái")), Th())),
			TBody(Group(tableRows)),
		))
	}

	toolbar := pageToolbar("Quản lý tài khoản đăng nhập của nhân viên.", "", "")
	if canAdd {
		toolbar = pageToolbar("Quản lý tài khoản đăng nhập của nhân viên.", "/dashboard/accounts/new", "Thêm tài khoản")
	}

	return appPage("Quản lý tài khoản", pc,
		toolbar,
		quickFilterCard("Lọc theo tên đăng nhập, họ tên, email"),
		tableNode,
	)
}

type accountFormData struct {
	Title       string
	Action      string
	Groups      []domain.GroupDetail
	Account     domain.Account
	IsNew       bool
	Error       string
	FieldErrors map[string][]string
}

func accountFormPage(pc pageContext, d accountFormData, csrfField func() Node) Node {
	groupOptions := make([]selectOption, 0, len(d.Groups))
	for _, g := range d.Groups {
		groupOptions = append(groupOptions, selectOption{Value: strconv.FormatInt(g.ID, 10), Label: g.Name})
	}
	selected := make(map[int64]bool, len(d.Account.Groups))
	for _, g := range d.Account.Groups {
		selected[g.ID] = true
	}

	passwordLabel := "Mật khẩu"
	confirmLabel := "Xác nhận mật khẩu"
	if !d.IsNew {
		passwordLabel = "Mật khẩu mới (bỏ trống nếu giữ nguyên)"
		confirmLabel = "Xác nhận mật khẩu mới"
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
				textField("Tên đăng nhập", "loginName", d.Account.LoginName, true),
				textField("Họ tên", "displayName", d.Account.DisplayName, true),
				textField("Email", "email", d.Account.Email, false),
				passwordField(passwordLabel, "password", d.IsNew),
				passwordField(confirmLabel, "confirmPassword", d.IsNew),
				multiSelectField("Nhóm quyền", "groups", selected, groupOptions),
				checkboxField("Cho phép đăng nhập", "isActive", d.Account.IsActive || d.IsNew),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Lưu"))),
			),
		),
	)
}
