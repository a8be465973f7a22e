package ui

import (
	"strconv"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

type catalogRow struct {
	ID    int64
	Value string
}

type catalogPageData struct {
	Base        string
	ListTitle   string
	Description string
	FieldLabel  string
	AddPerm     string
	EditPerm    string
	DelPerm     string
}

func catalogListPage(pc pageContext, d catalogPageData, rows []catalogRow, csrfField func() Node) Node {
	canEdit := pc.Principal.Permissions.Has(d.EditPerm)
	canDelete := pc.Principal.Permissions.Has(d.DelPerm)
	canAdd := pc.Principal.Permissions.Has(d.AddPerm)

	tableRows := make([]Node, 0, len(rows))
	for _, row := range rows {
		idStr := strconv.FormatInt(row.ID, 10)
		var actionItems []Node
		if canEdit {
			actionItems = append(actionItems, actionMenuLink(d.Base+"/"+idStr+"/edit", "Sửa"))
		}
		if canDelete {
			actionItems = append(actionItems, actionMenuPost(d.Base+"/"+idStr+"/delete", "Xóa", csrfField, true))
		}
		actions := Node(nil)
		if len(actionItems) > 0 {
			actions = actionMenu("Actions", actionItems...)
		}

		tableRows = append(tableRows, Tr(
			data.Show(containsExpr(row.Value)),
			Td(Text(row.Value)),
			Td(actions),
		))
	}

	tableNode := Node(emptyStateCard("Danh mục đang trống.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text(d.FieldLabel)), Th())),
			TBody(Group(tableRows)),
		))
	}

	toolbar := pageToolbar(d.Description, "", "")
	if canAdd {
		toolbar = pageToolbar(d.Description, d.Base+"/new", "Thêm mới")
	}

	return appPage(d.ListTitle, pc,
		toolbar,
		quickFilterCard("Lọc nhanh"),
		tableNode,
	)
}

type catalogFormData struct {
	Title      string
	Action     string
	FieldLabel string
	Value      string
	Error      string
}

func catalogFormPage(pc pageContext, d catalogFormData, csrfField func() Node) Node {
	return appPage(d.Title, pc,
		formErrorBanner(d.Error),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action(d.Action),
				csrfField(),
				textField(d.FieldLabel, "value", d.Value, true),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Lưu"))),
			),
		),
	)
}
