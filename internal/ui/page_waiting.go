package ui

import (
	"strconv"

	"clinic-admin/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

func waitingStatusBadge(status string) Node {
	switch status {
	case waitingStatusExamining:
		return statusLabel("Đang khám", "attention")
	case waitingStatusDone:
		return statusLabel("Đã khám", "success")
	default:
		return statusLabel("Chờ khám", "accent")
	}
}

func waitingListPage(pc pageContext, entries []domain.WaitingEntry, csrfField func() Node) Node {
	canEdit := pc.Principal.Permissions.Has(domain.PermEditWaiting)
	canDelete := pc.Principal.Permissions.Has(domain.PermDelWaiting)
	canAdd := pc.Principal.Permissions.Has(domain.PermAddWaiting)

	tableRows := make([]Node, 0, len(entries))
	for _, e := range entries {
		idStr := strconv.FormatInt(e.ID, 10)
		statusURL := "/dashboard/waiting/" + idStr + "/status"

		var actionItems []Node
		if canEdit {
			switch e.Status {
			case waitingStatusWaiting:
				actionItems = append(actionItems, statusActionForm(statusURL, waitingStatusExamining, "Bắt đầu khám", csrfField))
			case waitingStatusExamining:
				actionItems = append(actionItems, statusActionForm(statusURL, waitingStatusDone, "Hoàn thành", csrfField))
			}
		}
		if canDelete {
			actionItems = append(actionItems, actionMenuPost("/dashboard/waiting/"+idStr+"/delete", "Xóa", csrfField, true))
		}
		actions := Node(nil)
		if len(actionItems) > 0 {
			actions = actionMenu("Actions", actionItems...)
		}

		tableRows = append(tableRows, Tr(
			data.Show(containsExpr(e.Patient.FullName+" "+e.Patient.Phone)),
			Td(Strong(Text(strconv.Itoa(e.Number)))),
			Td(Text(e.Patient.FullName)),
			Td(Text(e.Patient.Phone)),
			Td(Text(formatDateTime(e.RegisteredAt))),
			Td(waitingStatusBadge(e.Status)),
			Td(actions),
		))
	}

	tableNode := Node(emptyStateCard("Danh sách chờ hôm nay đang trống.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text("STT")), Th(Text("Bệnh nhân")), Th(Text("Điện thoại")), Th(Text("Giờ đăng ký")), Th(Text("Trạng thái")), Th())),
			TBody(Group(tableRows)),
		))
	}

	toolbar := pageToolbar("Bệnh nhân đăng ký khám trong ngày, theo số thứ tự.", "", "")
	if canAdd {
		toolbar = pageToolbar("Bệnh nhân đăng ký khám trong ngày, theo số thứ tự.", "/dashboard/waiting/new", "Thêm vào danh sách")
	}

	return appPage("Danh sách chờ khám", pc,
		toolbar,
		quickFilterCard("Lọc theo tên hoặc điện thoại"),
		tableNode,
	)
}

// statusActionForm posts a single status transition from the action menu.
func statusActionForm(action, status, label string, csrfField func() Node) Node {
	return Form(
		Method("post"),
		Action(action),
		csrfField(),
		Input(Type("hidden"), Name("status"), Value(status)),
		Button(
			Type("submit"),
			Class("dropdown-item"),
			I(Class("dropdown-item-icon"), Attr("data-lucide", "arrow-right"), Attr("aria-hidden", "true")),
			Span(Text(label)),
		),
	)
}

func waitingNewPage(pc pageContext, patients []domain.Patient, errMsg string, csrfField func() Node) Node {
	options := make([]selectOption, 0, len(patients))
	for _, p := range patients {
		label := p.FullName
		if p.Phone != "" {
			label += " (" + p.Phone + ")"
		}
		options = append(options, selectOption{Value: strconv.FormatInt(p.ID, 10), Label: label})
	}
	return appPage("Thêm vào danh sách chờ", pc,
		formErrorBanner(errMsg),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action("/dashboard/waiting/"),
				csrfField(),
				selectField("Bệnh nhân", "patient", "", options, true),
				P(Class(mutedClass()), Text("Số thứ tự được cấp tự động theo thứ tự đăng ký trong ngày.")),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Thêm"))),
			),
		),
	)
}
