package ui

import (
	"strconv"

	"clinic-admin/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

func patientsListPage(pc pageContext, patients []domain.Patient, csrfField func() Node) Node {
	canEdit := pc.Principal.Permissions.Has(domain.PermEditPatient)
	canDelete := pc.Principal.Permissions.Has(domain.PermDelPatient)
	canAdd := pc.Principal.Permissions.Has(domain.PermAddPatient)

	tableRows := make([]Node, 0, len(patients))
	for _, p := range patients {
		idStr := strconv.FormatInt(p.ID, 10)
		var actionItems []Node
		if canEdit {
			actionItems = append(actionItems, actionMenuLink("/dashboard/patients/"+idStr+"/edit", "Sửa"))
		}
		if canDelete {
			actionItems = append(actionItems, actionMenuPost("/dashboard/patients/"+idStr+"/delete", "Xóa", csrfField, true))
		}
		actions := Node(nil)
		if len(actionItems) > 0 {
			actions = actionMenu("Actions", actionItems...)
		}

		year := "-"
		if p.BirthYear > 0 {
			year = strconv.Itoa(p.BirthYear)
		}
		tableRows = append(tableRows, Tr(
			data.Show(containsExpr(p.FullName+" "+p.Phone+" "+p.Address)),
			Td(Text(p.FullName)),
			Td(Text(genderLabel(p.Gender))),
			Td(Text(year)),
			Td(Text(p.Phone)),
			Td(Text(p.Address)),
			Td(actions),
		))
	}

	tableNode := Node(emptyStateCard("Chưa có bệnh nhân nào.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text("Họ tên")), Th(Text("Giới tính")), Th(Text("Năm sinh")), Th(Text("Điện thoại")), Th(Text("Địa chỉ")), Th())),
			TBody(Group(tableRows)),
		))
	}

	toolbar := pageToolbar("Hồ sơ bệnh nhân đã đăng ký tại phòng khám.", "", "")
	if canAdd {
		toolbar = pageToolbar("Hồ sơ bệnh nhân đã đăng ký tại phòng khám.", "/dashboard/patients/new", "Thêm bệnh nhân")
	}

	return appPage("Quản lý bệnh nhân", pc,
		toolbar,
		quickFilterCard("Lọc theo họ tên, điện thoại, địa chỉ"),
		tableNode,
	)
}

func genderLabel(gender string) string {
	switch gender {
	case "male":
		return "Nam"
	case "female":
		return "Nữ"
	default:
		return "Khác"
	}
}

type patientFormData struct {
	Title       string
	Action      string
	Patient     domain.Patient
	Error       string
	FieldErrors map[string][]string
}

func patientFormPage(pc pageContext, d patientFormData, csrfField func() Node) Node {
	year := ""
	if d.Patient.BirthYear > 0 {
		year = strconv.Itoa(d.Patient.BirthYear)
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
				textField("Họ tên", "fullName", d.Patient.FullName, true),
				selectField("Giới tính", "gender", d.Patient.Gender, []selectOption{
					{Value: "male", Label: "Nam"},
					{Value: "female", Label: "Nữ"},
					{Value: "other", Label: "Khác"},
				}, true),
				numberField("Năm sinh", "birthYear", year, "1", false),
				textField("Điện thoại", "phone", d.Patient.Phone, false),
				textField("Địa chỉ", "address", d.Patient.Address, false),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Lưu"))),
			),
		),
	)
}
