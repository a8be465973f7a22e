package ui

import (
	"strconv"

	"clinic-admin/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

func recordsListPage(pc pageContext, records []domain.ExamRecord, csrfField func() Node) Node {
	canEdit := pc.Principal.Permissions.Has(domain.PermEditRecord)
	canDelete := pc.Principal.Permissions.Has(domain.PermDelRecord)
	canAdd := pc.Principal.Permissions.Has(domain.PermAddRecord)

	tableRows := make([]Node, 0, len(records))
	for _, rec := range records {
		idStr := strconv.FormatInt(rec.ID, 10)
		actionItems := []Node{actionMenuLink("/dashboard/medical-records/"+idStr, "Xem chi tiết")}
		if canEdit {
			actionItems = append(actionItems, actionMenuLink("/dashboard/medical-records/"+idStr+"/edit", "Sửa"))
		}
		if canDelete {
			actionItems = append(actionItems, actionMenuPost("/dashboard/medical-records/"+idStr+"/delete", "Xóa", csrfField, true))
		}

		tableRows = append(tableRows, Tr(
			data.Show(containsExpr(rec.Patient.FullName+" "+rec.Disease.Name+" "+rec.Doctor)),
			Td(A(Href("/dashboard/medical-records/"+idStr), Text("#"+idStr))),
			Td(Text(rec.Patient.FullName)),
			Td(Text(formatDate(rec.ExamDate))),
			Td(Text(rec.Disease.Name)),
			Td(Text(rec.Doctor)),
			Td(Text(strconv.Itoa(len(rec.Prescriptions)))),
			Td(actionMenu("Actions", actionItems...)),
		))
	}

	tableNode := Node(emptyStateCard("Chưa có phiếu khám nào.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text("Số phiếu")), Th(Text("Bệnh nhân")), Th(Text("Ngày khám")), Th(Text("Loại bệnh")), Th(Text("Bác sĩ")), Th(Text("Số thuốc")), Th())),
			TBody(Group(tableRows)),
		))
	}

	toolbar := pageToolbar("Phiếu khám bệnh và đơn thuốc kèm theo.", "", "")
	if canAdd {
		toolbar = pageToolbar("Phiếu khám bệnh và đơn thuốc kèm theo.", "/dashboard/medical-records/new", "Thêm phiếu khám")
	}

	return appPage("Phiếu khám bệnh", pc,
		toolbar,
		quickFilterCard("Lọc theo bệnh nhân, loại bệnh, bác sĩ"),
		tableNode,
	)
}

func recordDetailPage(pc pageContext, rec domain.ExamRecord) Node {
	idStr := strconv.FormatInt(rec.ID, 10)

	prescriptionRows := make([]Node, 0, len(rec.Prescriptions))
	for i, line := range rec.Prescriptions {
		prescriptionRows = append(prescriptionRows, Tr(
			Td(Text(strconv.Itoa(i+1))),
			Td(Text(line.Medicine.Name)),
			Td(Text(strconv.Itoa(line.Quantity))),
			Td(Text(line.Medicine.Unit.Name)),
			Td(Text(line.Dosage)),
		))
	}
	prescriptionsNode := Node(P(Class(mutedClass()), Text("Phiếu khám này không kê thuốc.")))
	if len(prescriptionRows) > 0 {
		prescriptionsNode = Table(Class("data-table"),
			THead(Tr(Th(Text("STT")), Th(Text("Thuốc")), Th(Text("Số lượng")), Th(Text("Đơn vị")), Th(Text("Cách dùng")))),
			TBody(Group(prescriptionRows)),
		)
	}

	var headerActions []Node
	if pc.Principal.Permissions.Has(domain.PermEditRecord) {
		headerActions = append(headerActions, A(Href("/dashboard/medical-records/"+idStr+"/edit"), Class(secondaryButtonClass()), Text("Sửa phiếu khám")))
	}
	if pc.Principal.Permissions.Has(domain.PermAddInvoice) {
		headerActions = append(headerActions, A(Href("/dashboard/invoices/new?record="+idStr), Class(primaryButtonClass()), Text("Lập hóa đơn")))
	}

	return appPage("Phiếu khám #"+idStr, pc,
		Div(Class("page-toolbar"),
			P(Class(mutedClass()), Text("Chi tiết phiếu khám và đơn thuốc.")),
			Div(Class("toolbar-actions"), Group(headerActions)),
		),
		Div(Class(cardClass()),
			Dl(Class("detail-list"),
				Dt(Text("Bệnh nhân")), Dd(Text(rec.Patient.FullName)),
				Dt(Text("Ngày khám")), Dd(Text(formatDate(rec.ExamDate))),
				Dt(Text("Loại bệnh")), Dd(Text(rec.Disease.Name)),
				Dt(Text("Bác sĩ")), Dd(Text(rec.Doctor)),
				Dt(Text("Triệu chứng")), Dd(Text(rec.Symptoms)),
			),
		),
		Div(Class(cardClass()),
			H3(Text("Đơn thuốc")),
			prescriptionsNode,
		),
	)
}

type recordFormData struct {
	Title       string
	Action      string
	Record      domain.ExamRecord
	Refs        recordFormRefs
	Error       string
	FieldErrors map[string][]string
}

// blankPrescriptionSlots is how many extra empty lines every form shows.
const blankPrescriptionSlots = 5

func recordFormPage(pc pageContext, d recordFormData, csrfField func() Node) Node {
	patientOptions := make([]selectOption, 0, len(d.Refs.patients))
	for _, p := range d.Refs.patients {
		patientOptions = append(patientOptions, selectOption{Value: strconv.FormatInt(p.ID, 10), Label: p.FullName})
	}
	diseaseOptions := make([]selectOption, 0, len(d.Refs.diseases))
	for _, dt := range d.Refs.diseases {
		diseaseOptions = append(diseaseOptions, selectOption{Value: strconv.FormatInt(dt.ID, 10), Label: dt.Name})
	}

	patientValue := ""
	if d.Record.Patient.ID > 0 {
		patientValue = strconv.FormatInt(d.Record.Patient.ID, 10)
	}
	diseaseValue := ""
	if d.Record.Disease.ID > 0 {
		diseaseValue = strconv.FormatInt(d.Record.Disease.ID, 10)
	}
	dateValue := ""
	if !d.Record.ExamDate.IsZero() {
		dateValue = d.Record.ExamDate.Format("2006-01-02")
	}

	lineRows := make([]Node, 0, len(d.Record.Prescriptions)+blankPrescriptionSlots)
	for _, line := range d.Record.Prescriptions {
		lineRows = append(lineRows, prescriptionLineRow(d.Refs.medicines, line))
	}
	for i := 0; i < blankPrescriptionSlots; i++ {
		lineRows = append(lineRows, prescriptionLineRow(d.Refs.medicines, domain.PrescriptionLine{}))
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
				selectField("Bệnh nhân", "patient", patientValue, patientOptions, true),
				Div(Class("form-field"),
					Label(For("examDate"), Text("Ngày khám")),
					Input(Type("date"), ID("examDate"), Name("examDate"), Value(dateValue), Required()),
				),
				selectField("Loại bệnh", "disease", diseaseValue, diseaseOptions, true),
				textareaField("Triệu chứng", "symptoms", d.Record.Symptoms),
				textField("Bác sĩ khám", "doctor", d.Record.Doctor, true),
				FieldSet(Class("presc-lines"),
					Legend(Text("Đơn thuốc")),
					P(Class(mutedClass()), Text("Bỏ trống cột thuốc để bỏ qua dòng.")),
					Table(Class("data-table"),
						THead(Tr(Th(Text("Thuốc")), Th(Text("Số lượng")), Th(Text("Cách dùng")))),
						TBody(Group(lineRows)),
					),
				),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Lưu"))),
			),
		),
	)
}

func prescriptionLineRow(medicines []domain.Medicine, line domain.PrescriptionLine) Node {
	medicineOptions := []Node{Option(Value(""), Text("--"), If(line.Medicine.ID == 0, Selected()))}
	for _, m := range medicines {
		value := strconv.FormatInt(m.ID, 10)
		medicineOptions = append(medicineOptions, Option(
			Value(value),
			Text(m.Name+" ("+m.Unit.Name+")"),
			If(m.ID == line.Medicine.ID, Selected()),
		))
	}
	qty := ""
	if line.Quantity > 0 {
		qty = strconv.Itoa(line.Quantity)
	}
	dosage := line.Dosage
	if dosage == "" && line.Medicine.ID > 0 {
		dosage = line.Medicine.Usage.Description
	}
	return Tr(
		Td(Select(Name("prescMedicine"), Group(medicineOptions))),
		Td(Input(Type("number"), Name("prescQuantity"), Value(qty), Attr("min", "1"))),
		Td(Input(Type("text"), Name("prescDosage"), Value(dosage))),
	)
}
