package ui

import (
	"strconv"

	"clinic-admin/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

func invoicePaidBadge(paid bool) Node {
	if paid {
		return statusLabel("Đã thanh toán", "success")
	}
	return statusLabel("Chưa thanh toán", "attention")
}

func invoicesListPage(pc pageContext, invoices []domain.Invoice, csrfField func() Node) Node {
	canDelete := pc.Principal.Permissions.Has(domain.PermDelInvoice)
	canAdd := pc.Principal.Permissions.Has(domain.PermAddInvoice)

	tableRows := make([]Node, 0, len(invoices))
	for _, inv := range invoices {
		idStr := strconv.FormatInt(inv.ID, 10)
		actionItems := []Node{
			actionMenuLink("/dashboard/invoices/"+idStr, "Xem chi tiết"),
			actionMenuLink("/dashboard/invoices/"+idStr+"/print", "In hóa đơn"),
		}
		if canDelete {
			actionItems = append(actionItems, actionMenuPost("/dashboard/invoices/"+idStr+"/delete", "Xóa", csrfField, true))
		}

		tableRows = append(tableRows, Tr(
			data.Show(containsExpr(inv.Patient.FullName)),
			Td(A(Href("/dashboard/invoices/"+idStr), Text("#"+idStr))),
			Td(Text(inv.Patient.FullName)),
			Td(Text(formatDate(inv.CreatedAt))),
			Td(Text(formatVND(inv.Total))),
			Td(invoicePaidBadge(inv.Paid)),
			Td(actionMenu("Actions", actionItems...)),
		))
	}

	tableNode := Node(emptyStateCard("Chưa có hóa đơn nào.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text("Số HĐ")), Th(Text("Bệnh nhân")), Th(Text("Ngày lập")), Th(Text("Tổng tiền")), Th(Text("Trạng thái")), Th())),
			TBody(Group(tableRows)),
		))
	}

	toolbar := pageToolbar("Hóa đơn tiền khám và tiền thuốc.", "", "")
	if canAdd {
		toolbar = pageToolbar("Hóa đơn tiền khám và tiền thuốc.", "/dashboard/invoices/new", "Lập hóa đơn")
	}

	return appPage("Hóa đơn", pc,
		toolbar,
		quickFilterCard("Lọc theo tên bệnh nhân"),
		tableNode,
	)
}

func invoiceDetailPage(pc pageContext, inv domain.Invoice, csrfField func() Node) Node {
	idStr := strconv.FormatInt(inv.ID, 10)

	var headerActions []Node
	headerActions = append(headerActions, A(Href("/dashboard/invoices/"+idStr+"/print"), Class(secondaryButtonClass()), Target("_blank"), Text("In hóa đơn")))
	if !inv.Paid && pc.Principal.Permissions.Has(domain.PermEditInvoice) {
		headerActions = append(headerActions, Form(
			Method("post"),
			Action("/dashboard/invoices/"+idStr+"/pay"),
			csrfField(),
			Button(Type("submit"), Class(primaryButtonClass()), Text("Ghi nhận thanh toán")),
		))
	}

	recordLink := Node(Dd(Text("-")))
	if inv.Record > 0 {
		recordStr := strconv.FormatInt(inv.Record, 10)
		recordLink = Dd(A(Href("/dashboard/medical-records/"+recordStr), Text("Phiếu khám #"+recordStr)))
	}

	return appPage("Hóa đơn #"+idStr, pc,
		Div(Class("page-toolbar"),
			P(Class(mutedClass()), Text("Chi tiết hóa đơn.")),
			Div(Class("toolbar-actions"), Group(headerActions)),
		),
		Div(Class(cardClass()),
			Dl(Class("detail-list"),
				Dt(Text("Bệnh nhân")), Dd(Text(inv.Patient.FullName)),
				Dt(Text("Phiếu khám")), recordLink,
				Dt(Text("Ngày lập")), Dd(Text(formatDateTime(inv.CreatedAt))),
				Dt(Text("Tiền khám")), Dd(Text(formatVND(inv.ExamFee))),
				Dt(Text("Tiền thuốc")), Dd(Text(formatVND(inv.MedicineFee))),
				Dt(Text("Tổng cộng")), Dd(Strong(Text(formatVND(inv.Total)))),
				Dt(Text("Trạng thái")), Dd(invoicePaidBadge(inv.Paid)),
			),
		),
	)
}

// invoicePrintPage is a bare document, no sidebar or scripts, so window.print
// gives a receipt the front desk can hand over.
func invoicePrintPage(inv domain.Invoice, record *domain.ExamRecord) Node {
	idStr := strconv.FormatInt(inv.ID, 10)

	prescriptionsNode := Node(nil)
	if record != nil && len(record.Prescriptions) > 0 {
		rows := make([]Node, 0, len(record.Prescriptions))
		for i, line := range record.Prescriptions {
			rows = append(rows, Tr(
				Td(Text(strconv.Itoa(i+1))),
				Td(Text(line.Medicine.Name)),
				Td(Text(strconv.Itoa(line.Quantity)+" "+line.Medicine.Unit.Name)),
				Td(Text(formatVND(line.Medicine.Price*float64(line.Quantity)))),
			))
		}
		prescriptionsNode = Table(Class("print-table"),
			THead(Tr(Th(Text("STT")), Th(Text("Thuốc")), Th(Text("Số lượng")), Th(Text("Thành tiền")))),
			TBody(Group(rows)),
		)
	}

	return HTML(
		Lang("vi"),
		Head(
			Meta(Charset("utf-8")),
			TitleEl(Text("Hóa đơn #"+idStr)),
			Link(Rel("stylesheet"), Href("/static/app.css")),
		),
		Body(
			Class("print-page"),
			Header(Class("print-header"),
				H1(Text("Phòng khám")),
				P(Text("HÓA ĐƠN THANH TOÁN")),
				P(Text("Số: "+idStr+" - Ngày: "+formatDate(inv.CreatedAt))),
			),
			Main(
				Dl(Class("detail-list"),
					Dt(Text("Bệnh nhân")), Dd(Text(inv.Patient.FullName)),
					Dt(Text("Tiền khám")), Dd(Text(formatVND(inv.ExamFee))),
					Dt(Text("Tiền thuốc")), Dd(Text(formatVND(inv.MedicineFee))),
					Dt(Text("Tổng cộng")), Dd(Strong(Text(formatVND(inv.Total)))),
				),
				prescriptionsNode,
			),
			Footer(Class("print-footer"),
				P(Text("Cảm ơn quý khách.")),
				Script(Raw("window.print()")),
			),
		),
	)
}

type invoiceFormData struct {
	Records  []domain.ExamRecord
	RecordID int64
	ExamFee  float64
	Error    string
}

func invoiceFormPage(pc pageContext, d invoiceFormData, csrfField func() Node) Node {
	options := make([]selectOption, 0, len(d.Records))
	for _, rec := range d.Records {
		label := "#" + strconv.FormatInt(rec.ID, 10) + " - " + rec.Patient.FullName + " (" + formatDate(rec.ExamDate) + ")"
		options = append(options, selectOption{Value: strconv.FormatInt(rec.ID, 10), Label: label})
	}
	recordValue := ""
	if d.RecordID > 0 {
		recordValue = strconv.FormatInt(d.RecordID, 10)
	}
	examFee := strconv.FormatFloat(d.ExamFee, 'f', -1, 64)

	return appPage("Lập hóa đơn", pc,
		formErrorBanner(d.Error),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action("/dashboard/invoices/"),
				csrfField(),
				selectField("Phiếu khám", "record", recordValue, options, true),
				numberField("Tiền khám (VND)", "examFee", examFee, "1000", true),
				P(Class(mutedClass()), Text("Tiền thuốc được tính tự động từ đơn thuốc của phiếu khám.")),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Lập hóa đơn"))),
			),
		),
	)
}
