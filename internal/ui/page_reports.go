package ui

import (
	"fmt"
	"strconv"

	"clinic-admin/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// reportToolbar renders the month picker plus the export link. It is a GET
// form so month selections stay bookmarkable.
func reportToolbar(base string, month, year int) Node {
	monthOptions := make([]Node, 0, 12)
	for m := 1; m <= 12; m++ {
		monthOptions = append(monthOptions, Option(
			Value(strconv.Itoa(m)),
			Text("Tháng "+strconv.Itoa(m)),
			If(m == month, Selected()),
		))
	}
	yearOptions := make([]Node, 0, 6)
	for y := year - 4; y <= year+1; y++ {
		yearOptions = append(yearOptions, Option(
			Value(strconv.Itoa(y)),
			Text(strconv.Itoa(y)),
			If(y == year, Selected()),
		))
	}
	exportHref := fmt.Sprintf("%s/export?month=%d&year=%d", base, month, year)

	return Div(
		Class(cardClass("filter-bar")),
		Form(
			Method("get"),
			Action(base),
			Class("filter-form"),
			Select(Name("month"), Group(monthOptions)),
			Select(Name("year"), Group(yearOptions)),
			Button(Type("submit"), Class(secondaryButtonClass()), Text("Xem")),
		),
		A(Href(exportHref), Class(secondaryButtonClass()), Text("Xuất Excel")),
	)
}

// percentBar draws a proportional bar next to the numeric percentage.
func percentBar(pct float64) Node {
	width := pct
	if width < 0 {
		width = 0
	}
	if width > 100 {
		width = 100
	}
	return Div(Class("percent-cell"),
		Div(Class("percent-bar"), Style(fmt.Sprintf("width: %.1f%%", width))),
		Span(Text(fmt.Sprintf("%.1f%%", pct))),
	)
}

func revenueReportPage(pc pageContext, rows []domain.RevenueRow, month, year int) Node {
	tableRows := make([]Node, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, Tr(
			Td(Text(row.Date)),
			Td(Text(strconv.Itoa(row.PatientCount))),
			Td(Text(formatVND(row.Revenue))),
			Td(percentBar(row.Percentage)),
		))
	}

	patients, revenue := revenueTotal(rows)

	tableNode := Node(emptyStateCard("Không có doanh thu trong tháng này.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text("Ngày")), Th(Text("Số bệnh nhân")), Th(Text("Doanh thu")), Th(Text("Tỷ lệ")))),
			TBody(Group(tableRows)),
			TFoot(Tr(
				Th(Text("Tổng cộng")),
				Th(Text(strconv.Itoa(patients))),
				Th(Text(formatVND(revenue))),
				Th(),
			)),
		))
	}

	return appPage(fmt.Sprintf("Doanh thu tháng %02d/%d", month, year), pc,
		pageToolbar("Doanh thu theo ngày trong tháng, tính trên hóa đơn đã lập.", "", ""),
		reportToolbar("/dashboard/reports/revenue", month, year),
		tableNode,
	)
}

func medicationReportPage(pc pageContext, rows []domain.MedicationUsageRow, month, year int) Node {
	maxQty := 0
	for _, row := range rows {
		if row.TotalQuantityUsed > maxQty {
			maxQty = row.TotalQuantityUsed
		}
	}

	tableRows := make([]Node, 0, len(rows))
	for _, row := range rows {
		pct := 0.0
		if maxQty > 0 {
			pct = float64(row.TotalQuantityUsed) / float64(maxQty) * 100
		}
		tableRows = append(tableRows, Tr(
			Td(Text(row.MedicineName)),
			Td(Text(row.Unit)),
			Td(Text(strconv.Itoa(row.TotalQuantityUsed))),
			Td(Text(strconv.Itoa(row.PrescriptionCount))),
			Td(percentBar(pct)),
		))
	}

	tableNode := Node(emptyStateCard("Không có thuốc nào được kê trong tháng này.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text("Thuốc")), Th(Text("Đơn vị")), Th(Text("Tổng số lượng")), Th(Text("Số lần kê")), Th(Text("So với thuốc dùng nhiều nhất")))),
			TBody(Group(tableRows)),
		))
	}

	return appPage(fmt.Sprintf("Sử dụng thuốc tháng %02d/%d", month, year), pc,
		pageToolbar("Tổng hợp thuốc đã kê theo đơn trong tháng.", "", ""),
		reportToolbar("/dashboard/reports/medication", month, year),
		tableNode,
	)
}
