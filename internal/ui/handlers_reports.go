package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"clinic-admin/internal/domain"
)

// reportMonth reads month/year from the query, defaulting to the current
// month. Out-of-range values fall back rather than erroring so that hand
// edited URLs still land somewhere sensible.
func reportMonth(r *http.Request) (month, year int) {
	now := time.Now()
	month, year = int(now.Month()), now.Year()
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y >= 2000 && y <= 2100 {
		year = y
	}
	return month, year
}

func (h *Handler) RevenueReport(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	month, year := reportMonth(r)
	rows, err := h.API.Revenue(r.Context(), month, year)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, revenueReportPage(pc, rows, month, year))
}

func (h *Handler) MedicationReport(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	month, year := reportMonth(r)
	rows, err := h.API.MedicationUsage(r.Context(), month, year)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, medicationReportPage(pc, rows, month, year))
}

// RevenueReportExport streams the month's revenue table as an xlsx workbook.
func (h *Handler) RevenueReportExport(w http.ResponseWriter, r *http.Request) {
	month, year := reportMonth(r)
	rows, err := h.API.Revenue(r.Context(), month, year)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	title := fmt.Sprintf("Báo cáo doanh thu tháng %02d/%d", month, year)
	f.SetCellValue(sheet, "A1", title)
	headers := []string{"Ngày", "Số bệnh nhân", "Doanh thu", "Tỷ lệ (%)"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, hd)
	}

	var total float64
	for i, row := range rows {
		line := i + 4
		f.SetCellValue(sheet, fmt.Sprintf("A%d", line), row.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", line), row.PatientCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", line), row.Revenue)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", line), row.Percentage)
		total += row.Revenue
	}
	totalLine := len(rows) + 4
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalLine), "Tổng cộng")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalLine), total)

	writeWorkbook(w, h, f, fmt.Sprintf("doanh-thu-%d-%02d.xlsx", year, month))
}

// MedicationReportExport streams the month's medication usage as xlsx.
func (h *Handler) MedicationReportExport(w http.ResponseWriter, r *http.Request) {
	month, year := reportMonth(r)
	rows, err := h.API.MedicationUsage(r.Context(), month, year)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	title := fmt.Sprintf("Báo cáo sử dụng thuốc tháng %02d/%d", month, year)
	f.SetCellValue(sheet, "A1", title)
	headers := []string{"Thuốc", "Đơn vị", "Tổng số lượng", "Số lần kê"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, hd)
	}

	for i, row := range rows {
		line := i + 4
		f.SetCellValue(sheet, fmt.Sprintf("A%d", line), row.MedicineName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", line), row.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", line), row.TotalQuantityUsed)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", line), row.PrescriptionCount)
	}

	writeWorkbook(w, h, f, fmt.Sprintf("su-dung-thuoc-%d-%02d.xlsx", year, month))
}

func writeWorkbook(w http.ResponseWriter, h *Handler, f *excelize.File, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		h.Logger.Error("write workbook", "filename", filename, "error", err)
	}
}

// revenueTotal sums the month for the footer row and the summary line.
func revenueTotal(rows []domain.RevenueRow) (patients int, revenue float64) {
	for _, row := range rows {
		patients += row.PatientCount
		revenue += row.Revenue
	}
	return patients, revenue
}
