package ui

import (
	"net/http"
	"strconv"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	summary, err := h.cachedSummary(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, homePage(pc, []summaryCardData{
		{Label: "Bệnh nhân hôm nay", Value: strconv.Itoa(summary.PatientsToday), Icon: "users"},
		{Label: "Đang chờ khám", Value: strconv.Itoa(summary.WaitingCount), Icon: "clock"},
		{Label: "Phiếu khám trong tháng", Value: strconv.Itoa(summary.RecordsThisMonth), Icon: "clipboard-list"},
		{Label: "Doanh thu trong tháng", Value: formatVND(summary.RevenueThisMonth), Icon: "banknote"},
		{Label: "Thuốc sắp hết hàng", Value: strconv.Itoa(summary.MedicinesLowStock), Icon: "pill"},
	}))
}
