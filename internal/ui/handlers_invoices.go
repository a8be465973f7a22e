package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
)

// defaultExamFee pre-fills the invoice form; the receptionist can override it.
const defaultExamFee = 30000

func (h *Handler) InvoicesList(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	items, err := h.Invoices.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, invoicesListPage(pc, items, csrfFieldProvider(r)))
}

func (h *Handler) InvoicesDetail(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	invoice, err := h.Invoices.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, invoiceDetailPage(pc, invoice, csrfFieldProvider(r)))
}

// InvoicesPrint renders the invoice without the dashboard chrome so the
// browser print dialog produces a clean receipt.
func (h *Handler) InvoicesPrint(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	invoice, err := h.Invoices.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	var record *domain.ExamRecord
	if invoice.Record > 0 {
		if rec, rErr := h.Records.Get(r.Context(), invoice.Record); rErr == nil {
			record = &rec
		}
	}
	renderHTML(w, http.StatusOK, invoicePrintPage(invoice, record))
}

func (h *Handler) InvoicesNew(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	records, err := h.Records.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	preselect := int64(0)
	if raw := r.URL.Query().Get("record"); raw != "" {
		if id, pErr := strconv.ParseInt(raw, 10, 64); pErr == nil && id > 0 {
			preselect = id
		}
	}

	renderHTML(w, http.StatusOK, invoiceFormPage(pc, invoiceFormData{
		Records:  records,
		RecordID: preselect,
		ExamFee:  defaultExamFee,
	}, csrfFieldProvider(r)))
}

func (h *Handler) InvoicesCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)

	renderFormError := func(recordID int64, examFee float64, msg string) {
		records, lErr := h.Records.List(r.Context())
		if lErr != nil {
			h.renderServiceError(w, r, lErr)
			return
		}
		renderHTML(w, http.StatusBadRequest, invoiceFormPage(pc, invoiceFormData{
			Records:  records,
			RecordID: recordID,
			ExamFee:  examFee,
			Error:    msg,
		}, csrfFieldProvider(r)))
	}

	recordID, err := formInt64(r.Form, "record")
	if err != nil || recordID <= 0 {
		renderFormError(0, defaultExamFee, "Chọn phiếu khám để lập hóa đơn.")
		return
	}
	examFee, err := formFloat(r.Form, "examFee")
	if err != nil || examFee < 0 {
		renderFormError(recordID, defaultExamFee, "Tiền khám không hợp lệ.")
		return
	}

	created, cErr := h.Invoices.Create(r.Context(), map[string]any{
		"recordId": recordID,
		"examFee":  examFee,
	})
	if cErr != nil {
		var conflict *domain.ConflictError
		if errors.As(cErr, &conflict) {
			renderFormError(recordID, examFee, "Phiếu khám này đã có hóa đơn.")
			return
		}
		if isValidation(cErr) {
			renderFormError(recordID, examFee, validationMessage(cErr))
			return
		}
		h.renderServiceError(w, r, cErr)
		return
	}

	h.publish(bus.TopicRecordCreated, "invoices", created.ID)
	h.setFlash(w, flashSuccess, "Đã lập hóa đơn.")
	http.Redirect(w, r, "/dashboard/invoices/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
}

func (h *Handler) InvoicesMarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if _, err := h.Invoices.Update(r.Context(), id, map[string]any{"paid": true}); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.publish(bus.TopicRecordUpdated, "invoices", id)
	h.setFlash(w, flashSuccess, "Đã ghi nhận thanh toán.")
	http.Redirect(w, r, "/dashboard/invoices/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (h *Handler) InvoicesDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Invoices.Delete(r.Context(), id); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			h.setFlash(w, flashError, "Không thể xóa hóa đơn đã thanh toán.")
			http.Redirect(w, r, "/dashboard/invoices", http.StatusSeeOther)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}
	h.publish(bus.TopicRecordDeleted, "invoices", id)
	h.setFlash(w, flashSuccess, "Đã xóa hóa đơn.")
	http.Redirect(w, r, "/dashboard/invoices", http.StatusSeeOther)
}
