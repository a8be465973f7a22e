package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
)

// Waiting list statuses as the backend stores them.
const (
	waitingStatusWaiting   = "waiting"
	waitingStatusExamining = "examining"
	waitingStatusDone      = "done"
)

func (h *Handler) WaitingList(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	items, err := h.Waiting.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, waitingListPage(pc, items, csrfFieldProvider(r)))
}

func (h *Handler) WaitingNew(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	patients, err := h.Patients.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, waitingNewPage(pc, patients, "", csrfFieldProvider(r)))
}

func (h *Handler) WaitingCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	patientID, err := formInt64(r.Form, "patient")
	if err != nil || patientID <= 0 {
		patients, lerr := h.Patients.List(r.Context())
		if lerr != nil {
			h.renderServiceError(w, r, lerr)
			return
		}
		renderHTML(w, http.StatusBadRequest, waitingNewPage(pc, patients, "Chọn một bệnh nhân.", csrfFieldProvider(r)))
		return
	}

	created, err := h.Waiting.Create(r.Context(), map[string]any{"patientId": patientID})
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordCreated, "waiting-list", created.ID)
	h.setFlash(w, flashSuccess, "Đã thêm vào danh sách chờ.")
	http.Redirect(w, r, "/dashboard/waiting", http.StatusSeeOther)
}

// WaitingSetStatus advances or resets one entry. Only the three known
// statuses are forwarded; anything else is a client error.
func (h *Handler) WaitingSetStatus(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	status := formString(r.Form, "status")
	switch status {
	case waitingStatusWaiting, waitingStatusExamining, waitingStatusDone:
	default:
		h.renderServiceError(w, r, domain.ErrValidation("trạng thái %q không hợp lệ", status))
		return
	}

	if _, err := h.Waiting.Update(r.Context(), id, map[string]any{"status": status}); err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordUpdated, "waiting-list", id)
	http.Redirect(w, r, "/dashboard/waiting", http.StatusSeeOther)
}

func (h *Handler) WaitingDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Waiting.Delete(r.Context(), id); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.publish(bus.TopicRecordDeleted, "waiting-list", id)
	h.setFlash(w, flashSuccess, "Đã xóa khỏi danh sách chờ.")
	http.Redirect(w, r, "/dashboard/waiting", http.StatusSeeOther)
}
