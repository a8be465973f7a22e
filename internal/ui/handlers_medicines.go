package ui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
	"clinic-admin/internal/listview"
)

// lowStockThreshold flags medicines that need reordering soon.
const lowStockThreshold = 10

// medicineQuery are the list filters read from the URL so that views
// stay shareable as plain links.
type medicineQuery struct {
	Search   string
	UnitID   int64
	Sort     string
	LowStock bool
}

func medicineQueryFromRequest(r *http.Request) medicineQuery {
	q := medicineQuery{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
		Sort:   r.URL.Query().Get("sort"),
	}
	if raw := r.URL.Query().Get("unit"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			q.UnitID = id
		}
	}
	q.LowStock = r.URL.Query().Get("low") == "1"
	return q
}

func (q medicineQuery) apply(items []domain.Medicine) []domain.Medicine {
	opts := listview.Options[domain.Medicine]{
		Search: q.Search,
		SearchIn: []func(domain.Medicine) string{
			func(m domain.Medicine) string { return m.Name },
		},
	}
	if q.UnitID > 0 {
		opts.Filters = append(opts.Filters, func(m domain.Medicine) bool { return m.Unit.ID == q.UnitID })
	}
	if q.LowStock {
		opts.Filters = append(opts.Filters, func(m domain.Medicine) bool { return m.Stock <= lowStockThreshold })
	}
	switch q.Sort {
	case "price":
		opts.Less = func(a, b domain.Medicine) bool { return a.Price < b.Price }
	case "stock":
		opts.Less = func(a, b domain.Medicine) bool { return a.Stock < b.Stock }
	case "name":
		opts.Less = func(a, b domain.Medicine) bool { return a.Name < b.Name }
	}
	return listview.Apply(items, opts)
}

func (h *Handler) MedicinesList(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	items, err := h.Medicines.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	units, err := h.Units.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	query := medicineQueryFromRequest(r)
	renderHTML(w, http.StatusOK, medicinesListPage(pc, query.apply(items), units, query, csrfFieldProvider(r)))
}

func (h *Handler) medicineRefs(r *http.Request) ([]domain.Unit, []domain.Usage, error) {
	units, err := h.Units.List(r.Context())
	if err != nil {
		return nil, nil, err
	}
	usages, err := h.Usages.List(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return units, usages, nil
}

func (h *Handler) MedicinesNew(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	units, usages, err := h.medicineRefs(r)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, medicineFormPage(pc, medicineFormData{
		Title:  "Thêm thuốc",
		Action: "/dashboard/medicines/",
		Units:  units,
		Usages: usages,
	}, csrfFieldProvider(r)))
}

func (h *Handler) MedicinesCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	medicine, payload, formErr := medicineFromForm(r)
	if formErr != nil {
		h.renderMedicineForm(w, r, pc, "/dashboard/medicines/", "Thêm thuốc", medicine, formErr)
		return
	}

	created, err := h.Medicines.Create(r.Context(), payload)
	if err != nil {
		if isValidation(err) {
			h.renderMedicineForm(w, r, pc, "/dashboard/medicines/", "Thêm thuốc", medicine, err)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordCreated, "medicines", created.ID)
	h.setFlash(w, flashSuccess, "Đã thêm thuốc.")
	http.Redirect(w, r, "/dashboard/medicines", http.StatusSeeOther)
}

func (h *Handler) MedicinesEdit(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	medicine, err := h.Medicines.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	units, usages, err := h.medicineRefs(r)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, medicineFormPage(pc, medicineFormData{
		Title:    "Sửa thuốc",
		Action:   "/dashboard/medicines/" + strconv.FormatInt(id, 10),
		Medicine: medicine,
		Units:    units,
		Usages:   usages,
	}, csrfFieldProvider(r)))
}

func (h *Handler) MedicinesUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	action := "/dashboard/medicines/" + strconv.FormatInt(id, 10)
	medicine, payload, formErr := medicineFromForm(r)
	medicine.ID = id
	if formErr != nil {
		h.renderMedicineForm(w, r, pc, action, "Sửa thuốc", medicine, formErr)
		return
	}

	if _, err := h.Medicines.Update(r.Context(), id, payload); err != nil {
		if isValidation(err) {
			h.renderMedicineForm(w, r, pc, action, "Sửa thuốc", medicine, err)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordUpdated, "medicines", id)
	h.setFlash(w, flashSuccess, "Đã cập nhật thuốc.")
	http.Redirect(w, r, "/dashboard/medicines", http.StatusSeeOther)
}

func (h *Handler) MedicinesDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Medicines.Delete(r.Context(), id); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			h.setFlash(w, flashError, "Không thể xóa: thuốc đã xuất hiện trong đơn thuốc.")
			http.Redirect(w, r, "/dashboard/medicines", http.StatusSeeOther)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}
	h.publish(bus.TopicRecordDeleted, "medicines", id)
	h.setFlash(w, flashSuccess, "Đã xóa thuốc.")
	http.Redirect(w, r, "/dashboard/medicines", http.StatusSeeOther)
}

func medicineFromForm(r *http.Request) (domain.Medicine, map[string]any, error) {
	medicine := domain.Medicine{Name: formString(r.Form, "name")}
	if medicine.Name == "" {
		return medicine, nil, domain.ErrValidation("tên thuốc không được để trống")
	}

	unitID, err := formInt64(r.Form, "unit")
	if err != nil || unitID <= 0 {
		return medicine, nil, domain.ErrValidation("chọn đơn vị tính")
	}
	medicine.Unit.ID = unitID

	usageID, err := formInt64(r.Form, "usage")
	if err != nil || usageID <= 0 {
		return medicine, nil, domain.ErrValidation("chọn cách dùng")
	}
	medicine.Usage.ID = usageID

	price, err := formFloat(r.Form, "price")
	if err != nil || price < 0 {
		return medicine, nil, domain.ErrValidation("đơn giá không hợp lệ")
	}
	medicine.Price = price

	stock, err := formInt(r.Form, "stock")
	if err != nil || stock < 0 {
		return medicine, nil, domain.ErrValidation("tồn kho không hợp lệ")
	}
	medicine.Stock = stock

	payload := map[string]any{
		"name":    medicine.Name,
		"unitId":  unitID,
		"usageId": usageID,
		"price":   price,
		"stock":   stock,
	}
	return medicine, payload, nil
}

func (h *Handler) renderMedicineForm(w http.ResponseWriter, r *http.Request, pc pageContext, action, title string, medicine domain.Medicine, err error) {
	units, usages, rErr := h.medicineRefs(r)
	if rErr != nil {
		h.renderServiceError(w, r, rErr)
		return
	}
	d := medicineFormData{Title: title, Action: action, Medicine: medicine, Units: units, Usages: usages}
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		d.Error = validation.Message
		d.FieldErrors = validation.Fields
	}
	renderHTML(w, http.StatusBadRequest, medicineFormPage(pc, d, csrfFieldProvider(r)))
}
