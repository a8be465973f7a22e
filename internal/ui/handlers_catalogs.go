package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
	"clinic-admin/internal/restapi"
)

// catalogSpec describes one of the flat name-only catalogs (units, usages,
// disease types). They share list, form and delete flows; only the resource,
// labels and permissions differ.
type catalogSpec[T any] struct {
	res         restapi.Resource[T]
	base        string
	listTitle   string
	description string
	fieldLabel  string
	payloadKey  string
	busResource string
	conflictMsg string
	addPerm     string
	editPerm    string
	delPerm     string
	id          func(T) int64
	value       func(T) string
}

func (h *Handler) unitsCatalog() catalogSpec[domain.Unit] {
	return catalogSpec[domain.Unit]{
		res:         h.Units,
		base:        "/dashboard/units",
		listTitle:   "Đơn vị tính",
		description: "Đơn vị tính dùng cho thuốc (viên, vỉ, chai...).",
		fieldLabel:  "Tên đơn vị",
		payloadKey:  "name",
		busResource: "units",
		conflictMsg: "Không thể xóa: đơn vị đang được dùng cho thuốc.",
		addPerm:     domain.PermAddUnit,
		editPerm:    domain.PermEditUnit,
		delPerm:     domain.PermDelUnit,
		id:          func(u domain.Unit) int64 { return u.ID },
		value:       func(u domain.Unit) string { return u.Name },
	}
}

func (h *Handler) usagesCatalog() catalogSpec[domain.Usage] {
	return catalogSpec[domain.Usage]{
		res:         h.Usages,
		base:        "/dashboard/usages",
		listTitle:   "Cách dùng thuốc",
		description: "Hướng dẫn sử dụng gắn vào đơn thuốc.",
		fieldLabel:  "Mô tả cách dùng",
		payloadKey:  "description",
		busResource: "usages",
		conflictMsg: "Không thể xóa: cách dùng đang được dùng cho thuốc.",
		addPerm:     domain.PermAddUsage,
		editPerm:    domain.PermEditUsage,
		delPerm:     domain.PermDelUsage,
		id:          func(u domain.Usage) int64 { return u.ID },
		value:       func(u domain.Usage) string { return u.Description },
	}
}

func (h *Handler) diseaseTypesCatalog() catalogSpec[domain.DiseaseType] {
	return catalogSpec[domain.DiseaseType]{
		res:         h.DiseaseTypes,
		base:        "/dashboard/disease-types",
		listTitle:   "Loại bệnh",
		description: "Danh mục loại bệnh ghi trên phiếu khám.",
		fieldLabel:  "Tên loại bệnh",
		payloadKey:  "name",
		busResource: "disease-types",
		conflictMsg: "Không thể xóa: loại bệnh đã xuất hiện trên phiếu khám.",
		addPerm:     domain.PermAddDisease,
		editPerm:    domain.PermEditDisease,
		delPerm:     domain.PermDelDisease,
		id:          func(d domain.DiseaseType) int64 { return d.ID },
		value:       func(d domain.DiseaseType) string { return d.Name },
	}
}

func catalogList[T any](h *Handler, w http.ResponseWriter, r *http.Request, spec catalogSpec[T]) {
	pc := h.pageContext(w, r)
	items, err := spec.res.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	rows := make([]catalogRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, catalogRow{ID: spec.id(item), Value: spec.value(item)})
	}
	renderHTML(w, http.StatusOK, catalogListPage(pc, catalogPageData{
		Base:        spec.base,
		ListTitle:   spec.listTitle,
		Description: spec.description,
		FieldLabel:  spec.fieldLabel,
		AddPerm:     spec.addPerm,
		EditPerm:    spec.editPerm,
		DelPerm:     spec.delPerm,
	}, rows, csrfFieldProvider(r)))
}

func catalogNew[T any](h *Handler, w http.ResponseWriter, r *http.Request, spec catalogSpec[T]) {
	pc := h.pageContext(w, r)
	renderHTML(w, http.StatusOK, catalogFormPage(pc, catalogFormData{
		Title:      "Thêm: " + spec.listTitle,
		Action:     spec.base + "/",
		FieldLabel: spec.fieldLabel,
	}, csrfFieldProvider(r)))
}

func catalogCreate[T any](h *Handler, w http.ResponseWriter, r *http.Request, spec catalogSpec[T]) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	value := formString(r.Form, "value")
	if value == "" {
		renderHTML(w, http.StatusBadRequest, catalogFormPage(pc, catalogFormData{
			Title:      "Thêm: " + spec.listTitle,
			Action:     spec.base + "/",
			FieldLabel: spec.fieldLabel,
			Error:      spec.fieldLabel + " không được để trống.",
		}, csrfFieldProvider(r)))
		return
	}

	created, err := spec.res.Create(r.Context(), map[string]any{spec.payloadKey: value})
	if err != nil {
		if isValidation(err) {
			renderHTML(w, http.StatusBadRequest, catalogFormPage(pc, catalogFormData{
				Title:      "Thêm: " + spec.listTitle,
				Action:     spec.base + "/",
				FieldLabel: spec.fieldLabel,
				Value:      value,
				Error:      validationMessage(err),
			}, csrfFieldProvider(r)))
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordCreated, spec.busResource, spec.id(created))
	h.setFlash(w, flashSuccess, "Đã thêm.")
	http.Redirect(w, r, spec.base, http.StatusSeeOther)
}

func catalogEdit[T any](h *Handler, w http.ResponseWriter, r *http.Request, spec catalogSpec[T]) {
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	item, err := spec.res.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, catalogFormPage(pc, catalogFormData{
		Title:      "Sửa: " + spec.listTitle,
		Action:     spec.base + "/" + strconv.FormatInt(id, 10),
		FieldLabel: spec.fieldLabel,
		Value:      spec.value(item),
	}, csrfFieldProvider(r)))
}

func catalogUpdate[T any](h *Handler, w http.ResponseWriter, r *http.Request, spec catalogSpec[T]) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	action := spec.base + "/" + strconv.FormatInt(id, 10)
	value := formString(r.Form, "value")
	if value == "" {
		renderHTML(w, http.StatusBadRequest, catalogFormPage(pc, catalogFormData{
			Title:      "Sửa: " + spec.listTitle,
			Action:     action,
			FieldLabel: spec.fieldLabel,
			Error:      spec.fieldLabel + " không được để trống.",
		}, csrfFieldProvider(r)))
		return
	}

	if _, err := spec.res.Update(r.Context(), id, map[string]any{spec.payloadKey: value}); err != nil {
		if isValidation(err) {
			renderHTML(w, http.StatusBadRequest, catalogFormPage(pc, catalogFormData{
				Title:      "Sửa: " + spec.listTitle,
				Action:     action,
				FieldLabel: spec.fieldLabel,
				Value:      value,
				Error:      validationMessage(err),
			}, csrfFieldProvider(r)))
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordUpdated, spec.busResource, id)
	h.setFlash(w, flashSuccess, "Đã cập nhật.")
	http.Redirect(w, r, spec.base, http.StatusSeeOther)
}

func catalogDelete[T any](h *Handler, w http.ResponseWriter, r *http.Request, spec catalogSpec[T]) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := spec.res.Delete(r.Context(), id); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			h.setFlash(w, flashError, spec.conflictMsg)
			http.Redirect(w, r, spec.base, http.StatusSeeOther)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}
	h.publish(bus.TopicRecordDeleted, spec.busResource, id)
	h.setFlash(w, flashSuccess, "Đã xóa.")
	http.Redirect(w, r, spec.base, http.StatusSeeOther)
}

func validationMessage(err error) string {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	return err.Error()
}

func (h *Handler) UnitsList(w http.ResponseWriter, r *http.Request) {
	catalogList(h, w, r, h.unitsCatalog())
}

func (h *Handler) UnitsNew(w http.ResponseWriter, r *http.Request) {
	catalogNew(h, w, r, h.unitsCatalog())
}

func (h *Handler) UnitsCreate(w http.ResponseWriter, r *http.Request) {
	catalogCreate(h, w, r, h.unitsCatalog())
}

func (h *Handler) UnitsEdit(w http.ResponseWriter, r *http.Request) {
	catalogEdit(h, w, r, h.unitsCatalog())
}

func (h *Handler) UnitsUpdate(w http.ResponseWriter, r *http.Request) {
	catalogUpdate(h, w, r, h.unitsCatalog())
}

func (h *Handler) UnitsDelete(w http.ResponseWriter, r *http.Request) {
	catalogDelete(h, w, r, h.unitsCatalog())
}

func (h *Handler) UsagesList(w http.ResponseWriter, r *http.Request) {
	catalogList(h, w, r, h.usagesCatalog())
}

func (h *Handler) UsagesNew(w http.ResponseWriter, r *http.Request) {
	catalogNew(h, w, r, h.usagesCatalog())
}

func (h *Handler) UsagesCreate(w http.ResponseWriter, r *http.Request) {
	catalogCreate(h, w, r, h.usagesCatalog())
}

func (h *Handler) UsagesEdit(w http.ResponseWriter, r *http.Request) {
	catalogEdit(h, w, r, h.usagesCatalog())
}

func (h *Handler) UsagesUpdate(w http.ResponseWriter, r *http.Request) {
	catalogUpdate(h, w, r, h.usagesCatalog())
}

func (h *Handler) UsagesDelete(w http.ResponseWriter, r *http.Request) {
	catalogDelete(h, w, r, h.usagesCatalog())
}

func (h *Handler) DiseaseTypesList(w http.ResponseWriter, r *http.Request) {
	catalogList(h, w, r, h.diseaseTypesCatalog())
}

func (h *Handler) DiseaseTypesNew(w http.ResponseWriter, r *http.Request) {
	catalogNew(h, w, r, h.diseaseTypesCatalog())
}

func (h *Handler) DiseaseTypesCreate(w http.ResponseWriter, r *http.Request) {
	catalogCreate(h, w, r, h.diseaseTypesCatalog())
}

func (h *Handler) DiseaseTypesEdit(w http.ResponseWriter, r *http.Request) {
	catalogEdit(h, w, r, h.diseaseTypesCatalog())
}

func (h *Handler) DiseaseTypesUpdate(w http.ResponseWriter, r *http.Request) {
	catalogUpdate(h, w, r, h.diseaseTypesCatalog())
}

func (h *Handler) DiseaseTypesDelete(w http.ResponseWriter, r *http.Request) {
	catalogDelete(h, w, r, h.diseaseTypesCatalog())
}
