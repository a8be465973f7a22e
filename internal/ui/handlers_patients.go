package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
	"clinic-admin/internal/listview"
)

func (h *Handler) PatientsList(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	items, err := h.Patients.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	// Server-side search so bookmarked and shared URLs keep their result set;
	// the datastar quick filter narrows further without a round trip.
	search := formString(r.URL.Query(), "q")
	items = listview.Apply(items, listview.Options[domain.Patient]{
		Search: search,
		SearchIn: []func(domain.Patient) string{
			func(p domain.Patient) string { return p.FullName },
			func(p domain.Patient) string { return p.Phone },
			func(p domain.Patient) string { return p.Address },
		},
	})

	renderHTML(w, http.StatusOK, patientsListPage(pc, items, csrfFieldProvider(r)))
}

func (h *Handler) PatientsNew(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	renderHTML(w, http.StatusOK, patientFormPage(pc, patientFormData{
		Title:  "Thêm bệnh nhân",
		Action: "/dashboard/patients/",
	}, csrfFieldProvider(r)))
}

func (h *Handler) PatientsCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	patient, payload, formErr := patientFromForm(r)
	if formErr != nil {
		h.renderPatientForm(w, pc, "/dashboard/patients/", "Thêm bệnh nhân", patient, formErr)
		return
	}

	created, err := h.Patients.Create(r.Context(), payload)
	if err != nil {
		if isValidation(err) {
			h.renderPatientForm(w, pc, "/dashboard/patients/", "Thêm bệnh nhân", patient, err)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordCreated, "patients", created.ID)
	h.setFlash(w, flashSuccess, "Đã thêm bệnh nhân "+created.FullName+".")
	http.Redirect(w, r, "/dashboard/patients", http.StatusSeeOther)
}

func (h *Handler) PatientsEdit(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	patient, err := h.Patients.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, patientFormPage(pc, patientFormData{
		Title:   "Sửa hồ sơ " + patient.FullName,
		Action:  "/dashboard/patients/" + strconv.FormatInt(id, 10),
		Patient: patient,
	}, csrfFieldProvider(r)))
}

func (h *Handler) PatientsUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	action := "/dashboard/patients/" + strconv.FormatInt(id, 10)
	patient, payload, formErr := patientFromForm(r)
	patient.ID = id
	if formErr != nil {
		h.renderPatientForm(w, pc, action, "Sửa hồ sơ bệnh nhân", patient, formErr)
		return
	}

	updated, err := h.Patients.Update(r.Context(), id, payload)
	if err != nil {
		if isValidation(err) {
			h.renderPatientForm(w, pc, action, "Sửa hồ sơ bệnh nhân", patient, err)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordUpdated, "patients", updated.ID)
	h.setFlash(w, flashSuccess, "Đã cập nhật hồ sơ "+updated.FullName+".")
	http.Redirect(w, r, "/dashboard/patients", http.StatusSeeOther)
}

func (h *Handler) PatientsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Patients.Delete(r.Context(), id); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			h.setFlash(w, flashError, "Không thể xóa: bệnh nhân còn phiếu khám hoặc hóa đơn liên quan.")
			http.Redirect(w, r, "/dashboard/patients", http.StatusSeeOther)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}
	h.publish(bus.TopicRecordDeleted, "patients", id)
	h.setFlash(w, flashSuccess, "Đã xóa hồ sơ bệnh nhân.")
	http.Redirect(w, r, "/dashboard/patients", http.StatusSeeOther)
}

func patientFromForm(r *http.Request) (domain.Patient, map[string]any, error) {
	patient := domain.Patient{
		FullName: formString(r.Form, "fullName"),
		Gender:   formString(r.Form, "gender"),
		Phone:    formString(r.Form, "phone"),
		Address:  formString(r.Form, "address"),
	}
	if patient.FullName == "" {
		return patient, nil, domain.ErrValidation("họ tên không được để trống")
	}
	if raw := formString(r.Form, "birthYear"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return patient, nil, domain.ErrValidation("năm sinh không hợp lệ")
		}
		patient.BirthYear = year
	}
	payload := map[string]any{
		"fullName":  patient.FullName,
		"gender":    patient.Gender,
		"birthYear": patient.BirthYear,
		"phone":     patient.Phone,
		"address":   patient.Address,
	}
	return patient, payload, nil
}

func (h *Handler) renderPatientForm(w http.ResponseWriter, pc pageContext, action, title string, patient domain.Patient, err error) {
	d := patientFormData{Title: title, Action: action, Patient: patient}
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		d.Error = validation.Message
		d.FieldErrors = validation.Fields
	}
	renderHTML(w, http.StatusBadRequest, patientFormPage(pc, d, pc.csrf))
}

func isValidation(err error) bool {
	var validation *domain.ValidationError
	return errors.As(err, &validation)
}
