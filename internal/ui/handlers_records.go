package ui

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
)

func (h *Handler) RecordsList(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	items, err := h.Records.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, recordsListPage(pc, items, csrfFieldProvider(r)))
}

func (h *Handler) RecordsDetail(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	record, err := h.Records.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, recordDetailPage(pc, record))
}

// recordFormRefs bundles the collections every record form needs.
type recordFormRefs struct {
	patients  []domain.Patient
	diseases  []domain.DiseaseType
	medicines []domain.Medicine
}

func (h *Handler) recordRefs(r *http.Request) (recordFormRefs, error) {
	patients, err := h.Patients.List(r.Context())
	if err != nil {
		return recordFormRefs{}, err
	}
	diseases, err := h.DiseaseTypes.List(r.Context())
	if err != nil {
		return recordFormRefs{}, err
	}
	medicines, err := h.Medicines.List(r.Context())
	if err != nil {
		return recordFormRefs{}, err
	}
	return recordFormRefs{patients: patients, diseases: diseases, medicines: medicines}, nil
}

func (h *Handler) RecordsNew(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	refs, err := h.recordRefs(r)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, recordFormPage(pc, recordFormData{
		Title:  "Thêm phiếu khám",
		Action: "/dashboard/medical-records/",
		Record: domain.ExamRecord{ExamDate: time.Now()},
		Refs:   refs,
	}, csrfFieldProvider(r)))
}

func (h *Handler) RecordsCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	record, payload, formErr := recordFromForm(r)
	if formErr != nil {
		h.renderRecordForm(w, r, pc, "/dashboard/medical-records/", "Thêm phiếu khám", record, formErr)
		return
	}

	created, err := h.Records.Create(r.Context(), payload)
	if err != nil {
		if isValidation(err) {
			h.renderRecordForm(w, r, pc, "/dashboard/medical-records/", "Thêm phiếu khám", record, err)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordCreated, "medical-records", created.ID)
	h.setFlash(w, flashSuccess, "Đã tạo phiếu khám.")
	http.Redirect(w, r, "/dashboard/medical-records/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
}

func (h *Handler) RecordsEdit(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	record, err := h.Records.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	refs, err := h.recordRefs(r)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, recordFormPage(pc, recordFormData{
		Title:  "Sửa phiếu khám",
		Action: "/dashboard/medical-records/" + strconv.FormatInt(id, 10),
		Record: record,
		Refs:   refs,
	}, csrfFieldProvider(r)))
}

func (h *Handler) RecordsUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	action := "/dashboard/medical-records/" + strconv.FormatInt(id, 10)
	record, payload, formErr := recordFromForm(r)
	record.ID = id
	if formErr != nil {
		h.renderRecordForm(w, r, pc, action, "Sửa phiếu khám", record, formErr)
		return
	}

	updated, err := h.Records.Update(r.Context(), id, payload)
	if err != nil {
		if isValidation(err) {
			h.renderRecordForm(w, r, pc, action, "Sửa phiếu khám", record, err)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordUpdated, "medical-records", updated.ID)
	h.setFlash(w, flashSuccess, "Đã cập nhật phiếu khám.")
	http.Redirect(w, r, "/dashboard/medical-records/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (h *Handler) RecordsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Records.Delete(r.Context(), id); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			h.setFlash(w, flashError, "Không thể xóa: phiếu khám đã có hóa đơn.")
			http.Redirect(w, r, "/dashboard/medical-records", http.StatusSeeOther)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}
	h.publish(bus.TopicRecordDeleted, "medical-records", id)
	h.setFlash(w, flashSuccess, "Đã xóa phiếu khám.")
	http.Redirect(w, r, "/dashboard/medical-records", http.StatusSeeOther)
}

// recordFromForm assembles the exam record payload. Prescription lines
// arrive as parallel arrays; a line with no medicine selected is skipped,
// a selected medicine with a bad quantity is an error.
func recordFromForm(r *http.Request) (domain.ExamRecord, map[string]any, error) {
	record := domain.ExamRecord{
		Symptoms: formString(r.Form, "symptoms"),
		Doctor:   formString(r.Form, "doctor"),
	}

	patientID, err := formInt64(r.Form, "patient")
	if err != nil || patientID <= 0 {
		return record, nil, domain.ErrValidation("chọn một bệnh nhân")
	}
	record.Patient.ID = patientID

	diseaseID, err := formInt64(r.Form, "disease")
	if err != nil || diseaseID <= 0 {
		return record, nil, domain.ErrValidation("chọn loại bệnh")
	}
	record.Disease.ID = diseaseID

	examDate, err := time.Parse("2006-01-02", formString(r.Form, "examDate"))
	if err != nil {
		return record, nil, domain.ErrValidation("ngày khám không hợp lệ")
	}
	record.ExamDate = examDate

	medicineIDs := r.Form["prescMedicine"]
	quantities := r.Form["prescQuantity"]
	dosages := r.Form["prescDosage"]

	lines := []map[string]any{}
	for i, rawID := range medicineIDs {
		if rawID == "" {
			continue
		}
		medID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return record, nil, domain.ErrValidation("thuốc không hợp lệ")
		}
		qty := 0
		if i < len(quantities) {
			qty, err = strconv.Atoi(quantities[i])
			if err != nil {
				return record, nil, domain.ErrValidation("số lượng thuốc không hợp lệ")
			}
		}
		if qty <= 0 {
			return record, nil, domain.ErrValidation("số lượng thuốc phải lớn hơn 0")
		}
		dosage := ""
		if i < len(dosages) {
			dosage = dosages[i]
		}
		lines = append(lines, map[string]any{
			"medicineId": medID,
			"quantity":   qty,
			"dosage":     dosage,
		})
		record.Prescriptions = append(record.Prescriptions, domain.PrescriptionLine{
			Medicine: domain.Medicine{ID: medID},
			Quantity: qty,
			Dosage:   dosage,
		})
	}

	payload := map[string]any{
		"patientId":     patientID,
		"diseaseId":     diseaseID,
		"examDate":      examDate.Format("2006-01-02"),
		"symptoms":      record.Symptoms,
		"doctor":        record.Doctor,
		"prescriptions": lines,
	}
	return record, payload, nil
}

func (h *Handler) renderRecordForm(w http.ResponseWriter, r *http.Request, pc pageContext, action, title string, record domain.ExamRecord, err error) {
	refs, rErr := h.recordRefs(r)
	if rErr != nil {
		h.renderServiceError(w, r, rErr)
		return
	}
	d := recordFormData{Title: title, Action: action, Record: record, Refs: refs}
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		d.Error = validation.Message
		d.FieldErrors = validation.Fields
	}
	renderHTML(w, http.StatusBadRequest, recordFormPage(pc, d, csrfFieldProvider(r)))
}
