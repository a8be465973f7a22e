package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
)

func (h *Handler) GroupsList(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	items, err := h.Groups.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, groupsListPage(pc, items, csrfFieldProvider(r)))
}

func (h *Handler) GroupsNew(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	renderHTML(w, http.StatusOK, groupFormPage(pc, groupFormData{
		Title:  "Thêm nhóm quyền",
		Action: "/dashboard/groups/",
	}, csrfFieldProvider(r)))
}

func (h *Handler) GroupsCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	group, formErr := groupFromForm(r)
	if formErr != nil {
		renderHTML(w, http.StatusBadRequest, groupFormPage(pc, groupFormData{
			Title:  "Thêm nhóm quyền",
			Action: "/dashboard/groups/",
			Group:  group,
			Error:  formErr.Error(),
		}, csrfFieldProvider(r)))
		return
	}

	created, err := h.Groups.Create(r.Context(), map[string]any{
		"name":        group.Name,
		"permissions": group.Permissions,
	})
	if err != nil {
		h.renderGroupFormError(w, r, pc, "/dashboard/groups/", "Thêm nhóm quyền", group, err)
		return
	}

	h.publish(bus.TopicRecordCreated, "groups", created.ID)
	h.setFlash(w, flashSuccess, "Đã tạo nhóm quyền "+created.Name+".")
	http.Redirect(w, r, "/dashboard/groups", http.StatusSeeOther)
}

func (h *Handler) GroupsEdit(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	group, err := h.Groups.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, groupFormPage(pc, groupFormData{
		Title:  "Sửa nhóm quyền " + group.Name,
		Action: "/dashboard/groups/" + strconv.FormatInt(id, 10),
		Group:  group,
	}, csrfFieldProvider(r)))
}

func (h *Handler) GroupsUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	action := "/dashboard/groups/" + strconv.FormatInt(id, 10)
	group, formErr := groupFromForm(r)
	group.ID = id
	if formErr != nil {
		renderHTML(w, http.StatusBadRequest, groupFormPage(pc, groupFormData{
			Title:  "Sửa nhóm quyền",
			Action: action,
			Group:  group,
			Error:  formErr.Error(),
		}, csrfFieldProvider(r)))
		return
	}

	updated, err := h.Groups.Update(r.Context(), id, map[string]any{
		"name":        group.Name,
		"permissions": group.Permissions,
	})
	if err != nil {
		h.renderGroupFormError(w, r, pc, action, "Sửa nhóm quyền", group, err)
		return
	}

	h.publish(bus.TopicRecordUpdated, "groups", updated.ID)
	h.setFlash(w, flashSuccess, "Đã cập nhật nhóm quyền "+updated.Name+".")
	http.Redirect(w, r, "/dashboard/groups", http.StatusSeeOther)
}

func (h *Handler) GroupsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Groups.Delete(r.Context(), id); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			h.setFlash(w, flashError, "Không thể xóa: "+conflict.Message)
			http.Redirect(w, r, "/dashboard/groups", http.StatusSeeOther)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}
	h.publish(bus.TopicRecordDeleted, "groups", id)
	h.setFlash(w, flashSuccess, "Đã xóa nhóm quyền.")
	http.Redirect(w, r, "/dashboard/groups", http.StatusSeeOther)
}

// groupFromForm reads the name and the checked permission boxes. Unknown
// permission values are rejected outright rather than forwarded.
func groupFromForm(r *http.Request) (domain.GroupDetail, error) {
	group := domain.GroupDetail{
		Name:        formString(r.Form, "name"),
		Permissions: []string{},
	}
	for _, p := range r.Form["permissions"] {
		if !domain.KnownPermission(p) {
			return group, domain.ErrValidation("quyền %q không hợp lệ", p)
		}
		group.Permissions = append(group.Permissions, p)
	}
	if group.Name == "" {
		return group, domain.ErrValidation("tên nhóm không được để trống")
	}
	return group, nil
}

func (h *Handler) renderGroupFormError(w http.ResponseWriter, r *http.Request, pc pageContext, action, title string, group domain.GroupDetail, err error) {
	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusBadRequest, groupFormPage(pc, groupFormData{
		Title:       title,
		Action:      action,
		Group:       group,
		Error:       validation.Message,
		FieldErrors: validation.Fields,
	}, csrfFieldProvider(r)))
}
