package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
)

func (h *Handler) AccountsList(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	items, err := h.Accounts.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	rows := make([]accountRowData, 0, len(items))
	for _, a := range items {
		groupNames := make([]string, 0, len(a.Groups))
		for _, g := range a.Groups {
			groupNames = append(groupNames, g.Name)
		}
		rows = append(rows, accountRowData{
			ID:          a.ID,
			LoginName:   a.LoginName,
			DisplayName: a.DisplayName,
			Email:       a.Email,
			IsActive:    a.IsActive,
			Groups:      groupNames,
			// The signed-in account never gets a delete control; removing
			// yourself would orphan the session mid-flight.
			IsSelf: a.ID == pc.Principal.ID,
		})
	}
	renderHTML(w, http.StatusOK, accountsListPage(pc, rows, csrfFieldProvider(r)))
}

func (h *Handler) AccountsNew(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	groups, err := h.Groups.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, accountFormPage(pc, accountFormData{
		Title:  "Thêm tài khoản",
		Action: "/dashboard/accounts/",
		Groups: groups,
		IsNew:  true,
	}, csrfFieldProvider(r)))
}

func (h *Handler) AccountsCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)

	form, formErr := accountFormFromRequest(r, true)
	if formErr != "" {
		groups, err := h.Groups.List(r.Context())
		if err != nil {
			h.renderServiceError(w, r, err)
			return
		}
		renderHTML(w, http.StatusBadRequest, accountFormPage(pc, accountFormData{
			Title:   "Thêm tài khoản",
			Action:  "/dashboard/accounts/",
			Groups:  groups,
			IsNew:   true,
			Error:   formErr,
			Account: form.account,
		}, csrfFieldProvider(r)))
		return
	}

	created, err := h.Accounts.Create(r.Context(), form.payload)
	if err != nil {
		h.renderAccountFormError(w, r, pc, "/dashboard/accounts/", "Thêm tài khoản", true, form.account, err)
		return
	}

	h.publish(bus.TopicRecordCreated, "accounts", created.ID)
	h.setFlash(w, flashSuccess, "Đã tạo tài khoản "+created.LoginName+".")
	http.Redirect(w, r, "/dashboard/accounts", http.StatusSeeOther)
}

func (h *Handler) AccountsEdit(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	account, err := h.Accounts.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	groups, err := h.Groups.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, accountFormPage(pc, accountFormData{
		Title:   "Sửa tài khoản " + account.LoginName,
		Action:  "/dashboard/accounts/" + strconv.FormatInt(id, 10),
		Groups:  groups,
		Account: account,
	}, csrfFieldProvider(r)))
}

func (h *Handler) AccountsUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	action := "/dashboard/accounts/" + strconv.FormatInt(id, 10)
	form, formErr := accountFormFromRequest(r, false)
	if formErr != "" {
		form.account.ID = id
		h.renderAccountFormError(w, r, pc, action, "Sửa tài khoản", false, form.account, domain.ErrValidation("%s", formErr))
		return
	}

	updated, err := h.Accounts.Update(r.Context(), id, form.payload)
	if err != nil {
		form.account.ID = id
		h.renderAccountFormError(w, r, pc, action, "Sửa tài khoản", false, form.account, err)
		return
	}

	h.publish(bus.TopicRecordUpdated, "accounts", updated.ID)
	h.setFlash(w, flashSuccess, "Đã cập nhật tài khoản "+updated.LoginName+".")
	http.Redirect(w, r, "/dashboard/accounts", http.StatusSeeOther)
}

func (h *Handler) AccountsDelete(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	// The list page omits the control, but a hand-crafted POST must be
	// refused too.
	if id == pc.Principal.ID {
		renderHTML(w, http.StatusForbidden, errorPage(
			"Không thể tự xóa",
			"Bạn không thể xóa tài khoản đang đăng nhập.",
		))
		return
	}

	if err := h.Accounts.Delete(r.Context(), id); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			h.setFlash(w, flashError, "Không thể xóa: "+conflict.Message)
			http.Redirect(w, r, "/dashboard/accounts", http.StatusSeeOther)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.publish(bus.TopicRecordDeleted, "accounts", id)
	h.setFlash(w, flashSuccess, "Đã xóa tài khoản.")
	http.Redirect(w, r, "/dashboard/accounts", http.StatusSeeOther)
}

type accountForm struct {
	account domain.Account
	payload map[string]any
}

// accountFormFromRequest applies the password rules: on create a password
// and matching confirmation are required; on edit both may be blank, which
// strips them from the payload so the backend keeps the old password.
func accountFormFromRequest(r *http.Request, isNew bool) (accountForm, string) {
	groupIDs, err := formInt64List(r.Form, "groups")
	if err != nil {
		return accountForm{}, "Nhóm quyền không hợp lệ."
	}

	account := domain.Account{
		LoginName:   formString(r.Form, "loginName"),
		DisplayName: formString(r.Form, "displayName"),
		Email:       formString(r.Form, "email"),
		IsActive:    formBool(r.Form, "isActive"),
	}
	for _, id := range groupIDs {
		account.Groups = append(account.Groups, domain.Group{ID: id})
	}

	payload := map[string]any{
		"loginName":   account.LoginName,
		"displayName": account.DisplayName,
		"email":       account.Email,
		"isActive":    account.IsActive,
		"groupIds":    groupIDs,
	}

	password := r.Form.Get("password")
	confirm := r.Form.Get("confirmPassword")
	switch {
	case password == "" && isNew:
		return accountForm{account: account}, "Mật khẩu không được để trống."
	case password == "":
		// Edit with blank password keeps the current one.
	case password != confirm:
		return accountForm{account: account}, "Xác nhận mật khẩu không khớp."
	default:
		payload["password"] = password
	}

	return accountForm{account: account, payload: payload}, ""
}

func (h *Handler) renderAccountFormError(w http.ResponseWriter, r *http.Request, pc pageContext, action, title string, isNew bool, account domain.Account, err error) {
	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		h.renderServiceError(w, r, err)
		return
	}
	groups, gErr := h.Groups.List(r.Context())
	if gErr != nil {
		h.renderServiceError(w, r, gErr)
		return
	}
	renderHTML(w, http.StatusBadRequest, accountFormPage(pc, accountFormData{
		Title:       title,
		Action:      action,
		Groups:      groups,
		IsNew:       isNew,
		Error:       validation.Message,
		FieldErrors: validation.Fields,
		Account:     account,
	}, csrfFieldProvider(r)))
}
