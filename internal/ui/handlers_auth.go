package ui

import (
	"net/http"
	"strings"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/session"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if token, ok := h.Sessions.Token(r); ok && token != "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, loginPage(
		strings.TrimSpace(r.URL.Query().Get("error")),
		strings.TrimSpace(r.URL.Query().Get("next")),
	))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error=invalid+form", http.StatusSeeOther)
		return
	}
	loginName := formString(r.Form, "loginName")
	password := r.Form.Get("password")
	next := session.SafeNext(formString(r.Form, "next"))
	if loginName == "" || password == "" {
		http.Redirect(w, r, "/login?error=missing+credentials", http.StatusSeeOther)
		return
	}

	token, err := h.API.Login(r.Context(), loginName, password)
	if err != nil {
		if _, ok := err.(*domain.UnauthorizedError); ok {
			http.Redirect(w, r, "/login?error=wrong+credentials", http.StatusSeeOther)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.Sessions.Set(w, token)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) UnauthorizedPage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusForbidden, errorPage(
		"Không có quyền truy cập",
		"Tài khoản của bạn không có quyền xem trang này. Liên hệ quản trị viên nếu cần cấp quyền.",
	))
}

// NotFoundPage renders inside the dashboard chrome so the sidebar stays
// usable when a stale link 404s.
func (h *Handler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	renderHTML(w, http.StatusNotFound, notFoundPage(pc, r.URL.Path))
}

func (h *Handler) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(w, r)
	renderHTML(w, http.StatusOK, changePasswordPage(pc, csrfFieldProvider(r), "", nil))
}

func (h *Handler) ChangePasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	pc := h.pageContext(w, r)
	current := r.Form.Get("currentPassword")
	next := r.Form.Get("newPassword")
	confirm := r.Form.Get("confirmPassword")

	if next == "" {
		renderHTML(w, http.StatusBadRequest, changePasswordPage(pc, csrfFieldProvider(r), "Mật khẩu mới không được để trống.", nil))
		return
	}
	if next != confirm {
		renderHTML(w, http.StatusBadRequest, changePasswordPage(pc, csrfFieldProvider(r), "Xác nhận mật khẩu không khớp.", nil))
		return
	}

	if err := h.API.ChangePassword(r.Context(), current, next); err != nil {
		if ve, ok := err.(*domain.ValidationError); ok {
			renderHTML(w, http.StatusBadRequest, changePasswordPage(pc, csrfFieldProvider(r), ve.Message, ve.Fields))
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.setFlash(w, flashSuccess, "Đã đổi mật khẩu.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// pageContext assembles the shared chrome state for the current request.
func (h *Handler) pageContext(w http.ResponseWriter, r *http.Request) pageContext {
	principal := principalFromContext(r.Context())
	return pageContext{
		Principal: principal,
		ActiveKey: h.activeKey(r),
		Path:      r.URL.Path,
		Flash:     h.popFlash(w, r),
		csrf:      csrfFieldProvider(r),
	}
}
