package ui

import (
	"errors"
	"net/http"

	"clinic-admin/internal/domain"
)

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	// A token the API stopped accepting mid-session ends the session, same
	// as a rejected cookie on entry.
	var unauthorized *domain.UnauthorizedError
	if errors.As(err, &unauthorized) {
		h.Sessions.Clear(w)
		h.Sessions.RedirectToLogin(w, r)
		return
	}

	status := http.StatusInternalServerError
	title := "Unexpected Error"
	message := "An unexpected error occurred while loading this page."

	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	var unavailable *domain.UnavailableError
	if errors.As(err, &notFound) {
		status = http.StatusNotFound
		title = "Not Found"
		message = notFound.Error()
	} else if errors.As(err, &accessDenied) {
		status = http.StatusForbidden
		title = "Access Denied"
		message = accessDenied.Error()
	} else if errors.As(err, &validation) {
		status = http.StatusBadRequest
		title = "Invalid Request"
		message = validation.Error()
	} else if errors.As(err, &conflict) {
		status = http.StatusConflict
		title = "Conflict"
		message = conflict.Error()
	} else if errors.As(err, &unavailable) {
		status = http.StatusServiceUnavailable
		title = "Service Unavailable"
		message = unavailable.Error()
	}

	if status >= 500 {
		h.Logger.Error("page render failed", "path", r.URL.Path, "error", err)
	}
	renderHTML(w, status, errorPage(title, message))
}

func parseFormOrRenderBadRequest(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Request", "The submitted form could not be parsed."))
		return false
	}
	return true
}
