package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/ui/assets"
)

// MountRoutes wires every dashboard route. Pages live under /dashboard and
// require a session; each section is additionally gated on its view
// permission, and mutating routes on the matching add/change/delete
// permission. Anything unmatched under /dashboard renders the local
// not-found page, while unmatched top-level paths bounce to the login page.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.LoginSubmit)
	r.Post("/logout", h.Logout)
	r.Get("/unauthorized", h.UnauthorizedPage)

	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	gate := h.Sessions.RequirePermissions

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(h.EnsureCSRFToken)
		r.Use(h.Sessions.Require)
		r.Use(h.RequireCSRF)

		r.NotFound(h.NotFoundPage)

		r.Get("/", h.Home)
		r.Get("/change-password", h.ChangePasswordPage)
		r.Post("/change-password", h.ChangePasswordSubmit)

		r.Route("/accounts", func(r chi.Router) {
			r.Use(gate(domain.PermViewAccount))
			r.Get("/", h.AccountsList)
			r.With(gate(domain.PermAddAccount)).Get("/new", h.AccountsNew)
			r.With(gate(domain.PermAddAccount)).Post("/", h.AccountsCreate)
			r.With(gate(domain.PermEditAccount)).Get("/{id}/edit", h.AccountsEdit)
			r.With(gate(domain.PermEditAccount)).Post("/{id}", h.AccountsUpdate)
			r.With(gate(domain.PermDelAccount)).Post("/{id}/delete", h.AccountsDelete)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Use(gate(domain.PermViewGroup))
			r.Get("/", h.GroupsList)
			r.With(gate(domain.PermAddGroup)).Get("/new", h.GroupsNew)
			r.With(gate(domain.PermAddGroup)).Post("/", h.GroupsCreate)
			r.With(gate(domain.PermEditGroup)).Get("/{id}/edit", h.GroupsEdit)
			r.With(gate(domain.PermEditGroup)).Post("/{id}", h.GroupsUpdate)
			r.With(gate(domain.PermDelGroup)).Post("/{id}/delete", h.GroupsDelete)
		})

		r.Route("/patients", func(r chi.Router) {
			r.Use(gate(domain.PermViewPatient))
			r.Get("/", h.PatientsList)
			r.With(gate(domain.PermAddPatient)).Get("/new", h.PatientsNew)
			r.With(gate(domain.PermAddPatient)).Post("/", h.PatientsCreate)
			r.With(gate(domain.PermEditPatient)).Get("/{id}/edit", h.PatientsEdit)
			r.With(gate(domain.PermEditPatient)).Post("/{id}", h.PatientsUpdate)
			r.With(gate(domain.PermDelPatient)).Post("/{id}/delete", h.PatientsDelete)
		})

		r.Route("/waiting", func(r chi.Router) {
			r.Use(gate(domain.PermViewWaiting))
			r.Get("/", h.WaitingList)
			r.With(gate(domain.PermAddWaiting)).Get("/new", h.WaitingNew)
			r.With(gate(domain.PermAddWaiting)).Post("/", h.WaitingCreate)
			r.With(gate(domain.PermEditWaiting)).Post("/{id}/status", h.WaitingSetStatus)
			r.With(gate(domain.PermDelWaiting)).Post("/{id}/delete", h.WaitingDelete)
		})

		r.Route("/medical-records", func(r chi.Router) {
			r.Use(gate(domain.PermViewRecord))
			r.Get("/", h.RecordsList)
			r.Get("/{id}", h.RecordsDetail)
			r.With(gate(domain.PermAddRecord)).Get("/new", h.RecordsNew)
			r.With(gate(domain.PermAddRecord)).Post("/", h.RecordsCreate)
			r.With(gate(domain.PermEditRecord)).Get("/{id}/edit", h.RecordsEdit)
			r.With(gate(domain.PermEditRecord)).Post("/{id}", h.RecordsUpdate)
			r.With(gate(domain.PermDelRecord)).Post("/{id}/delete", h.RecordsDelete)
		})

		r.Route("/medicines", func(r chi.Router) {
			r.Use(gate(domain.PermViewMedicine))
			r.Get("/", h.MedicinesList)
			r.With(gate(domain.PermAddMedicine)).Get("/new", h.MedicinesNew)
			r.With(gate(domain.PermAddMedicine)).Post("/", h.MedicinesCreate)
			r.With(gate(domain.PermEditMedicine)).Get("/{id}/edit", h.MedicinesEdit)
			r.With(gate(domain.PermEditMedicine)).Post("/{id}", h.MedicinesUpdate)
			r.With(gate(domain.PermDelMedicine)).Post("/{id}/delete", h.MedicinesDelete)
		})

		r.Route("/units", func(r chi.Router) {
			r.Use(gate(domain.PermViewUnit))
			r.Get("/", h.UnitsList)
			r.With(gate(domain.PermAddUnit)).Get("/new", h.UnitsNew)
			r.With(gate(domain.PermAddUnit)).Post("/", h.UnitsCreate)
			r.With(gate(domain.PermEditUnit)).Get("/{id}/edit", h.UnitsEdit)
			r.With(gate(domain.PermEditUnit)).Post("/{id}", h.UnitsUpdate)
			r.With(gate(domain.PermDelUnit)).Post("/{id}/delete", h.UnitsDelete)
		})

		r.Route("/usages", func(r chi.Router) {
			r.Use(gate(domain.PermViewUsage))
			r.Get("/", h.UsagesList)
			r.With(gate(domain.PermAddUsage)).Get("/new", h.UsagesNew)
			r.With(gate(domain.PermAddUsage)).Post("/", h.UsagesCreate)
			r.With(gate(domain.PermEditUsage)).Get("/{id}/edit", h.UsagesEdit)
			r.With(gate(domain.PermEditUsage)).Post("/{id}", h.UsagesUpdate)
			r.With(gate(domain.PermDelUsage)).Post("/{id}/delete", h.UsagesDelete)
		})

		r.Route("/disease-types", func(r chi.Router) {
			r.Use(gate(domain.PermViewDisease))
			r.Get("/", h.DiseaseTypesList)
			r.With(gate(domain.PermAddDisease)).Get("/new", h.DiseaseTypesNew)
			r.With(gate(domain.PermAddDisease)).Post("/", h.DiseaseTypesCreate)
			r.With(gate(domain.PermEditDisease)).Get("/{id}/edit", h.DiseaseTypesEdit)
			r.With(gate(domain.PermEditDisease)).Post("/{id}", h.DiseaseTypesUpdate)
			r.With(gate(domain.PermDelDisease)).Post("/{id}/delete", h.DiseaseTypesDelete)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(gate(domain.PermViewInvoice))
			r.Get("/", h.InvoicesList)
			r.Get("/{id}", h.InvoicesDetail)
			r.Get("/{id}/print", h.InvoicesPrint)
			r.With(gate(domain.PermAddInvoice)).Get("/new", h.InvoicesNew)
			r.With(gate(domain.PermAddInvoice)).Post("/", h.InvoicesCreate)
			r.With(gate(domain.PermEditInvoice)).Post("/{id}/pay", h.InvoicesMarkPaid)
			r.With(gate(domain.PermDelInvoice)).Post("/{id}/delete", h.InvoicesDelete)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(gate(domain.PermViewReports))
			r.Get("/revenue", h.RevenueReport)
			r.Get("/revenue/export", h.RevenueReportExport)
			r.Get("/medication", h.MedicationReport)
			r.Get("/medication/export", h.MedicationReportExport)
		})
	})
}
