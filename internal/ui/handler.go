// Package ui renders the clinic dashboard. Pages are server-rendered
// gomponents trees over data fetched from the clinic API; a small datastar
// layer adds client-side quick filtering without any build step.
package ui

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"clinic-admin/internal/bus"
	"clinic-admin/internal/domain"
	"clinic-admin/internal/nav"
	"clinic-admin/internal/restapi"
	"clinic-admin/internal/session"

	gomponents "maragu.dev/gomponents"
)

// Handler serves every dashboard page.
type Handler struct {
	API        *restapi.Client
	Sessions   *session.Manager
	Bus        *bus.Bus
	Logger     *slog.Logger
	Production bool

	Accounts     restapi.Resource[domain.Account]
	Groups       restapi.Resource[domain.GroupDetail]
	Patients     restapi.Resource[domain.Patient]
	Waiting      restapi.Resource[domain.WaitingEntry]
	Records      restapi.Resource[domain.ExamRecord]
	Medicines    restapi.Resource[domain.Medicine]
	Units        restapi.Resource[domain.Unit]
	Usages       restapi.Resource[domain.Usage]
	DiseaseTypes restapi.Resource[domain.DiseaseType]
	Invoices     restapi.Resource[domain.Invoice]

	summaryMu      sync.Mutex
	summary        *domain.DashboardSummary
	summaryFetched time.Time
}

// summaryTTL bounds staleness of the home page counters between mutations.
const summaryTTL = time.Minute

// NewHandler wires the resource handles and subscribes the summary cache to
// mutation events so the home page refreshes after any create/update/delete.
func NewHandler(api *restapi.Client, sessions *session.Manager, eventBus *bus.Bus, logger *slog.Logger, production bool) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		API:        api,
		Sessions:   sessions,
		Bus:        eventBus,
		Logger:     logger,
		Production: production,

		Accounts:     restapi.NewResource[domain.Account](api, "/api/users/"),
		Groups:       restapi.NewResource[domain.GroupDetail](api, "/api/groups/"),
		Patients:     restapi.NewResource[domain.Patient](api, "/api/patients/"),
		Waiting:      restapi.NewResource[domain.WaitingEntry](api, "/api/waiting-list/"),
		Records:      restapi.NewResource[domain.ExamRecord](api, "/api/medical-records/"),
		Medicines:    restapi.NewResource[domain.Medicine](api, "/api/thuoc/"),
		Units:        restapi.NewResource[domain.Unit](api, "/api/units/"),
		Usages:       restapi.NewResource[domain.Usage](api, "/api/usages/"),
		DiseaseTypes: restapi.NewResource[domain.DiseaseType](api, "/api/disease-types/"),
		Invoices:     restapi.NewResource[domain.Invoice](api, "/api/invoices/"),
	}
	for _, topic := range []bus.Topic{bus.TopicRecordCreated, bus.TopicRecordUpdated, bus.TopicRecordDeleted} {
		eventBus.Subscribe(topic, func(bus.Event) { h.invalidateSummary() })
	}
	sessions.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		h.renderServiceError(w, r, err)
	}
	return h
}

func (h *Handler) invalidateSummary() {
	h.summaryMu.Lock()
	h.summary = nil
	h.summaryMu.Unlock()
}

// cachedSummary serves the dashboard counters from cache until either the
// TTL lapses or a mutation event invalidates it.
func (h *Handler) cachedSummary(ctx context.Context) (domain.DashboardSummary, error) {
	h.summaryMu.Lock()
	if h.summary != nil && time.Since(h.summaryFetched) < summaryTTL {
		s := *h.summary
		h.summaryMu.Unlock()
		return s, nil
	}
	h.summaryMu.Unlock()

	s, err := h.API.DashboardSummary(ctx)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	h.summaryMu.Lock()
	h.summary = &s
	h.summaryFetched = time.Now()
	h.summaryMu.Unlock()
	return s, nil
}

// publish announces a mutation on the bus.
func (h *Handler) publish(topic bus.Topic, resource string, id int64) {
	h.Bus.Publish(bus.Event{Topic: topic, Resource: resource, ID: id})
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func principalFromContext(ctx context.Context) domain.Principal {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return domain.Principal{DisplayName: "unknown"}
	}
	return p
}

// activeKey resolves the sidebar highlight for the current URL.
func (h *Handler) activeKey(r *http.Request) string {
	return nav.ResolveActiveKey(nav.Tree(), r.URL.Path)
}

// idParam parses the {id} URL segment. Returns a typed not-found on garbage
// so the caller reuses the standard error page.
func idParam(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound("invalid id %q", raw)
	}
	return id, nil
}
