package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/errors"
	"github.com/dxpr/content-intel/logging"
	"github.com/dxpr/content-intel/metrics"
	"github.com/dxpr/content-intel/service"
)

// Handlers exposes the service surface over HTTP.
type Handlers struct {
	svc     *service.Service
	logger  logging.Logger
	metrics *metrics.Collector
}

func NewHandlers(svc *service.Service, logger logging.Logger, m *metrics.Collector) *Handlers {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handlers{svc: svc, logger: logger.Named("httpapi"), metrics: m}
}

func (h *Handlers) EntityTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.EntityTypes(r.Context())
	if err != nil {
		Fail(w, err)
		return
	}
	OK(w, types)
}

func (h *Handlers) Bundles(w http.ResponseWriter, r *http.Request) {
	bundles, err := h.svc.Bundles(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		Fail(w, err)
		return
	}
	OK(w, bundles)
}

func (h *Handlers) Fields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.svc.Fields(r.Context(), chi.URLParam(r, "type"), chi.URLParam(r, "bundle"))
	if err != nil {
		Fail(w, err)
		return
	}
	OK(w, fields)
}

func (h *Handlers) Plugins(w http.ResponseWriter, _ *http.Request) {
	OK(w, h.svc.Plugins())
}

func (h *Handlers) Entities(w http.ResponseWriter, r *http.Request) {
	q := entity.Query{
		EntityType: r.URL.Query().Get("type"),
		Bundle:     r.URL.Query().Get("bundle"),
	}
	if q.EntityType == "" {
		Fail(w, errors.NewValidation("query parameter 'type' is required"))
		return
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			Fail(w, errors.NewValidation("limit must be a non-negative integer"))
			return
		}
		q.Limit = n
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			Fail(w, errors.NewValidation("offset must be a non-negative integer"))
			return
		}
		q.Offset = n
	}
	if label := r.URL.Query().Get("label"); label != "" {
		q.Conditions = map[string]string{"label": label}
	}

	summaries, err := h.svc.ListEntities(r.Context(), q)
	if err != nil {
		Fail(w, err)
		return
	}
	OK(w, summaries)
}

func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.EntitySummary(r.Context(), chi.URLParam(r, "type"), chi.URLParam(r, "id"))
	if err != nil {
		Fail(w, err)
		return
	}
	OK(w, sum)
}

func (h *Handlers) Intel(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	report, err := h.svc.CollectIntel(r.Context(),
		chi.URLParam(r, "type"), chi.URLParam(r, "id"),
		csvParam(r, "fields"), csvParam(r, "plugins"))
	if err != nil {
		Fail(w, err)
		return
	}
	OKTook(w, report, time.Since(started).Milliseconds())
}

// BatchRequest is the POST body of the batch intel endpoint.
type BatchRequest struct {
	EntityType string   `json:"entityType" validate:"required"`
	IDs        []string `json:"ids" validate:"required,min=1,max=100"`
	Fields     []string `json:"fields"`
	Plugins    []string `json:"plugins"`
}

func (h *Handlers) IntelBatch(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req BatchRequest
	fields, err := DecodeJSON(r, &req)
	if err != nil {
		if fields != nil {
			ValidationFail(w, fields)
			return
		}
		Fail(w, errors.NewValidation("invalid request body"))
		return
	}

	result, err := h.svc.CollectIntelBatch(r.Context(), req.EntityType, req.IDs, req.Fields, req.Plugins)
	if err != nil {
		Fail(w, err)
		return
	}
	OKTook(w, result, time.Since(started).Milliseconds())
}

func (h *Handlers) Metrics(w http.ResponseWriter, _ *http.Request) {
	if h.metrics == nil {
		OK(w, map[string]any{})
		return
	}
	OK(w, h.metrics.Snapshot())
}

// csvParam reads a comma-separated query parameter into a slice, nil when
// absent or empty.
func csvParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
