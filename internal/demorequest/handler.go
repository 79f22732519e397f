package demorequest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/onboardai/internal/observability/metrics"
	"github.com/wolfman30/onboardai/pkg/logging"
)

// Handler serves the demo-request API over HTTP.
type Handler struct {
	svc     *Service
	logger  *logging.Logger
	metrics *metrics.DemoRequestMetrics
}

// NewHandler creates a new demo-request handler. m may be nil.
func NewHandler(svc *Service, logger *logging.Logger, m *metrics.DemoRequestMetrics) *Handler {
	if svc == nil {
		panic("demorequest: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger, metrics: m}
}

// Routes mounts the public endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/demo-requests", h.SubmitDemoRequest)
	r.Get("/industries", h.ListIndustries)
	r.Get("/company-sizes", h.ListCompanySizes)
	r.Get("/timeslots", h.ListTimeSlots)
	r.Post("/contact", h.SubmitContact)
	return r
}

type errorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Code    ErrorCode           `json:"code"`
	Details map[string][]string `json:"details,omitempty"`
}

// SubmitDemoRequest handles POST /demo-requests
func (h *Handler) SubmitDemoRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req DemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode demo request", "error", err)
		h.writeError(w, http.StatusBadRequest, NewAPIError(CodeHTTP, "Invalid request body", nil, err))
		h.metrics.ObserveSubmission("server", string(CodeHTTP), time.Since(start))
		return
	}

	result, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		h.metrics.ObserveSubmission("server", outcomeOf(err), time.Since(start))
		return
	}

	h.metrics.ObserveSubmission("server", "success", time.Since(start))
	writeJSON(w, http.StatusCreated, result)
}

// ListIndustries handles GET /industries
func (h *Handler) ListIndustries(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Industries(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.metrics.ObserveCatalog("server", "industries")
	writeJSON(w, http.StatusOK, items)
}

// ListCompanySizes handles GET /company-sizes
func (h *Handler) ListCompanySizes(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.CompanySizes(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.metrics.ObserveCatalog("server", "company_sizes")
	writeJSON(w, http.StatusOK, items)
}

// ListTimeSlots handles GET /timeslots?date=YYYY-MM-DD
func (h *Handler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.TimeSlots(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.metrics.ObserveCatalog("server", "timeslots")
	writeJSON(w, http.StatusOK, items)
}

// SubmitContact handles POST /contact
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.logger.Error("failed to decode contact message", "error", err)
		h.writeError(w, http.StatusBadRequest, NewAPIError(CodeHTTP, "Invalid request body", nil, err))
		return
	}
	result, err := h.svc.SubmitContact(r.Context(), msg)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListDemoRequestsResponse is the admin listing payload.
type ListDemoRequestsResponse struct {
	Requests []StoredRequest `json:"requests"`
	Count    int             `json:"count"`
}

// ListDemoRequests handles GET /admin/demo-requests
func (h *Handler) ListDemoRequests(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.DemoRequests(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListDemoRequestsResponse{Requests: records, Count: len(records)})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	apiErr, ok := AsAPIError(err)
	if !ok {
		h.logger.Error("unexpected service error", "error", err)
		apiErr = NewAPIError(CodeHTTP, "Internal server error", nil, err)
	}
	status := http.StatusInternalServerError
	switch apiErr.Code {
	case CodeValidation:
		status = http.StatusUnprocessableEntity
	case CodeTimeout:
		status = http.StatusGatewayTimeout
	}
	h.writeError(w, status, apiErr)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, apiErr *APIError) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Message: apiErr.Message,
		Error:   apiErr.Message,
		Code:    apiErr.Code,
		Details: apiErr.Details,
	})
}

func outcomeOf(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return string(apiErr.Code)
	}
	return string(CodeHTTP)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
