package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/golf-edge-service/internal/models"
	"github.com/cypherlabdev/golf-edge-service/internal/service"
	"github.com/cypherlabdev/golf-edge-service/pkg/arbitrage"
)

const maxRequestBytes = 10 << 20 // 10MB, same as the Kafka reader

// EdgeHandler handles HTTP requests for edge reports
type EdgeHandler struct {
	service service.EdgeAnalyzer
	logger  zerolog.Logger
}

// NewEdgeHandler creates a new edge HTTP handler
func NewEdgeHandler(service service.EdgeAnalyzer, logger zerolog.Logger) *EdgeHandler {
	return &EdgeHandler{
		service: service,
		logger:  logger.With().Str("component", "edge_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *EdgeHandler) RegisterRoutes(mux *http.ServeMux) {
	// POST /api/v1/analyze - Analyze a snapshot batch
	mux.HandleFunc("/api/v1/analyze", h.handleAnalyze)

	// GET /api/v1/events - List events with a cached report
	mux.HandleFunc("/api/v1/events", h.handleListEvents)

	// GET /api/v1/events/:event_id/edges - Ranked records for an event
	// GET /api/v1/events/:event_id/groups - Records grouped by entity
	mux.HandleFunc("/api/v1/events/", h.handleEvent)
}

// handleAnalyze handles POST /api/v1/analyze
func (h *EdgeHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.service.Analyze(r.Context(), &req)
	if err != nil {
		status := analyzeStatus(err)
		h.logger.Warn().
			Err(err).
			Str("event_id", req.EventID).
			Int("status", status).
			Msg("analysis failed")
		h.errorResponse(w, status, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, report)
}

// handleListEvents handles GET /api/v1/events
func (h *EdgeHandler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list events")
		h.errorResponse(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []string{}
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"count":  len(events),
		"events": events,
	})
}

// handleEvent handles GET /api/v1/events/:event_id/{edges,groups}
func (h *EdgeHandler) handleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse path: /api/v1/events/:event_id/:view
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/events/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || (parts[1] != "edges" && parts[1] != "groups") {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/events/:event_id/edges or /api/v1/events/:event_id/groups")
		return
	}

	eventID := parts[0]
	if eventID == "" {
		h.errorResponse(w, http.StatusBadRequest, "event_id is required")
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.GetReport(r.Context(), eventID)
	if errors.Is(err, service.ErrReportNotFound) {
		h.errorResponse(w, http.StatusNotFound, "report not found")
		return
	} else if err != nil {
		h.logger.Error().
			Err(err).
			Str("event_id", eventID).
			Msg("failed to retrieve report")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve report")
		return
	}

	if parts[1] == "groups" {
		groups := filter.groups(report.Groups)
		h.jsonResponse(w, http.StatusOK, GroupsResponse{
			EventID:     report.EventID,
			ReportID:    report.ID.String(),
			Mode:        report.Mode,
			Count:       len(groups),
			Stats:       report.Stats,
			Groups:      groups,
			GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
		return
	}

	records := filter.records(report.Records, report.Mode)
	h.jsonResponse(w, http.StatusOK, EdgesResponse{
		EventID:     report.EventID,
		ReportID:    report.ID.String(),
		Mode:        report.Mode,
		Count:       len(records),
		Records:     records,
		Skipped:     report.Skipped,
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// jsonResponse writes a JSON response
func (h *EdgeHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *EdgeHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}

func analyzeStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, arbitrage.ErrInvalidMode),
		errors.Is(err, arbitrage.ErrMissingReference):
		return http.StatusBadRequest
	case errors.Is(err, arbitrage.ErrReferenceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// viewFilter narrows a cached report to what the client asked for
type viewFilter struct {
	minEdge    float64
	hasMinEdge bool
	limit      int
}

// parseFilter reads ?min_edge=<percent>&limit=<n>
func parseFilter(r *http.Request) (viewFilter, error) {
	var f viewFilter
	q := r.URL.Query()

	if v := q.Get("min_edge"); v != "" {
		edge, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.New("min_edge must be a number")
		}
		f.minEdge, f.hasMinEdge = edge, true
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return f, errors.New("limit must be a positive integer")
		}
		f.limit = limit
	}
	return f, nil
}

// records keeps ranking order, so filtering by edge is a prefix cut
func (f viewFilter) records(records []models.ArbitrageRecord, mode models.Mode) []models.ArbitrageRecord {
	out := make([]models.ArbitrageRecord, 0, len(records))
	for _, r := range records {
		if f.hasMinEdge && r.RankingEdge(mode) < f.minEdge {
			break
		}
		if f.limit > 0 && len(out) == f.limit {
			break
		}
		out = append(out, r)
	}
	return out
}

func (f viewFilter) groups(groups []models.EntityGroup) []models.EntityGroup {
	out := make([]models.EntityGroup, 0, len(groups))
	for _, g := range groups {
		if f.hasMinEdge && g.BestEdge < f.minEdge {
			break
		}
		if f.limit > 0 && len(out) == f.limit {
			break
		}
		out = append(out, g)
	}
	return out
}

// EdgesResponse represents the API response for ranked records
type EdgesResponse struct {
	EventID     string                   `json:"event_id"`
	ReportID    string                   `json:"report_id"`
	Mode        models.Mode              `json:"mode"`
	Count       int                      `json:"count"`
	Records     []models.ArbitrageRecord `json:"records"`
	Skipped     []models.SkippedOffer    `json:"skipped,omitempty"`
	GeneratedAt string                   `json:"generated_at"`
}

// GroupsResponse represents the API response for entity groups
type GroupsResponse struct {
	EventID     string               `json:"event_id"`
	ReportID    string               `json:"report_id"`
	Mode        models.Mode          `json:"mode"`
	Count       int                  `json:"count"`
	Stats       models.EdgeStats     `json:"stats"`
	Groups      []models.EntityGroup `json:"groups"`
	GeneratedAt string               `json:"generated_at"`
}
