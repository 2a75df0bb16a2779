package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/golf-edge-service/internal/mocks"
	"github.com/cypherlabdev/golf-edge-service/internal/models"
	"github.com/cypherlabdev/golf-edge-service/internal/service"
	"github.com/cypherlabdev/golf-edge-service/pkg/arbitrage"
)

// testHandlerSetup is a helper struct to hold test dependencies
type testHandlerSetup struct {
	mux         *http.ServeMux
	mockService *mocks.MockEdgeAnalyzer
	ctrl        *gomock.Controller
}

// setupTestHandler creates a mux with the edge routes over a mocked service
func setupTestHandler(t *testing.T) *testHandlerSetup {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockEdgeAnalyzer(ctrl)

	mux := http.NewServeMux()
	NewEdgeHandler(mockService, zerolog.Nop()).RegisterRoutes(mux)

	return &testHandlerSetup{
		mux:         mux,
		mockService: mockService,
		ctrl:        ctrl,
	}
}

// cleanup cleans up test resources
func (s *testHandlerSetup) cleanup() {
	s.ctrl.Finish()
}

func (s *testHandlerSetup) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func cachedReport() *models.Report {
	records := []models.ArbitrageRecord{
		{Identity: "rory mcilroy", SourceID: "paddypower", WinEdge: 20, PlaceLeg: &models.PlaceLeg{CombinedEdge: 18.3}},
		{Identity: "jon rahm", SourceID: "skybet", WinEdge: 6, PlaceLeg: &models.PlaceLeg{CombinedEdge: 4.5}},
		{Identity: "rory mcilroy", SourceID: "bet365", WinEdge: 2, PlaceLeg: &models.PlaceLeg{CombinedEdge: 1.0}},
		{Identity: "scottie scheffler", SourceID: "skybet", WinEdge: -5, PlaceLeg: &models.PlaceLeg{CombinedEdge: -2.5}},
	}
	return &models.Report{
		ID:      uuid.New(),
		EventID: "the-open-2026",
		Mode:    models.ModeEachWay,
		Records: records,
		Groups: []models.EntityGroup{
			{Identity: "rory mcilroy", BestEdge: 18.3, Records: []models.ArbitrageRecord{records[0], records[2]}, Positives: 2},
			{Identity: "jon rahm", BestEdge: 4.5, Records: []models.ArbitrageRecord{records[1]}, Positives: 1},
			{Identity: "scottie scheffler", BestEdge: -2.5, Records: []models.ArbitrageRecord{records[3]}},
		},
		Stats:       models.EdgeStats{Records: 4, Entities: 3, PositiveEntities: 2, MultiSourcePositive: 1},
		GeneratedAt: time.Date(2026, 7, 17, 6, 30, 0, 0, time.UTC),
	}
}

// TestAnalyze_Success tests POST /api/v1/analyze
func TestAnalyze_Success(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	report := cachedReport()
	setup.mockService.EXPECT().
		Analyze(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *models.AnalysisRequest) (*models.Report, error) {
			assert.Equal(t, "the-open-2026", req.EventID)
			assert.Equal(t, models.ModeEachWay, req.Mode)
			require.Len(t, req.Offers, 1)
			assert.Equal(t, "paddypower", req.Offers[0].Source)
			return report, nil
		})

	body := `{"event_id":"the-open-2026","mode":"each_way","offers":[{"source":"paddypower","quotes":[{"label":"Rory McIlroy","odds":"5/1"}]}],"reference":{"win":{"source":"betfair","available":true,"quotes":[{"label":"Rory McIlroy","odds":"5.0"}]}}}`
	rec := setup.do(http.MethodPost, "/api/v1/analyze", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, report.ID, got.ID)
	assert.Len(t, got.Records, 4)
}

// TestAnalyze_InvalidBody tests POST with a body that is not JSON
func TestAnalyze_InvalidBody(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	rec := setup.do(http.MethodPost, "/api/v1/analyze", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

// TestAnalyze_MethodNotAllowed tests GET on the analyze route
func TestAnalyze_MethodNotAllowed(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	rec := setup.do(http.MethodGet, "/api/v1/analyze", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// TestAnalyze_ErrorStatus tests how service errors map to status codes
func TestAnalyze_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid request", fmt.Errorf("%w: event_id is required", service.ErrInvalidRequest), http.StatusBadRequest},
		{"invalid mode", fmt.Errorf("analysis failed: %w", arbitrage.ErrInvalidMode), http.StatusBadRequest},
		{"missing reference", fmt.Errorf("analysis failed: %w", arbitrage.ErrMissingReference), http.StatusBadRequest},
		{"reference unavailable", fmt.Errorf("analysis failed: %w", arbitrage.ErrReferenceUnavailable), http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := setupTestHandler(t)
			defer setup.cleanup()

			setup.mockService.EXPECT().
				Analyze(gomock.Any(), gomock.Any()).
				Return(nil, tt.err)

			rec := setup.do(http.MethodPost, "/api/v1/analyze", `{"event_id":"the-open-2026"}`)

			assert.Equal(t, tt.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

// TestListEvents_Success tests GET /api/v1/events
func TestListEvents_Success(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	setup.mockService.EXPECT().
		ListEvents(gomock.Any()).
		Return([]string{"masters-2026", "the-open-2026"}, nil)

	rec := setup.do(http.MethodGet, "/api/v1/events", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count  int      `json:"count"`
		Events []string `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, []string{"masters-2026", "the-open-2026"}, body.Events)
}

// TestListEvents_Empty tests that no events serializes as an empty list
func TestListEvents_Empty(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	setup.mockService.EXPECT().ListEvents(gomock.Any()).Return(nil, nil)

	rec := setup.do(http.MethodGet, "/api/v1/events", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"events":[]}`, rec.Body.String())
}

// TestListEvents_Error tests listing when the cache fails
func TestListEvents_Error(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	setup.mockService.EXPECT().
		ListEvents(gomock.Any()).
		Return(nil, errors.New("redis connection failed"))

	rec := setup.do(http.MethodGet, "/api/v1/events", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// TestGetEdges_Success tests GET /api/v1/events/:event_id/edges
func TestGetEdges_Success(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	report := cachedReport()
	setup.mockService.EXPECT().
		GetReport(gomock.Any(), "the-open-2026").
		Return(report, nil)

	rec := setup.do(http.MethodGet, "/api/v1/events/the-open-2026/edges", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body EdgesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "the-open-2026", body.EventID)
	assert.Equal(t, report.ID.String(), body.ReportID)
	assert.Equal(t, models.ModeEachWay, body.Mode)
	assert.Equal(t, 4, body.Count)
	assert.Equal(t, report.Records, body.Records)
	assert.Equal(t, "2026-07-17T06:30:00Z", body.GeneratedAt)
}

// TestGetEdges_Filters tests min_edge and limit
func TestGetEdges_Filters(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{"positive only", "?min_edge=0", 3},
		{"threshold", "?min_edge=4.5", 2},
		{"limit", "?limit=1", 1},
		{"both", "?min_edge=0&limit=2", 2},
		{"nothing passes", "?min_edge=50", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := setupTestHandler(t)
			defer setup.cleanup()

			setup.mockService.EXPECT().
				GetReport(gomock.Any(), "the-open-2026").
				Return(cachedReport(), nil)

			rec := setup.do(http.MethodGet, "/api/v1/events/the-open-2026/edges"+tt.query, "")

			require.Equal(t, http.StatusOK, rec.Code)
			var body EdgesResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCount, body.Count)
			assert.Len(t, body.Records, tt.wantCount)
		})
	}
}

// TestGetEdges_InvalidFilter tests malformed query parameters
func TestGetEdges_InvalidFilter(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	// No service calls expected
	for _, query := range []string{"?min_edge=lots", "?limit=0", "?limit=-3", "?limit=ten"} {
		rec := setup.do(http.MethodGet, "/api/v1/events/the-open-2026/edges"+query, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

// TestGetGroups_Success tests GET /api/v1/events/:event_id/groups
func TestGetGroups_Success(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	report := cachedReport()
	setup.mockService.EXPECT().
		GetReport(gomock.Any(), "the-open-2026").
		Return(report, nil)

	rec := setup.do(http.MethodGet, "/api/v1/events/the-open-2026/groups?min_edge=0", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body GroupsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Groups, 2)
	assert.Equal(t, "rory mcilroy", body.Groups[0].Identity)
	assert.Equal(t, 2, body.Groups[0].Positives)
	assert.Equal(t, report.Stats, body.Stats)
}

// TestGetEdges_NotFound tests an event with no cached report
func TestGetEdges_NotFound(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	setup.mockService.EXPECT().
		GetReport(gomock.Any(), "missing").
		Return(nil, fmt.Errorf("%w: missing", service.ErrReportNotFound))

	rec := setup.do(http.MethodGet, "/api/v1/events/missing/edges", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestGetEdges_ServiceError tests retrieval when the cache fails
func TestGetEdges_ServiceError(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	setup.mockService.EXPECT().
		GetReport(gomock.Any(), "the-open-2026").
		Return(nil, errors.New("redis connection failed"))

	rec := setup.do(http.MethodGet, "/api/v1/events/the-open-2026/groups", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// TestEventRoutes_InvalidPath tests malformed event paths
func TestEventRoutes_InvalidPath(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	for _, path := range []string{
		"/api/v1/events/the-open-2026",
		"/api/v1/events/the-open-2026/odds",
		"/api/v1/events/the-open-2026/edges/extra",
	} {
		rec := setup.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

// TestEventRoutes_MethodNotAllowed tests writes on read-only routes
func TestEventRoutes_MethodNotAllowed(t *testing.T) {
	setup := setupTestHandler(t)
	defer setup.cleanup()

	assert.Equal(t, http.StatusMethodNotAllowed, setup.do(http.MethodPost, "/api/v1/events", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, setup.do(http.MethodDelete, "/api/v1/events/the-open-2026/edges", "").Code)
}
