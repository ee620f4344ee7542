package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/api"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/fixture"
	"github.com/fuikk/fuikk/internal/iocache"
	"github.com/fuikk/fuikk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, runPipeline bool, mgr contract.CacheManager) *httptest.Server {
	t.Helper()
	cfg := fixture.Write(t)
	if runPipeline {
		_, err := core.GetStatsResults(t.Context(), cfg, nil)
		require.NoError(t, err)
		_, err = core.GetCoursesResults(t.Context(), cfg, nil)
		require.NoError(t, err)
	}
	srv := httptest.NewServer(api.NewRouter(cfg, mgr))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, false, nil)

	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t, true, nil)

	var rows []schema.CourseSummary
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/summary", &rows))
	assert.Len(t, rows, 2)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/summary?min_responses=6", &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "IN1000", rows[0].Code)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/summary?resolved=true", &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].TotalResponses)

	var errBody map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/summary?limit=0", &errBody))
	assert.Contains(t, errBody["error"], "limit must be between")
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/summary?resolved=maybe", nil))
}

func TestSummaryEndpointWithoutReport(t *testing.T) {
	srv := newTestServer(t, false, nil)

	var errBody map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/summary", &errBody))
	assert.Contains(t, errBody["error"], "run `fuikk courses` first")
}

func TestCourseEndpoint(t *testing.T) {
	srv := newTestServer(t, true, nil)

	var trend schema.CourseTrend
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/courses/in1000", &trend))
	assert.Equal(t, "IN1000", trend.Code)
	assert.Equal(t, "Intro to object oriented programming", trend.Name)
	assert.Len(t, trend.Points, 2)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/courses/XYZ1234", nil))
}

func TestScoresEndpoint(t *testing.T) {
	srv := newTestServer(t, true, nil)

	var result schema.ScoreResult
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/scores", &result))
	assert.Len(t, result.Scores, 2)
	assert.NotNil(t, result.Overall)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/scores?semester=H2019", &result))
	require.Len(t, result.Scores, 1)
	assert.Equal(t, "H2019", result.Scores[0].Semester)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/scores?semester=2019", nil))
}

func TestCourseHistoryEndpoint(t *testing.T) {
	history := &iocache.MockHistoryStore{}
	history.On("GetCourseHistory", "IN1000").Return([]schema.CourseSummaryRecord{
		{RunID: 3, CourseCode: "IN1000", Semesters: 2, TotalResponses: 7, TotalInvited: 14},
	}, nil)
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(history)
	srv := newTestServer(t, false, mgr)

	var records []schema.CourseSummaryRecord
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/courses/IN1000/history", &records))
	require.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0].RunID)
	history.AssertExpectations(t)
}

func TestCourseHistoryEndpointDisabled(t *testing.T) {
	srv := newTestServer(t, false, nil)

	var errBody map[string]string
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv.URL+"/courses/IN1000/history", &errBody))
	assert.Contains(t, errBody["error"], "history is disabled")
}
