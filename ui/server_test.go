package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawcast/app"
	"drawcast/domain/candidate"
	"drawcast/domain/report"
	"drawcast/internal/config"
	"drawcast/internal/testkit"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.PredictionConfig{
		TargetDate: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Gaps:       candidate.Gaps{5, 2, 11, 10},
		MainMax:    50,
		StarMax:    12,
	}
	source := &testkit.InMemorySource{History: testkit.SyntheticHistory(30, 11)}
	svc := app.NewPredictionService(cfg, source, nil, nil)
	return NewServer(svc, nil)
}

func TestServer_ReportEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "2026-02-03", rep.TargetDate)
	assert.Equal(t, "Tuesday", rep.DayOfWeek)
	assert.Equal(t, 5, rep.MostLikely.Distances.P1P2)
}

func TestServer_ProfilesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var profiles []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	assert.Len(t, profiles, 8)
}

func TestServer_SummaryPage(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "2026-02-03")
	assert.Contains(t, rec.Body.String(), "Most likely")
}

func TestServer_SourceFailureIs500(t *testing.T) {
	cfg := config.PredictionConfig{
		TargetDate: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Gaps:       candidate.Gaps{5, 2, 11, 10},
		MainMax:    50,
		StarMax:    12,
	}
	svc := app.NewPredictionService(cfg, &testkit.InMemorySource{}, nil, nil)
	srv := NewServer(svc, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRenderMarkdown_ContainsOutcomes(t *testing.T) {
	srv := newTestServer(t)
	result, err := srv.service.Predict(context.Background())
	require.NoError(t, err)

	md := RenderMarkdown(result)
	assert.Contains(t, md, "# Draw prediction for 2026-02-03 (Tuesday)")
	assert.Contains(t, md, "## Most likely")
	assert.Contains(t, md, "## Least likely")
	assert.Contains(t, md, "| Slot |")
}
