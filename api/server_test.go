package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehabengine/app"
	"rehabengine/domain/dataset"
	"rehabengine/internal"
	"rehabengine/internal/config"
	"rehabengine/internal/nlp"
	"rehabengine/internal/scoring"
)

func newTestServer(t *testing.T) (*Server, *app.GenerationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := internal.NewLogger(internal.LogLevelError)
	store := dataset.NewStore()
	gcfg := config.GeneratorConfig{
		DefaultInmates: 100,
		DefaultSeed:    42,
		MinInmates:     100,
		MaxInmates:     10000,
		OutputDir:      t.TempDir(),
	}

	generation := app.NewGenerationService(store, gcfg, nil, nil, logger)
	registry := scoring.NewModelRegistry(t.TempDir(), logger)
	scorer := scoring.NewService(registry, logger)
	assessment := app.NewAssessmentService(store, scorer, nil, logger)
	recommendation := app.NewRecommendationService(store, nil, logger)

	return NewServer(generation, assessment, recommendation, nlp.NewAnalyzer(), logger), generation
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateAndGetDataset(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/generate", map[string]any{
		"count": 100, "seed": 7, "name": "test-run",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result app.GenerateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 100, result.InmateCount)
	assert.Equal(t, int64(7), result.Seed)
	assert.Equal(t, 100, result.Tables[dataset.TableInmateProfiles])

	rec = doJSON(t, srv, http.MethodGet, "/api/datasets/test-run", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/datasets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test-run")
}

func TestGenerateRejectsCountOutOfBounds(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/generate", map[string]any{"count": 50})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnknownDatasetReturns404(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/datasets/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEligibilityPrediction(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/predictions/eligibility", map[string]string{
		"behavior_score":            "80",
		"discipline_score":          "85",
		"risk_score":                "0.2",
		"programs_completed":        "4",
		"total_attendance_rate":     "0.9",
		"time_served_months":        "30",
		"remaining_sentence_months": "10",
		"prior_convictions":         "0",
		"institutional_violations":  "0",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pred app.Prediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pred))
	assert.True(t, pred.Eligible)
	assert.Equal(t, "statistical_fallback", pred.Strategy)
	assert.NotEmpty(t, pred.Justification)
}

func TestEligibilityPredictionMissingFeature(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/predictions/eligibility", map[string]string{
		"behavior_score": "80",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInmateTaskPredictions(t *testing.T) {
	srv, generation := newTestServer(t)

	result, err := generation.Generate(context.Background(), app.GenerateRequest{Count: 100, Seed: 3, Name: "run"})
	require.NoError(t, err)
	require.Equal(t, 100, result.InmateCount)

	snap, err := generation.Get("run")
	require.NoError(t, err)
	id := snap.Profiles[0].InmateID.String()

	for _, path := range []string{
		"/api/predictions/industrial-training",
		"/api/predictions/home-leave",
	} {
		rec := doJSON(t, srv, http.MethodPost, path+"?inmate_id="+id, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var pred app.Prediction
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pred))
		assert.GreaterOrEqual(t, pred.Score, 0.0)
		assert.LessOrEqual(t, pred.Score, 1.0)
	}

	// Early release needs an assessment; pick an inmate that has one.
	require.NotEmpty(t, snap.Assessments)
	erID := snap.Assessments[0].InmateID.String()
	rec := doJSON(t, srv, http.MethodPost, "/api/predictions/early-release?inmate_id="+erID, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestInmateTaskUnknownInmateReturns404(t *testing.T) {
	srv, generation := newTestServer(t)
	_, err := generation.Generate(context.Background(), app.GenerateRequest{Count: 100, Seed: 3, Name: "run"})
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodPost, "/api/predictions/home-leave?inmate_id=INM999999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendations(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/recommendations", map[string]any{
		"inmate_id":         "INM000001",
		"suitability_group": "substance_abuse",
		"risk_score":        0.9,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result app.RecommendResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, "Intensive Drug Rehabilitation Program", result.Recommendations[0].ProgramName)
	// High risk stretches the primary program duration.
	assert.Equal(t, 12, result.Recommendations[0].DurationWeeks)
	assert.LessOrEqual(t, len(result.Recommendations), 3)
}

func TestRecommendationsRejectUnknownGroup(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/recommendations", map[string]any{
		"inmate_id":         "INM000001",
		"suitability_group": "substance-abuse",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoteAnalysis(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/analysis/notes", map[string]string{
		"text": "Inmate is cooperative and showing real progress in therapy.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis nlp.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, "positive", string(analysis.Sentiment))
	assert.Contains(t, analysis.KeyPoints, "Inmate showing cooperation")
}

func TestModelStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/models/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "statistical_fallback")
}

func TestGetInmateFromSnapshot(t *testing.T) {
	srv, generation := newTestServer(t)
	_, err := generation.Generate(context.Background(), app.GenerateRequest{Count: 100, Seed: 3, Name: "run"})
	require.NoError(t, err)

	snap, err := generation.Current()
	require.NoError(t, err)
	id := snap.Profiles[0].InmateID.String()

	rec := doJSON(t, srv, http.MethodGet, "/api/inmates/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id)

	rec = doJSON(t, srv, http.MethodGet, "/api/inmates/INM999999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetInmateAssessment(t *testing.T) {
	srv, generation := newTestServer(t)
	_, err := generation.Generate(context.Background(), app.GenerateRequest{Count: 100, Seed: 3, Name: "run"})
	require.NoError(t, err)

	snap, err := generation.Current()
	require.NoError(t, err)
	require.NotEmpty(t, snap.Assessments)
	id := snap.Assessments[0].InmateID.String()

	rec := doJSON(t, srv, http.MethodGet, "/api/inmates/"+id+"/assessment", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "eligibility_score")
}

func TestListAssessmentsByRecommendation(t *testing.T) {
	srv, generation := newTestServer(t)
	_, err := generation.Generate(context.Background(), app.GenerateRequest{Count: 500, Seed: 3, Name: "run"})
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodGet, "/api/assessments?recommendation=pending_review&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Recommendation string            `json:"recommendation"`
		Count          int               `json:"count"`
		Assessments    []json.RawMessage `json:"assessments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending_review", body.Recommendation)
	assert.LessOrEqual(t, body.Count, 5)

	rec = doJSON(t, srv, http.MethodGet, "/api/assessments?recommendation=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunProfilesUnavailableWithoutPersistence(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/runs/some-run/profiles", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExportSingleTableCSV(t *testing.T) {
	srv, generation := newTestServer(t)
	_, err := generation.Generate(context.Background(), app.GenerateRequest{Count: 100, Seed: 3, Name: "run"})
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodGet, "/api/datasets/run/export?table=inmate_profiles&format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "inmate_id")
}
