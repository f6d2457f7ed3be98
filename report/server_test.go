package report

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehabengine/domain/dataset"
	"rehabengine/internal"
	"rehabengine/internal/synth"
)

func newTestServer(t *testing.T) (*Server, *dataset.Store) {
	t.Helper()
	store := dataset.NewStore()
	return NewServer(store, internal.NewLogger(internal.LogLevelError)), store
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzBeforeAndAfterGeneration(t *testing.T) {
	srv, store := newTestServer(t)

	rec := get(srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	cfg := synth.DefaultConfig()
	cfg.Inmates = 100
	gen, err := synth.New(cfg)
	require.NoError(t, err)
	snap, err := gen.GenerateAll()
	require.NoError(t, err)
	store.Put("run", snap)

	rec = get(srv, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerationReport(t *testing.T) {
	srv, store := newTestServer(t)

	cfg := synth.DefaultConfig()
	cfg.Inmates = 100
	gen, err := synth.New(cfg)
	require.NoError(t, err)
	snap, err := gen.GenerateAll()
	require.NoError(t, err)
	store.Put("run", snap)

	rec := get(srv, "/reports/generation")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Generation Report")
	assert.Contains(t, body, dataset.TableInmateProfiles)
	assert.Contains(t, body, "behavior_score")

	rec = get(srv, "/reports/generation/run")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(srv, "/reports/generation/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
