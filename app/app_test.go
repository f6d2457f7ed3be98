package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehabengine/domain/core"
	"rehabengine/domain/dataset"
	"rehabengine/domain/feature"
	"rehabengine/domain/inmate"
	"rehabengine/internal"
	"rehabengine/internal/config"
	"rehabengine/internal/scoring"
)

func testGeneratorConfig(t *testing.T) config.GeneratorConfig {
	t.Helper()
	return config.GeneratorConfig{
		DefaultInmates: 100,
		DefaultSeed:    42,
		MinInmates:     100,
		MaxInmates:     10000,
		OutputDir:      t.TempDir(),
	}
}

func testLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func newGenerationService(t *testing.T) (*GenerationService, *dataset.Store) {
	t.Helper()
	store := dataset.NewStore()
	return NewGenerationService(store, testGeneratorConfig(t), nil, nil, testLogger()), store
}

func TestGenerateDefaultsAndBounds(t *testing.T) {
	svc, _ := newGenerationService(t)
	ctx := context.Background()

	result, err := svc.Generate(ctx, GenerateRequest{Name: "defaults"})
	require.NoError(t, err)
	assert.Equal(t, 100, result.InmateCount)
	assert.Equal(t, int64(42), result.Seed)
	assert.False(t, result.Persisted)

	_, err = svc.Generate(ctx, GenerateRequest{Count: 99})
	assert.Error(t, err)

	_, err = svc.Generate(ctx, GenerateRequest{Count: 10001})
	assert.Error(t, err)
}

func TestGenerateStoresCurrentSnapshot(t *testing.T) {
	svc, store := newGenerationService(t)

	_, err := svc.Generate(context.Background(), GenerateRequest{Count: 100, Seed: 9, Name: "run-a"})
	require.NoError(t, err)

	snap, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(9), snap.Seed)
	assert.Len(t, snap.Profiles, 100)
}

func TestUploadRejectsUnknownTable(t *testing.T) {
	svc, _ := newGenerationService(t)
	_, err := svc.Upload("ds", "not_a_table", []byte("a,b\n1,2\n"), "csv")
	assert.Error(t, err)
}

func TestUploadReplacesTable(t *testing.T) {
	svc, store := newGenerationService(t)
	_, err := svc.Generate(context.Background(), GenerateRequest{Count: 100, Name: "run"})
	require.NoError(t, err)

	tbl, err := svc.Upload("run", dataset.TableRehabStations, []byte("station_id,station_name\nRS900,Test Shop\n"), "csv")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.RowCount())

	snap, err := store.Get("run")
	require.NoError(t, err)
	got, err := snap.Table(dataset.TableRehabStations)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"RS900", "Test Shop"}}, got.Rows)
}

// memProfileRepo is an in-memory ProfileRepository for wiring tests.
type memProfileRepo struct {
	runs map[core.RunID][]inmate.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{runs: make(map[core.RunID][]inmate.Profile)}
}

func (r *memProfileRepo) SaveBatch(_ context.Context, runID core.RunID, profiles []inmate.Profile) error {
	r.runs[runID] = append([]inmate.Profile{}, profiles...)
	return nil
}

func (r *memProfileRepo) GetByID(_ context.Context, id core.InmateID) (*inmate.Profile, error) {
	for _, profiles := range r.runs {
		for i := range profiles {
			if profiles[i].InmateID == id {
				return &profiles[i], nil
			}
		}
	}
	return nil, core.NewNotFoundError("inmate profile", id.String())
}

func (r *memProfileRepo) ListByRun(_ context.Context, runID core.RunID, limit, offset int) ([]*inmate.Profile, error) {
	profiles := r.runs[runID]
	if offset >= len(profiles) {
		return nil, nil
	}
	end := offset + limit
	if end > len(profiles) {
		end = len(profiles)
	}
	out := make([]*inmate.Profile, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, &profiles[i])
	}
	return out, nil
}

func (r *memProfileRepo) CountByRun(_ context.Context, runID core.RunID) (int, error) {
	return len(r.runs[runID]), nil
}

// memAssessmentRepo is an in-memory AssessmentRepository for wiring tests.
type memAssessmentRepo struct {
	assessments []inmate.EarlyReleaseAssessment
}

func (r *memAssessmentRepo) SaveBatch(_ context.Context, _ core.RunID, assessments []inmate.EarlyReleaseAssessment) error {
	r.assessments = append(r.assessments, assessments...)
	return nil
}

func (r *memAssessmentRepo) GetByInmate(_ context.Context, id core.InmateID) (*inmate.EarlyReleaseAssessment, error) {
	for i := range r.assessments {
		if r.assessments[i].InmateID == id {
			return &r.assessments[i], nil
		}
	}
	return nil, core.NewNotFoundError("early release assessment", id.String())
}

func (r *memAssessmentRepo) ListByRecommendation(_ context.Context, rec inmate.ReleaseRecommendation, limit int) ([]*inmate.EarlyReleaseAssessment, error) {
	var out []*inmate.EarlyReleaseAssessment
	for i := range r.assessments {
		if r.assessments[i].Recommendation == rec {
			out = append(out, &r.assessments[i])
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestGeneratePersistsAndLookupsHitRepositories(t *testing.T) {
	profileRepo := newMemProfileRepo()
	assessmentRepo := &memAssessmentRepo{}
	store := dataset.NewStore()
	svc := NewGenerationService(store, testGeneratorConfig(t), profileRepo, assessmentRepo, testLogger())
	ctx := context.Background()

	result, err := svc.Generate(ctx, GenerateRequest{Count: 100, Seed: 6, Name: "run"})
	require.NoError(t, err)
	assert.True(t, result.Persisted)
	assert.Len(t, profileRepo.runs[result.RunID], 100)

	snap, err := store.Current()
	require.NoError(t, err)
	id := snap.Profiles[0].InmateID

	// Dropping the snapshot forces the lookups through the repositories.
	require.NoError(t, store.Delete("run"))

	p, err := svc.LookupProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, p.InmateID)

	require.NotEmpty(t, assessmentRepo.assessments)
	erID := assessmentRepo.assessments[0].InmateID
	a, err := svc.LookupAssessment(ctx, erID)
	require.NoError(t, err)
	assert.Equal(t, erID, a.InmateID)

	profiles, total, err := svc.RunProfiles(ctx, result.RunID, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 100, total)
	assert.Len(t, profiles, 10)
	assert.Equal(t, snap.Profiles[5].InmateID, profiles[0].InmateID)

	listed, err := svc.ListAssessments(ctx, inmate.ReleasePendingReview, 5)
	require.NoError(t, err)
	for _, a := range listed {
		assert.Equal(t, inmate.ReleasePendingReview, a.Recommendation)
	}
}

func TestListAssessmentsFallsBackToSnapshot(t *testing.T) {
	svc, store := newGenerationService(t)
	_, err := svc.Generate(context.Background(), GenerateRequest{Count: 100, Seed: 8, Name: "run"})
	require.NoError(t, err)

	snap, err := store.Current()
	require.NoError(t, err)
	want := 0
	for i := range snap.Assessments {
		if snap.Assessments[i].Recommendation == inmate.ReleaseNotEligible {
			want++
		}
	}

	listed, err := svc.ListAssessments(context.Background(), inmate.ReleaseNotEligible, len(snap.Assessments))
	require.NoError(t, err)
	assert.Len(t, listed, want)
	for i := 1; i < len(listed); i++ {
		assert.LessOrEqual(t, listed[i].EligibilityScore, listed[i-1].EligibilityScore)
	}
}

func TestRunProfilesWithoutPersistence(t *testing.T) {
	svc, _ := newGenerationService(t)
	_, _, err := svc.RunProfiles(context.Background(), core.RunID("r"), 10, 0)
	assert.Error(t, err)
}

func newAssessmentService(t *testing.T) (*AssessmentService, *GenerationService) {
	t.Helper()
	gen, store := newGenerationService(t)
	registry := scoring.NewModelRegistry(t.TempDir(), testLogger())
	scorer := scoring.NewService(registry, testLogger())
	return NewAssessmentService(store, scorer, nil, testLogger()), gen
}

func TestScoreInmateAddsBehavioralAggregates(t *testing.T) {
	svc, gen := newAssessmentService(t)
	_, err := gen.Generate(context.Background(), GenerateRequest{Count: 100, Seed: 5, Name: "run"})
	require.NoError(t, err)

	snap, err := gen.Get("run")
	require.NoError(t, err)

	// Find an inmate with at least one behavioral record so the aggregates
	// are nonzero.
	tbl, err := snap.Table(dataset.TableBehavioralRecords)
	require.NoError(t, err)
	require.NotEmpty(t, tbl.Rows)
	idCol := columnIndex(tbl.Headers, "inmate_id")
	require.GreaterOrEqual(t, idCol, 0)
	id := core.InmateID(tbl.Rows[0][idCol])

	incidents, points := behavioralAggregates(snap, id)
	assert.Greater(t, incidents, 0)
	assert.Greater(t, points, 0)

	pred, err := svc.ScoreInmate(context.Background(), feature.TaskEligibility, id)
	require.NoError(t, err)
	assert.Equal(t, "statistical_fallback", pred.Strategy)
	assert.NotEmpty(t, pred.Justification)
}

func TestScoreInmateUnknownID(t *testing.T) {
	svc, gen := newAssessmentService(t)
	_, err := gen.Generate(context.Background(), GenerateRequest{Count: 100, Name: "run"})
	require.NoError(t, err)

	_, err = svc.ScoreInmate(context.Background(), feature.TaskHomeLeave, core.InmateID("INM999999"))
	assert.True(t, core.IsNotFoundError(err))
}

func TestScoreInmateEarlyReleaseWithoutAssessment(t *testing.T) {
	svc, gen := newAssessmentService(t)
	_, err := gen.Generate(context.Background(), GenerateRequest{Count: 500, Seed: 2, Name: "run"})
	require.NoError(t, err)

	snap, err := gen.Get("run")
	require.NoError(t, err)

	// An inmate with under six months served has no assessment on file.
	var shortTimer core.InmateID
	for i := range snap.Profiles {
		if snap.Profiles[i].TimeServedMonths < 6 {
			shortTimer = snap.Profiles[i].InmateID
			break
		}
	}
	if shortTimer == "" {
		t.Skip("no short-timer in this seed")
	}

	_, err = svc.ScoreInmate(context.Background(), feature.TaskEarlyRelease, shortTimer)
	assert.True(t, core.IsNotFoundError(err))
}

func TestRecommendRanksAndStretchesDurations(t *testing.T) {
	store := dataset.NewStore()
	svc := NewRecommendationService(store, nil, testLogger())
	high := 0.9

	result, err := svc.Recommend(context.Background(), RecommendRequest{
		InmateID:  "INM000001",
		Group:     "substance_abuse",
		RiskScore: &high,
	})
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, "Intensive Drug Rehabilitation Program", result.Recommendations[0].ProgramName)
	assert.Equal(t, 12, result.Recommendations[0].DurationWeeks)
	assert.Equal(t, "Dual Diagnosis Support", result.Recommendations[1].ProgramName)
	// Scores stay sorted after merging in the general fallbacks.
	for i := 1; i < len(result.Recommendations); i++ {
		assert.LessOrEqual(t, result.Recommendations[i].Score, result.Recommendations[i-1].Score)
	}
	assert.InDelta(t, 0.835, result.Confidence, 1e-9)
	assert.NotEmpty(t, result.Explanation)
}

func TestRecommendGeneralGroup(t *testing.T) {
	store := dataset.NewStore()
	svc := NewRecommendationService(store, nil, testLogger())
	low := 0.1

	result, err := svc.Recommend(context.Background(), RecommendRequest{
		InmateID:  "INM000002",
		Group:     "general",
		RiskScore: &low,
	})
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "Vocational Skills Training", result.Recommendations[0].ProgramName)
	assert.Equal(t, 16, result.Recommendations[0].DurationWeeks)
}

func TestRecommendRejectsUnknownGroup(t *testing.T) {
	store := dataset.NewStore()
	svc := NewRecommendationService(store, nil, testLogger())

	_, err := svc.Recommend(context.Background(), RecommendRequest{
		InmateID: "INM000001",
		Group:    "Substance_Abuse",
	})
	assert.True(t, core.IsValidationError(err))
}

func TestRecommendUsesProfileRisk(t *testing.T) {
	store := dataset.NewStore()
	gen := NewGenerationService(store, testGeneratorConfig(t), nil, nil, testLogger())
	_, err := gen.Generate(context.Background(), GenerateRequest{Count: 100, Seed: 4, Name: "run"})
	require.NoError(t, err)

	snap, err := store.Current()
	require.NoError(t, err)
	p := snap.Profiles[0]

	svc := NewRecommendationService(store, nil, testLogger())
	result, err := svc.Recommend(context.Background(), RecommendRequest{
		InmateID: p.InmateID.String(),
		Group:    "violent_behavior",
	})
	require.NoError(t, err)
	assert.Equal(t, p.RiskScore, result.RiskScore)
}
