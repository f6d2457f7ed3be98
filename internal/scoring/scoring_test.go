package scoring

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehabengine/domain/core"
	"rehabengine/domain/feature"
	"rehabengine/internal"
)

func newTestService(t *testing.T, dir string) *Service {
	t.Helper()
	logger := internal.NewLogger(internal.LogLevelError)
	return NewService(NewModelRegistry(dir, logger), logger)
}

func strongEligibilityRow() feature.Row {
	return feature.Row{
		"behavior_score":            "80",
		"discipline_score":          "85",
		"risk_score":                "0.2",
		"programs_completed":        "4",
		"total_attendance_rate":     "0.9",
		"time_served_months":        "30",
		"remaining_sentence_months": "10",
		"prior_convictions":         "0",
		"institutional_violations":  "0",
	}
}

func weakEligibilityRow() feature.Row {
	return feature.Row{
		"behavior_score":            "30",
		"discipline_score":          "35",
		"risk_score":                "0.85",
		"programs_completed":        "0",
		"total_attendance_rate":     "0.3",
		"time_served_months":        "4",
		"remaining_sentence_months": "40",
		"prior_convictions":         "4",
		"institutional_violations":  "3",
		"total_incidents":           "10",
		"points_deducted":           "180",
	}
}

func TestFallbackStrongProfileScoresHigh(t *testing.T) {
	svc := newTestService(t, t.TempDir())

	res, err := svc.Score(feature.TaskEligibility, strongEligibilityRow())
	require.NoError(t, err)

	assert.Equal(t, StrategyFallback, res.Strategy)
	assert.Greater(t, res.Score, 0.7)
	assert.True(t, res.Eligible)
}

func TestFallbackWeakProfileScoresLow(t *testing.T) {
	svc := newTestService(t, t.TempDir())

	res, err := svc.Score(feature.TaskEligibility, weakEligibilityRow())
	require.NoError(t, err)

	assert.Less(t, res.Score, 0.5)
	assert.False(t, res.Eligible)
}

func TestFallbackDeterministic(t *testing.T) {
	svc := newTestService(t, t.TempDir())
	row := strongEligibilityRow()

	first, err := svc.Score(feature.TaskEligibility, row)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.Score(feature.TaskEligibility, row)
		require.NoError(t, err)
		assert.Equal(t, first.Score, again.Score)
	}
}

func TestFallbackScoreRangeAllTasks(t *testing.T) {
	svc := newTestService(t, t.TempDir())

	rows := map[feature.Task]feature.Row{
		feature.TaskEligibility: strongEligibilityRow(),
		feature.TaskEarlyRelease: {
			"behavior_score":           "75",
			"discipline_score":         "70",
			"program_completion_count": "2",
			"time_served_percentage":   "0.6",
			"risk_assessment":          "0.3",
			"age":                      "40",
			"prior_convictions":        "1",
		},
		feature.TaskIndustrialTraining: {
			"behavior_score":        "65",
			"discipline_score":      "60",
			"risk_score":            "0.4",
			"age":                   "28",
			"time_served_months":    "12",
			"programs_completed":    "1",
			"total_attendance_rate": "0.7",
			"education_level":       "High School",
		},
		feature.TaskHomeLeave: {
			"behavior_score":           "82",
			"discipline_score":         "79",
			"risk_score":               "0.25",
			"time_served_months":       "20",
			"institutional_violations": "0",
			"programs_completed":       "3",
			"total_attendance_rate":    "0.85",
		},
	}

	for task, row := range rows {
		res, err := svc.Score(task, row)
		require.NoError(t, err, "task %s", task)
		assert.GreaterOrEqual(t, res.Score, 0.0, "task %s", task)
		assert.LessOrEqual(t, res.Score, 1.0, "task %s", task)
		assert.Equal(t, Threshold(task), res.Threshold, "task %s", task)
	}
}

func TestEarlyReleaseThresholdIsStricter(t *testing.T) {
	assert.Equal(t, 0.7, Threshold(feature.TaskEarlyRelease))
	assert.Equal(t, 0.5, Threshold(feature.TaskEligibility))
}

func TestScoreUnknownTask(t *testing.T) {
	svc := newTestService(t, t.TempDir())

	_, err := svc.Score(feature.Task("recidivism"), strongEligibilityRow())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownTask)
}

func TestScoreMissingRequiredFeature(t *testing.T) {
	svc := newTestService(t, t.TempDir())

	row := strongEligibilityRow()
	delete(row, "risk_score")

	_, err := svc.Score(feature.TaskEligibility, row)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingFeature)
}

func writeArtifacts(t *testing.T, dir string, task feature.Task, model ModelArtifact, scaler ScalerArtifact) {
	t.Helper()
	for name, v := range map[string]interface{}{
		string(task) + "_model.json":  model,
		string(task) + "_scaler.json": scaler,
	} {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
}

func TestModelStrategyUsedWhenArtifactPresent(t *testing.T) {
	dir := t.TempDir()
	spec, err := feature.SpecFor(feature.TaskHomeLeave)
	require.NoError(t, err)

	n := len(spec.Columns)
	weights := make([]float64, n)
	weights[0] = 2.5 // behavior dominates
	mean := make([]float64, n)
	std := make([]float64, n)
	for i := range std {
		std[i] = 1
	}
	mean[0] = 50
	std[0] = 20

	writeArtifacts(t, dir, feature.TaskHomeLeave,
		ModelArtifact{Task: string(feature.TaskHomeLeave), Features: spec.Names(), Weights: weights, Intercept: 0},
		ScalerArtifact{Mean: mean, Std: std})

	svc := newTestService(t, dir)
	res, err := svc.Score(feature.TaskHomeLeave, feature.Row{
		"behavior_score":           "90",
		"discipline_score":         "85",
		"risk_score":               "0.2",
		"time_served_months":       "18",
		"institutional_violations": "0",
		"programs_completed":       "2",
		"total_attendance_rate":    "0.9",
	})
	require.NoError(t, err)

	assert.Equal(t, StrategyModel, res.Strategy)
	// z = 2.5 * (90-50)/20 = 5, sigmoid(5) ~ 0.993
	assert.InDelta(t, 0.9933, res.Score, 0.001)
	assert.True(t, res.Eligible)
}

func TestRegistryRemembersMissingArtifacts(t *testing.T) {
	logger := internal.NewLogger(internal.LogLevelError)
	reg := NewModelRegistry(t.TempDir(), logger)

	_, err := reg.Get(feature.TaskEligibility)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrArtifactMissing)

	// Second probe hits the cached miss.
	_, err = reg.Get(feature.TaskEligibility)
	assert.ErrorIs(t, err, core.ErrArtifactMissing)

	status := reg.Status()
	assert.Equal(t, "statistical_fallback", status[feature.TaskEligibility])
}
