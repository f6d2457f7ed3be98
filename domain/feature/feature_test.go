package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehabengine/domain/core"
)

func eligibilityRow() Row {
	return Row{
		"behavior_score":            "80",
		"discipline_score":          "85",
		"risk_score":                "0.2",
		"programs_completed":        "4",
		"total_attendance_rate":     "0.9",
		"time_served_months":        "30",
		"remaining_sentence_months": "10",
		"prior_convictions":         "1",
		"institutional_violations":  "0",
		"total_incidents":           "2",
		"points_deducted":           "20",
	}
}

func TestVectorOrderMatchesSpec(t *testing.T) {
	spec, err := SpecFor(TaskEligibility)
	require.NoError(t, err)

	vec, err := spec.Vector(eligibilityRow())
	require.NoError(t, err)
	require.Len(t, vec, 11)

	assert.Equal(t, 80.0, vec[0])
	assert.Equal(t, 85.0, vec[1])
	assert.Equal(t, 0.2, vec[2])
	assert.Equal(t, 20.0, vec[10])
}

func TestVectorMissingRequiredFeature(t *testing.T) {
	spec, err := SpecFor(TaskEligibility)
	require.NoError(t, err)

	row := eligibilityRow()
	delete(row, "behavior_score")

	_, err = spec.Vector(row)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingFeature)
	assert.True(t, core.IsValidationError(err))
}

func TestVectorOptionalFeatureDefaultsToZero(t *testing.T) {
	spec, err := SpecFor(TaskEligibility)
	require.NoError(t, err)

	row := eligibilityRow()
	delete(row, "total_incidents")
	delete(row, "points_deducted")

	vec, err := spec.Vector(row)
	require.NoError(t, err)
	assert.Equal(t, 0.0, vec[9])
	assert.Equal(t, 0.0, vec[10])
}

func TestVectorOutOfRange(t *testing.T) {
	spec, err := SpecFor(TaskEligibility)
	require.NoError(t, err)

	row := eligibilityRow()
	row["risk_score"] = "1.4"

	_, err = spec.Vector(row)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
}

func TestVectorNonNumericValue(t *testing.T) {
	spec, err := SpecFor(TaskEligibility)
	require.NoError(t, err)

	row := eligibilityRow()
	row["discipline_score"] = "high"

	_, err = spec.Vector(row)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingFeature)
}

func TestEducationEncoding(t *testing.T) {
	spec, err := SpecFor(TaskIndustrialTraining)
	require.NoError(t, err)

	row := Row{
		"behavior_score":        "70",
		"discipline_score":      "65",
		"risk_score":            "0.3",
		"age":                   "32",
		"time_served_months":    "12",
		"programs_completed":    "2",
		"total_attendance_rate": "0.8",
		"education_level":       "GED",
	}

	vec, err := spec.Vector(row)
	require.NoError(t, err)
	assert.Equal(t, 2.0, vec[7], "GED is the third ordinal level")

	row["education_level"] = "Doctorate"
	_, err = spec.Vector(row)
	require.Error(t, err)
}

func TestEligibilityLabel(t *testing.T) {
	row := eligibilityRow()

	got, err := Label(TaskEligibility, row)
	require.NoError(t, err)
	assert.True(t, got)

	row["risk_score"] = "0.7"
	got, err = Label(TaskEligibility, row)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHomeLeaveLabelViolationCutoff(t *testing.T) {
	row := Row{
		"behavior_score":           "80",
		"discipline_score":         "82",
		"institutional_violations": "1",
	}

	got, err := Label(TaskHomeLeave, row)
	require.NoError(t, err)
	assert.True(t, got)

	row["institutional_violations"] = "2"
	got, err = Label(TaskHomeLeave, row)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEarlyReleaseLabel(t *testing.T) {
	got, err := Label(TaskEarlyRelease, Row{"recommendation": "eligible"})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = Label(TaskEarlyRelease, Row{"recommendation": "pending_review"})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestParseTask(t *testing.T) {
	task, err := ParseTask("home_leave")
	require.NoError(t, err)
	assert.Equal(t, TaskHomeLeave, task)

	_, err = ParseTask("parole")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownTask)
}
