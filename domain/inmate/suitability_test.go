package inmate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehabengine/domain/core"
)

func TestParseSuitabilityGroup(t *testing.T) {
	for _, g := range SuitabilityGroups {
		parsed, err := ParseSuitabilityGroup(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
}

func TestParseSuitabilityGroupRejectsNearMisses(t *testing.T) {
	for _, raw := range []string{"", "substance-abuse", "Substance_Abuse", "mental health", "unknown"} {
		_, err := ParseSuitabilityGroup(raw)
		assert.True(t, core.IsValidationError(err), "expected rejection for %q", raw)
	}
}

func TestGroupProgramsCoverEveryGroup(t *testing.T) {
	for _, g := range SuitabilityGroups {
		programs := GroupPrograms[g]
		require.NotEmpty(t, programs, "group %s has no programs", g)
		for i := 1; i < len(programs); i++ {
			assert.LessOrEqual(t, programs[i].Score, programs[i-1].Score,
				"group %s programs not sorted by score", g)
		}
	}
}

func TestHighRiskDurationOnlyWherePlanned(t *testing.T) {
	primary := GroupPrograms[GroupSubstanceAbuse][0]
	assert.Equal(t, 8, primary.DurationWeeks)
	assert.Equal(t, 12, primary.HighRiskDurationWeeks)
}
