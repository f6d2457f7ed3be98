package scoring

import (
	"fmt"
	"math"

	"rehabengine/domain/core"
	"rehabengine/domain/feature"
)

// Statistical fallback scoring. Each task blends its normalized features
// with fixed weights, then squashes with a logistic curve centered at 0.5.
// Pure arithmetic over the row, so repeated calls always agree.

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-2*(x-0.5)))
}

func clip01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}

// fallbackScore dispatches to the per-task formula.
func fallbackScore(task feature.Task, row feature.Row) (float64, error) {
	switch task {
	case feature.TaskEligibility:
		return eligibilityFallback(row)
	case feature.TaskEarlyRelease:
		return earlyReleaseFallback(row)
	case feature.TaskIndustrialTraining:
		return trainingFallback(row)
	case feature.TaskHomeLeave:
		return homeLeaveFallback(row)
	}
	return 0, fmt.Errorf("%w: %q", core.ErrUnknownTask, task)
}

// eligibilityFallback favors behavior and discipline, credits low risk,
// program completion and attendance, and deducts for disciplinary history.
func eligibilityFallback(row feature.Row) (float64, error) {
	spec, err := feature.SpecFor(feature.TaskEligibility)
	if err != nil {
		return 0, err
	}
	vec, err := spec.Vector(row)
	if err != nil {
		return 0, err
	}
	behavior, discipline, risk := vec[0], vec[1], vec[2]
	programs, attendance := vec[3], vec[4]
	served, remaining := vec[5], vec[6]
	priors, violations := vec[7], vec[8]
	incidents, points := vec[9], vec[10]

	timeFactor := 0.0
	if served+remaining > 0 {
		timeFactor = served / (served + remaining)
	}

	raw := 0.45*behavior/100 +
		0.35*discipline/100 +
		0.25*(1-risk) +
		0.10*math.Min(1, programs/5) +
		0.10*attendance +
		0.05*timeFactor

	penalty := (math.Min(1, priors/5) +
		math.Min(1, violations/5) +
		math.Min(1, incidents/15) +
		math.Min(1, points/200)) / 4
	raw -= 0.05 * penalty

	return sigmoid(raw), nil
}

// earlyReleaseFallback mirrors the assessment formula's factors without its
// noise term.
func earlyReleaseFallback(row feature.Row) (float64, error) {
	spec, err := feature.SpecFor(feature.TaskEarlyRelease)
	if err != nil {
		return 0, err
	}
	vec, err := spec.Vector(row)
	if err != nil {
		return 0, err
	}
	behavior, discipline, programs := vec[0], vec[1], vec[2]
	servedPct, risk := vec[3], vec[4]
	priors := vec[6]

	raw := 0.40*behavior/100 +
		0.30*discipline/100 +
		0.15*math.Min(1, programs/3) +
		0.20*(1-risk) +
		0.10*clip01(servedPct) -
		0.05*math.Min(1, priors/5)

	return sigmoid(raw), nil
}

// trainingFallback credits steady conduct, attendance, and education level.
func trainingFallback(row feature.Row) (float64, error) {
	spec, err := feature.SpecFor(feature.TaskIndustrialTraining)
	if err != nil {
		return 0, err
	}
	vec, err := spec.Vector(row)
	if err != nil {
		return 0, err
	}
	behavior, discipline, risk := vec[0], vec[1], vec[2]
	programs, attendance := vec[5], vec[6]
	education := vec[7]

	raw := 0.40*behavior/100 +
		0.30*discipline/100 +
		0.15*(1-risk) +
		0.15*attendance +
		0.10*(education/4) +
		0.05*math.Min(1, programs/5)

	return sigmoid(raw), nil
}

// homeLeaveFallback is the strictest blend: conduct dominates and
// institutional violations deduct directly.
func homeLeaveFallback(row feature.Row) (float64, error) {
	spec, err := feature.SpecFor(feature.TaskHomeLeave)
	if err != nil {
		return 0, err
	}
	vec, err := spec.Vector(row)
	if err != nil {
		return 0, err
	}
	behavior, discipline, risk := vec[0], vec[1], vec[2]
	violations, programs, attendance := vec[4], vec[5], vec[6]

	raw := 0.45*behavior/100 +
		0.35*discipline/100 +
		0.15*(1-risk) +
		0.10*attendance +
		0.05*math.Min(1, programs/5) -
		0.10*math.Min(1, violations/4)

	return sigmoid(raw), nil
}
