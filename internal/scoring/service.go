package scoring

import (
	"rehabengine/domain/core"
	"rehabengine/domain/feature"
	"rehabengine/internal"
)

// Strategy names reported alongside every score.
const (
	StrategyModel    = "model"
	StrategyFallback = "statistical_fallback"
)

// Decision thresholds per task. Early release deliberately requires a higher
// score than the other tasks.
var thresholds = map[feature.Task]float64{
	feature.TaskEligibility:        0.5,
	feature.TaskEarlyRelease:       0.7,
	feature.TaskIndustrialTraining: 0.5,
	feature.TaskHomeLeave:          0.5,
}

// Threshold returns the decision cutoff for a task.
func Threshold(task feature.Task) float64 {
	return thresholds[task]
}

// Result is one scoring outcome.
type Result struct {
	Task      feature.Task `json:"task"`
	Score     float64      `json:"score"`
	Threshold float64      `json:"threshold"`
	Eligible  bool         `json:"eligible"`
	Strategy  string       `json:"strategy"`
}

// Service scores rows, preferring a loaded model artifact and falling back
// to the statistical formula when none exists.
type Service struct {
	registry *ModelRegistry
	logger   *internal.Logger
}

// NewService creates a scoring service over the given registry.
func NewService(registry *ModelRegistry, logger *internal.Logger) *Service {
	return &Service{registry: registry, logger: logger}
}

// Score runs one task against one row.
func (s *Service) Score(task feature.Task, row feature.Row) (*Result, error) {
	if _, err := feature.ParseTask(string(task)); err != nil {
		return nil, err
	}

	score, strategy, err := s.score(task, row)
	if err != nil {
		return nil, err
	}

	threshold := Threshold(task)
	return &Result{
		Task:      task,
		Score:     score,
		Threshold: threshold,
		Eligible:  score > threshold,
		Strategy:  strategy,
	}, nil
}

// Status reports the active strategy per task.
func (s *Service) Status() map[feature.Task]string {
	return s.registry.Status()
}

func (s *Service) score(task feature.Task, row feature.Row) (float64, string, error) {
	model, err := s.registry.Get(task)
	if err != nil {
		if !core.IsArtifactMissing(err) {
			return 0, "", err
		}
		score, ferr := fallbackScore(task, row)
		return score, StrategyFallback, ferr
	}

	vec, err := model.Spec.Vector(row)
	if err != nil {
		return 0, "", err
	}
	score, err := model.Score(vec)
	if err != nil {
		return 0, "", err
	}
	return score, StrategyModel, nil
}
