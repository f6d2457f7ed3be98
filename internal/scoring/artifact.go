// Package scoring produces [0,1] suitability scores for the prediction
// tasks. Two strategies exist: a linear model loaded from disk artifacts,
// and a deterministic statistical fallback used whenever no artifact is
// available. Artifact absence is never fatal.
package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"rehabengine/domain/core"
	"rehabengine/domain/feature"
)

// ModelArtifact is the serialized linear model for one task.
type ModelArtifact struct {
	Task      string    `json:"task"`
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// ScalerArtifact carries the feature standardization statistics the model
// was trained with.
type ScalerArtifact struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Model is a loaded artifact pair ready to score. Read-only after load.
type Model struct {
	Task   feature.Task
	Spec   feature.Spec
	model  ModelArtifact
	scaler ScalerArtifact
}

// Score standardizes the vector and applies the logistic linear model.
func (m *Model) Score(vec []float64) (float64, error) {
	if len(vec) != len(m.model.Weights) {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(vec), len(m.model.Weights))
	}
	z := m.model.Intercept
	for i, x := range vec {
		std := m.scaler.Std[i]
		if std == 0 {
			std = 1
		}
		z += m.model.Weights[i] * ((x - m.scaler.Mean[i]) / std)
	}
	return 1 / (1 + math.Exp(-z)), nil
}

// loadModel reads the artifact pair for a task from dir. A missing file maps
// to ErrArtifactMissing so callers can fall back instead of failing.
func loadModel(dir string, task feature.Task) (*Model, error) {
	spec, err := feature.SpecFor(task)
	if err != nil {
		return nil, err
	}

	var model ModelArtifact
	if err := readJSON(filepath.Join(dir, fmt.Sprintf("%s_model.json", task)), &model); err != nil {
		return nil, err
	}
	var scaler ScalerArtifact
	if err := readJSON(filepath.Join(dir, fmt.Sprintf("%s_scaler.json", task)), &scaler); err != nil {
		return nil, err
	}

	n := len(spec.Columns)
	if len(model.Weights) != n || len(scaler.Mean) != n || len(scaler.Std) != n {
		return nil, fmt.Errorf("artifact for task %s does not match the %d-column feature layout", task, n)
	}

	return &Model{Task: task, Spec: spec, model: model, scaler: scaler}, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", core.ErrArtifactMissing, path)
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
