package scoring

import (
	"sync"

	"rehabengine/domain/core"
	"rehabengine/domain/feature"
	"rehabengine/internal"
)

// ModelRegistry loads model artifacts lazily and caches them. It is an
// explicit handle constructed in main and injected into services; there is
// no package-level instance. Safe for concurrent use.
type ModelRegistry struct {
	dir    string
	logger *internal.Logger

	mu      sync.Mutex
	models  map[feature.Task]*Model
	missing map[feature.Task]bool
}

// NewModelRegistry creates a registry over the given artifacts directory.
func NewModelRegistry(dir string, logger *internal.Logger) *ModelRegistry {
	return &ModelRegistry{
		dir:     dir,
		logger:  logger,
		models:  make(map[feature.Task]*Model),
		missing: make(map[feature.Task]bool),
	}
}

// Get returns the loaded model for a task, loading it on first use. Missing
// artifacts are remembered so the warning is logged once, not per request.
func (r *ModelRegistry) Get(task feature.Task) (*Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.models[task]; ok {
		return m, nil
	}
	if r.missing[task] {
		return nil, core.ErrArtifactMissing
	}

	m, err := loadModel(r.dir, task)
	if err != nil {
		if core.IsArtifactMissing(err) {
			r.missing[task] = true
			r.logger.Warn("No model artifact for task %s, using statistical fallback: %v", task, err)
		}
		return nil, err
	}

	r.models[task] = m
	r.logger.Info("Loaded model artifact for task %s from %s", task, r.dir)
	return m, nil
}

// Status reports per-task artifact availability without triggering loads for
// tasks already probed.
func (r *ModelRegistry) Status() map[feature.Task]string {
	out := make(map[feature.Task]string, len(feature.Tasks))
	for _, task := range feature.Tasks {
		if _, err := r.Get(task); err != nil {
			out[task] = "statistical_fallback"
		} else {
			out[task] = "model"
		}
	}
	return out
}
