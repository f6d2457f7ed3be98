package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rehabengine/adapters/excel"
	"rehabengine/domain/core"
	"rehabengine/domain/dataset"
	"rehabengine/domain/inmate"
	"rehabengine/internal"
	"rehabengine/internal/config"
	apperrors "rehabengine/internal/errors"
	"rehabengine/internal/profiling"
	"rehabengine/internal/synth"
	"rehabengine/ports"
)

// GenerationService runs dataset generation, keeps snapshots in the store,
// and optionally persists profiles and assessments.
type GenerationService struct {
	store          *dataset.Store
	cfg            config.GeneratorConfig
	profileRepo    ports.ProfileRepository    // nil when persistence is disabled
	assessmentRepo ports.AssessmentRepository // nil when persistence is disabled
	logger         *internal.Logger
}

// NewGenerationService wires the generation service. Repositories may be nil.
func NewGenerationService(
	store *dataset.Store,
	cfg config.GeneratorConfig,
	profileRepo ports.ProfileRepository,
	assessmentRepo ports.AssessmentRepository,
	logger *internal.Logger,
) *GenerationService {
	return &GenerationService{
		store:          store,
		cfg:            cfg,
		profileRepo:    profileRepo,
		assessmentRepo: assessmentRepo,
		logger:         logger,
	}
}

// GenerateRequest are the caller-facing generation parameters.
type GenerateRequest struct {
	Count int    `json:"count"`
	Seed  int64  `json:"seed"`
	Name  string `json:"name"`
}

// GenerateResult summarizes one completed generation run.
type GenerateResult struct {
	RunID       core.RunID     `json:"run_id"`
	Name        string         `json:"name"`
	Seed        int64          `json:"seed"`
	InmateCount int            `json:"inmate_count"`
	Tables      map[string]int `json:"tables"`
	Persisted   bool           `json:"persisted"`
}

// Generate runs one synchronous generation and stores the snapshot.
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Count == 0 {
		req.Count = s.cfg.DefaultInmates
	}
	if req.Count < s.cfg.MinInmates || req.Count > s.cfg.MaxInmates {
		return nil, apperrors.ValidationError(
			fmt.Sprintf("count must be between %d and %d, got %d", s.cfg.MinInmates, s.cfg.MaxInmates, req.Count))
	}
	if req.Seed == 0 {
		req.Seed = s.cfg.DefaultSeed
	}
	if req.Name == "" {
		req.Name = fmt.Sprintf("run-%s", time.Now().UTC().Format("20060102-150405"))
	}

	gcfg := synth.DefaultConfig()
	gcfg.Inmates = req.Count
	gcfg.Seed = req.Seed

	gen, err := synth.New(gcfg)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to configure generator")
	}

	s.logger.Info("Generating dataset %q: %d inmates, seed %d", req.Name, req.Count, req.Seed)
	start := time.Now()
	snap, err := gen.GenerateAll()
	if err != nil {
		return nil, apperrors.Wrap(err, "generation failed")
	}
	s.logger.Info("Generated dataset %q in %s", req.Name, time.Since(start).Round(time.Millisecond))

	s.store.Put(req.Name, snap)

	persisted := false
	if s.profileRepo != nil && s.assessmentRepo != nil {
		if err := s.persist(ctx, snap); err != nil {
			// Persistence is best-effort; the in-memory snapshot is the
			// source of truth for scoring.
			s.logger.Warn("Failed to persist run %s: %v", snap.RunID, err)
		} else {
			persisted = true
		}
	}

	return &GenerateResult{
		RunID:       snap.RunID,
		Name:        req.Name,
		Seed:        snap.Seed,
		InmateCount: snap.InmateCount,
		Tables:      snap.Summary(),
		Persisted:   persisted,
	}, nil
}

func (s *GenerationService) persist(ctx context.Context, snap *dataset.Snapshot) error {
	if err := s.profileRepo.SaveBatch(ctx, snap.RunID, snap.Profiles); err != nil {
		return err
	}
	return s.assessmentRepo.SaveBatch(ctx, snap.RunID, snap.Assessments)
}

// Export writes a stored snapshot's tables to the configured output dir.
func (s *GenerationService) Export(name string) (string, error) {
	snap, err := s.store.Get(name)
	if err != nil {
		return "", err
	}
	writer := excel.NewWriter(s.cfg.OutputDir)
	if err := writer.ExportAll(snap); err != nil {
		return "", apperrors.Wrap(err, "export failed")
	}
	return s.cfg.OutputDir, nil
}

// Profile computes per-table summary statistics for a stored snapshot.
func (s *GenerationService) Profile(name string) ([]profiling.TableSummary, error) {
	snap, err := s.store.Get(name)
	if err != nil {
		return nil, err
	}
	return profiling.SummarizeSnapshot(snap), nil
}

// Upload parses an uploaded table file into the named snapshot slot. The
// uploaded table replaces the same-named table of the current snapshot when
// one exists, otherwise it starts a new upload-only snapshot.
func (s *GenerationService) Upload(datasetName, tableName string, content []byte, format string) (*dataset.Table, error) {
	if !isKnownTable(tableName) {
		return nil, apperrors.UploadError(fmt.Sprintf("unknown table name: %s", tableName))
	}

	tbl, err := excel.ParseUpload(tableName, content, format)
	if err != nil {
		return nil, err
	}

	snap, err := s.store.Get(datasetName)
	if err != nil {
		snap = dataset.NewSnapshot(core.RunID(core.NewID()), 0, nil, nil, map[string]*dataset.Table{})
		s.store.Put(datasetName, snap)
	}
	snap.Tables[tableName] = tbl

	s.logger.Info("Uploaded table %s into dataset %q (%d rows)", tableName, datasetName, len(tbl.Rows))
	return tbl, nil
}

// LookupProfile returns an inmate's profile, preferring the current snapshot
// and falling back to persisted runs when a repository is configured.
func (s *GenerationService) LookupProfile(ctx context.Context, id core.InmateID) (*inmate.Profile, error) {
	if snap, err := s.store.Current(); err == nil {
		if p, err := snap.ProfileByID(id); err == nil {
			return p, nil
		}
	}
	if s.profileRepo == nil {
		return nil, core.NewNotFoundError("inmate", id.String())
	}
	return s.profileRepo.GetByID(ctx, id)
}

// LookupAssessment mirrors LookupProfile for early-release assessments.
func (s *GenerationService) LookupAssessment(ctx context.Context, id core.InmateID) (*inmate.EarlyReleaseAssessment, error) {
	if snap, err := s.store.Current(); err == nil {
		if a, err := snap.AssessmentByInmate(id); err == nil {
			return a, nil
		}
	}
	if s.assessmentRepo == nil {
		return nil, core.NewNotFoundError("early release assessment for inmate", id.String())
	}
	return s.assessmentRepo.GetByInmate(ctx, id)
}

// ListAssessments returns assessments carrying one recommendation, highest
// eligibility score first. Persisted runs are queried when a repository is
// configured, otherwise the current snapshot is filtered.
func (s *GenerationService) ListAssessments(ctx context.Context, rec inmate.ReleaseRecommendation, limit int) ([]*inmate.EarlyReleaseAssessment, error) {
	if s.assessmentRepo != nil {
		return s.assessmentRepo.ListByRecommendation(ctx, rec, limit)
	}

	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	var out []*inmate.EarlyReleaseAssessment
	for i := range snap.Assessments {
		if snap.Assessments[i].Recommendation == rec {
			out = append(out, &snap.Assessments[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EligibilityScore > out[j].EligibilityScore
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RunProfiles pages through the persisted profiles of one generation run.
// Only available with persistence enabled; snapshots are keyed by name, not
// run ID, so historical runs live in the database alone.
func (s *GenerationService) RunProfiles(ctx context.Context, runID core.RunID, limit, offset int) ([]*inmate.Profile, int, error) {
	if s.profileRepo == nil {
		return nil, 0, apperrors.DatabaseError("persistence is not configured")
	}
	total, err := s.profileRepo.CountByRun(ctx, runID)
	if err != nil {
		return nil, 0, err
	}
	profiles, err := s.profileRepo.ListByRun(ctx, runID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// List returns the stored snapshot names.
func (s *GenerationService) List() []string {
	return s.store.Names()
}

// Get returns a stored snapshot.
func (s *GenerationService) Get(name string) (*dataset.Snapshot, error) {
	return s.store.Get(name)
}

// Current returns the most recent snapshot.
func (s *GenerationService) Current() (*dataset.Snapshot, error) {
	return s.store.Current()
}

func isKnownTable(name string) bool {
	for _, t := range dataset.TableNames {
		if t == name {
			return true
		}
	}
	return false
}
