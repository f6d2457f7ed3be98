package ports

import (
	"context"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

// ProfileRepository defines persistence for generated inmate profiles
type ProfileRepository interface {
	SaveBatch(ctx context.Context, runID core.RunID, profiles []inmate.Profile) error
	GetByID(ctx context.Context, id core.InmateID) (*inmate.Profile, error)
	ListByRun(ctx context.Context, runID core.RunID, limit, offset int) ([]*inmate.Profile, error)
	CountByRun(ctx context.Context, runID core.RunID) (int, error)
}

// AssessmentRepository defines persistence for early-release assessments
type AssessmentRepository interface {
	SaveBatch(ctx context.Context, runID core.RunID, assessments []inmate.EarlyReleaseAssessment) error
	GetByInmate(ctx context.Context, id core.InmateID) (*inmate.EarlyReleaseAssessment, error)
	ListByRecommendation(ctx context.Context, recommendation inmate.ReleaseRecommendation, limit int) ([]*inmate.EarlyReleaseAssessment, error)
}
