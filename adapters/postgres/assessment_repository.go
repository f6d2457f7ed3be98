package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
	"rehabengine/ports"
)

// assessmentRepository implements the AssessmentRepository interface
type assessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *sqlx.DB) ports.AssessmentRepository {
	return &assessmentRepository{db: db}
}

// SaveBatch inserts all assessments of one generation run in a transaction.
func (r *assessmentRepository) SaveBatch(ctx context.Context, runID core.RunID, assessments []inmate.EarlyReleaseAssessment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO early_release_assessments (
		record_id, run_id, inmate_id, assessment_date, eligibility_score,
		recommendation, behavior_score, program_completion_count,
		discipline_score, time_served_percentage, risk_assessment,
		community_support, approved_by, approval_date
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
	)`

	for i := range assessments {
		a := &assessments[i]
		approvedBy := sql.NullString{String: a.ApprovedBy, Valid: a.ApprovedBy != ""}
		_, err := tx.ExecContext(ctx, query,
			a.RecordID, runID, a.InmateID, a.AssessmentDate, a.EligibilityScore,
			a.Recommendation, a.BehaviorScore, a.ProgramCompletionCount,
			a.DisciplineScore, a.TimeServedPercentage, a.RiskAssessment,
			a.CommunitySupport, approvedBy, a.ApprovalDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assessment %s: %w", a.RecordID, err)
		}
	}

	return tx.Commit()
}

const assessmentColumns = `
	record_id, inmate_id, assessment_date, eligibility_score, recommendation,
	behavior_score, program_completion_count, discipline_score,
	time_served_percentage, risk_assessment, community_support,
	COALESCE(approved_by, '') AS approved_by, approval_date`

func scanAssessment(row sqlx.ColScanner) (*inmate.EarlyReleaseAssessment, error) {
	var a inmate.EarlyReleaseAssessment
	err := row.Scan(
		&a.RecordID, &a.InmateID, &a.AssessmentDate, &a.EligibilityScore, &a.Recommendation,
		&a.BehaviorScore, &a.ProgramCompletionCount, &a.DisciplineScore,
		&a.TimeServedPercentage, &a.RiskAssessment, &a.CommunitySupport,
		&a.ApprovedBy, &a.ApprovalDate,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByInmate retrieves the most recent stored assessment for an inmate.
func (r *assessmentRepository) GetByInmate(ctx context.Context, id core.InmateID) (*inmate.EarlyReleaseAssessment, error) {
	query := `SELECT` + assessmentColumns + `
	FROM early_release_assessments WHERE inmate_id = $1
	ORDER BY run_id DESC LIMIT 1`

	a, err := scanAssessment(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("early release assessment", id.String())
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return a, nil
}

// ListByRecommendation returns assessments with a given recommendation.
func (r *assessmentRepository) ListByRecommendation(ctx context.Context, recommendation inmate.ReleaseRecommendation, limit int) ([]*inmate.EarlyReleaseAssessment, error) {
	query := `SELECT` + assessmentColumns + `
	FROM early_release_assessments WHERE recommendation = $1
	ORDER BY eligibility_score DESC
	LIMIT $2`

	rows, err := r.db.QueryxContext(ctx, query, recommendation, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var out []*inmate.EarlyReleaseAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
