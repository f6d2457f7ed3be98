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

// profileRepository implements the ProfileRepository interface
type profileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB) ports.ProfileRepository {
	return &profileRepository{db: db}
}

// SaveBatch inserts all profiles of one generation run in a transaction.
func (r *profileRepository) SaveBatch(ctx context.Context, runID core.RunID, profiles []inmate.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO inmate_profiles (
		inmate_id, run_id, booking_number, first_name, last_name, gender, age,
		education_level, crime_type, sentence_length_months, time_served_months,
		remaining_sentence_months, security_level, facility, zone,
		behavior_score, discipline_score, risk_score, prior_convictions,
		institutional_violations, has_substance_abuse, has_mental_health_issues,
		programs_completed, programs_enrolled, total_attendance_rate,
		admission_date, parole_eligibility_date
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
	)`

	for i := range profiles {
		p := &profiles[i]
		_, err := tx.ExecContext(ctx, query,
			p.InmateID, runID, p.BookingNumber, p.FirstName, p.LastName, p.Gender, p.Age,
			p.EducationLevel, p.CrimeType, p.SentenceLengthMonths, p.TimeServedMonths,
			p.RemainingSentenceMonths, p.SecurityLevel, p.Facility, p.Zone,
			p.BehaviorScore, p.DisciplineScore, p.RiskScore, p.PriorConvictions,
			p.InstitutionalViolations, p.HasSubstanceAbuse, p.HasMentalHealthIssues,
			p.ProgramsCompleted, p.ProgramsEnrolled, p.TotalAttendanceRate,
			p.AdmissionDate, p.ParoleEligibilityDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert profile %s: %w", p.InmateID, err)
		}
	}

	return tx.Commit()
}

const profileColumns = `
	inmate_id, booking_number, first_name, last_name, gender, age,
	education_level, crime_type, sentence_length_months, time_served_months,
	remaining_sentence_months, security_level, facility, zone,
	behavior_score, discipline_score, risk_score, prior_convictions,
	institutional_violations, has_substance_abuse, has_mental_health_issues,
	programs_completed, programs_enrolled, total_attendance_rate,
	admission_date, parole_eligibility_date`

func scanProfile(row sqlx.ColScanner) (*inmate.Profile, error) {
	var p inmate.Profile
	err := row.Scan(
		&p.InmateID, &p.BookingNumber, &p.FirstName, &p.LastName, &p.Gender, &p.Age,
		&p.EducationLevel, &p.CrimeType, &p.SentenceLengthMonths, &p.TimeServedMonths,
		&p.RemainingSentenceMonths, &p.SecurityLevel, &p.Facility, &p.Zone,
		&p.BehaviorScore, &p.DisciplineScore, &p.RiskScore, &p.PriorConvictions,
		&p.InstitutionalViolations, &p.HasSubstanceAbuse, &p.HasMentalHealthIssues,
		&p.ProgramsCompleted, &p.ProgramsEnrolled, &p.TotalAttendanceRate,
		&p.AdmissionDate, &p.ParoleEligibilityDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves the most recently stored profile for an inmate.
func (r *profileRepository) GetByID(ctx context.Context, id core.InmateID) (*inmate.Profile, error) {
	query := `SELECT` + profileColumns + `
	FROM inmate_profiles WHERE inmate_id = $1
	ORDER BY run_id DESC LIMIT 1`

	p, err := scanProfile(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("inmate profile", id.String())
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// ListByRun pages through the profiles of one generation run.
func (r *profileRepository) ListByRun(ctx context.Context, runID core.RunID, limit, offset int) ([]*inmate.Profile, error) {
	query := `SELECT` + profileColumns + `
	FROM inmate_profiles WHERE run_id = $1
	ORDER BY inmate_id
	LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, runID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var out []*inmate.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountByRun reports how many profiles a run stored.
func (r *profileRepository) CountByRun(ctx context.Context, runID core.RunID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM inmate_profiles WHERE run_id = $1`, runID)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}
