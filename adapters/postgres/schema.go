// Package postgres persists generated profiles and early-release assessments.
// Persistence is optional: when no DATABASE_URL is configured the service
// runs purely in-memory and this package is never constructed.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens and pings a postgres connection.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS inmate_profiles (
	inmate_id TEXT NOT NULL,
	run_id TEXT NOT NULL,
	booking_number TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	gender TEXT NOT NULL,
	age INT NOT NULL,
	education_level TEXT NOT NULL,
	crime_type TEXT NOT NULL,
	sentence_length_months INT NOT NULL,
	time_served_months INT NOT NULL,
	remaining_sentence_months INT NOT NULL,
	security_level TEXT NOT NULL,
	facility TEXT NOT NULL,
	zone TEXT NOT NULL,
	behavior_score DOUBLE PRECISION NOT NULL,
	discipline_score DOUBLE PRECISION NOT NULL,
	risk_score DOUBLE PRECISION NOT NULL,
	prior_convictions INT NOT NULL,
	institutional_violations INT NOT NULL,
	has_substance_abuse BOOLEAN NOT NULL,
	has_mental_health_issues BOOLEAN NOT NULL,
	programs_completed INT NOT NULL,
	programs_enrolled INT NOT NULL,
	total_attendance_rate DOUBLE PRECISION NOT NULL,
	admission_date DATE NOT NULL,
	parole_eligibility_date DATE,
	PRIMARY KEY (run_id, inmate_id)
);

CREATE TABLE IF NOT EXISTS early_release_assessments (
	record_id TEXT NOT NULL,
	run_id TEXT NOT NULL,
	inmate_id TEXT NOT NULL,
	assessment_date DATE NOT NULL,
	eligibility_score DOUBLE PRECISION NOT NULL,
	recommendation TEXT NOT NULL,
	behavior_score DOUBLE PRECISION NOT NULL,
	program_completion_count INT NOT NULL,
	discipline_score DOUBLE PRECISION NOT NULL,
	time_served_percentage DOUBLE PRECISION NOT NULL,
	risk_assessment DOUBLE PRECISION NOT NULL,
	community_support BOOLEAN NOT NULL,
	approved_by TEXT,
	approval_date DATE,
	PRIMARY KEY (run_id, record_id)
);

CREATE INDEX IF NOT EXISTS idx_assessments_inmate ON early_release_assessments (inmate_id);
CREATE INDEX IF NOT EXISTS idx_assessments_recommendation ON early_release_assessments (recommendation);
`

// Bootstrap creates the persistence schema if it does not exist.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return nil
}
