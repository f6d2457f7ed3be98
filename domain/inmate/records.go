package inmate

import (
	"fmt"
	"time"

	"rehabengine/domain/core"
)

// Severity is the ordinal incident severity scale
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

// SeverityPoints is the fixed severity-to-deducted-points mapping.
var SeverityPoints = map[Severity]int{
	SeverityMinor:    5,
	SeverityModerate: 15,
	SeveritySevere:   30,
	SeverityCritical: 50,
}

// BehavioralRecord is a disciplinary incident tied to one inmate.
type BehavioralRecord struct {
	RecordID           core.ID       `json:"record_id"`
	InmateID           core.InmateID `json:"inmate_id"`
	IncidentDate       time.Time     `json:"incident_date"`
	IncidentType       string        `json:"incident_type"`
	Severity           Severity      `json:"severity"`
	Description        string        `json:"description"`
	DisciplinaryAction string        `json:"disciplinary_action"`
	PointsDeducted     int           `json:"points_deducted"`
	Resolved           bool          `json:"resolved"`
	ResolutionDate     *time.Time    `json:"resolution_date,omitempty"`
}

// ProgramStatus is the lifecycle state of a program enrollment
type ProgramStatus string

const (
	StatusEnrolled   ProgramStatus = "enrolled"
	StatusInProgress ProgramStatus = "in_progress"
	StatusCompleted  ProgramStatus = "completed"
	StatusDroppedOut ProgramStatus = "dropped_out"
)

// ProgramOutcome is one inmate's participation record in one program.
type ProgramOutcome struct {
	OutcomeID             core.ID       `json:"outcome_id"`
	InmateID              core.InmateID `json:"inmate_id"`
	ProgramName           string        `json:"program_name"`
	ProgramType           string        `json:"program_type"`
	StartDate             time.Time     `json:"start_date"`
	EndDate               *time.Time    `json:"end_date,omitempty"`
	Status                ProgramStatus `json:"status"`
	CompletionPercentage  float64       `json:"completion_percentage"`
	AttendanceRate        float64       `json:"attendance_rate"`
	PerformanceScore      *float64      `json:"performance_score,omitempty"`
	BehavioralImprovement *float64      `json:"behavioral_improvement,omitempty"`
	InstructorNotes       string        `json:"instructor_notes"`
	CertificateAwarded    bool          `json:"certificate_awarded"`
}

// Sentiment labels a counseling note's tone. Note text is always drawn from
// the template pool matching the sentiment so text features and labels agree.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// CounselingNote is a counseling session record with a sentiment-consistent
// free-text note.
type CounselingNote struct {
	NoteID          core.ID       `json:"note_id"`
	InmateID        core.InmateID `json:"inmate_id"`
	SessionDate     time.Time     `json:"session_date"`
	CounselorID     string        `json:"counselor_id"`
	SessionType     string        `json:"session_type"`
	DurationMinutes int           `json:"duration_minutes"`
	Notes           string        `json:"notes"`
	Sentiment       Sentiment     `json:"sentiment"`
	RiskIndicators  string        `json:"risk_indicators"`
	ProgressRating  float64       `json:"progress_rating"`
	NextSessionDate time.Time     `json:"next_session_date"`
}

// ReleaseRecommendation is the three-way early-release outcome
type ReleaseRecommendation string

const (
	ReleaseEligible      ReleaseRecommendation = "eligible"
	ReleasePendingReview ReleaseRecommendation = "pending_review"
	ReleaseNotEligible   ReleaseRecommendation = "not_eligible"
)

// ReleaseRecommendations lists every recommendation value in stable order.
var ReleaseRecommendations = []ReleaseRecommendation{
	ReleaseEligible,
	ReleasePendingReview,
	ReleaseNotEligible,
}

// ParseReleaseRecommendation validates a recommendation string.
func ParseReleaseRecommendation(s string) (ReleaseRecommendation, error) {
	r := ReleaseRecommendation(s)
	for _, known := range ReleaseRecommendations {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownRecommendation, s)
}

// EarlyReleaseAssessment is derived from an inmate's existing attributes via
// the documented weighted formula. Only produced for inmates with at least
// six months served.
type EarlyReleaseAssessment struct {
	RecordID               core.ID               `json:"record_id"`
	InmateID               core.InmateID         `json:"inmate_id"`
	AssessmentDate         time.Time             `json:"assessment_date"`
	EligibilityScore       float64               `json:"eligibility_score"` // [0,1]
	Recommendation         ReleaseRecommendation `json:"recommendation"`
	BehaviorScore          float64               `json:"behavior_score"`
	ProgramCompletionCount int                   `json:"program_completion_count"`
	DisciplineScore        float64               `json:"discipline_score"`
	TimeServedPercentage   float64               `json:"time_served_percentage"`
	RiskAssessment         float64               `json:"risk_assessment"`
	VictimImpactStatement  string                `json:"victim_impact_statement,omitempty"`
	CommunitySupport       bool                  `json:"community_support"`
	ApprovedBy             string                `json:"approved_by,omitempty"`
	ApprovalDate           *time.Time            `json:"approval_date,omitempty"`
}

// IndustrialTrainingRecord is a vocational training enrollment.
type IndustrialTrainingRecord struct {
	TrainingID          core.ID       `json:"training_id"`
	InmateID            core.InmateID `json:"inmate_id"`
	TrainingProgram     string        `json:"training_program"`
	SkillLevel          string        `json:"skill_level"`
	StartDate           time.Time     `json:"start_date"`
	EndDate             *time.Time    `json:"end_date,omitempty"`
	HoursCompleted      float64       `json:"hours_completed"`
	CertificationEarned bool          `json:"certification_earned"`
	PerformanceRating   float64       `json:"performance_rating"` // [1,10]
	EmploymentPotential string        `json:"employment_potential"`
	IndustryDemand      string        `json:"industry_demand"`
	InstructorFeedback  string        `json:"instructor_feedback"`
}

// LeaveType categorizes home leave requests
type LeaveType string

const (
	LeaveEmergency   LeaveType = "emergency"
	LeaveFamilyVisit LeaveType = "family_visit"
	LeaveMedical     LeaveType = "medical"
	LeaveEarned      LeaveType = "earned"
)

// LeaveStatus is the approval state of a home leave request
type LeaveStatus string

const (
	LeaveApproved  LeaveStatus = "approved"
	LeaveDenied    LeaveStatus = "denied"
	LeaveCompleted LeaveStatus = "completed"
	LeavePending   LeaveStatus = "pending"
)

// HomeLeaveRecord is a furlough request. Never generated for inmates with a
// behavior score below 50.
type HomeLeaveRecord struct {
	LeaveID             core.ID       `json:"leave_id"`
	InmateID            core.InmateID `json:"inmate_id"`
	RequestDate         time.Time     `json:"request_date"`
	LeaveType           LeaveType     `json:"leave_type"`
	StartDate           time.Time     `json:"start_date"`
	EndDate             time.Time     `json:"end_date"`
	DurationDays        int           `json:"duration_days"`
	Reason              string        `json:"reason"`
	ApprovalStatus      LeaveStatus   `json:"approval_status"`
	ApprovedBy          string        `json:"approved_by,omitempty"`
	ApprovalDate        *time.Time    `json:"approval_date,omitempty"`
	ReturnedOnTime      *bool         `json:"returned_on_time,omitempty"`
	IncidentDuringLeave bool          `json:"incident_during_leave"`
	Notes               string        `json:"notes"`
}

// RehabStation is fixed reference data describing a rehabilitation facility.
type RehabStation struct {
	StationID         string  `json:"station_id"`
	StationName       string  `json:"station_name"`
	Location          string  `json:"location"`
	Zone              string  `json:"zone"`
	Capacity          int     `json:"capacity"`
	CurrentOccupancy  int     `json:"current_occupancy"`
	FacilityType      string  `json:"facility_type"`
	Specializations   string  `json:"specializations"`
	SecurityLevel     string  `json:"security_level"`
	AvailablePrograms string  `json:"available_programs"`
	StaffCount        int     `json:"staff_count"`
	Rating            float64 `json:"rating"`
}
