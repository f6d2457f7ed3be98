package feature

import (
	"strconv"

	"rehabengine/domain/inmate"
)

// FromProfile renders a typed profile as a Row covering every profile-derived
// feature column. Callers scoring the eligibility task add the behavioral
// aggregates (total_incidents, points_deducted) on top.
func FromProfile(p *inmate.Profile) Row {
	return Row{
		"inmate_id":                 p.InmateID.String(),
		"age":                       strconv.Itoa(p.Age),
		"education_level":           string(p.EducationLevel),
		"behavior_score":            formatFloat(p.BehaviorScore),
		"discipline_score":          formatFloat(p.DisciplineScore),
		"risk_score":                formatFloat(p.RiskScore),
		"programs_completed":        strconv.Itoa(p.ProgramsCompleted),
		"total_attendance_rate":     formatFloat(p.TotalAttendanceRate),
		"time_served_months":        strconv.Itoa(p.TimeServedMonths),
		"remaining_sentence_months": strconv.Itoa(p.RemainingSentenceMonths),
		"prior_convictions":         strconv.Itoa(p.PriorConvictions),
		"institutional_violations":  strconv.Itoa(p.InstitutionalViolations),
	}
}

// FromAssessment renders an early-release assessment plus the inmate fields
// the early-release task needs.
func FromAssessment(a *inmate.EarlyReleaseAssessment, p *inmate.Profile) Row {
	return Row{
		"inmate_id":                a.InmateID.String(),
		"behavior_score":           formatFloat(a.BehaviorScore),
		"discipline_score":         formatFloat(a.DisciplineScore),
		"program_completion_count": strconv.Itoa(a.ProgramCompletionCount),
		"time_served_percentage":   formatFloat(a.TimeServedPercentage),
		"risk_assessment":          formatFloat(a.RiskAssessment),
		"recommendation":           string(a.Recommendation),
		"age":                      strconv.Itoa(p.Age),
		"prior_convictions":        strconv.Itoa(p.PriorConvictions),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
