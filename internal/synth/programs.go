package synth

import (
	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

// rehabPrograms maps generated program names to their type, as offered
// across the facilities.
var rehabProgramNames = []string{
	"substance_abuse_intensive",
	"substance_abuse_standard",
	"mental_health_therapy",
	"anger_management",
	"cognitive_behavioral",
	"vocational_carpentry",
	"vocational_welding",
	"vocational_it",
	"education_basic",
	"education_ged",
	"family_counseling",
}

var rehabProgramTypes = map[string]string{
	"substance_abuse_intensive": "Substance Abuse",
	"substance_abuse_standard":  "Substance Abuse",
	"mental_health_therapy":     "Mental Health",
	"anger_management":          "Behavioral",
	"cognitive_behavioral":      "Behavioral",
	"vocational_carpentry":      "Vocational",
	"vocational_welding":        "Vocational",
	"vocational_it":             "Vocational",
	"education_basic":           "Education",
	"education_ged":             "Education",
	"family_counseling":         "Counseling",
}

func (g *Generator) generateProgramOutcomes(profiles []inmate.Profile) []inmate.ProgramOutcome {
	var records []inmate.ProgramOutcome
	outcomeID := 0

	for i := range profiles {
		p := &profiles[i]
		total := p.ProgramsCompleted + p.ProgramsEnrolled
		if total == 0 {
			continue
		}

		for n := 0; n < total; n++ {
			name := g.s.pick(rehabProgramNames)

			daysAgo := g.s.intBetween(30, p.TimeServedMonths*30)
			if p.TimeServedMonths*30 < 30 {
				daysAgo = 30
			}
			startDate := g.daysAgo(daysAgo)

			// Status follows how long ago the program started.
			var status inmate.ProgramStatus
			switch {
			case daysAgo > 180:
				if g.s.chance(0.7) {
					status = inmate.StatusCompleted
				} else {
					status = inmate.StatusDroppedOut
				}
			case daysAgo > 90:
				switch g.s.weighted([]float64{0.5, 0.4, 0.1}) {
				case 0:
					status = inmate.StatusInProgress
				case 1:
					status = inmate.StatusCompleted
				default:
					status = inmate.StatusDroppedOut
				}
			default:
				if g.s.chance(0.4) {
					status = inmate.StatusEnrolled
				} else {
					status = inmate.StatusInProgress
				}
			}

			rec := inmate.ProgramOutcome{
				OutcomeID:   core.FormatRecordID("OUT", outcomeID),
				InmateID:    p.InmateID,
				ProgramName: name,
				ProgramType: rehabProgramTypes[name],
				StartDate:   startDate,
				Status:      status,
			}

			switch status {
			case inmate.StatusCompleted:
				end := startDate.AddDate(0, 0, g.s.intBetween(60, 180))
				rec.EndDate = &end
				rec.CompletionPercentage = 100
				rec.AttendanceRate = 0.7 + g.s.float()*0.3
				perf := 60 + g.s.float()*40
				rec.PerformanceScore = &perf
				rec.CertificateAwarded = g.s.chance(0.8)
			case inmate.StatusInProgress:
				rec.CompletionPercentage = 30 + g.s.float()*60
				rec.AttendanceRate = 0.6 + g.s.float()*0.3
				perf := 50 + g.s.float()*40
				rec.PerformanceScore = &perf
			case inmate.StatusDroppedOut:
				end := startDate.AddDate(0, 0, g.s.intBetween(14, 90))
				rec.EndDate = &end
				rec.CompletionPercentage = g.s.float() * 50
				rec.AttendanceRate = 0.2 + g.s.float()*0.4
				perf := 20 + g.s.float()*50
				rec.PerformanceScore = &perf
			case inmate.StatusEnrolled:
				// Nothing measured yet.
			}

			if status == inmate.StatusInProgress || status == inmate.StatusCompleted {
				imp := g.s.uniform(-10, 30)
				rec.BehavioralImprovement = &imp
			}

			if rec.CompletionPercentage > 70 {
				rec.InstructorNotes = "Student shows good progress"
			} else {
				rec.InstructorNotes = "Student shows moderate progress"
			}

			records = append(records, rec)
			outcomeID++
		}
	}

	return records
}
