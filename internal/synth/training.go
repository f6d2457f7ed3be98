package synth

import (
	"fmt"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

type trainingProgram struct {
	skillLevels []string
	hours       float64
	demand      string
}

var trainingProgramNames = []string{
	"carpentry", "welding", "plumbing", "electrical",
	"automotive", "it_basics", "agriculture", "culinary",
}

var trainingPrograms = map[string]trainingProgram{
	"carpentry":   {skillLevels: []string{"beginner", "intermediate", "advanced"}, hours: 240, demand: "high"},
	"welding":     {skillLevels: []string{"beginner", "intermediate", "advanced"}, hours: 200, demand: "high"},
	"plumbing":    {skillLevels: []string{"beginner", "intermediate"}, hours: 180, demand: "medium"},
	"electrical":  {skillLevels: []string{"beginner", "intermediate", "advanced"}, hours: 260, demand: "high"},
	"automotive":  {skillLevels: []string{"beginner", "intermediate"}, hours: 220, demand: "medium"},
	"it_basics":   {skillLevels: []string{"beginner", "intermediate"}, hours: 160, demand: "high"},
	"agriculture": {skillLevels: []string{"beginner", "intermediate"}, hours: 180, demand: "medium"},
	"culinary":    {skillLevels: []string{"beginner", "intermediate"}, hours: 200, demand: "medium"},
}

const trainingParticipationRate = 0.3

func (g *Generator) generateIndustrialTraining(profiles []inmate.Profile) []inmate.IndustrialTrainingRecord {
	var records []inmate.IndustrialTrainingRecord
	trainingID := 0

	for i := range profiles {
		p := &profiles[i]
		if !g.s.chance(trainingParticipationRate) {
			continue
		}

		count := g.s.intBetween(1, 3)
		for n := 0; n < count; n++ {
			name := g.s.pick(trainingProgramNames)
			info := trainingPrograms[name]

			skillLevel := g.s.pick(info.skillLevels)

			daysAgo := g.s.intBetween(30, p.TimeServedMonths*30)
			if p.TimeServedMonths*30 < 30 {
				daysAgo = 30
			}
			startDate := g.daysAgo(daysAgo)

			// Good behavior predicts both progress and completion.
			var hoursCompleted float64
			var completed bool
			if p.BehaviorScore > 60 {
				hoursCompleted = g.s.uniform(0.6, 1.0) * info.hours
				completed = g.s.chance(0.7)
			} else {
				hoursCompleted = g.s.uniform(0.2, 0.6) * info.hours
				completed = g.s.chance(0.3)
			}

			rating := 4 + (p.BehaviorScore/100)*6
			rating = clip(rating+g.s.normal(0, 1), 1, 10)

			potential := "low"
			if rating > 7 {
				potential = "high"
			} else if rating > 4 {
				potential = "medium"
			}

			feedback := "Needs improvement"
			if rating > 7 {
				feedback = "Excellent"
			} else if rating > 4 {
				feedback = "Good"
			}

			rec := inmate.IndustrialTrainingRecord{
				TrainingID:          core.FormatRecordID("TRN", trainingID),
				InmateID:            p.InmateID,
				TrainingProgram:     name,
				SkillLevel:          skillLevel,
				StartDate:           startDate,
				HoursCompleted:      hoursCompleted,
				CertificationEarned: completed && rating > 6,
				PerformanceRating:   rating,
				EmploymentPotential: potential,
				IndustryDemand:      info.demand,
				InstructorFeedback:  fmt.Sprintf("%s performance in %s", feedback, name),
			}
			if completed {
				end := startDate.AddDate(0, 0, int(info.hours/4))
				rec.EndDate = &end
			}

			records = append(records, rec)
			trainingID++
		}
	}

	return records
}
