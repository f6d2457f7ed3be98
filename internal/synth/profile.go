package synth

import (
	"fmt"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

var (
	blocks          = []string{"A", "B", "C", "D"}
	educationLevels = []string{"Elementary", "High School", "GED", "Some College", "College"}

	securityLevels  = []string{"Minimum", "Medium", "Maximum"}
	securityWeights = []float64{0.3, 0.5, 0.2}

	priorConvictionWeights = []float64{0.3, 0.3, 0.2, 0.1, 0.07, 0.03} // 0..5
	violationWeights       = []float64{0.4, 0.3, 0.2, 0.07, 0.03}     // 0..4
)

func (g *Generator) generateProfiles() []inmate.Profile {
	profiles := make([]inmate.Profile, 0, g.cfg.Inmates)

	for i := 0; i < g.cfg.Inmates; i++ {
		crimeType := inmate.CrimeTypes[g.s.intBetween(0, len(inmate.CrimeTypes)-1)]
		crime := inmate.CrimeCatalog[crimeType]

		age := int(g.s.normal(35, 12))
		age = int(clip(float64(age), 18, 70))

		gender := inmate.GenderMale
		if !g.s.chance(0.92) {
			gender = inmate.GenderFemale
		}

		sentence := int(g.s.normal(crime.AvgSentenceMonths, crime.AvgSentenceMonths*0.3))
		sentence = int(clip(float64(sentence), 6, 240))

		served := g.s.intBetween(1, sentence)
		remaining := sentence - served

		admission := g.daysAgo(served * 30)

		timeFactor := float64(served) / float64(sentence)
		risk, behavior, discipline := deriveScores(g.s, crime, timeFactor)

		hasSubstance := g.s.chance(crime.SubstanceAbuse)
		hasMentalHealth := g.s.chance(crime.MentalHealth)

		programsCompleted := int(timeFactor * float64(g.s.intBetween(0, 5)))
		programsEnrolled := g.s.intBetween(0, 3)
		attendance := clip(0.5+timeFactor*0.3+g.s.uniform(-0.1, 0.1), 0, 1)

		priors := g.s.weighted(priorConvictionWeights)
		violations := g.s.weighted(violationWeights)

		facilityIdx := g.s.intBetween(0, len(inmate.Facilities)-1)

		p := inmate.Profile{
			InmateID:      core.FormatInmateID(i),
			BookingNumber: fmt.Sprintf("BK%d%05d", g.s.intBetween(2020, 2025), i),
			FirstName:     fmt.Sprintf("FirstName%d", i),
			LastName:      fmt.Sprintf("LastName%d", i),
			DateOfBirth:   g.daysAgo(age * 365),
			Gender:        gender,
			Age:           age,

			EducationLevel: inmate.EducationLevel(g.s.pick(educationLevels)),

			SentenceLengthMonths:    sentence,
			TimeServedMonths:        served,
			RemainingSentenceMonths: remaining,
			CrimeType:               crimeType,

			SecurityLevel: inmate.SecurityLevel(securityLevels[g.s.weighted(securityWeights)]),
			Facility:      inmate.Facilities[facilityIdx],
			Block:         g.s.pick(blocks),
			CellNumber:    iToStr(g.s.intBetween(1, 50)),
			Zone:          inmate.Zones[facilityIdx],

			BehaviorScore:   behavior,
			DisciplineScore: discipline,
			RiskScore:       risk,

			PriorConvictions:        priors,
			InstitutionalViolations: violations,

			HasSubstanceAbuse:        hasSubstance,
			HasMentalHealthIssues:    hasMentalHealth,
			RequiresMedicalAttention: g.s.chance(0.15),

			ProgramsCompleted:   programsCompleted,
			ProgramsEnrolled:    programsEnrolled,
			TotalAttendanceRate: attendance,

			AdmissionDate: admission,
		}

		// Parole eligibility at 70% of the remaining term, only when more
		// than six months remain.
		if remaining > 6 {
			pd := g.cfg.Now.AddDate(0, 0, int(float64(remaining)*30*0.7))
			p.ParoleEligibilityDate = &pd
		}

		profiles = append(profiles, p)
	}

	return profiles
}

// deriveScores computes the three correlated metrics from the crime profile
// and time served ratio. Risk tracks the offense's violence weight; behavior
// improves with time served; discipline tracks behavior.
func deriveScores(s *sampler, crime inmate.CrimeProfile, timeFactor float64) (risk, behavior, discipline float64) {
	risk = clip(0.3+crime.ViolenceRisk*0.4+s.normal(0, 0.15), 0.05, 0.95)
	behavior = clip(40+timeFactor*30+s.normal(0, 15), 0, 100)
	discipline = clip(behavior+s.normal(0, 10), 0, 100)
	return risk, behavior, discipline
}
