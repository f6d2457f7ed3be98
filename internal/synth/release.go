package synth

import (
	"fmt"
	"math"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

// Early-release eligibility formula weights. The score is a weighted blend of
// normalized metrics plus small Gaussian noise, clipped to [0,1].
const (
	releaseBehaviorWeight   = 0.30
	releaseDisciplineWeight = 0.25
	releaseProgramWeight    = 0.20
	releaseRiskWeight       = 0.15
	releaseTimeWeight       = 0.10
	releaseNoiseSigma       = 0.05

	// Inmates below this many months served are not assessed at all.
	minServedForAssessment = 6
)

func (g *Generator) generateEarlyReleaseAssessments(profiles []inmate.Profile) []inmate.EarlyReleaseAssessment {
	var records []inmate.EarlyReleaseAssessment
	recordID := 0

	for i := range profiles {
		p := &profiles[i]
		if p.TimeServedMonths < minServedForAssessment {
			continue
		}

		servedPct := float64(p.TimeServedMonths) / float64(p.SentenceLengthMonths)

		score := p.BehaviorScore/100*releaseBehaviorWeight +
			p.DisciplineScore/100*releaseDisciplineWeight +
			math.Min(1, float64(p.ProgramsCompleted)/3)*releaseProgramWeight +
			(1-p.RiskScore)*releaseRiskWeight +
			math.Min(1, servedPct)*releaseTimeWeight
		score = clip(score+g.s.normal(0, releaseNoiseSigma), 0, 1)

		var recommendation inmate.ReleaseRecommendation
		var approved bool
		switch {
		case score > 0.7:
			recommendation = inmate.ReleaseEligible
			approved = g.s.chance(0.8)
		case score > 0.5:
			recommendation = inmate.ReleasePendingReview
			approved = g.s.chance(0.5)
		default:
			recommendation = inmate.ReleaseNotEligible
		}

		assessmentDate := g.daysAgo(g.s.intBetween(1, 90))

		rec := inmate.EarlyReleaseAssessment{
			RecordID:               core.FormatRecordID("ER", recordID),
			InmateID:               p.InmateID,
			AssessmentDate:         assessmentDate,
			EligibilityScore:       score,
			Recommendation:         recommendation,
			BehaviorScore:          p.BehaviorScore,
			ProgramCompletionCount: p.ProgramsCompleted,
			DisciplineScore:        p.DisciplineScore,
			TimeServedPercentage:   servedPct,
			RiskAssessment:         p.RiskScore,
			CommunitySupport:       g.s.chance(0.4),
		}
		if g.s.chance(0.6) {
			rec.VictimImpactStatement = "Reviewed"
		}
		if approved {
			rec.ApprovedBy = fmt.Sprintf("ADMIN%03d", g.s.intBetween(1, 10))
			ad := assessmentDate.AddDate(0, 0, g.s.intBetween(7, 30))
			rec.ApprovalDate = &ad
		}

		records = append(records, rec)
		recordID++
	}

	return records
}
