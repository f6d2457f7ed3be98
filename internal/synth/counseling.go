package synth

import (
	"fmt"
	"strings"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

var positiveNoteTemplates = []string{
	"Inmate shows excellent progress. Engaged positively in session. Demonstrates good coping skills.",
	"Very cooperative today. Discussed future goals and employment. Showing reduced anxiety.",
	"Strong session. Inmate is taking responsibility for actions. Working well on rehabilitation goals.",
	"Positive attitude observed. Making concrete plans for release. Family relationships improving.",
	"Excellent engagement. Completed all assigned exercises. Ready to progress to next phase.",
}

var neutralNoteTemplates = []string{
	"Standard session. Inmate participated adequately. No significant changes noted.",
	"Discussed daily routine and challenges. Maintaining stable behavior. Continue monitoring.",
	"Regular check-in completed. No major concerns. Progressing as expected.",
	"Session focused on routine issues. Inmate cooperative but reserved. Standard progress.",
	"Covered program requirements. Inmate understands expectations. Continue current plan.",
}

var negativeNoteTemplates = []string{
	"Difficult session. Inmate resistant to feedback. Showing signs of frustration and anger.",
	"Poor engagement today. Refusing to discuss important issues. May need intervention.",
	"Concerning behavior observed. Inmate withdrew from conversation. Risk factors present.",
	"Minimal cooperation. Discussed rule violations. Appears unmotivated for change.",
	"Challenging session. Inmate defensive and hostile. Recommend increased supervision.",
}

var (
	sessionTypes   = []string{"individual", "group", "crisis", "family"}
	riskIndicators = []string{"aggression", "self_harm", "substance_relapse", "isolation", "non_compliance"}
)

func (g *Generator) generateCounselingNotes(profiles []inmate.Profile) []inmate.CounselingNote {
	var records []inmate.CounselingNote
	noteID := 0

	for i := range profiles {
		p := &profiles[i]

		sessions := g.cfg.AvgNotesPerInmate
		if p.HasMentalHealthIssues {
			sessions = int(float64(g.cfg.AvgNotesPerInmate) * 1.5)
		}

		for n := 0; n < sessions; n++ {
			sessionDate := g.daysAgo(g.s.intBetween(1, p.TimeServedMonths*30))

			// Sentiment tracks the behavior score tier.
			var sentiment inmate.Sentiment
			switch {
			case p.BehaviorScore > 70:
				if g.s.chance(0.7) {
					sentiment = inmate.SentimentPositive
				} else {
					sentiment = inmate.SentimentNeutral
				}
			case p.BehaviorScore > 40:
				switch g.s.weighted([]float64{0.3, 0.5, 0.2}) {
				case 0:
					sentiment = inmate.SentimentPositive
				case 1:
					sentiment = inmate.SentimentNeutral
				default:
					sentiment = inmate.SentimentNegative
				}
			default:
				if g.s.chance(0.3) {
					sentiment = inmate.SentimentNeutral
				} else {
					sentiment = inmate.SentimentNegative
				}
			}

			var notes string
			var rating float64
			switch sentiment {
			case inmate.SentimentPositive:
				notes = g.s.pick(positiveNoteTemplates)
				rating = 6 + g.s.float()*4
			case inmate.SentimentNeutral:
				notes = g.s.pick(neutralNoteTemplates)
				rating = 4 + g.s.float()*4
			default:
				notes = g.s.pick(negativeNoteTemplates)
				rating = 1 + g.s.float()*4
			}

			indicators := ""
			if sentiment == inmate.SentimentNegative {
				indicators = strings.Join(g.sampleIndicators(g.s.intBetween(1, 3)), ", ")
			}

			rec := inmate.CounselingNote{
				NoteID:          core.FormatRecordID("NOTE", noteID),
				InmateID:        p.InmateID,
				SessionDate:     sessionDate,
				CounselorID:     fmt.Sprintf("COUN%03d", g.s.intBetween(1, 20)),
				SessionType:     g.s.pick(sessionTypes),
				DurationMinutes: []int{30, 45, 60, 90}[g.s.intBetween(0, 3)],
				Notes:           notes,
				Sentiment:       sentiment,
				RiskIndicators:  indicators,
				ProgressRating:  rating,
				NextSessionDate: sessionDate.AddDate(0, 0, g.s.intBetween(7, 30)),
			}

			records = append(records, rec)
			noteID++
		}
	}

	return records
}

// sampleIndicators draws k distinct risk indicators in catalog order.
func (g *Generator) sampleIndicators(k int) []string {
	if k >= len(riskIndicators) {
		k = len(riskIndicators)
	}
	chosen := make(map[int]bool, k)
	for len(chosen) < k {
		chosen[g.s.intBetween(0, len(riskIndicators)-1)] = true
	}
	out := make([]string, 0, k)
	for i, ind := range riskIndicators {
		if chosen[i] {
			out = append(out, ind)
		}
	}
	return out
}
