package synth

import (
	"fmt"
	"strings"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

var (
	incidentTypes = []string{"violence", "disobedience", "theft", "substance_use", "rule_violation", "contraband"}

	severities = []inmate.Severity{
		inmate.SeverityMinor,
		inmate.SeverityModerate,
		inmate.SeveritySevere,
		inmate.SeverityCritical,
	}
	highRiskSeverityWeights = []float64{0.1, 0.3, 0.4, 0.2}
	lowRiskSeverityWeights  = []float64{0.4, 0.4, 0.15, 0.05}

	severeActions = []string{
		"verbal_warning", "written_warning", "loss_of_privileges",
		"solitary_confinement", "program_suspension",
	}
)

const maxIncidentsPerInmate = 15

func (g *Generator) generateBehavioralRecords(profiles []inmate.Profile) []inmate.BehavioralRecord {
	var records []inmate.BehavioralRecord
	recordID := 0

	for i := range profiles {
		p := &profiles[i]

		// Higher risk draws more incidents.
		count := g.s.poisson(g.cfg.AvgIncidentsPerInmate * p.RiskScore)
		if count > maxIncidentsPerInmate {
			count = maxIncidentsPerInmate
		}

		for n := 0; n < count; n++ {
			incidentDate := g.daysAgo(g.s.intBetween(1, p.TimeServedMonths*30))

			weights := lowRiskSeverityWeights
			if p.RiskScore > 0.7 {
				weights = highRiskSeverityWeights
			}
			severity := severities[g.s.weighted(weights)]

			action := "verbal_warning"
			if severity == inmate.SeveritySevere || severity == inmate.SeverityCritical {
				action = g.s.pick(severeActions)
			}

			resolved := g.s.chance(0.8)
			rec := inmate.BehavioralRecord{
				RecordID:           core.FormatRecordID("BEH", recordID),
				InmateID:           p.InmateID,
				IncidentDate:       incidentDate,
				IncidentType:       g.s.pick(incidentTypes),
				Severity:           severity,
				DisciplinaryAction: action,
				PointsDeducted:     inmate.SeverityPoints[severity],
				Resolved:           resolved,
			}
			rec.Description = fmt.Sprintf("%s incident of %s", capitalize(string(severity)), g.s.pick(incidentTypes))
			if resolved {
				rd := incidentDate.AddDate(0, 0, g.s.intBetween(1, 30))
				rec.ResolutionDate = &rd
			}

			records = append(records, rec)
			recordID++
		}
	}

	return records
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
