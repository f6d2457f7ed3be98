package inmate

import (
	"fmt"

	"rehabengine/domain/core"
)

// SuitabilityGroup is the closed set of rehabilitation-need categories a
// recommendation request can carry. Parsing is exact: near-miss spellings are
// rejected instead of silently falling through to the general branch.
type SuitabilityGroup string

const (
	GroupSubstanceAbuse  SuitabilityGroup = "substance_abuse"
	GroupMentalHealth    SuitabilityGroup = "mental_health"
	GroupViolentBehavior SuitabilityGroup = "violent_behavior"
	GroupGeneral         SuitabilityGroup = "general"
)

// SuitabilityGroups lists every group in stable order.
var SuitabilityGroups = []SuitabilityGroup{
	GroupSubstanceAbuse,
	GroupMentalHealth,
	GroupViolentBehavior,
	GroupGeneral,
}

// ParseSuitabilityGroup validates a group string against the closed set.
func ParseSuitabilityGroup(s string) (SuitabilityGroup, error) {
	g := SuitabilityGroup(s)
	for _, known := range SuitabilityGroups {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownGroup, s)
}

// ProgramTemplate is one weighted program suggestion in a group's mapping.
// HighRiskDurationWeeks, when nonzero, replaces DurationWeeks for inmates
// with risk score above 0.7.
type ProgramTemplate struct {
	ProgramType           string  `json:"program_type"`
	ProgramName           string  `json:"program_name"`
	DurationWeeks         int     `json:"duration_weeks"`
	HighRiskDurationWeeks int     `json:"high_risk_duration_weeks,omitempty"`
	Score                 float64 `json:"score"`
	Reason                string  `json:"reason"`
}

// GroupPrograms is the explicit group-to-programs mapping table. Templates
// are ordered by descending score within each group.
var GroupPrograms = map[SuitabilityGroup][]ProgramTemplate{
	GroupSubstanceAbuse: {
		{
			ProgramType: "substance_abuse", ProgramName: "Intensive Drug Rehabilitation Program",
			DurationWeeks: 8, HighRiskDurationWeeks: 12, Score: 0.85,
			Reason: "History of substance dependency detected. High priority intervention.",
		},
		{
			ProgramType: "mental_health", ProgramName: "Dual Diagnosis Support",
			DurationWeeks: 8, Score: 0.75,
			Reason: "Co-occurring mental health support recommended",
		},
	},
	GroupMentalHealth: {
		{
			ProgramType: "mental_health", ProgramName: "Trauma-Informed Therapy Program",
			DurationWeeks: 10, Score: 0.88,
			Reason: "Mental health indicators present. Professional counseling required.",
		},
		{
			ProgramType: "vocational", ProgramName: "Art Therapy & Skills Training",
			DurationWeeks: 12, Score: 0.70,
			Reason: "Complementary vocational training for mental wellness",
		},
	},
	GroupViolentBehavior: {
		{
			ProgramType: "behavior", ProgramName: "Anger Management & Conflict Resolution",
			DurationWeeks: 10, Score: 0.82,
			Reason: "Behavioral intervention needed for violence risk reduction",
		},
		{
			ProgramType: "mental_health", ProgramName: "Cognitive Behavioral Therapy",
			DurationWeeks: 8, Score: 0.78,
			Reason: "CBT effective for behavior modification",
		},
	},
	GroupGeneral: {
		{
			ProgramType: "vocational", ProgramName: "Vocational Skills Training",
			DurationWeeks: 16, Score: 0.72,
			Reason: "General skills training for employment readiness",
		},
		{
			ProgramType: "education", ProgramName: "GED Preparation Program",
			DurationWeeks: 20, Score: 0.68,
			Reason: "Educational advancement opportunity",
		},
	},
}
