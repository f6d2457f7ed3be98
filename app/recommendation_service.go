package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rehabengine/domain/core"
	"rehabengine/domain/dataset"
	"rehabengine/domain/inmate"
	"rehabengine/internal"
	"rehabengine/ports"
)

const (
	maxRecommendations = 3
	highRiskCutoff     = 0.7
)

// RecommendationService maps suitability groups to ranked program
// recommendations using the explicit group mapping table.
type RecommendationService struct {
	store   *dataset.Store
	justify ports.JustificationClient // nil when no LLM is configured
	logger  *internal.Logger
}

// NewRecommendationService wires the recommendation service.
func NewRecommendationService(store *dataset.Store, justify ports.JustificationClient, logger *internal.Logger) *RecommendationService {
	return &RecommendationService{store: store, justify: justify, logger: logger}
}

// RecommendRequest identifies the inmate and the assessed need category.
// RiskScore overrides the stored profile risk when the inmate is unknown.
type RecommendRequest struct {
	InmateID  string   `json:"inmate_id"`
	Group     string   `json:"suitability_group"`
	RiskScore *float64 `json:"risk_score,omitempty"`
}

// ProgramRecommendation is one ranked program suggestion.
type ProgramRecommendation struct {
	ProgramType   string  `json:"program_type"`
	ProgramName   string  `json:"program_name"`
	DurationWeeks int     `json:"duration_weeks"`
	Score         float64 `json:"suitability_score"`
	Reason        string  `json:"reason"`
}

// RecommendResult is the full recommendation response.
type RecommendResult struct {
	InmateID        core.InmateID           `json:"inmate_id"`
	Group           inmate.SuitabilityGroup `json:"suitability_group"`
	RiskScore       float64                 `json:"risk_score"`
	Confidence      float64                 `json:"confidence"`
	Recommendations []ProgramRecommendation `json:"recommendations"`
	Explanation     string                  `json:"explanation"`
}

// Recommend ranks programs for one inmate and need category.
func (s *RecommendationService) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResult, error) {
	group, err := inmate.ParseSuitabilityGroup(req.Group)
	if err != nil {
		return nil, err
	}
	id, err := core.ParseInmateID(req.InmateID)
	if err != nil {
		return nil, err
	}

	risk := s.riskFor(id, req.RiskScore)
	recs := rankPrograms(group, risk)

	result := &RecommendResult{
		InmateID:        id,
		Group:           group,
		RiskScore:       risk,
		Confidence:      confidence(risk),
		Recommendations: recs,
	}
	result.Explanation = s.explanation(ctx, result)
	return result, nil
}

// riskFor resolves the risk score: explicit request value first, then the
// current snapshot's profile, then a neutral default.
func (s *RecommendationService) riskFor(id core.InmateID, override *float64) float64 {
	if override != nil {
		return clamp01(*override)
	}
	if snap, err := s.store.Current(); err == nil {
		if p, err := snap.ProfileByID(id); err == nil {
			return p.RiskScore
		}
	}
	return 0.5
}

// rankPrograms merges the group's templates with the general fallbacks,
// keeps the highest scoring entries, and stretches durations for high risk.
func rankPrograms(group inmate.SuitabilityGroup, risk float64) []ProgramRecommendation {
	templates := append([]inmate.ProgramTemplate{}, inmate.GroupPrograms[group]...)
	if group != inmate.GroupGeneral {
		templates = append(templates, inmate.GroupPrograms[inmate.GroupGeneral]...)
	}
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Score > templates[j].Score
	})
	if len(templates) > maxRecommendations {
		templates = templates[:maxRecommendations]
	}

	out := make([]ProgramRecommendation, 0, len(templates))
	for _, t := range templates {
		duration := t.DurationWeeks
		if risk > highRiskCutoff && t.HighRiskDurationWeeks > 0 {
			duration = t.HighRiskDurationWeeks
		}
		out = append(out, ProgramRecommendation{
			ProgramType:   t.ProgramType,
			ProgramName:   t.ProgramName,
			DurationWeeks: duration,
			Score:         t.Score,
			Reason:        t.Reason,
		})
	}
	return out
}

// confidence grows with risk: high-risk inmates match their group programs
// more decisively than borderline cases.
func confidence(risk float64) float64 {
	c := 0.7 + risk*0.15
	if c > 0.95 {
		return 0.95
	}
	if c < 0.60 {
		return 0.60
	}
	return c
}

func (s *RecommendationService) explanation(ctx context.Context, r *RecommendResult) string {
	fallback := fmt.Sprintf("Matched %d programs to the %s group (risk %.2f). Top suggestion: %s.",
		len(r.Recommendations), r.Group, r.RiskScore, topProgramName(r))

	if s.justify == nil {
		return fallback
	}
	prompt := fmt.Sprintf(
		"Inmate %s was matched to the %s need group with risk score %.2f. Recommended programs: %s. Write one short explanation of the match.",
		r.InmateID, r.Group, r.RiskScore, programNames(r))
	callCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	text, err := s.justify.Justify(callCtx, prompt)
	if err != nil || text == "" {
		s.logger.Warn("Explanation call failed, using template: %v", err)
		return fallback
	}
	return text
}

func topProgramName(r *RecommendResult) string {
	if len(r.Recommendations) == 0 {
		return "none"
	}
	return r.Recommendations[0].ProgramName
}

func programNames(r *RecommendResult) string {
	names := ""
	for i, rec := range r.Recommendations {
		if i > 0 {
			names += ", "
		}
		names += rec.ProgramName
	}
	return names
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
