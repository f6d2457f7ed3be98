package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"rehabengine/domain/core"
	"rehabengine/domain/dataset"
	"rehabengine/domain/feature"
	"rehabengine/internal"
	"rehabengine/internal/scoring"
	"rehabengine/ports"
)

// AssessmentService answers prediction requests. Inmate-keyed tasks read the
// current snapshot; the eligibility task also accepts a raw feature payload.
type AssessmentService struct {
	store   *dataset.Store
	scorer  *scoring.Service
	justify ports.JustificationClient // nil when no LLM is configured
	logger  *internal.Logger
}

// NewAssessmentService wires the assessment service. The justification
// client may be nil.
func NewAssessmentService(store *dataset.Store, scorer *scoring.Service, justify ports.JustificationClient, logger *internal.Logger) *AssessmentService {
	return &AssessmentService{store: store, scorer: scorer, justify: justify, logger: logger}
}

// Prediction is one scored decision with its justification.
type Prediction struct {
	Task          feature.Task  `json:"task"`
	InmateID      core.InmateID `json:"inmate_id,omitempty"`
	Score         float64       `json:"score"`
	Threshold     float64       `json:"threshold"`
	Eligible      bool          `json:"eligible"`
	Strategy      string        `json:"strategy"`
	Justification string        `json:"justification"`
}

// ScoreRow scores a caller-supplied feature row against one task.
func (s *AssessmentService) ScoreRow(ctx context.Context, task feature.Task, row feature.Row) (*Prediction, error) {
	result, err := s.scorer.Score(task, row)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, result, core.InmateID(row["inmate_id"]), row)
}

// ScoreInmate scores an inmate from the current snapshot for one task.
func (s *AssessmentService) ScoreInmate(ctx context.Context, task feature.Task, id core.InmateID) (*Prediction, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}

	row, err := s.rowFor(snap, task, id)
	if err != nil {
		return nil, err
	}

	result, err := s.scorer.Score(task, row)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, result, id, row)
}

func (s *AssessmentService) rowFor(snap *dataset.Snapshot, task feature.Task, id core.InmateID) (feature.Row, error) {
	profile, err := snap.ProfileByID(id)
	if err != nil {
		return nil, err
	}

	switch task {
	case feature.TaskEarlyRelease:
		assessment, err := snap.AssessmentByInmate(id)
		if err != nil {
			return nil, err
		}
		return feature.FromAssessment(assessment, profile), nil

	case feature.TaskEligibility:
		row := feature.FromProfile(profile)
		incidents, points := behavioralAggregates(snap, id)
		row["total_incidents"] = strconv.Itoa(incidents)
		row["points_deducted"] = strconv.Itoa(points)
		return row, nil

	default:
		return feature.FromProfile(profile), nil
	}
}

// behavioralAggregates sums an inmate's incident count and deducted points
// from the rendered behavioral records table. Missing table or columns count
// as zero, matching how inmates without incidents score.
func behavioralAggregates(snap *dataset.Snapshot, id core.InmateID) (incidents, points int) {
	tbl, err := snap.Table(dataset.TableBehavioralRecords)
	if err != nil {
		return 0, 0
	}
	idCol := columnIndex(tbl.Headers, "inmate_id")
	ptsCol := columnIndex(tbl.Headers, "points_deducted")
	if idCol < 0 {
		return 0, 0
	}
	for _, row := range tbl.Rows {
		if len(row) <= idCol || row[idCol] != id.String() {
			continue
		}
		incidents++
		if ptsCol >= 0 && len(row) > ptsCol {
			if v, err := strconv.Atoi(row[ptsCol]); err == nil {
				points += v
			}
		}
	}
	return incidents, points
}

func columnIndex(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

func (s *AssessmentService) finish(ctx context.Context, result *scoring.Result, id core.InmateID, row feature.Row) (*Prediction, error) {
	pred := &Prediction{
		Task:      result.Task,
		InmateID:  id,
		Score:     result.Score,
		Threshold: result.Threshold,
		Eligible:  result.Eligible,
		Strategy:  result.Strategy,
	}
	pred.Justification = s.justification(ctx, pred, row)
	return pred, nil
}

// justification asks the LLM for a written rationale and falls back to a
// template when no client is configured or the call fails.
func (s *AssessmentService) justification(ctx context.Context, pred *Prediction, row feature.Row) string {
	if s.justify != nil {
		prompt := fmt.Sprintf(
			"Task: %s. Score: %.3f (threshold %.2f). Decision: %s. Inputs: behavior=%s discipline=%s risk=%s. Write one short justification paragraph.",
			pred.Task, pred.Score, pred.Threshold, decisionWord(pred.Eligible),
			row["behavior_score"], row["discipline_score"], riskField(row),
		)
		callCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		text, err := s.justify.Justify(callCtx, prompt)
		if err == nil && text != "" {
			return text
		}
		s.logger.Warn("Justification call failed, using template: %v", err)
	}
	return templateJustification(pred)
}

func templateJustification(pred *Prediction) string {
	return fmt.Sprintf("Scored %.3f against a %.2f threshold for %s; the inmate is %s based on behavioral, disciplinary, and risk inputs.",
		pred.Score, pred.Threshold, pred.Task, decisionWord(pred.Eligible))
}

func decisionWord(eligible bool) string {
	if eligible {
		return "eligible"
	}
	return "not eligible"
}

func riskField(row feature.Row) string {
	if v, ok := row["risk_score"]; ok {
		return v
	}
	return row["risk_assessment"]
}

// ModelStatus reports per-task scoring strategies.
func (s *AssessmentService) ModelStatus() map[feature.Task]string {
	return s.scorer.Status()
}
