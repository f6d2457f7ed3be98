package feature

import (
	"fmt"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

// Task identifies one prediction task.
type Task string

const (
	TaskEligibility        Task = "eligibility"
	TaskEarlyRelease       Task = "early_release"
	TaskIndustrialTraining Task = "industrial_training"
	TaskHomeLeave          Task = "home_leave"
)

// Tasks lists every prediction task in stable order.
var Tasks = []Task{TaskEligibility, TaskEarlyRelease, TaskIndustrialTraining, TaskHomeLeave}

// ParseTask validates a task name.
func ParseTask(s string) (Task, error) {
	t := Task(s)
	for _, known := range Tasks {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownTask, s)
}

func encodeEducation(raw string) (float64, error) {
	idx := inmate.EncodeEducation(inmate.EducationLevel(raw))
	if idx < 0 {
		return 0, fmt.Errorf("%w: education_level=%q", core.ErrMissingFeature, raw)
	}
	return float64(idx), nil
}

// specs holds the fixed feature layout per task. Incident aggregates are
// optional with zero defaults: inmates with no behavioral records have no
// rows to aggregate.
var specs = map[Task]Spec{
	TaskEligibility: {
		Task: TaskEligibility,
		Columns: []Column{
			{Name: "behavior_score", Min: 0, Max: 100, HasRange: true},
			{Name: "discipline_score", Min: 0, Max: 100, HasRange: true},
			{Name: "risk_score", Min: 0, Max: 1, HasRange: true},
			{Name: "programs_completed"},
			{Name: "total_attendance_rate", Min: 0, Max: 1, HasRange: true},
			{Name: "time_served_months"},
			{Name: "remaining_sentence_months"},
			{Name: "prior_convictions"},
			{Name: "institutional_violations"},
			{Name: "total_incidents", Optional: true},
			{Name: "points_deducted", Optional: true},
		},
	},
	TaskEarlyRelease: {
		Task: TaskEarlyRelease,
		Columns: []Column{
			{Name: "behavior_score", Min: 0, Max: 100, HasRange: true},
			{Name: "discipline_score", Min: 0, Max: 100, HasRange: true},
			{Name: "program_completion_count"},
			{Name: "time_served_percentage", Min: 0, Max: 1, HasRange: true},
			{Name: "risk_assessment", Min: 0, Max: 1, HasRange: true},
			{Name: "age"},
			{Name: "prior_convictions"},
		},
	},
	TaskIndustrialTraining: {
		Task: TaskIndustrialTraining,
		Columns: []Column{
			{Name: "behavior_score", Min: 0, Max: 100, HasRange: true},
			{Name: "discipline_score", Min: 0, Max: 100, HasRange: true},
			{Name: "risk_score", Min: 0, Max: 1, HasRange: true},
			{Name: "age"},
			{Name: "time_served_months"},
			{Name: "programs_completed"},
			{Name: "total_attendance_rate", Min: 0, Max: 1, HasRange: true},
			{Name: "education_level", Encode: encodeEducation},
		},
	},
	TaskHomeLeave: {
		Task: TaskHomeLeave,
		Columns: []Column{
			{Name: "behavior_score", Min: 0, Max: 100, HasRange: true},
			{Name: "discipline_score", Min: 0, Max: 100, HasRange: true},
			{Name: "risk_score", Min: 0, Max: 1, HasRange: true},
			{Name: "time_served_months"},
			{Name: "institutional_violations"},
			{Name: "programs_completed"},
			{Name: "total_attendance_rate", Min: 0, Max: 1, HasRange: true},
		},
	},
}

// SpecFor returns a task's feature spec.
func SpecFor(task Task) (Spec, error) {
	s, ok := specs[task]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", core.ErrUnknownTask, task)
	}
	return s, nil
}

// Label derives the task's binary training label from a row.
//
// The label rules are the same ones the offline trainer used, so fallback
// scoring and artifact scoring agree on what "positive" means.
func Label(task Task, row Row) (bool, error) {
	switch task {
	case TaskEligibility:
		b, err := row.Float("behavior_score")
		if err != nil {
			return false, err
		}
		d, err := row.Float("discipline_score")
		if err != nil {
			return false, err
		}
		r, err := row.Float("risk_score")
		if err != nil {
			return false, err
		}
		return b > 60 && d > 60 && r < 0.6, nil

	case TaskEarlyRelease:
		rec, ok := row["recommendation"]
		if !ok {
			return false, core.NewMissingFeatureError("recommendation")
		}
		return rec == string(inmate.ReleaseEligible), nil

	case TaskIndustrialTraining:
		b, err := row.Float("behavior_score")
		if err != nil {
			return false, err
		}
		d, err := row.Float("discipline_score")
		if err != nil {
			return false, err
		}
		return b > 55 && d > 55, nil

	case TaskHomeLeave:
		b, err := row.Float("behavior_score")
		if err != nil {
			return false, err
		}
		d, err := row.Float("discipline_score")
		if err != nil {
			return false, err
		}
		v, err := row.Float("institutional_violations")
		if err != nil {
			return false, err
		}
		return b > 75 && d > 75 && v < 2, nil
	}
	return false, fmt.Errorf("%w: %q", core.ErrUnknownTask, task)
}
