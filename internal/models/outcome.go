package models

import (
	"time"

	"github.com/plausibility-eval/scorer/internal/statistics"
)

// GraderKind identifies the metric a grader computes.
type GraderKind string

const (
	GraderKindAccuracy GraderKind = "accuracy"
	GraderKindSpearman GraderKind = "spearman"
)

// ScoreReport is what gets written to scores.txt. A task that was not
// submitted keeps a zero score.
type ScoreReport struct {
	RankingScore  float64 `json:"ranking_score"`
	AccuracyScore float64 `json:"accuracy_score"`

	Ranked     bool `json:"ranked"`
	Classified bool `json:"classified"`
}

// EvaluationOutcome represents the complete result of one scoring pass.
type EvaluationOutcome struct {
	InputDir   string          `json:"input_dir"`
	OutputPath string          `json:"output_path"`
	Timestamp  time.Time       `json:"timestamp"`
	Report     ScoreReport     `json:"scores"`
	Tasks      []GraderResults `json:"tasks"`
	DurationMs int64           `json:"duration_ms"`
}

// GraderResults holds what one grader produced for one task.
type GraderResults struct {
	Name       string         `json:"identifier"`
	Type       GraderKind     `json:"type"`
	Mode       string         `json:"mode"`
	Score      float64        `json:"score"`
	Pairs      int            `json:"pairs"`
	Feedback   string         `json:"feedback"`
	Details    map[string]any `json:"details,omitempty"`
	DurationMs int64          `json:"duration_ms"`

	// BootstrapCI is populated for accuracy, where each instance is a 0/1 outcome.
	BootstrapCI *statistics.ConfidenceInterval `json:"bootstrap_ci,omitempty"`
}

// Task returns the result for mode, or nil when the task was not scored.
func (o *EvaluationOutcome) Task(mode Mode) *GraderResults {
	for i := range o.Tasks {
		if o.Tasks[i].Mode == mode.String() {
			return &o.Tasks[i]
		}
	}
	return nil
}
