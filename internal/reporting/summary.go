package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/plausibility-eval/scorer/internal/models"
)

// Summary formats accepted by WriteSummary.
const (
	SummaryNone = "none"
	SummaryText = "text"
	SummaryJSON = "json"
)

// InterpretCorrelation returns a plain-language label for a rank correlation.
func InterpretCorrelation(rho float64) string {
	switch {
	case rho >= 0.7:
		return "strong"
	case rho >= 0.4:
		return "moderate"
	case rho > 0.1:
		return "weak"
	case rho >= -0.1:
		return "none"
	default:
		return "negative"
	}
}

// WriteSummary prints outcome to w in the given format.
func WriteSummary(w io.Writer, outcome *models.EvaluationOutcome, format string) error {
	switch format {
	case SummaryNone, "":
		return nil
	case SummaryText:
		_, err := io.WriteString(w, FormatSummaryReport(outcome))
		return err
	case SummaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	default:
		return fmt.Errorf("unknown summary format %q (want %s, %s or %s)", format, SummaryNone, SummaryText, SummaryJSON)
	}
}

// FormatSummaryReport produces a plain-text report from an EvaluationOutcome.
func FormatSummaryReport(outcome *models.EvaluationOutcome) string {
	var b strings.Builder

	duration := time.Duration(outcome.DurationMs) * time.Millisecond

	b.WriteString("=== Scores ===\n\n")
	rows := [][2]string{
		{"Ranking score:", taskScore(outcome.Report.Ranked, outcome.Report.RankingScore)},
		{"Accuracy score:", taskScore(outcome.Report.Classified, outcome.Report.AccuracyScore)},
		{"Scores file:", outcome.OutputPath},
		{"Duration:", duration.String()},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", padRight(r[0], 16), r[1])
	}

	if len(outcome.Tasks) == 0 {
		return b.String()
	}

	b.WriteString("\nPer-Task Results:\n")
	for _, task := range outcome.Tasks {
		fmt.Fprintf(&b, "  %s %.4f  %s\n", padRight(task.Mode, 15), task.Score, task.Feedback)
		switch task.Type {
		case models.GraderKindSpearman:
			fmt.Fprintf(&b, "    %s correlation\n", InterpretCorrelation(task.Score))
		case models.GraderKindAccuracy:
			if ci := task.BootstrapCI; ci != nil {
				fmt.Fprintf(&b, "    %.0f%% CI [%.4f, %.4f] over %d resamples\n",
					ci.ConfidenceLevel*100, ci.Lower, ci.Upper, ci.NumBootstraps)
			}
		}
	}

	return b.String()
}

func taskScore(participated bool, score float64) string {
	if !participated {
		return "not submitted"
	}
	return fmt.Sprintf("%.4f", score)
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
