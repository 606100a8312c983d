package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/plausibility-eval/scorer/internal/models"
)

// DefaultPrecision is the number of decimals the leaderboard expects.
const DefaultPrecision = 3

// FormatScores renders the scores file body. Ranking comes first, then
// accuracy, one "key:value" per line.
func FormatScores(report models.ScoreReport, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ranking_score:%.*f\n", precision, report.RankingScore)
	fmt.Fprintf(&b, "accuracy_score:%.*f\n", precision, report.AccuracyScore)
	return b.String()
}

// WriteScores writes the scores file at path, creating its directory.
// The file is written to a temporary name first so a reader never sees
// a partial file.
func WriteScores(path string, report models.ScoreReport, precision int) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*")
	if err != nil {
		return fmt.Errorf("creating scores file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.WriteString(FormatScores(report, precision)); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("writing scores file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing scores file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing scores file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing scores file: %w", err)
	}
	return nil
}
