package evaluation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/plausibility-eval/scorer/internal/models"
	"github.com/plausibility-eval/scorer/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const truthTSV = "Id\tClass\tRating\n" +
	"1_1\tplausible\t4.5\n" +
	"1_2\timplausible\t1.2\n" +
	"2_1\tnot-sure\t3.0\n" +
	"2_2\tplausible\t4.0\n"

const classificationTSV = "Id\tClass\n" +
	"1_1\tplausible\n" +
	"1_2\timplausible\n" +
	"2_1\tplausible\n" +
	"2_2\tplausible\n"

const rankingTSV = "Id\tRating\n" +
	"2_2\t4\n" +
	"1_1\t5\n" +
	"1_2\t1\n" +
	"2_1\t3\n"

// writeInput lays out files relative to a fresh input directory and
// returns it. Names ending in .gz are compressed.
func writeInput(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{"res", "ref"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

		data := []byte(content)
		if filepath.Ext(name) == ".gz" {
			f, err := os.Create(path)
			require.NoError(t, err)
			gz := gzip.NewWriter(f)
			_, err = gz.Write(data)
			require.NoError(t, err)
			require.NoError(t, gz.Close())
			require.NoError(t, f.Close())
			continue
		}
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	return dir
}

func readScores(t *testing.T, outputDir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outputDir, "scores.txt"))
	require.NoError(t, err)
	return string(data)
}

func assertNoScores(t *testing.T, outputDir string) {
	t.Helper()
	_, err := os.Stat(filepath.Join(outputDir, "scores.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "scores.txt should not be written on failure")
}

func TestRun_BothTasks(t *testing.T) {
	input := writeInput(t, map[string]string{
		"ref/truth.tsv":   truthTSV,
		"res/answer.tsv":  classificationTSV,
		"res/ranking.tsv": rankingTSV,
	})
	output := filepath.Join(t.TempDir(), "out")

	outcome, err := New(nil, nil).Run(context.Background(), input, output)
	require.NoError(t, err)

	assert.Equal(t, "ranking_score:1.000\naccuracy_score:0.750\n", readScores(t, output))
	assert.True(t, outcome.Report.Ranked)
	assert.True(t, outcome.Report.Classified)
	assert.InDelta(t, 0.75, outcome.Report.AccuracyScore, 1e-12)
	assert.InDelta(t, 1.0, outcome.Report.RankingScore, 1e-12)
	assert.Equal(t, filepath.Join(output, "scores.txt"), outcome.OutputPath)

	require.Len(t, outcome.Tasks, 2)
	assert.Equal(t, "classification", outcome.Tasks[0].Mode)
	assert.Equal(t, "ranking", outcome.Tasks[1].Mode)

	cls := outcome.Task(models.ModeClassification)
	require.NotNil(t, cls)
	assert.Equal(t, 4, cls.Pairs)
	require.NotNil(t, cls.BootstrapCI)
	assert.LessOrEqual(t, cls.BootstrapCI.Lower, 0.75)
	assert.GreaterOrEqual(t, cls.BootstrapCI.Upper, 0.75)
}

func TestRun_RankingOnly_NestedLayout(t *testing.T) {
	input := writeInput(t, map[string]string{
		"ref/truth.tsv":          truthTSV,
		"res/ranking/answer.tsv": rankingTSV,
	})
	output := t.TempDir()

	outcome, err := New(nil, nil).Run(context.Background(), input, output)
	require.NoError(t, err)

	assert.Equal(t, "ranking_score:1.000\naccuracy_score:0.000\n", readScores(t, output))
	assert.False(t, outcome.Report.Classified)
	assert.Nil(t, outcome.Task(models.ModeClassification))
}

func TestRun_ClassificationOnly_Gzip(t *testing.T) {
	input := writeInput(t, map[string]string{
		"ref/truth.tsv.gz":  truthTSV,
		"res/answer.tsv.gz": classificationTSV,
	})
	output := t.TempDir()

	_, err := New(nil, nil).Run(context.Background(), input, output)
	require.NoError(t, err)
	assert.Equal(t, "ranking_score:0.000\naccuracy_score:0.750\n", readScores(t, output))
}

func TestRun_ConfiguredLabels(t *testing.T) {
	input := writeInput(t, map[string]string{
		"ref/truth.tsv":  "Id\tClass\n1_1\tPLAUSIBLE\n2_1\tIMPLAUSIBLE\n",
		"res/answer.tsv": "Id\tClass\n1_1\tPLAUSIBLE\n2_1\tNEUTRAL\n",
	})
	output := t.TempDir()

	cfg := projectconfig.New()
	cfg.Graders.Classification = map[string]any{
		"labels": []any{"IMPLAUSIBLE", "NEUTRAL", "PLAUSIBLE"},
	}

	outcome, err := New(cfg, nil).Run(context.Background(), input, output)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, outcome.Report.AccuracyScore, 1e-12)
	assert.Equal(t, "ranking_score:0.000\naccuracy_score:0.500\n", readScores(t, output))
}

func TestRun_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		check func(t *testing.T, err error)
	}{
		{
			name: "filler id out of range",
			files: map[string]string{
				"ref/truth.tsv":   truthTSV,
				"res/ranking.tsv": "Id\tRating\n5_7\t3\n1_1\t4\n",
			},
			check: func(t *testing.T, err error) {
				var formatErr *models.FormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Equal(t, "ranking.tsv", formatErr.Source)
				assert.Equal(t, 2, formatErr.Line)
			},
		},
		{
			name: "valid classification but broken ranking",
			files: map[string]string{
				"ref/truth.tsv":   truthTSV,
				"res/answer.tsv":  classificationTSV,
				"res/ranking.tsv": "Id\tScore\n1_1\t4\n",
			},
			check: func(t *testing.T, err error) {
				var formatErr *models.FormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Contains(t, formatErr.Message, "required columns")
			},
		},
		{
			name: "single ranking pair",
			files: map[string]string{
				"ref/truth.tsv":   truthTSV,
				"res/ranking.tsv": "Id\tRating\n1_1\t4\n",
			},
			check: func(t *testing.T, err error) {
				var insufficient *models.InsufficientDataError
				require.ErrorAs(t, err, &insufficient)
			},
		},
		{
			name: "classification missing rows",
			files: map[string]string{
				"ref/truth.tsv":  truthTSV,
				"res/answer.tsv": "Id\tClass\n1_1\tplausible\n",
			},
			check: func(t *testing.T, err error) {
				var countErr *models.CountMismatchError
				require.ErrorAs(t, err, &countErr)
			},
		},
		{
			name: "no submission",
			files: map[string]string{
				"ref/truth.tsv": truthTSV,
				"res/notes.txt": "hello",
			},
			check: func(t *testing.T, err error) {
				var layoutErr *models.SubmissionLayoutError
				require.ErrorAs(t, err, &layoutErr)
				assert.Contains(t, layoutErr.Searched, "answer.tsv")
				assert.Contains(t, layoutErr.Searched, "ranking.tsv")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInput(t, tt.files)
			output := t.TempDir()

			outcome, err := New(nil, nil).Run(context.Background(), input, output)
			require.Error(t, err)
			assert.Nil(t, outcome)
			assert.True(t, models.IsSubmissionError(err), "expected a submission error, got %v", err)
			tt.check(t, err)
			assertNoScores(t, output)
		})
	}
}

func TestRun_MissingDirectories(t *testing.T) {
	for _, missing := range []string{"res", "ref"} {
		t.Run(missing, func(t *testing.T) {
			input := writeInput(t, map[string]string{
				"ref/truth.tsv":  truthTSV,
				"res/answer.tsv": classificationTSV,
			})
			require.NoError(t, os.RemoveAll(filepath.Join(input, missing)))
			output := t.TempDir()

			_, err := New(nil, nil).Run(context.Background(), input, output)

			var notFound *models.PathNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, filepath.Join(input, missing), notFound.Path)
			assert.False(t, models.IsSubmissionError(err))
			assertNoScores(t, output)
		})
	}
}

func TestRun_BadGraderConfig(t *testing.T) {
	input := writeInput(t, map[string]string{
		"ref/truth.tsv":   truthTSV,
		"res/ranking.tsv": rankingTSV,
	})
	cfg := projectconfig.New()
	cfg.Graders.Ranking = map[string]any{"min_rating": 5, "max_rating": 1}

	_, err := New(cfg, nil).Run(context.Background(), input, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuring ranking grader")
	assert.False(t, models.IsSubmissionError(err))
}

func TestRun_WithMockLocator(t *testing.T) {
	newInput := func(t *testing.T) (input, truthPath, rankingPath string) {
		input = writeInput(t, map[string]string{
			"ref/gold.tsv":  truthTSV,
			"res/task2.tsv": rankingTSV,
		})
		return input, filepath.Join(input, "ref", "gold.tsv"), filepath.Join(input, "res", "task2.tsv")
	}

	t.Run("uses located files", func(t *testing.T) {
		input, truthPath, rankingPath := newInput(t)
		ctrl := gomock.NewController(t)
		loc := NewMockLocator(ctrl)
		res := filepath.Join(input, "res")

		loc.EXPECT().Submission(res, models.ModeClassification).Return("", false, nil)
		loc.EXPECT().Submission(res, models.ModeRanking).Return(rankingPath, true, nil)
		loc.EXPECT().Truth(filepath.Join(input, "ref")).Return(truthPath, nil)

		output := t.TempDir()
		ev := New(nil, nil)
		ev.Locator = loc

		outcome, err := ev.Run(context.Background(), input, output)
		require.NoError(t, err)
		assert.True(t, outcome.Report.Ranked)
		assert.Equal(t, "ranking_score:1.000\naccuracy_score:0.000\n", readScores(t, output))
	})

	t.Run("nothing located", func(t *testing.T) {
		input, _, _ := newInput(t)
		ctrl := gomock.NewController(t)
		loc := NewMockLocator(ctrl)

		loc.EXPECT().Submission(gomock.Any(), gomock.Any()).Return("", false, nil).Times(2)
		loc.EXPECT().Searched(models.ModeClassification).Return([]string{"a.tsv"})
		loc.EXPECT().Searched(models.ModeRanking).Return([]string{"b.tsv"})

		ev := New(nil, nil)
		ev.Locator = loc

		_, err := ev.Run(context.Background(), input, t.TempDir())
		var layoutErr *models.SubmissionLayoutError
		require.ErrorAs(t, err, &layoutErr)
		assert.Equal(t, []string{"a.tsv", "b.tsv"}, layoutErr.Searched)
	})

	t.Run("locator error", func(t *testing.T) {
		input, _, _ := newInput(t)
		ctrl := gomock.NewController(t)
		loc := NewMockLocator(ctrl)
		boom := errors.New("permission denied")

		loc.EXPECT().Submission(gomock.Any(), models.ModeClassification).Return("", false, boom)

		ev := New(nil, nil)
		ev.Locator = loc

		_, err := ev.Run(context.Background(), input, t.TempDir())
		require.ErrorIs(t, err, boom)
	})

	t.Run("missing truth", func(t *testing.T) {
		input, _, rankingPath := newInput(t)
		ctrl := gomock.NewController(t)
		loc := NewMockLocator(ctrl)

		loc.EXPECT().Submission(gomock.Any(), models.ModeClassification).Return("", false, nil)
		loc.EXPECT().Submission(gomock.Any(), models.ModeRanking).Return(rankingPath, true, nil)
		loc.EXPECT().Truth(gomock.Any()).Return("", &models.PathNotFoundError{Path: "ref/truth.tsv"})

		ev := New(nil, nil)
		ev.Locator = loc

		output := t.TempDir()
		_, err := ev.Run(context.Background(), input, output)
		var notFound *models.PathNotFoundError
		require.ErrorAs(t, err, &notFound)
		assertNoScores(t, output)
	})

	t.Run("cancelled context", func(t *testing.T) {
		input, truthPath, rankingPath := newInput(t)
		ctrl := gomock.NewController(t)
		loc := NewMockLocator(ctrl)

		loc.EXPECT().Submission(gomock.Any(), models.ModeClassification).Return("", false, nil)
		loc.EXPECT().Submission(gomock.Any(), models.ModeRanking).Return(rankingPath, true, nil)
		loc.EXPECT().Truth(gomock.Any()).Return(truthPath, nil)

		ev := New(nil, nil)
		ev.Locator = loc

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		output := t.TempDir()
		_, err := ev.Run(ctx, input, output)
		require.ErrorIs(t, err, context.Canceled)
		assertNoScores(t, output)
	})
}
