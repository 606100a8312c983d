// Package projectconfig provides the Config struct and loader for
// .evaluate.yaml scoring configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/plausibility-eval/scorer/internal/locator"
	"github.com/plausibility-eval/scorer/internal/models"
	"github.com/plausibility-eval/scorer/internal/utils"
	"github.com/plausibility-eval/scorer/internal/validation"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up next to the input directory.
const FileName = ".evaluate.yaml"

// Default values for the scoring configuration. These are the single source
// of truth; New() references them and no other code should duplicate them.
const (
	DefaultSubmissionDir = "res"
	DefaultTruthDir      = "ref"

	DefaultScoresFile = "scores.txt"
	DefaultPrecision  = 3

	DefaultConfidenceLevel     = 0.95
	DefaultBootstrapIterations = 2000
	DefaultSeed                = 42
)

// Default candidate paths. Flat files came first; later phases moved each
// task into its own directory.
var (
	DefaultTruthFiles          = []string{"truth.tsv", "reference.tsv"}
	DefaultClassificationFiles = []string{"answer.tsv", "answers.tsv", "classification/answer.tsv"}
	DefaultRankingFiles        = []string{"ranking.tsv", "ranking/answer.tsv"}
)

// LayoutConfig says where submission and reference files live.
type LayoutConfig struct {
	SubmissionDir  string `yaml:"submission_dir,omitempty"`
	TruthDir       string `yaml:"truth_dir,omitempty"`
	locator.Layout `yaml:",inline"`
}

// GradersConfig holds raw per-task grader parameters. They are decoded by
// graders.Create so each grader owns its defaults.
type GradersConfig struct {
	Classification map[string]any `yaml:"classification,omitempty"`
	Ranking        map[string]any `yaml:"ranking,omitempty"`
}

// OutputConfig controls the scores file.
type OutputConfig struct {
	ScoresFile string `yaml:"scores_file,omitempty"`
	Precision  *int   `yaml:"precision,omitempty"`
}

// StatisticsConfig controls the accuracy confidence interval.
type StatisticsConfig struct {
	ConfidenceLevel     float64 `yaml:"confidence_level,omitempty"`
	BootstrapIterations int     `yaml:"bootstrap_iterations,omitempty"`
	Seed                *int64  `yaml:"seed,omitempty"`
}

// Config is the top-level configuration loaded from .evaluate.yaml.
type Config struct {
	Layout     LayoutConfig       `yaml:"layout,omitempty"`
	Columns    validation.Columns `yaml:"columns,omitempty"`
	Graders    GradersConfig      `yaml:"graders,omitempty"`
	Output     OutputConfig       `yaml:"output,omitempty"`
	Statistics StatisticsConfig   `yaml:"statistics,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// New returns a Config with all hard-coded defaults populated.
func New() *Config {
	return &Config{
		Layout: LayoutConfig{
			SubmissionDir: DefaultSubmissionDir,
			TruthDir:      DefaultTruthDir,
			Layout: locator.Layout{
				Truth:          slices.Clone(DefaultTruthFiles),
				Classification: slices.Clone(DefaultClassificationFiles),
				Ranking:        slices.Clone(DefaultRankingFiles),
			},
		},
		Columns: validation.DefaultColumns(),
		Output: OutputConfig{
			ScoresFile: DefaultScoresFile,
			Precision:  utils.Ptr(DefaultPrecision),
		},
		Statistics: StatisticsConfig{
			ConfidenceLevel:     DefaultConfidenceLevel,
			BootstrapIterations: DefaultBootstrapIterations,
			Seed:                utils.Ptr[int64](DefaultSeed),
		},
	}
}

// Load finds .evaluate.yaml by walking up from startDir (max 10 levels),
// validates and unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*Config, error) {
	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return parse(path, data)
}

// LoadFile reads the config at path. Unlike Load, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Config, error) {
	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config %s:\n  %s", path, strings.Join(errs, "\n  "))
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	return cfg, nil
}

// findConfigFile walks up from dir looking for .evaluate.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *Config) {
	// Layout
	if src.Layout.SubmissionDir != "" {
		dst.Layout.SubmissionDir = src.Layout.SubmissionDir
	}
	if src.Layout.TruthDir != "" {
		dst.Layout.TruthDir = src.Layout.TruthDir
	}
	if len(src.Layout.Truth) > 0 {
		dst.Layout.Truth = src.Layout.Truth
	}
	if len(src.Layout.Classification) > 0 {
		dst.Layout.Classification = src.Layout.Classification
	}
	if len(src.Layout.Ranking) > 0 {
		dst.Layout.Ranking = src.Layout.Ranking
	}

	// Columns
	if src.Columns.ID != "" {
		dst.Columns.ID = src.Columns.ID
	}
	if src.Columns.Class != "" {
		dst.Columns.Class = src.Columns.Class
	}
	if src.Columns.Rating != "" {
		dst.Columns.Rating = src.Columns.Rating
	}

	// Graders
	if src.Graders.Classification != nil {
		dst.Graders.Classification = maps.Clone(src.Graders.Classification)
	}
	if src.Graders.Ranking != nil {
		dst.Graders.Ranking = maps.Clone(src.Graders.Ranking)
	}

	// Output
	if src.Output.ScoresFile != "" {
		dst.Output.ScoresFile = src.Output.ScoresFile
	}
	if src.Output.Precision != nil {
		dst.Output.Precision = src.Output.Precision
	}

	// Statistics
	if src.Statistics.ConfidenceLevel != 0 {
		dst.Statistics.ConfidenceLevel = src.Statistics.ConfidenceLevel
	}
	if src.Statistics.BootstrapIterations != 0 {
		dst.Statistics.BootstrapIterations = src.Statistics.BootstrapIterations
	}
	if src.Statistics.Seed != nil {
		dst.Statistics.Seed = src.Statistics.Seed
	}
}

// GraderParams returns the parameters for the grader that scores mode.
// Classification also receives the confidence interval settings.
func (c *Config) GraderParams(mode models.Mode) map[string]any {
	var section map[string]any
	if mode == models.ModeRanking {
		section = c.Graders.Ranking
	} else {
		section = c.Graders.Classification
	}

	params := make(map[string]any, len(section)+3)
	maps.Copy(params, section)
	if mode == models.ModeClassification {
		params["confidence_level"] = c.Statistics.ConfidenceLevel
		params["bootstrap_iterations"] = c.Statistics.BootstrapIterations
		if c.Statistics.Seed != nil {
			params["seed"] = *c.Statistics.Seed
		}
	}
	return params
}

// PrecisionOrDefault returns the number of decimals written to the scores file.
func (c *Config) PrecisionOrDefault() int {
	if c.Output.Precision == nil {
		return DefaultPrecision
	}
	return *c.Output.Precision
}
