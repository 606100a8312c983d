// Package locator finds submission and reference files inside the
// submission and truth directories. The file layout has changed between
// competition phases (flat files, then one directory per task), so the
// candidate paths are configuration.
package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/plausibility-eval/scorer/internal/models"
)

//go:generate go tool mockgen -source=locator.go -destination=../evaluation/mock_locator_test.go -package=evaluation

// Locator resolves the files one evaluation reads.
type Locator interface {
	// Submission returns the submission file for mode inside dir. found is
	// false when the participant did not submit that task.
	Submission(dir string, mode models.Mode) (path string, found bool, err error)

	// Truth returns the reference file inside dir.
	Truth(dir string) (string, error)

	// Searched lists the candidate paths tried for mode, for error messages.
	Searched(mode models.Mode) []string
}

// Layout lists candidate paths, relative to their directory, in priority
// order. Each candidate is also tried with a .gz suffix.
type Layout struct {
	Truth          []string `yaml:"truth,omitempty"`
	Classification []string `yaml:"classification,omitempty"`
	Ranking        []string `yaml:"ranking,omitempty"`
}

// Candidates returns the submission candidates for mode.
func (l Layout) Candidates(mode models.Mode) []string {
	if mode == models.ModeRanking {
		return l.Ranking
	}
	return l.Classification
}

// PathLocator resolves files by probing the layout's candidates on disk.
type PathLocator struct {
	Layout Layout
}

// NewPathLocator returns a PathLocator for layout.
func NewPathLocator(layout Layout) *PathLocator {
	return &PathLocator{Layout: layout}
}

func (p *PathLocator) Submission(dir string, mode models.Mode) (string, bool, error) {
	return firstExisting(dir, p.Layout.Candidates(mode))
}

func (p *PathLocator) Truth(dir string) (string, error) {
	path, found, err := firstExisting(dir, p.Layout.Truth)
	if err != nil {
		return "", err
	}
	if !found {
		return "", &models.PathNotFoundError{Path: dir, Searched: p.Layout.Truth}
	}
	return path, nil
}

func (p *PathLocator) Searched(mode models.Mode) []string {
	return p.Layout.Candidates(mode)
}

func firstExisting(dir string, candidates []string) (string, bool, error) {
	for _, c := range candidates {
		for _, name := range []string{c, c + ".gz"} {
			path := filepath.Join(dir, filepath.FromSlash(name))
			info, err := os.Stat(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return "", false, fmt.Errorf("checking %s: %w", path, err)
			}
			if info.Mode().IsRegular() {
				return path, true, nil
			}
		}
	}
	return "", false, nil
}
