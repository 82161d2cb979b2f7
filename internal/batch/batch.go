// Package batch evaluates many profiles against one catalog, isolating
// per-profile failures.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"ai-governance-controls/internal/evaluate"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/score"
)

var ErrNoProfiles = errors.New("no profiles found")

// dirPattern selects profile documents inside a directory.
const dirPattern = "*.{json,yaml,yml}"

// Discover expands target into profile paths. A directory yields its
// profile documents (not recursive), a pattern is expanded with ** support,
// and a plain file is returned as is. Results are sorted.
func Discover(target string) ([]string, error) {
	pattern := target
	if info, err := os.Stat(target); err == nil {
		if !info.IsDir() {
			return []string{target}, nil
		}
		pattern = filepath.Join(doublestar.EscapeMeta(target), dirPattern)
	} else if !containsGlob(target) {
		return nil, fmt.Errorf("%w at %s", ErrNoProfiles, target)
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoProfiles, target)
	}
	sort.Strings(files)
	return files, nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Runner evaluates profiles one after another.
type Runner struct {
	evaluator *evaluate.Evaluator
	logger    *slog.Logger
}

func NewRunner(e *evaluate.Evaluator) *Runner {
	return &Runner{
		evaluator: e,
		logger:    slog.Default().With("component", "batch"),
	}
}

// Run evaluates each path. A profile that cannot be loaded is recorded with
// its error and the loop continues. Cancelling ctx stops before the next
// profile and returns what was collected so far along with ctx.Err().
func (r *Runner) Run(ctx context.Context, paths []string, controls []model.Control, opts evaluate.Options) (model.BatchResult, error) {
	res := model.BatchResult{Items: make([]model.BatchItem, 0, len(paths))}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Items = append(res.Items, r.one(p, controls, opts))
	}
	return res, nil
}

func (r *Runner) one(path string, controls []model.Control, opts evaluate.Options) model.BatchItem {
	item := model.BatchItem{Profile: filepath.Base(path)}

	root, err := profile.Load(path)
	if err != nil {
		r.logger.Warn("profile skipped", "path", path, "error", err)
		item.Error = err.Error()
		return item
	}

	verdicts := r.evaluator.Evaluate(controls, root, opts)
	s := score.Aggregate(verdicts)

	item.SystemName = profile.Field(root, "system_name", "Unknown")
	item.PassRate = s.PassRate
	item.WeightedScore = s.WeightedScore
	item.Passed = s.Passed
	item.Failed = s.Failed
	item.HighFailures = s.HighFailures()
	return item
}
