package core

import (
	"errors"
	"fmt"

	"github.com/IvanShishkin/grabber/pkg/models"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrAllRootsFailed is returned by Run when no root could be searched
var ErrAllRootsFailed = errors.New("no directory could be searched")

// Searcher searches a single root directory
type Searcher interface {
	Search(term, root string) (*models.RootResult, error)
}

// RootCallback is called once per root, right after it has been searched.
// Exactly one of res and err is non-nil.
type RootCallback func(root string, res *models.RootResult, err error)

// Summary contains the totals of a run
type Summary struct {
	Roots     int
	Succeeded int
	Failed    int
	Matches   int
	Skipped   int
}

// Runner searches a list of roots one after another
type Runner struct {
	searcher     Searcher
	logger       *zap.Logger
	rootCallback RootCallback
}

// NewRunner creates a new runner
func NewRunner(searcher Searcher, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		searcher: searcher,
		logger:   logger,
	}
}

// SetRootCallback sets the per-root callback function
func (r *Runner) SetRootCallback(cb RootCallback) {
	r.rootCallback = cb
}

// reportRoot calls the root callback if set
func (r *Runner) reportRoot(root string, res *models.RootResult, err error) {
	if r.rootCallback != nil {
		r.rootCallback(root, res, err)
	}
}

// Run searches every root in order. A failing root does not stop the others.
// The returned error wraps ErrAllRootsFailed and every root error when no
// root succeeded.
func (r *Runner) Run(term string, roots []string) (*Summary, error) {
	summary := &Summary{Roots: len(roots)}
	var errs error

	for _, root := range roots {
		res, err := r.searcher.Search(term, root)
		if err != nil {
			summary.Failed++
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", root, err))
			r.logger.Debug("Root failed", zap.String("root", root), zap.Error(err))
			r.reportRoot(root, nil, err)
			continue
		}

		summary.Succeeded++
		summary.Matches += len(res.Matches)
		summary.Skipped += len(res.Skipped)
		r.reportRoot(root, res, nil)
	}

	r.logger.Debug("Run completed",
		zap.Int("roots", summary.Roots),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("matches", summary.Matches),
		zap.Int("skipped", summary.Skipped))

	if summary.Succeeded == 0 {
		return summary, multierr.Append(ErrAllRootsFailed, errs)
	}
	return summary, nil
}
