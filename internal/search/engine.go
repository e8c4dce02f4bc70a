// Package search implements the directory-walking search engine.
//
// Both search types share one traversal: the directory is listed in sorted
// order, subdirectories are descended depth-first when recursion is enabled
// (dot-directories excluded), and every remaining entry is handed to the
// matcher for the configured search type.
package search

import (
	"fmt"

	"github.com/IvanShishkin/grabber/internal/filesystem"
	"github.com/IvanShishkin/grabber/pkg/models"
	"go.uber.org/zap"
)

// Config is the immutable engine configuration
type Config struct {
	SearchType models.SearchType
	Recursive  bool
	Numbered   bool
	Verbose    bool
}

// listDir lists one directory. Tests replace it to inject listing failures.
var listDir = filesystem.ListDir

// matcher produces the matches for one non-directory entry
type matcher func(term string, entry filesystem.Entry, kind filesystem.Kind) *models.RootResult

// Engine searches directory trees for a literal term
type Engine struct {
	config Config
	logger *zap.Logger
	match  matcher
}

// New creates a search engine for cfg
func New(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		config: cfg,
		logger: logger,
	}

	switch cfg.SearchType {
	case models.SearchFileNames:
		e.match = matchFileName
	case models.SearchContents:
		e.match = matchContents
	default:
		panic(fmt.Sprintf("search: unknown search type %d", cfg.SearchType))
	}

	return e
}

// Search walks root and returns every match in visit order.
// A directory that cannot be listed anywhere under root fails the whole search
// with a *filesystem.FilesystemError. Per-file failures are returned in
// RootResult.Skipped.
func (e *Engine) Search(term, root string) (*models.RootResult, error) {
	e.logger.Debug("Starting search",
		zap.String("root", root),
		zap.String("term", term),
		zap.Stringer("type", e.config.SearchType),
		zap.Bool("recursive", e.config.Recursive))

	res, err := e.walk(term, root)
	if err != nil {
		return nil, err
	}
	res.Root = root

	e.logger.Debug("Search completed",
		zap.String("root", root),
		zap.Int("matches", len(res.Matches)),
		zap.Int("skipped", len(res.Skipped)))

	return res, nil
}

// walk searches one directory. Each call owns the result it returns.
func (e *Engine) walk(term, dir string) (*models.RootResult, error) {
	entries, err := listDir(dir)
	if err != nil {
		return nil, err
	}

	res := &models.RootResult{}
	for _, entry := range entries {
		kind := entry.Kind()

		if kind == filesystem.KindDir {
			if !e.config.Recursive {
				continue
			}
			if entry.IsHidden() {
				e.logger.Debug("Skipping dot-directory", zap.String("path", entry.Path))
				continue
			}

			sub, err := e.walk(term, entry.Path)
			if err != nil {
				return nil, err
			}
			res.Append(sub)
			continue
		}

		found := e.match(term, entry, kind)
		if found != nil {
			for _, s := range found.Skipped {
				e.logger.Debug("Skipping file",
					zap.String("path", s.Path),
					zap.String("reason", string(s.Reason)),
					zap.Error(s.Err))
			}
		}
		res.Append(found)
	}

	return res, nil
}
