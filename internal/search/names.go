package search

import (
	"strings"

	"github.com/IvanShishkin/grabber/internal/filesystem"
	"github.com/IvanShishkin/grabber/pkg/models"
)

// matchFileName matches term against the full rendered path of files and symlinks
func matchFileName(term string, entry filesystem.Entry, kind filesystem.Kind) *models.RootResult {
	if kind != filesystem.KindFile && kind != filesystem.KindSymlink {
		return nil
	}
	if !strings.Contains(entry.Path, term) {
		return nil
	}
	return &models.RootResult{
		Matches: []models.Match{models.PathMatch{Path: entry.Path}},
	}
}
