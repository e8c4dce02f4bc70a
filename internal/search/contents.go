package search

import (
	"errors"
	"io"
	"strings"

	"github.com/IvanShishkin/grabber/internal/filesystem"
	"github.com/IvanShishkin/grabber/pkg/models"
)

// openLines opens a file for scanning. Tests replace it to inject open failures.
var openLines = filesystem.OpenLines

// matchContents scans regular files line by line. Symlinks are not opened.
func matchContents(term string, entry filesystem.Entry, kind filesystem.Kind) *models.RootResult {
	if kind != filesystem.KindFile {
		return nil
	}
	return ScanFile(term, entry.Path)
}

// ScanFile records the first occurrence of term on every line of the file at path.
// A file that cannot be opened, or that stops decoding part-way, is reported in
// Skipped; matches found before a decode or read error are kept.
func ScanFile(term, path string) *models.RootResult {
	res := &models.RootResult{}

	lr, closer, err := openLines(path)
	if err != nil {
		res.AddSkip(models.Skip{Path: path, Reason: models.SkipOpen, Err: err})
		return res
	}
	defer closer.Close()

	for {
		text, num, err := lr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			reason := models.SkipRead
			var decErr *filesystem.DecodeError
			if errors.As(err, &decErr) {
				reason = models.SkipDecode
			}
			res.AddSkip(models.Skip{Path: path, Reason: reason, Line: num, Err: err})
			break
		}

		if col := strings.Index(text, term); col >= 0 {
			res.AddMatch(models.LineMatch{
				Path:   path,
				Line:   num,
				Column: col + 1,
				Text:   text,
			})
		}
	}

	return res
}
