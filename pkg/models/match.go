package models

import "fmt"

// Match is one reported hit. The concrete type depends on the search type:
// PathMatch for file name searches, LineMatch for content searches.
type Match interface {
	// MatchPath returns the path of the matched file as rendered during the walk
	MatchPath() string
	isMatch()
}

// PathMatch is a file whose rendered path contains the search term
type PathMatch struct {
	Path string `json:"path" yaml:"path"`
}

func (m PathMatch) MatchPath() string { return m.Path }
func (PathMatch) isMatch()            {}

// LineMatch is the first occurrence of the search term on one line of a file
type LineMatch struct {
	Path   string `json:"path" yaml:"path"`
	Line   int    `json:"line" yaml:"line"`     // 1-based
	Column int    `json:"column" yaml:"column"` // 1-based byte offset of the match start
	Text   string `json:"text" yaml:"text"`     // line content without terminator
}

func (m LineMatch) MatchPath() string { return m.Path }
func (LineMatch) isMatch()            {}

// SkipReason explains why a file was not (fully) scanned
type SkipReason string

const (
	SkipOpen   SkipReason = "open"   // file could not be opened
	SkipDecode SkipReason = "decode" // a line was not valid UTF-8, rest of file ignored
	SkipRead   SkipReason = "read"   // I/O error while reading, rest of file ignored
)

// Skip records a per-file failure that did not stop the search
type Skip struct {
	Path   string     `json:"path" yaml:"path"`
	Reason SkipReason `json:"reason" yaml:"reason"`
	Line   int        `json:"line,omitempty" yaml:"line,omitempty"` // line where reading stopped, 0 for open failures
	Err    error      `json:"-" yaml:"-"`
}

// Error returns a human-readable description of the skip
func (s Skip) Error() string {
	switch s.Reason {
	case SkipOpen:
		return fmt.Sprintf("failed to open file %s: %v", s.Path, s.Err)
	case SkipDecode:
		return fmt.Sprintf("failed to decode line %d of %s: %v", s.Line, s.Path, s.Err)
	default:
		return fmt.Sprintf("failed to read line %d of %s: %v", s.Line, s.Path, s.Err)
	}
}

// Unwrap returns the underlying error
func (s Skip) Unwrap() error { return s.Err }
