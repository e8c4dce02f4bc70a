package report

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/grabber/pkg/models"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Options controls how matches are rendered
type Options struct {
	Format string // text, json, yaml, md
	Color  bool   // colorize text output
	Term   string // search term, highlighted in colored output
}

// RootReport is the structured form of one searched root
type RootReport struct {
	Root    string        `json:"root" yaml:"root"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
	Matches []MatchReport `json:"matches" yaml:"matches"`
	Skipped []SkipReport  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// MatchReport is the structured form of a match
type MatchReport struct {
	Path   string `json:"path" yaml:"path"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
}

// SkipReport is the structured form of a skipped file
type SkipReport struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Error  string `json:"error" yaml:"error"`
}

// Document is the whole structured report
type Document struct {
	Roots []RootReport `json:"roots" yaml:"roots"`
}

// Generator writes search results in one of the supported formats.
// Text output is written as soon as a root completes; structured formats
// are buffered and written by Flush.
type Generator struct {
	opts   Options
	out    *bufio.Writer
	logger *zap.Logger
	doc    Document

	pathColor  *color.Color
	numColor   *color.Color
	matchColor *color.Color
}

// NewGenerator creates a new report generator writing to w
func NewGenerator(w io.Writer, opts Options, logger *zap.Logger) (*Generator, error) {
	if opts.Format == "" {
		opts.Format = "text"
	}
	switch opts.Format {
	case "text", "json", "yaml", "md":
	default:
		return nil, fmt.Errorf("unknown report format: %s", opts.Format)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{
		opts:       opts,
		out:        bufio.NewWriter(w),
		logger:     logger,
		doc:        Document{Roots: []RootReport{}},
		pathColor:  color.New(color.FgMagenta),
		numColor:   color.New(color.FgGreen),
		matchColor: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{g.pathColor, g.numColor, g.matchColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return g, nil
}

// WriteRoot renders the results of one root
func (g *Generator) WriteRoot(res *models.RootResult) error {
	if g.opts.Format == "text" {
		for _, m := range res.Matches {
			if _, err := g.out.WriteString(g.formatText(m) + "\n"); err != nil {
				return err
			}
		}
		return g.out.Flush()
	}

	g.doc.Roots = append(g.doc.Roots, toRootReport(res))
	return nil
}

// WriteFailure records a root that could not be searched.
// Text output leaves failures to the caller's error stream.
func (g *Generator) WriteFailure(root string, err error) {
	if g.opts.Format == "text" {
		return
	}
	g.doc.Roots = append(g.doc.Roots, RootReport{
		Root:    DisplayPath(root),
		Error:   err.Error(),
		Matches: []MatchReport{},
	})
}

// Flush writes buffered structured output
func (g *Generator) Flush() error {
	var err error
	switch g.opts.Format {
	case "json":
		err = g.generateJSON()
	case "yaml":
		err = g.generateYAML()
	case "md":
		err = g.generateMarkdown()
	}
	if err != nil {
		return fmt.Errorf("failed to generate %s report: %w", g.opts.Format, err)
	}

	g.logger.Debug("Report flushed", zap.String("format", g.opts.Format), zap.Int("roots", len(g.doc.Roots)))
	return g.out.Flush()
}

// DisplayPath normalizes platform separators to forward slashes
func DisplayPath(path string) string {
	return filepath.ToSlash(path)
}

// formatText renders a match as path or path:line:column: text
func (g *Generator) formatText(m models.Match) string {
	switch m := m.(type) {
	case models.PathMatch:
		return g.pathColor.Sprint(DisplayPath(m.Path))
	case models.LineMatch:
		return fmt.Sprintf("%s:%s:%s: %s",
			g.pathColor.Sprint(DisplayPath(m.Path)),
			g.numColor.Sprint(m.Line),
			g.numColor.Sprint(m.Column),
			g.highlight(m))
	default:
		panic(fmt.Sprintf("report: unknown match type %T", m))
	}
}

// highlight colors the matched span of a line
func (g *Generator) highlight(m models.LineMatch) string {
	if !g.opts.Color || g.opts.Term == "" {
		return m.Text
	}
	start := m.Column - 1
	end := start + len(g.opts.Term)
	if start < 0 || end > len(m.Text) {
		return m.Text
	}
	return m.Text[:start] + g.matchColor.Sprint(m.Text[start:end]) + m.Text[end:]
}

func toRootReport(res *models.RootResult) RootReport {
	rr := RootReport{
		Root:    DisplayPath(res.Root),
		Matches: make([]MatchReport, 0, len(res.Matches)),
	}

	for _, m := range res.Matches {
		switch m := m.(type) {
		case models.PathMatch:
			rr.Matches = append(rr.Matches, MatchReport{Path: DisplayPath(m.Path)})
		case models.LineMatch:
			rr.Matches = append(rr.Matches, MatchReport{
				Path:   DisplayPath(m.Path),
				Line:   m.Line,
				Column: m.Column,
				Text:   m.Text,
			})
		}
	}

	for _, s := range res.Skipped {
		rr.Skipped = append(rr.Skipped, SkipReport{
			Path:   DisplayPath(s.Path),
			Reason: string(s.Reason),
			Line:   s.Line,
			Error:  s.Error(),
		})
	}

	return rr
}

// escapeCell makes text safe for a markdown table cell
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}
