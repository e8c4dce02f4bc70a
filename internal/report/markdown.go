package report

import (
	"fmt"
	"strings"
)

// generateMarkdown writes one table per root
func (g *Generator) generateMarkdown() error {
	var sb strings.Builder

	for i, root := range g.doc.Roots {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("## `%s`\n\n", root.Root))

		if root.Error != "" {
			sb.WriteString(fmt.Sprintf("> Failed: %s\n", root.Error))
			continue
		}
		if len(root.Matches) == 0 {
			sb.WriteString("_No matches_\n")
		} else {
			sb.WriteString("| Path | Line | Column | Text |\n")
			sb.WriteString("|------|------|--------|------|\n")
			for _, m := range root.Matches {
				if m.Line == 0 {
					sb.WriteString(fmt.Sprintf("| `%s` | | | |\n", escapeCell(m.Path)))
					continue
				}
				sb.WriteString(fmt.Sprintf("| `%s` | %d | %d | %s |\n",
					escapeCell(m.Path), m.Line, m.Column, escapeCell(m.Text)))
			}
		}

		if len(root.Skipped) > 0 {
			sb.WriteString("\n**Skipped files**\n\n")
			for _, s := range root.Skipped {
				sb.WriteString(fmt.Sprintf("- `%s` (%s)\n", escapeCell(s.Path), s.Reason))
			}
		}
	}

	_, err := g.out.WriteString(sb.String())
	return err
}
