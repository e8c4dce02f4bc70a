package report

import (
	"encoding/json"
)

// generateJSON writes the buffered report as indented JSON
func (g *Generator) generateJSON() error {
	enc := json.NewEncoder(g.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(g.doc)
}
