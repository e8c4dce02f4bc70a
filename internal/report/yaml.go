package report

import (
	"gopkg.in/yaml.v3"
)

// generateYAML writes the buffered report as a YAML document
func (g *Generator) generateYAML() error {
	enc := yaml.NewEncoder(g.out)
	enc.SetIndent(2)
	if err := enc.Encode(g.doc); err != nil {
		return err
	}
	return enc.Close()
}
