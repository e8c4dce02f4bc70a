package models

// RootResult contains the completed search results for one root directory
type RootResult struct {
	Root    string  `json:"root" yaml:"root"`
	Matches []Match `json:"matches" yaml:"matches"`
	Skipped []Skip  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Append concatenates another result's matches and skips onto r, preserving order
func (r *RootResult) Append(other *RootResult) {
	if other == nil {
		return
	}
	r.Matches = append(r.Matches, other.Matches...)
	r.Skipped = append(r.Skipped, other.Skipped...)
}

// AddMatch adds a match to the results
func (r *RootResult) AddMatch(m Match) {
	r.Matches = append(r.Matches, m)
}

// AddSkip records a skipped file
func (r *RootResult) AddSkip(s Skip) {
	r.Skipped = append(r.Skipped, s)
}
