package models

// SearchType selects what the search term is matched against
type SearchType int

const (
	SearchContents  SearchType = iota // match against line text inside files
	SearchFileNames                   // match against rendered file paths
)

// String returns the config name of the search type
func (t SearchType) String() string {
	switch t {
	case SearchFileNames:
		return "filenames"
	case SearchContents:
		return "contents"
	default:
		return "unknown"
	}
}

// ParseSearchType maps a config name to a SearchType
func ParseSearchType(name string) (SearchType, bool) {
	switch name {
	case "filenames", "names", "F":
		return SearchFileNames, true
	case "contents", "content", "C", "":
		return SearchContents, true
	default:
		return SearchContents, false
	}
}
