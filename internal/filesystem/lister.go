package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind is the filesystem kind of a directory entry
type Kind int

const (
	KindOther Kind = iota
	KindDir
	KindFile
	KindSymlink
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// FilesystemError is returned when a directory cannot be listed
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Entry is one directory entry. Its kind is queried on demand and never cached,
// so it reflects the filesystem at the time of the call.
type Entry struct {
	Path string
}

// Name returns the base name of the entry
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// Kind stats the entry without following symlinks.
// Entries that can no longer be stat'ed are reported as KindOther.
func (e Entry) Kind() Kind {
	info, err := os.Lstat(e.Path)
	if err != nil {
		return KindOther
	}

	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// IsHidden reports whether the entry name starts with a dot
func (e Entry) IsHidden() bool {
	return isHidden(e.Name())
}

// ListDir returns the immediate entries of dir sorted by path.
// Either every entry is returned or the call fails with a *FilesystemError.
func ListDir(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FilesystemError{Path: dir, Err: err}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{Path: JoinPath(dir, de.Name())})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}

// JoinPath appends name to dir keeping dir in the form it was given.
// Unlike filepath.Join it does not clean the result, so "./" + "a" is "./a".
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if strings.HasSuffix(dir, string(os.PathSeparator)) || strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

// DefaultRoot returns the root used when no directory is given
func DefaultRoot() string {
	return "." + string(os.PathSeparator)
}

// IsDir reports whether path exists and is a directory (symlinks are followed)
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isHidden checks if a file is hidden
func isHidden(name string) bool {
	// Unix-like systems: files starting with dot
	return len(name) > 0 && name[0] == '.'
}
