package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IvanShishkin/grabber/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		term     string
		expected [][2]int // line, column
	}{
		{"Three lines", "abc\nxyzabc\nnoabc here", "abc", [][2]int{{1, 1}, {2, 4}, {3, 3}}},
		{"No match", "nothing\nhere\n", "abc", nil},
		{"Empty file", "", "abc", nil},
		{"Repeated on one line", "abcabcabc\n", "abc", [][2]int{{1, 1}}},
		{"Byte offset after multibyte", "éabc\n", "abc", [][2]int{{1, 3}}},
		{"Empty term matches every line", "a\n\nb", "", [][2]int{{1, 1}, {2, 1}, {3, 1}}},
		{"CRLF", "x\r\nabc\r\n", "abc", [][2]int{{2, 1}}},
		{"Term containing CR not matched across terminator", "abc\r\n", "c\r", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "f.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			res := ScanFile(tt.term, path)
			assert.Empty(t, res.Skipped)

			var got [][2]int
			for _, m := range res.Matches {
				lm := m.(models.LineMatch)
				assert.Equal(t, path, lm.Path)
				got = append(got, [2]int{lm.Line, lm.Column})
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScanFile_OpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	res := ScanFile("x", path)
	assert.Empty(t, res.Matches)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, models.SkipOpen, res.Skipped[0].Reason)
	assert.Equal(t, 0, res.Skipped[0].Line)
	assert.Contains(t, res.Skipped[0].Error(), "failed to open file")
}
