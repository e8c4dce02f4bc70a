package filesystem

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type line struct {
	text string
	num  int
}

func readAll(t *testing.T, lr *LineReader) ([]line, error) {
	t.Helper()
	var lines []line
	for {
		text, num, err := lr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return lines, err
		}
		lines = append(lines, line{text, num})
	}
}

func TestLineReader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Empty", "", nil},
		{"Single terminated", "abc\n", []string{"abc"}},
		{"Single unterminated", "abc", []string{"abc"}},
		{"Multiple", "abc\nxyzabc\nnoabc here\n", []string{"abc", "xyzabc", "noabc here"}},
		{"Last line unterminated", "one\ntwo", []string{"one", "two"}},
		{"CRLF", "one\r\ntwo\r\n", []string{"one", "two"}},
		{"Blank lines", "\n\nx\n", []string{"", "", "x"}},
		{"Inner CR kept", "a\rb\n", []string{"a\rb"}},
		{"CR before EOF kept", "one\r\nabc\r", []string{"one", "abc\r"}},
		{"Lone CR only", "\r", []string{"\r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := readAll(t, NewLineReader(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if len(lines) != len(tt.expected) {
				t.Fatalf("got %d lines, want %d", len(lines), len(tt.expected))
			}
			for i, l := range lines {
				if l.text != tt.expected[i] {
					t.Errorf("line %d = %q, want %q", i+1, l.text, tt.expected[i])
				}
				if l.num != i+1 {
					t.Errorf("line number = %d, want %d", l.num, i+1)
				}
			}
		})
	}
}

func TestLineReader_InvalidUTF8(t *testing.T) {
	input := "good\nbad \xff\xfe line\nnever read\n"
	lr := NewLineReader(strings.NewReader(input))

	lines, err := readAll(t, lr)
	if len(lines) != 1 || lines[0].text != "good" {
		t.Errorf("lines before decode error = %v, want [good]", lines)
	}

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if decErr.Line != 2 {
		t.Errorf("DecodeError.Line = %d, want 2", decErr.Line)
	}
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Error("DecodeError should unwrap to ErrInvalidUTF8")
	}

	// The reader stays in the error state
	if _, _, again := lr.Next(); !errors.As(again, &decErr) {
		t.Errorf("second Next() error = %v, want *DecodeError", again)
	}
}

type failingReader struct {
	data string
	err  error
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestLineReader_ReadError(t *testing.T) {
	boom := errors.New("device gone")
	lr := NewLineReader(&failingReader{data: "first\nsec", err: boom})

	lines, err := readAll(t, lr)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if len(lines) != 1 || lines[0].text != "first" {
		t.Errorf("lines before read error = %v, want [first]", lines)
	}
}

func TestOpenLines(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	if err := os.WriteFile(testFile, []byte("hello\nworld"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	lr, closer, err := OpenLines(testFile)
	if err != nil {
		t.Fatalf("OpenLines() error = %v", err)
	}
	defer closer.Close()

	lines, err := readAll(t, lr)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(lines) != 2 || lines[1].text != "world" {
		t.Errorf("lines = %v, want [hello world]", lines)
	}
}

func TestOpenLines_NonExistent(t *testing.T) {
	_, _, err := OpenLines("/nonexistent/file.txt")
	if err == nil {
		t.Error("OpenLines() expected error for non-existent file, got nil")
	}
}
