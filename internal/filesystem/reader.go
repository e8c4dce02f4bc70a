package filesystem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned by LineReader when a line is not valid UTF-8
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// DecodeError reports a line that could not be decoded as text
type DecodeError struct {
	Line int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, ErrInvalidUTF8)
}

func (e *DecodeError) Unwrap() error {
	return ErrInvalidUTF8
}

// LineReader reads a text stream line by line.
// Lines are split on '\n'; a '\r' directly before the '\n' is dropped and a
// final line without a terminator is still returned as is.
type LineReader struct {
	r    *bufio.Reader
	line int
	err  error
}

// NewLineReader wraps r
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next line and its 1-based number.
// It returns io.EOF at the end of the stream, a *DecodeError for a line that
// is not valid UTF-8, or the underlying read error. Once an error is returned
// every later call returns it again.
func (lr *LineReader) Next() (string, int, error) {
	if lr.err != nil {
		return "", lr.line, lr.err
	}

	text, err := lr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		lr.err = err
		return "", lr.line + 1, err
	}
	if errors.Is(err, io.EOF) && len(text) == 0 {
		lr.err = io.EOF
		return "", lr.line, io.EOF
	}
	if errors.Is(err, io.EOF) {
		// Unterminated last line, report it now and EOF on the next call
		lr.err = io.EOF
	}

	lr.line++
	if strings.HasSuffix(text, "\n") {
		text = strings.TrimSuffix(text[:len(text)-1], "\r")
	}

	if !utf8.ValidString(text) {
		lr.err = &DecodeError{Line: lr.line}
		return "", lr.line, lr.err
	}

	return text, lr.line, nil
}

// OpenLines opens path for line reading. The caller must close the returned file.
func OpenLines(path string) (*LineReader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return NewLineReader(f), f, nil
}
