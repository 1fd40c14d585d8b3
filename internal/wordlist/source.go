package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrSourceAccess is returned when the candidate source cannot be opened or
// read.
var ErrSourceAccess = errors.New("cannot read wordlist")

// Source yields raw candidate lines in order. Next returns io.EOF once the
// source is exhausted. The returned slice is only valid until the next call.
type Source interface {
	Next() ([]byte, error)
	Close() error
}

type lineSource struct {
	r    *bufio.Reader
	c    io.Closer
	line []byte
}

// NewSource reads newline separated candidates from r. Lines are returned
// with their terminators; a final line without one is still returned.
func NewSource(r io.Reader) Source {
	s := &lineSource{r: bufio.NewReaderSize(r, 64*1024)}
	if c, ok := r.(io.Closer); ok {
		s.c = c
	}
	return s
}

// OpenFile opens a wordlist on disk. "-" reads standard input, which is
// never closed.
func OpenFile(path string) (Source, error) {
	if path == "-" {
		return &lineSource{r: bufio.NewReaderSize(os.Stdin, 64*1024)}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceAccess, err)
	}
	if fi, err := f.Stat(); err != nil || fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrSourceAccess, path)
	}
	return NewSource(f), nil
}

func (s *lineSource) Next() ([]byte, error) {
	s.line = s.line[:0]
	for {
		chunk, err := s.r.ReadSlice('\n')
		s.line = append(s.line, chunk...)
		switch {
		case err == nil:
			return s.line, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(s.line) > 0 {
				return s.line, nil
			}
			return nil, io.EOF
		default:
			return nil, fmt.Errorf("%w: %w", ErrSourceAccess, err)
		}
	}
}

func (s *lineSource) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}
