// Package wordlist runs a digest.Verifier over a stream of candidate
// passwords, stopping at the first match in source order.
package wordlist

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"docxcrack/internal/digest"
)

const DefaultProgressEvery = 100

type Progress struct {
	Attempts int
	Elapsed  time.Duration
}

// Result of a scan. Attempts is the 1-indexed line of the match when Found,
// otherwise the number of lines read.
type Result struct {
	Found    bool
	Password string
	Mode     digest.Mode
	Digest   digest.Digest
	Attempts int
	Elapsed  time.Duration
}

type Options struct {
	// Workers > 1 verifies candidates concurrently. The reported match is
	// still the earliest matching line.
	Workers int

	// ProgressEvery is the number of attempts between OnProgress calls.
	ProgressEvery int

	OnProgress func(Progress)

	// OnInvalidUTF8 is called with the 1-indexed line number and the raw
	// bytes of a line that is not valid UTF-8. The line is still tried with
	// invalid sequences replaced by U+FFFD.
	OnInvalidUTF8 func(line int, raw []byte)
}

type Scanner struct {
	verifier *digest.Verifier
	opts     Options
}

func NewScanner(v *digest.Verifier, opts Options) *Scanner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.ProgressEvery < 1 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	return &Scanner{verifier: v, opts: opts}
}

// Scan reads src until a candidate matches or src is exhausted. Cancelling
// ctx stops the scan between candidates; the partial result is returned with
// ctx.Err().
func (s *Scanner) Scan(ctx context.Context, src Source) (Result, error) {
	if s.opts.Workers > 1 {
		return s.scanParallel(ctx, src)
	}
	return s.scanSequential(ctx, src)
}

// ScanFile opens path (see OpenFile) and scans it. An unreadable path fails
// before any candidate is tried.
func ScanFile(ctx context.Context, v *digest.Verifier, path string, opts Options) (Result, error) {
	src, err := OpenFile(path)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()
	return NewScanner(v, opts).Scan(ctx, src)
}

func (s *Scanner) scanSequential(ctx context.Context, src Source) (Result, error) {
	var (
		res   Result
		start = time.Now()
		dec   = unicode.UTF8.NewDecoder()
	)
	for {
		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		raw, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}

		res.Attempts++
		pw := s.candidate(dec, res.Attempts, raw)
		if m := s.verifier.Verify(pw); m.Matched {
			res.Found, res.Password, res.Mode, res.Digest = true, pw, m.Mode, m.Digest
			res.Elapsed = time.Since(start)
			return res, nil
		}
		if res.Attempts%s.opts.ProgressEvery == 0 && s.opts.OnProgress != nil {
			s.opts.OnProgress(Progress{Attempts: res.Attempts, Elapsed: time.Since(start)})
		}
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// candidate strips line terminators and decodes the line leniently.
func (s *Scanner) candidate(dec *encoding.Decoder, n int, raw []byte) string {
	line := bytes.TrimRight(raw, "\r\n")
	if utf8.Valid(line) {
		return string(line)
	}
	if s.opts.OnInvalidUTF8 != nil {
		s.opts.OnInvalidUTF8(n, line)
	}
	out, err := dec.Bytes(line)
	if err != nil {
		return strings.ToValidUTF8(string(line), "\uFFFD")
	}
	return string(out)
}
