package wordlist

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
)

type job struct {
	line int
	pw   string
}

// scanParallel fans candidates out to Workers goroutines. Lines are read and
// numbered by a single producer; once a match is recorded no later line is
// issued, and lines after the best match that are already queued are
// skipped. Every line before it has been issued, so the lowest matching line
// wins exactly as in the sequential scan.
func (s *Scanner) scanParallel(ctx context.Context, src Source) (Result, error) {
	var (
		start = time.Now()
		total int

		best     atomic.Int64 // lowest matching line, 0 until a match
		done     atomic.Int64
		resMu    sync.Mutex
		res      Result
		reportMu sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, s.opts.Workers*4)

	g.Go(func() error {
		defer close(jobs)
		dec := unicode.UTF8.NewDecoder()
		for best.Load() == 0 {
			raw, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			total++
			j := job{line: total, pw: s.candidate(dec, total, raw)}
			select {
			case jobs <- j:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < s.opts.Workers; i++ {
		v := s.verifier.Clone()
		g.Go(func() error {
			for j := range jobs {
				if gctx.Err() != nil {
					continue
				}
				if b := best.Load(); b != 0 && int64(j.line) > b {
					continue
				}
				if m := v.Verify(j.pw); m.Matched {
					resMu.Lock()
					if !res.Found || j.line < res.Attempts {
						res = Result{Found: true, Password: j.pw, Mode: m.Mode, Digest: m.Digest, Attempts: j.line}
						best.Store(int64(j.line))
					}
					resMu.Unlock()
					continue
				}
				n := done.Add(1)
				if n%int64(s.opts.ProgressEvery) == 0 && s.opts.OnProgress != nil {
					reportMu.Lock()
					s.opts.OnProgress(Progress{Attempts: int(n), Elapsed: time.Since(start)})
					reportMu.Unlock()
				}
			}
			return gctx.Err()
		})
	}

	err := g.Wait()
	res.Elapsed = time.Since(start)
	if !res.Found {
		res.Attempts = total
	}
	return res, err
}
