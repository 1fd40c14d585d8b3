package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docxcrack/internal/digest"
	"docxcrack/internal/wordlist"
)

// counterSource yields "00000000", "00000001", ... forever.
type counterSource struct {
	n   uint64
	buf []byte
}

func (c *counterSource) Next() ([]byte, error) {
	c.buf = fmt.Appendf(c.buf[:0], "%08d", c.n)
	c.n++
	return c.buf, nil
}

func (c *counterSource) Close() error { return nil }

func newBenchCommand(a *app) *cobra.Command {
	var (
		spin int
		dur  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure candidate throughput for a spin count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dur <= 0 {
				return fmt.Errorf("duration must be positive, got %s", dur)
			}
			// The all-zero digest is not reachable by any candidate.
			v := digest.NewVerifier(make([]byte, 16), digest.Digest{}, spin)

			progress := newProgressPrinter(a.stderr, a.log)
			opts := a.cfg.ScanOptions()
			opts.OnProgress = progress.report

			ctx, cancel := context.WithTimeout(cmd.Context(), dur)
			defer cancel()

			a.log.Debug("benchmark started", zap.Int("spin", spin), zap.Int("workers", opts.Workers), zap.Duration("duration", dur))
			res, err := wordlist.NewScanner(v, opts).Scan(ctx, &counterSource{})
			progress.finish()
			if err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			e := res.Elapsed.Seconds()
			rate := 0.0
			if e > 0 {
				rate = float64(res.Attempts) / e
			}
			fmt.Fprintf(a.stdout, "Benchmark: %s | Spin: %d | Workers: %d | Checked: %d | Speed: %.1f/s\n",
				dur, spin, opts.Workers, res.Attempts, rate)
			return nil
		},
	}
	cmd.Flags().IntVar(&spin, "spin", 100000, "Spin count to benchmark")
	cmd.Flags().DurationVar(&dur, "duration", 5*time.Second, "How long to run")
	return cmd
}
