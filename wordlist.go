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

func newWordlistCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wordlist <salt_base64> <hash_base64> <spinCount> <path_to_wordlist>",
		Short: "Try every line of a wordlist, stopping at the first match",
		Long: `Try every line of a wordlist, stopping at the first match.

Lines are tried verbatim after stripping line terminators. "-" reads the
wordlist from standard input.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := digest.ParseParams(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return a.scan(cmd.Context(), p, args[3])
		},
	}
}

func (a *app) scan(ctx context.Context, p digest.Params, path string) error {
	progress := newProgressPrinter(a.stderr, a.log)
	opts := a.cfg.ScanOptions()
	opts.OnProgress = progress.report
	opts.OnInvalidUTF8 = func(line int, raw []byte) {
		a.log.Warn("wordlist line is not valid UTF-8, trying it with replacement characters",
			zap.Int("line", line),
			zap.Binary("raw", raw),
		)
	}

	fmt.Fprintf(a.stdout, "Wordlist: %s\n", path)
	fmt.Fprintf(a.stdout, "Spin:     %d\n", p.Spin)
	fmt.Fprintf(a.stdout, "Workers:  %d\n", opts.Workers)

	res, err := wordlist.ScanFile(ctx, p.Verifier(), path, opts)
	progress.finish()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(a.stdout, "\nInterrupted after %d attempts (%s).\n", res.Attempts, res.Elapsed.Round(time.Millisecond))
		}
		return err
	}

	a.log.Debug("scan finished",
		zap.Bool("found", res.Found),
		zap.Int("attempts", res.Attempts),
		zap.Duration("elapsed", res.Elapsed),
	)
	if !res.Found {
		fmt.Fprintf(a.stdout, "\nDone - no match found in wordlist. Checked: %d | Time: %s\n",
			res.Attempts, res.Elapsed.Round(time.Millisecond))
		return nil
	}
	fmt.Fprintf(a.stdout, "\nFOUND! password='%s'  mode=%s  attempts=%d  elapsed=%.2fs\n",
		res.Password, res.Mode, res.Attempts, res.Elapsed.Seconds())
	fmt.Fprintf(a.stdout, "computed digest (hex): %s\n", res.Digest)
	return nil
}
