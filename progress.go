package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"docxcrack/internal/wordlist"
)

// progressPrinter rewrites a single status line on a terminal and falls
// back to log entries when output is redirected.
type progressPrinter struct {
	w       io.Writer
	log     *zap.Logger
	tty     bool
	printed bool
}

func newProgressPrinter(w io.Writer, log *zap.Logger) *progressPrinter {
	return &progressPrinter{w: w, log: log, tty: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *progressPrinter) report(pr wordlist.Progress) {
	e := pr.Elapsed.Seconds()
	if !p.tty {
		p.log.Info("progress", zap.Int("attempts", pr.Attempts), zap.Duration("elapsed", pr.Elapsed))
		return
	}
	rate := 0.0
	if e > 1e-9 {
		rate = float64(pr.Attempts) / e
	}
	fmt.Fprintf(p.w, "\r  tried %d passwords | Speed: %.1f/s | Elapsed: %.1fs        ", pr.Attempts, rate, e)
	p.printed = true
}

// finish ends the status line so later output starts on a fresh line.
func (p *progressPrinter) finish() {
	if p.printed {
		fmt.Fprintln(p.w)
		p.printed = false
	}
}
