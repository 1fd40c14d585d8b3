package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docxcrack/internal/digest"
)

func newVerifyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <salt_base64> <hash_base64> <spinCount> <candidate_password>",
		Short: "Check one candidate password under both iteration modes",
		Args:  cobra.ExactArgs(4),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := digest.ParseParams(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			a.verify(p, args[3])
			return nil
		},
	}
}

// verify narrates each mode the way the verdict is reached: mode A first,
// mode B only when A did not match.
func (a *app) verify(p digest.Params, candidate string) {
	res := p.Verifier().Verify(candidate)
	for _, mode := range digest.Modes {
		start := time.Now()
		d := digest.Compute(p.Salt, candidate, p.Spin, mode)
		took := time.Since(start)
		a.log.Debug("computed digest", zap.Stringer("mode", mode), zap.Duration("took", took))

		fmt.Fprintf(a.stdout, "Mode %s: computed %s  (time %.2fs)", mode, d, took.Seconds())
		if res.Matched && res.Mode == mode {
			fmt.Fprintln(a.stdout, " -> MATCH")
			break
		}
		fmt.Fprintln(a.stdout)
	}

	if res.Matched {
		fmt.Fprintf(a.stdout, "\nPassword OK -> '%s' (mode %s)\n", candidate, res.Mode)
		return
	}
	fmt.Fprintln(a.stdout, "\nPassword did NOT match.")
}
