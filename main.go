package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"docxcrack/internal/config"
	"docxcrack/internal/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	stop   func()
	stdout io.Writer
	stderr io.Writer
}

func (a *app) init(fs *pflag.FlagSet) error {
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log, a.stop = logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile}, a.stderr)
	return nil
}

func (a *app) close() {
	if a.stop != nil {
		a.stop()
		a.stop = nil
	}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docxcrack",
		Short: "Verify or recover the editing-restriction password of OOXML documents",
		Long: `docxcrack checks passwords against the "restrict editing" marker of Word
documents: SHA-1(salt + UTF-16LE(password)) chained spinCount times.

Two iteration conventions are tried for every candidate:
  Mode A: spinCount-1 re-hashes after the initial hash
  Mode B: spinCount re-hashes after the initial hash`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Flags())
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	config.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newVerifyCommand(a),
		newWordlistCommand(a),
		newCrackCommand(a),
		newExtractCommand(a),
		newEncInfoCommand(a),
		newUnlockCommand(a),
		newBenchCommand(a),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{stdout: os.Stdout, stderr: os.Stderr}

	err := newRootCommand(a).ExecuteContext(ctx)
	a.close()
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
