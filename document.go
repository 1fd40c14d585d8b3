package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docxcrack/internal/digest"
	"docxcrack/internal/protect"
)

var errUnsupportedAlgorithm = errors.New("protection marker does not use SHA-1")

func newExtractCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file.docx>",
		Short: "Print the documentProtection marker of a Word document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := protect.ExtractProtection(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "Attributes found on w:documentProtection:")
			for _, attr := range p.Attrs {
				fmt.Fprintf(a.stdout, "%s = %s\n", attr.Name, attr.Value)
			}
			fmt.Fprintln(a.stdout, "\nNormalized results (copy these):")
			fmt.Fprintf(a.stdout, "hash    : %s\n", p.Hash)
			fmt.Fprintf(a.stdout, "salt    : %s\n", p.Salt)
			fmt.Fprintf(a.stdout, "spinCnt : %s\n", p.SpinCount)
			if !p.IsSHA1() {
				a.log.Warn("marker declares an algorithm other than SHA-1; verify and wordlist will not match",
					zap.String("algorithmName", p.AlgorithmName),
					zap.String("cryptAlgorithmSid", p.CryptAlgorithmSid),
				)
			}
			return nil
		},
	}
}

func newEncInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encinfo <file>",
		Short: "Print verifier fields from an EncryptionInfo or encryption.xml member",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			info, err := protect.ExtractEncryptionInfo(args[0])
			if err != nil {
				return err
			}
			show := func(label, v string) {
				if v == "" {
					v = "NOT FOUND"
				}
				fmt.Fprintf(a.stdout, "%-22s %s\n", label+":", v)
			}
			fmt.Fprintf(a.stdout, "Member: %s\n", info.Member)
			show("spinCount", info.SpinCount)
			show("salt (base64)", info.SaltValue)
			show("verifier (base64)", info.EncryptedVerifier)
			show("verifierHash (base64)", info.EncryptedVerifierHash)
			return nil
		},
	}
}

func newUnlockCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <locked.docx> <unlocked.docx>",
		Short: "Write a copy of a document with the editing restriction removed",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			res, err := protect.Unlock(args[0], args[1])
			if err != nil {
				return err
			}
			switch {
			case !res.HasSettings:
				fmt.Fprintf(a.stdout, "%s not found - nothing to change. Just copied file.\n", protect.SettingsPath)
			case !res.Removed:
				fmt.Fprintln(a.stdout, "No documentProtection element found - copied file unchanged.")
			}
			fmt.Fprintf(a.stdout, "Wrote %s (%d entries). Backup your original before opening.\n", args[1], res.Entries)
			return nil
		},
	}
}

func newCrackCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "crack <file.docx> <path_to_wordlist>",
		Short: "Extract the marker from a document and run a wordlist against it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prot, err := protect.ExtractProtection(args[0])
			if err != nil {
				return err
			}
			if !prot.IsSHA1() {
				return fmt.Errorf("%w (algorithmName=%q cryptAlgorithmSid=%q)",
					errUnsupportedAlgorithm, prot.AlgorithmName, prot.CryptAlgorithmSid)
			}
			p, err := digest.ParseParams(prot.Salt, prot.Hash, prot.SpinCount)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(a.stdout, "File:     %s (edit=%s)\n", args[0], prot.Edit)
			return a.scan(cmd.Context(), p, args[1])
		},
	}
}
