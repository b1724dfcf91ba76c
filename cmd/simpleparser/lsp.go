package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"simpleparser/internal/lsp"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		Long:  `Lsp serves parse diagnostics, quick fixes, hover, definitions, symbols and folding ranges over stdin/stdout`,
		Args:  cobra.NoArgs,
		RunE:  runLSP,
	}
	cmd.Flags().Duration("debounce", 200*time.Millisecond, "delay before re-parsing after an edit")
	return cmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts := lsp.ServerOptions{
		Debounce:       debounce,
		MaxDiagnostics: s.cfg.Parse.MaxDiagnostics,
	}
	if !s.quiet {
		opts.Log = cmd.ErrOrStderr()
	}
	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
