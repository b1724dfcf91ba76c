package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"simpleparser/internal/diagfmt"
	"simpleparser/internal/driver"
	"simpleparser/internal/observ"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file|->",
		Short: "Tokenize a source file",
		Long:  `Tokenize breaks a source file (or stdin with -) into tokens with their spans and leading trivia`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) (err error) {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ctx, cleanup, err := setupTracing(cmd, s.cfg.Trace)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	var timer *observ.Timer
	if s.timings {
		timer = observ.NewTimer()
	}
	opts := driver.Options{
		MaxDiagnostics: s.cfg.Parse.MaxDiagnostics,
		KeepTrivia:     true,
		Timer:          timer,
	}

	var result *driver.TokenizeResult
	if filePath == "-" {
		result, err = driver.TokenizeReader(ctx, "<stdin>", cmd.InOrStdin(), opts)
	} else {
		result, err = driver.Tokenize(ctx, filePath, opts)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	hadErrors, err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, s)
	if err != nil {
		return err
	}

	phase := timer.Begin("encode")
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
	timer.End(phase, "")
	if err != nil {
		return err
	}
	if s.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if hadErrors {
		return errHadDiagnostics
	}
	return nil
}
