package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"simpleparser/internal/diag"
	"simpleparser/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file|->",
		Short: "Apply quick fixes offered by parse diagnostics",
		Long: `Fix parses the input, applies the first quick fix of the reported error
(such as a missing ';') and parses again until the source is clean or no fix is left.
The fixed source goes to stdout unless --write is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runFix,
	}
	cmd.Flags().Bool("write", false, "write the fixed source back to the file")
	cmd.Flags().Int("max-rounds", fix.DefaultMaxRounds, "maximum number of parse/fix rounds")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) (err error) {
	filePath := args[0]
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	maxRounds, err := cmd.Flags().GetInt("max-rounds")
	if err != nil {
		return fmt.Errorf("failed to get max-rounds flag: %w", err)
	}
	if write && filePath == "-" {
		return errors.New("--write cannot be used with stdin")
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

	name := filePath
	var content []byte
	if filePath == "-" {
		name = "<stdin>"
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		// #nosec G304 -- path is provided by the user
		content, err = os.ReadFile(filePath)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	res, err := fix.Run(ctx, name, content, maxRounds)
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		return err
	}

	if !s.quiet {
		for _, applied := range res.Applied {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s at offset %d (%s)\n", name, applied.Title, applied.Offset, applied.Code.ID())
		}
	}
	bag := diag.NewBag(s.cfg.Parse.MaxDiagnostics)
	for _, d := range res.Remaining {
		bag.Add(d)
	}
	hadErrors, err := printDiagnostics(cmd.ErrOrStderr(), bag, res.FileSet, s)
	if err != nil {
		return err
	}

	if write {
		if len(res.Applied) > 0 {
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(filePath); statErr == nil {
				mode = info.Mode().Perm()
			}
			if err := os.WriteFile(filePath, res.Source, mode); err != nil {
				return fmt.Errorf("write %s: %w", filePath, err)
			}
		}
	} else if _, err := cmd.OutOrStdout().Write(res.Source); err != nil {
		return err
	}
	if hadErrors {
		return errHadDiagnostics
	}
	return nil
}
