package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"simpleparser/internal/version"
)

// errHadDiagnostics signals exit status 1 after diagnostics were already printed.
var errHadDiagnostics = errors.New("input has errors")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "simpleparser",
		Short:         "Tokenizer and parser for a small JavaScript subset",
		Long:          `simpleparser turns source text into tokens or an ESTree-style syntax tree`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("diagnostics-format", "pretty", "diagnostics output format (pretty|json|short)")
	pf.String("config", "", "config file (default: nearest simpleparser.toml|yaml)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept in the trace ring buffer")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
	return rootCmd
}

// main builds the command tree and runs it. Any error exits with status 1;
// errHadDiagnostics is silent because the diagnostics are already on stderr.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errHadDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
