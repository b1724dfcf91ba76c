package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"simpleparser/internal/ast"
	"simpleparser/internal/buildpipeline"
	"simpleparser/internal/config"
	"simpleparser/internal/diagfmt"
	"simpleparser/internal/driver"
	"simpleparser/internal/observ"
	"simpleparser/internal/source"
)

const cacheApp = "simpleparser"

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file|directory|->",
		Short: "Parse a source file or directory and output the syntax tree",
		Long: `Parse analyzes a source file, stdin (-) or every matching file in a directory
and prints the resulting syntax trees`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "json", "output format (json|tree|graph|msgpack)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().String("ui", "auto", "directory progress view (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse trees of unchanged files from the parse cache")
	cmd.Flags().Bool("drop-cache", false, "clear the parse cache before parsing")
	cmd.Flags().StringSlice("ext", nil, "file extensions parsed in directory mode (default .js)")
	return cmd
}

// parseFlags — флаги parse поверх [parse]/[cache] из конфига.
type parseFlags struct {
	format    string
	jobs      int
	ui        uiMode
	cache     bool
	dropCache bool
	exts      []string
}

func readParseFlags(cmd *cobra.Command, cfg *config.Config) (parseFlags, error) {
	flags := cmd.Flags()
	pf := parseFlags{
		format: cfg.Parse.Format,
		jobs:   cfg.Parse.Jobs,
		cache:  cfg.Cache.Enabled,
		exts:   cfg.Parse.Extensions,
	}
	var err error
	if flags.Changed("format") {
		if pf.format, err = flags.GetString("format"); err != nil {
			return pf, err
		}
		if !slices.Contains(config.Formats, pf.format) {
			return pf, fmt.Errorf("unknown format: %s", pf.format)
		}
	}
	if flags.Changed("jobs") {
		if pf.jobs, err = flags.GetInt("jobs"); err != nil {
			return pf, err
		}
	}
	if flags.Changed("cache") {
		if pf.cache, err = flags.GetBool("cache"); err != nil {
			return pf, err
		}
	}
	if flags.Changed("ext") {
		if pf.exts, err = flags.GetStringSlice("ext"); err != nil {
			return pf, err
		}
	}
	if pf.dropCache, err = flags.GetBool("drop-cache"); err != nil {
		return pf, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return pf, err
	}
	if pf.ui, err = readUIMode(uiValue); err != nil {
		return pf, err
	}
	return pf, nil
}

func runParse(cmd *cobra.Command, args []string) (err error) {
	target := args[0]

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pf, err := readParseFlags(cmd, s.cfg)
	if err != nil {
		return err
	}
	ctx, cleanup, err := setupTracing(cmd, s.cfg.Trace)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	var cache *driver.ParseCache
	if pf.cache || pf.dropCache {
		if cache, err = driver.OpenParseCache(s.cfg.Cache.Dir, cacheApp); err != nil {
			return err
		}
		if pf.dropCache {
			if err = cache.DropAll(); err != nil {
				return fmt.Errorf("drop cache: %w", err)
			}
		}
		if !pf.cache {
			cache = nil
		}
	}

	if target != "-" {
		st, statErr := os.Stat(target)
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}
		if st.IsDir() {
			return parseDirectory(ctx, cmd, target, s, pf, cache)
		}
	}
	return parseSingle(ctx, cmd, target, s, pf, cache)
}

func parseSingle(ctx context.Context, cmd *cobra.Command, target string, s *settings, pf parseFlags, cache *driver.ParseCache) error {
	var timer *observ.Timer
	if s.timings {
		timer = observ.NewTimer()
	}
	opts := driver.Options{
		MaxDiagnostics: s.cfg.Parse.MaxDiagnostics,
		Cache:          cache,
		Timer:          timer,
	}

	var (
		result *driver.ParseResult
		err    error
	)
	if target == "-" {
		result, err = driver.ParseReader(ctx, "<stdin>", cmd.InOrStdin(), opts)
	} else {
		result, err = driver.Parse(ctx, target, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	hadErrors, err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, s)
	if err != nil {
		return err
	}
	if result.Program != nil {
		phase := timer.Begin("encode")
		err = writeProgram(cmd.OutOrStdout(), pf.format, result.Program, result.FileSet)
		timer.End(phase, "")
		if err != nil {
			return err
		}
	}
	if s.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if hadErrors || result.Err != nil {
		return errHadDiagnostics
	}
	return nil
}

func writeProgram(w io.Writer, format string, prog *ast.Program, fs *source.FileSet) error {
	switch format {
	case "json":
		return diagfmt.FormatASTJSON(w, prog, "")
	case "tree":
		return diagfmt.FormatASTPretty(w, prog, fs)
	case "graph":
		return diagfmt.FormatASTGraph(w, prog)
	case "msgpack":
		return diagfmt.FormatASTMsgpack(w, prog)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func parseDirectory(ctx context.Context, cmd *cobra.Command, dir string, s *settings, pf parseFlags, cache *driver.ParseCache) error {
	opts := driver.DirOptions{
		Options: driver.Options{
			MaxDiagnostics: s.cfg.Parse.MaxDiagnostics,
			Cache:          cache,
		},
		Jobs:       pf.jobs,
		Extensions: pf.exts,
	}

	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
		err     error
	)
	start := time.Now()
	if !s.quiet && shouldUseTUI(pf.ui) {
		fs, results, err = runParseDirWithUI(ctx, cmd.ErrOrStderr(), "parsing "+dir, dir, opts)
	} else {
		fs, results, err = driver.ParseDir(ctx, dir, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	var timings buildpipeline.Timings
	timings.Set(buildpipeline.StageParse, time.Since(start))
	var cached int
	for _, r := range results {
		if r.Cached {
			cached++
		}
	}

	// Результаты уже отсортированы по пути
	hadErrors, err := printDiagnostics(cmd.ErrOrStderr(), driver.MergeBags(results), fs, s)
	if err != nil {
		return err
	}

	encStart := time.Now()
	if err := writeDirResults(cmd.OutOrStdout(), pf.format, dir, results, fs, s.quiet); err != nil {
		return err
	}
	timings.Set(buildpipeline.StageEncode, time.Since(encStart))

	if s.timings {
		printStageTimings(cmd.ErrOrStderr(), timings, len(results), cached)
	}
	if hadErrors {
		return errHadDiagnostics
	}
	return nil
}

// dirEntryPath — путь относительно корня обхода.
func dirEntryPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

func writeDirResults(w io.Writer, format, dir string, results []driver.ParseDirResult, fs *source.FileSet, quiet bool) error {
	switch format {
	case "json", "msgpack":
		docs := make(map[string]any, len(results))
		for _, r := range results {
			path := dirEntryPath(dir, r.Path)
			if r.Program == nil {
				docs[path] = nil
				continue
			}
			doc, err := diagfmt.ASTDocument(r.Program)
			if err != nil {
				return err
			}
			docs[path] = doc
		}
		if format == "msgpack" {
			enc := msgpack.NewEncoder(w)
			enc.SetSortMapKeys(true)
			return enc.Encode(docs)
		}
		encoder := json.NewEncoder(w)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		return encoder.Encode(docs)
	case "tree", "graph":
		for idx, r := range results {
			if !quiet {
				if _, err := fmt.Fprintf(w, "== %s ==\n", dirEntryPath(dir, r.Path)); err != nil {
					return err
				}
			}
			if r.Program != nil {
				if err := writeProgram(w, format, r.Program, fs); err != nil {
					return err
				}
			}
			if !quiet && idx < len(results)-1 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
