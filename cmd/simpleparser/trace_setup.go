package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"simpleparser/internal/config"
	"simpleparser/internal/trace"
)

// setupTracing creates the tracer described by cfg and attaches it to the
// command context. The cleanup dumps the ring buffer (if any) to errOut when
// the command failed, then flushes and closes the tracer.
func setupTracing(cmd *cobra.Command, cfg config.TraceConfig) (context.Context, func(failed bool), error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	level, err := trace.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		return trace.WithTracer(ctx, trace.Nop), func(bool) {}, nil
	}
	mode, err := trace.ParseMode(cfg.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace format: %w", err)
	}
	ringSize, err := cmd.Flags().GetInt("trace-ring-size")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: cfg.Output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	cleanup := func(failed bool) {
		if ring, ok := trace.Ring(tracer); ok && failed && mode == trace.ModeRing {
			dumpRing(errOut, ring)
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	}
	return trace.WithTracer(ctx, tracer), cleanup, nil
}

func dumpRing(w io.Writer, ring *trace.RingTracer) {
	fmt.Fprintf(w, "trace: last %d events\n", ring.Len())
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}
