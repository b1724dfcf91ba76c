package main

import (
	"context"
	"io"

	"simpleparser/internal/buildpipeline"
	"simpleparser/internal/driver"
	"simpleparser/internal/source"
	"simpleparser/internal/ui"
)

type parseDirOutcome struct {
	fs      *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// runParseDirWithUI runs ParseDir in the background and renders its progress
// events until the parse is over.
func runParseDirWithUI(ctx context.Context, out io.Writer, title, dir string, opts driver.DirOptions) (*source.FileSet, []driver.ParseDirResult, error) {
	files, err := driver.ListSourceFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- parseDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(ctx, out, title, files, events)
	if uiErr != nil {
		// UI упал — дочитываем события, чтобы воркеры не зависли на канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
