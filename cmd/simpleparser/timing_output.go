package main

import (
	"fmt"
	"io"
	"time"

	"simpleparser/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings, files, cached int) {
	if out == nil {
		return
	}
	if timings.Has(buildpipeline.StageParse) {
		fmt.Fprintf(out, "parsed %d files (%d cached) in %.1f ms\n", files, cached, toMillis(timings.Duration(buildpipeline.StageParse)))
	}
	if timings.Has(buildpipeline.StageEncode) {
		fmt.Fprintf(out, "encoded %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageEncode)))
	}
	fmt.Fprintf(out, "total %.1f ms\n", toMillis(timings.Sum(timings.Stages()...)))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
