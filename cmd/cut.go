package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"quickcut/extract"
	"quickcut/probe"
	"quickcut/prompt"
	"quickcut/report"
	"quickcut/scheduler"
	"quickcut/segments"
)

type cutOptions struct {
	jobs   int
	ranges []string
	dryRun bool
}

func newCutCmd(a *app) *cobra.Command {
	var opts cutOptions
	cmd := &cobra.Command{
		Use:   "cut <file>",
		Short: "Extract segments from a video",
		Long: `Extract one or more segments from a video with ffmpeg stream copy.

Segments are read interactively unless given with --range. A single segment
is written beside the source; several go to <name>_cuts/.`,
		Example: `  quickcut cut movie.mp4
  quickcut cut clip.mov -r 0:00-0:05 -r 0:10-0:20 -r 1:00-1:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCut(cmd, a, args[0], opts)
		},
	}
	addCutFlags(cmd.Flags(), &opts)
	return cmd
}

// addCutFlags registers the flags shared by cut and the bare root form.
func addCutFlags(fs *pflag.FlagSet, opts *cutOptions) {
	fs.IntVarP(&opts.jobs, "jobs", "j", envInt(envJobs, 0), "Parallel ffmpeg processes (default: CPU count)")
	fs.StringArrayVarP(&opts.ranges, "range", "r", nil, "Segment as START-END or START,END (repeatable)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the plan without running ffmpeg")
}

// preflight checks everything that must hold before any input is asked
// for: the tool, the file and its timestamps.
func preflight(a *app, path string) (string, segments.SourceFile, error) {
	ffmpeg, err := extract.Preflight(a.ffmpeg)
	if err != nil {
		return "", segments.SourceFile{}, err
	}
	src, err := segments.Stat(path)
	if err != nil {
		return "", segments.SourceFile{}, err
	}
	return ffmpeg, src, nil
}

// collectRanges uses --range values when present, otherwise prompts.
func collectRanges(cmd *cobra.Command, flags []string) ([]segments.TimeRange, error) {
	if len(flags) == 0 {
		ranges, err := prompt.NewCollector(cmd.InOrStdin(), cmd.OutOrStdout()).Collect()
		if err != nil {
			return nil, fmt.Errorf("reading segments: %w", err)
		}
		return ranges, nil
	}

	ranges := make([]segments.TimeRange, 0, len(flags))
	for _, f := range flags {
		r, err := segments.ParseRange(f)
		if err != nil {
			return nil, fmt.Errorf("--range %s: %w", f, err)
		}
		ranges = append(ranges, r)
	}
	if err := segments.ValidateRanges(ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}

// warnPastEnd reads the source duration and prints a warning for ranges
// past its end. The duration comes from ffprobe on PATH, not from --ffmpeg;
// when that fails the check is skipped and the run goes on.
func warnPastEnd(cmd *cobra.Command, a *app, src segments.SourceFile, ranges []segments.TimeRange) {
	info, err := probe.Media(src.Path)
	if err != nil {
		a.logger.Info("skipping duration check: ffprobe from PATH could not read the source", "err", err)
		return
	}
	for _, w := range probe.CheckRanges(info.Duration, ranges) {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
	}
}

func runCut(cmd *cobra.Command, a *app, path string, opts cutOptions) error {
	ffmpeg, src, err := preflight(a, path)
	if err != nil {
		return err
	}

	ranges, err := collectRanges(cmd, opts.ranges)
	if err != nil {
		return err
	}
	warnPastEnd(cmd, a, src, ranges)

	plan, err := segments.BuildPlan(src, ranges)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.dryRun {
		return report.WritePlan(out, plan)
	}

	var rep segments.Report
	if err := segments.PrepareOutputDir(plan); err != nil {
		a.logger.Error("output directory", "dir", plan.OutputDir, "err", err)
		rep = segments.FailAll(plan, err)
	} else {
		rep = cutPlan(cmd.Context(), a, ffmpeg, plan, opts.jobs)
	}

	fmt.Fprintln(out)
	return report.Write(out, rep)
}

func cutPlan(ctx context.Context, a *app, ffmpeg string, plan segments.Plan, jobs int) segments.Report {
	x := extract.New(ffmpeg, a.logger)
	if a.runner != nil {
		x.Runner = a.runner
	}
	if a.clock != nil {
		x.Clock = a.clock
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sched := scheduler.New(jobs, a.logger)
	return sched.RunPlan(ctx, plan, func(ctx context.Context, spec segments.Spec) segments.Result {
		return x.Extract(ctx, plan.Source.Path, spec)
	})
}
