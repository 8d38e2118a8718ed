// Package extract runs one ffmpeg stream copy per segment and stamps the
// produced file with the segment's position in the original recording.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"quickcut/filetimes"
	"quickcut/segments"
)

// ErrToolMissing is returned by Preflight when ffmpeg cannot be found.
var ErrToolMissing = errors.New("ffmpeg not found")

// Runner starts an external process and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args []string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ExitError describes a failed extraction with enough detail to retry
// just that segment.
type ExitError struct {
	Range  segments.TimeRange
	Output string
	Err    error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("ffmpeg failed for %s: %v", e.Range, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// Extractor cuts segments out of one source file.
type Extractor struct {
	FFmpeg string // path to the ffmpeg binary
	Runner Runner
	Clock  filetimes.Clock
	Logger *slog.Logger
}

// New returns an Extractor wired to the host.
func New(ffmpeg string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{
		FFmpeg: ffmpeg,
		Runner: ExecRunner{},
		Clock:  filetimes.System(),
		Logger: logger.With("comp", "extract"),
	}
}

// Preflight resolves the ffmpeg binary.
func Preflight(ffmpeg string) (string, error) {
	path, err := exec.LookPath(ffmpeg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrToolMissing, err)
	}
	return path, nil
}

// Args builds the ffmpeg command line for spec. Start and end are passed
// exactly as typed; -c copy keeps the streams untouched.
func Args(src string, spec segments.Spec) []string {
	return []string{
		"-nostdin", "-hide_banner", "-loglevel", "error", "-y",
		"-ss", spec.Range.Start,
		"-to", spec.Range.End,
		"-i", src,
		"-metadata", "creation_time=" + spec.CreationTag(),
		"-c", "copy",
		spec.OutputPath,
	}
}

// Extract runs one segment. It always returns a Result; failures are
// reported in it rather than returned.
func (x *Extractor) Extract(ctx context.Context, src string, spec segments.Spec) segments.Result {
	log := x.Logger.With("index", spec.Index, "range", spec.Range.String())
	log.Debug("extract start", "out", spec.OutputPath)

	out, err := x.Runner.Run(ctx, x.FFmpeg, Args(src, spec))
	if err != nil {
		xerr := &ExitError{Range: spec.Range, Output: strings.TrimSpace(string(out)), Err: err}
		log.Error("extract failed", "err", xerr)
		return segments.Result{Spec: spec, Err: xerr}
	}

	res := segments.Result{Spec: spec, OK: true}
	res.Warnings = x.stamp(spec)
	for _, w := range res.Warnings {
		log.Warn("timestamp not applied", "detail", w)
	}
	log.Info("extract done", "out", spec.OutputPath)
	return res
}

// stamp applies target timestamps. Failures here do not undo the cut.
func (x *Extractor) stamp(spec segments.Spec) []string {
	var warnings []string
	// Birth time first: on darwin SetFile may bump the modification time.
	if x.Clock.CanSetBirthTime() {
		if err := x.Clock.SetBirthTime(spec.OutputPath, spec.CreationTime()); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if err := x.Clock.SetModTime(spec.OutputPath, spec.ModTime()); err != nil {
		warnings = append(warnings, err.Error())
	}
	return warnings
}
