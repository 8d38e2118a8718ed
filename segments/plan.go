package segments

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"quickcut/timecode"
)

const defaultExt = ".mp4"

// BuildPlan computes output paths and target timestamps for every range.
// It does not touch the filesystem; see PrepareOutputDir.
func BuildPlan(src SourceFile, ranges []TimeRange) (Plan, error) {
	if err := ValidateRanges(ranges); err != nil {
		return Plan{}, err
	}

	dir := filepath.Dir(src.Path)
	ext := filepath.Ext(src.Path)
	stem := strings.TrimSuffix(filepath.Base(src.Path), ext)
	if ext == "" {
		ext = defaultExt
	}

	plan := Plan{Source: src, Specs: make([]Spec, 0, len(ranges))}
	multi := len(ranges) > 1
	if multi {
		plan.OutputDir = filepath.Join(dir, stem+"_cuts")
	}

	for i, r := range ranges {
		index := i + 1
		tags := timecode.Tag(r.Start) + "-" + timecode.Tag(r.End)

		var out string
		if multi {
			out = filepath.Join(plan.OutputDir, fmt.Sprintf("%s_part%s__%s%s", stem, twoDigits(index), tags, ext))
		} else {
			out = filepath.Join(dir, fmt.Sprintf("%s__%s%s", stem, tags, ext))
		}

		creation := src.BirthEpoch + int64(r.StartSeconds)
		mod := src.BirthEpoch + int64(r.EndSeconds)
		if mod < creation {
			mod = creation
		}

		plan.Specs = append(plan.Specs, Spec{
			Index:         index,
			Range:         r,
			OutputPath:    out,
			CreationEpoch: creation,
			ModEpoch:      mod,
		})
	}
	return plan, nil
}

// PrepareOutputDir creates the shared _cuts directory for multi-segment
// batches. It runs once, before any extraction starts.
func PrepareOutputDir(plan Plan) error {
	if plan.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(plan.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

func twoDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		s = "0" + s
	}
	return s
}

// FailAll reports every spec as failed with err. It is used when the batch
// cannot start at all, e.g. the output directory could not be created.
func FailAll(plan Plan, err error) Report {
	r := Report{Source: plan.Source, OutputDir: plan.OutputDir, Results: make([]Result, len(plan.Specs))}
	for i, spec := range plan.Specs {
		r.Results[i] = Result{Spec: spec, Err: fmt.Errorf("%s: %w", spec.Range, err)}
	}
	return r
}
