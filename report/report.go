package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"quickcut/segments"
)

const stampLayout = "2006-01-02 15:04:05"

// Write prints one line per segment in index order, followed by a summary.
func Write(w io.Writer, r segments.Report) error {
	var b strings.Builder
	for _, res := range r.Results {
		spec := res.Spec
		if res.OK {
			fmt.Fprintf(&b, "OK   %s  %s  (created %s, modified %s)\n",
				spec.Label(), spec.OutputPath,
				spec.CreationTime().Format(stampLayout), spec.ModTime().Format(stampLayout))
		} else {
			fmt.Fprintf(&b, "FAIL %s  %v\n", spec.Label(), res.Err)
			fmt.Fprintf(&b, "     retry with: --range %s-%s\n", spec.Range.Start, spec.Range.End)
		}
		for _, warn := range res.Warnings {
			fmt.Fprintf(&b, "     warning: %s\n", warn)
		}
	}
	b.WriteString(Summary(r))
	b.WriteByte('\n')
	if r.OutputDir != "" {
		fmt.Fprintf(&b, "Output directory: %s\n", r.OutputDir)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary is a one-line count of outcomes.
func Summary(r segments.Report) string {
	return fmt.Sprintf("%d segment(s): %d ok, %d failed", len(r.Results), r.Succeeded(), r.Failed())
}

// WritePlan prints what a run would produce without running it.
func WritePlan(w io.Writer, p segments.Plan) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\n", p.Source.Path)
	fmt.Fprintf(&b, "Birth:  %s\n", unixStamp(p.Source.BirthEpoch))
	for _, spec := range p.Specs {
		fmt.Fprintf(&b, "%s  %s  (created %s, modified %s)\n",
			spec.Label(), spec.OutputPath,
			spec.CreationTime().Format(stampLayout), spec.ModTime().Format(stampLayout))
	}
	if p.OutputDir != "" {
		fmt.Fprintf(&b, "Output directory: %s\n", p.OutputDir)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func unixStamp(epoch int64) string {
	return time.Unix(epoch, 0).Format(stampLayout)
}
