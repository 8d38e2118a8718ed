package segments

import (
	"time"

	"quickcut/timecode"
)

// SourceFile is the recording being cut.
type SourceFile struct {
	Path       string // absolute, cleaned
	BirthEpoch int64  // falls back to ModEpoch when the filesystem has no birth time
	ModEpoch   int64
}

// TimeRange is one requested cut. Start and End keep the caller's text so
// ffmpeg sees exactly what was typed; the seconds fields are derived and
// floored. startFrac and endFrac hold the dropped sub-second digits.
type TimeRange struct {
	Start        string
	End          string
	StartSeconds int
	EndSeconds   int

	startFrac string
	endFrac   string
}

func (r TimeRange) startExact() timecode.Exact {
	return timecode.Exact{Seconds: r.StartSeconds, Frac: r.startFrac}
}

func (r TimeRange) endExact() timecode.Exact {
	return timecode.Exact{Seconds: r.EndSeconds, Frac: r.endFrac}
}

// String renders the range the way it was entered.
func (r TimeRange) String() string {
	return r.Start + " -> " + r.End
}

// Spec is one planned extraction. It is built once by BuildPlan and only
// read afterwards.
type Spec struct {
	Index         int // 1-based, input order
	Range         TimeRange
	OutputPath    string
	CreationEpoch int64
	ModEpoch      int64
}

func (s Spec) CreationTime() time.Time { return time.Unix(s.CreationEpoch, 0) }
func (s Spec) ModTime() time.Time      { return time.Unix(s.ModEpoch, 0) }

// CreationTag is the ISO-8601 UTC value written into the container's
// creation_time metadata.
func (s Spec) CreationTag() string {
	return s.CreationTime().UTC().Format("2006-01-02T15:04:05Z")
}

// Label identifies the spec in logs and reports.
func (s Spec) Label() string {
	return "[" + twoDigits(s.Index) + "] " +
		timecode.Format(s.Range.StartSeconds) + " -> " + timecode.Format(s.Range.EndSeconds)
}

// Plan is the full batch for one source file.
type Plan struct {
	Source    SourceFile
	Specs     []Spec
	OutputDir string // set only when the batch has more than one segment
}

// Result is the outcome of one Spec.
type Result struct {
	Spec     Spec
	OK       bool
	Err      error    // set iff !OK
	Warnings []string // soft failures, e.g. timestamps not applied
}

// Report holds one Result per Spec, in Spec order.
type Report struct {
	Source    SourceFile
	Results   []Result
	OutputDir string
}

func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK {
			n++
		}
	}
	return n
}

func (r Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}
