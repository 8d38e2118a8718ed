package segments

import (
	"fmt"
	"strings"

	"quickcut/timecode"
)

// NewRange parses start and end and rejects empty or inverted ranges.
func NewRange(start, end string) (TimeRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	s, err := timecode.ParseExact(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("start: %w", err)
	}
	e, err := timecode.ParseExact(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("end: %w", err)
	}
	if e.Compare(s) <= 0 {
		return TimeRange{}, fmt.Errorf("%w: %s -> %s", ErrEmptyRange, start, end)
	}
	return TimeRange{
		Start:        start,
		End:          end,
		StartSeconds: s.Seconds,
		EndSeconds:   e.Seconds,
		startFrac:    s.Frac,
		endFrac:      e.Frac,
	}, nil
}

// ParseRange accepts "START-END" or "START,END", as given on the command line.
func ParseRange(text string) (TimeRange, error) {
	sep := ","
	if !strings.Contains(text, sep) {
		sep = "-"
	}
	start, end, ok := strings.Cut(text, sep)
	if !ok {
		return TimeRange{}, fmt.Errorf("range %q: want START-END", text)
	}
	return NewRange(start, end)
}

// SameAs reports whether both ranges cut the same span, sub-second digits
// included. "0:10" and "00:10.0" are the same; "0:10.2" and "0:10.7" are not.
func (r TimeRange) SameAs(o TimeRange) bool {
	return r.startExact().Compare(o.startExact()) == 0 && r.endExact().Compare(o.endExact()) == 0
}

// ValidateRanges checks the batch as a whole; each range is already valid
// on its own.
func ValidateRanges(ranges []TimeRange) error {
	if len(ranges) == 0 {
		return ErrNoSegments
	}
	for i := range ranges {
		for j := 0; j < i; j++ {
			if ranges[i].SameAs(ranges[j]) {
				return fmt.Errorf("%w: segment %d repeats segment %d (%s)", ErrDuplicateRange, i+1, j+1, ranges[i])
			}
		}
	}
	return nil
}
