package segments

import (
	"errors"
	"testing"

	"quickcut/timecode"
)

func TestNewRange(t *testing.T) {
	r, err := NewRange(" 0:10 ", "0:25.5")
	if err != nil {
		t.Fatal(err)
	}
	if r.Start != "0:10" || r.End != "0:25.5" {
		t.Errorf("text not kept verbatim: %+v", r)
	}
	if r.StartSeconds != 10 || r.EndSeconds != 25 {
		t.Errorf("seconds = %d, %d", r.StartSeconds, r.EndSeconds)
	}

	if _, err := NewRange("0:25", "0:10"); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("inverted err = %v", err)
	}
	if _, err := NewRange("5", "5"); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("empty err = %v", err)
	}
	if _, err := NewRange("x", "5"); !errors.Is(err, timecode.ErrParse) {
		t.Errorf("parse err = %v", err)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end int
	}{
		{"0:10-0:25", 10, 25},
		{"00:00:05,00:00:08", 5, 8},
		{"5-90", 5, 90},
	}
	for _, tt := range tests {
		r, err := ParseRange(tt.in)
		if err != nil {
			t.Errorf("ParseRange(%q): %v", tt.in, err)
			continue
		}
		if r.StartSeconds != tt.start || r.EndSeconds != tt.end {
			t.Errorf("ParseRange(%q) = %d..%d", tt.in, r.StartSeconds, r.EndSeconds)
		}
	}
	for _, bad := range []string{"", "0:10", "0:25-0:10", "a-b"} {
		if _, err := ParseRange(bad); err == nil {
			t.Errorf("ParseRange(%q) expected error", bad)
		}
	}
}

func TestValidateRanges(t *testing.T) {
	a, _ := NewRange("1", "2")
	b, _ := NewRange("00:01", "00:02")
	c, _ := NewRange("3", "4")
	if err := ValidateRanges([]TimeRange{a, c}); err != nil {
		t.Errorf("unexpected err %v", err)
	}
	if err := ValidateRanges([]TimeRange{a, c, b}); !errors.Is(err, ErrDuplicateRange) {
		t.Errorf("err = %v", err)
	}
	if err := ValidateRanges(nil); !errors.Is(err, ErrNoSegments) {
		t.Errorf("err = %v", err)
	}
}

func TestReportCounts(t *testing.T) {
	r := Report{Results: []Result{{OK: true}, {OK: false, Err: errors.New("x")}, {OK: true}}}
	if r.Succeeded() != 2 || r.Failed() != 1 {
		t.Errorf("Succeeded=%d Failed=%d", r.Succeeded(), r.Failed())
	}
}

func TestSubSecondRanges(t *testing.T) {
	r, err := NewRange("0:10.2", "0:10.8")
	if err != nil {
		t.Fatalf("sub-second range rejected: %v", err)
	}
	if r.StartSeconds != 10 || r.EndSeconds != 10 {
		t.Errorf("floored seconds = %d, %d", r.StartSeconds, r.EndSeconds)
	}
	if _, err := NewRange("0:10.8", "0:10.2"); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("inverted sub-second err = %v", err)
	}
	if _, err := NewRange("0:10.50", "10.5"); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("equal sub-second err = %v", err)
	}

	a, _ := NewRange("0:10.2", "0:20")
	b, _ := NewRange("0:10.7", "0:20")
	if err := ValidateRanges([]TimeRange{a, b}); err != nil {
		t.Errorf("distinct sub-second starts rejected: %v", err)
	}
	c, _ := NewRange("00:10.20", "20.0")
	if err := ValidateRanges([]TimeRange{a, c}); !errors.Is(err, ErrDuplicateRange) {
		t.Errorf("same span written differently err = %v", err)
	}
}
