// Package prompt collects the segment count and timecodes from a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quickcut/segments"
)

// ErrAborted is returned when input ends before collection finished.
var ErrAborted = errors.New("input aborted")

// Collector reads answers line by line from In and writes questions to Out.
type Collector struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewCollector(in io.Reader, out io.Writer) *Collector {
	return &Collector{in: bufio.NewScanner(in), out: out}
}

func (c *Collector) ask(question string) (string, error) {
	fmt.Fprint(c.out, question)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Count asks for the number of segments until a positive integer is given.
func (c *Collector) Count() (int, error) {
	for {
		answer, err := c.ask("Number of segments: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n <= 0 {
			fmt.Fprintf(c.out, "  please enter a positive integer\n")
			continue
		}
		return n, nil
	}
}

// Ranges asks for n start/end pairs. Bad timecodes, empty ranges and
// repeats of an earlier segment are rejected and asked again.
func (c *Collector) Ranges(n int) ([]segments.TimeRange, error) {
	ranges := make([]segments.TimeRange, 0, n)
	for i := 1; i <= n; i++ {
		r, err := c.one(i, ranges)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func (c *Collector) one(i int, accepted []segments.TimeRange) (segments.TimeRange, error) {
	for {
		start, err := c.ask(fmt.Sprintf("Segment %d start (SS, MM:SS or HH:MM:SS): ", i))
		if err != nil {
			return segments.TimeRange{}, err
		}
		end, err := c.ask(fmt.Sprintf("Segment %d end: ", i))
		if err != nil {
			return segments.TimeRange{}, err
		}

		r, err := segments.NewRange(start, end)
		if err != nil {
			fmt.Fprintf(c.out, "  %v\n", err)
			continue
		}
		if err := segments.ValidateRanges(append(accepted[:len(accepted):len(accepted)], r)); err != nil {
			fmt.Fprintf(c.out, "  %v\n", err)
			continue
		}
		return r, nil
	}
}

// Collect runs Count then Ranges.
func (c *Collector) Collect() ([]segments.TimeRange, error) {
	n, err := c.Count()
	if err != nil {
		return nil, err
	}
	return c.Ranges(n)
}
