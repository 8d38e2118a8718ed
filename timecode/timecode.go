package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrParse is wrapped by every error returned from Parse.
var ErrParse = errors.New("invalid timecode")

// Exact is a parsed timecode with its sub-second digits kept. Frac holds
// the digits after the decimal point without trailing zeros.
type Exact struct {
	Seconds int
	Frac    string
}

// Compare returns -1, 0 or +1 as e is before, equal to or after o.
func (e Exact) Compare(o Exact) int {
	switch {
	case e.Seconds < o.Seconds:
		return -1
	case e.Seconds > o.Seconds:
		return 1
	}
	a, b := e.Frac, o.Frac
	if len(a) < len(b) {
		a += strings.Repeat("0", len(b)-len(a))
	} else {
		b += strings.Repeat("0", len(a)-len(b))
	}
	return strings.Compare(a, b)
}

// Parse converts SS, MM:SS or HH:MM:SS to whole seconds.
// Components carry no upper bound, so "90:00" is ninety minutes. The last
// component may have a decimal fraction, which is floored.
func Parse(text string) (int, error) {
	e, err := ParseExact(text)
	if err != nil {
		return 0, err
	}
	return e.Seconds, nil
}

// ParseExact is Parse without dropping the fraction.
func ParseExact(text string) (Exact, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Exact{}, fmt.Errorf("%w: empty", ErrParse)
	}

	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return Exact{}, fmt.Errorf("%w %q: more than 3 fields", ErrParse, text)
	}

	var out Exact
	for i, p := range parts {
		last := i == len(parts)-1
		if last {
			if whole, frac, ok := strings.Cut(p, "."); ok {
				if !isDigits(frac) {
					return Exact{}, fmt.Errorf("%w %q: bad fraction %q", ErrParse, text, frac)
				}
				out.Frac = strings.TrimRight(frac, "0")
				p = whole
			}
		}
		if !isDigits(p) {
			return Exact{}, fmt.Errorf("%w %q: field %q is not a number", ErrParse, text, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Exact{}, fmt.Errorf("%w %q: %v", ErrParse, text, err)
		}
		if out.Seconds > (math.MaxInt-n)/60 {
			return Exact{}, fmt.Errorf("%w %q: too large", ErrParse, text)
		}
		out.Seconds = out.Seconds*60 + n
	}
	return out, nil
}

// Format renders seconds as MM:SS, or HH:MM:SS once an hour is reached.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h == 0 {
		return fmt.Sprintf("%02d:%02d", m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Tag makes timecode text usable inside a file name.
func Tag(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ":", "-")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
