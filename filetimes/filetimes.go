// Package filetimes reads and applies file timestamps.
//
// Modification time is settable everywhere. Creation (birth) time is only
// settable on some hosts, so callers check Clock.CanSetBirthTime first.
package filetimes

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/djherbis/times"
)

// ErrUnsupported is returned by SetBirthTime on hosts without a settable
// creation time.
var ErrUnsupported = errors.New("birth time not settable on this platform")

// Times holds what the filesystem reports for a file.
type Times struct {
	Birth    time.Time // zero when the platform does not report it
	Modified time.Time
}

// Read stats path and returns its birth and modification times.
func Read(path string) (Times, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return Times{}, err
	}
	out := Times{Modified: ts.ModTime()}
	if ts.HasBirthTime() {
		out.Birth = ts.BirthTime()
	}
	return out, nil
}

// Clock applies timestamps to produced files.
type Clock interface {
	SetModTime(path string, t time.Time) error
	CanSetBirthTime() bool
	SetBirthTime(path string, t time.Time) error
}

type systemClock struct {
	birth birthSetter
}

// System returns the Clock for the current host.
func System() Clock {
	return systemClock{birth: hostBirthSetter()}
}

// SetModTime sets both access and modification time, like touch -t.
func (c systemClock) SetModTime(path string, t time.Time) error {
	if err := os.Chtimes(path, t, t); err != nil {
		return fmt.Errorf("set modification time: %w", err)
	}
	return nil
}

func (c systemClock) CanSetBirthTime() bool {
	return c.birth != nil
}

func (c systemClock) SetBirthTime(path string, t time.Time) error {
	if c.birth == nil {
		return ErrUnsupported
	}
	if err := c.birth(path, t); err != nil {
		return fmt.Errorf("set creation time: %w", err)
	}
	return nil
}

type birthSetter func(path string, t time.Time) error
