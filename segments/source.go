package segments

import (
	"fmt"
	"os"
	"path/filepath"

	"quickcut/filetimes"
)

// Stat resolves path and reads the timestamps the plan is anchored to.
func Stat(path string) (SourceFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	abs = filepath.Clean(abs)
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	if err != nil {
		return SourceFile{}, fmt.Errorf("%w: %v", ErrNotRegular, err)
	}
	if !info.Mode().IsRegular() {
		return SourceFile{}, fmt.Errorf("%w: %s", ErrNotRegular, abs)
	}

	ts, err := filetimes.Read(abs)
	if err != nil {
		return SourceFile{}, fmt.Errorf("read timestamps of %s: %w", abs, err)
	}

	src := SourceFile{Path: abs, ModEpoch: ts.Modified.Unix()}
	if !ts.Birth.IsZero() {
		src.BirthEpoch = ts.Birth.Unix()
	}
	return resolveBirth(src)
}

// resolveBirth substitutes the modification time for a missing birth time.
func resolveBirth(src SourceFile) (SourceFile, error) {
	if src.BirthEpoch <= 0 {
		src.BirthEpoch = src.ModEpoch
	}
	if src.BirthEpoch <= 0 {
		return SourceFile{}, fmt.Errorf("%w: %s", ErrNoTimestamp, src.Path)
	}
	return src, nil
}
