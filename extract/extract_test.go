package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"quickcut/segments"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	out   []byte
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.out, f.err
}

type fakeClock struct {
	canBirth bool
	modErr   error
	birthErr error
	mod      map[string]time.Time
	birth    map[string]time.Time
}

func newFakeClock(canBirth bool) *fakeClock {
	return &fakeClock{canBirth: canBirth, mod: map[string]time.Time{}, birth: map[string]time.Time{}}
}

func (c *fakeClock) SetModTime(path string, t time.Time) error {
	if c.modErr != nil {
		return c.modErr
	}
	c.mod[path] = t
	return nil
}

func (c *fakeClock) CanSetBirthTime() bool { return c.canBirth }

func (c *fakeClock) SetBirthTime(path string, t time.Time) error {
	if c.birthErr != nil {
		return c.birthErr
	}
	c.birth[path] = t
	return nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSpec(t *testing.T) segments.Spec {
	t.Helper()
	r, err := segments.NewRange("0:10.5", "0:25")
	if err != nil {
		t.Fatal(err)
	}
	return segments.Spec{
		Index:         2,
		Range:         r,
		OutputPath:    "/v/clip_cuts/clip_part02__0-10.5-0-25.mov",
		CreationEpoch: 1_700_000_010,
		ModEpoch:      1_700_000_025,
	}
}

func TestArgs(t *testing.T) {
	got := Args("/v/clip.mov", testSpec(t))
	want := []string{
		"-nostdin", "-hide_banner", "-loglevel", "error", "-y",
		"-ss", "0:10.5",
		"-to", "0:25",
		"-i", "/v/clip.mov",
		"-metadata", "creation_time=2023-11-14T22:13:30Z",
		"-c", "copy",
		"/v/clip_cuts/clip_part02__0-10.5-0-25.mov",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args =\n%q\nwant\n%q", got, want)
	}
}

func TestExtractSuccessStampsFile(t *testing.T) {
	runner := &fakeRunner{}
	clock := newFakeClock(true)
	x := &Extractor{FFmpeg: "ffmpeg", Runner: runner, Clock: clock, Logger: quiet()}
	spec := testSpec(t)

	res := x.Extract(context.Background(), "/v/clip.mov", spec)
	if !res.OK || res.Err != nil {
		t.Fatalf("result = %+v", res)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if len(runner.calls) != 1 || runner.calls[0][0] != "ffmpeg" {
		t.Fatalf("calls = %v", runner.calls)
	}
	if got := clock.mod[spec.OutputPath]; got.Unix() != 1_700_000_025 {
		t.Errorf("mod time = %v", got)
	}
	if got := clock.birth[spec.OutputPath]; got.Unix() != 1_700_000_010 {
		t.Errorf("birth time = %v", got)
	}
}

func TestExtractSkipsUnsupportedBirthTime(t *testing.T) {
	clock := newFakeClock(false)
	clock.birthErr = errors.New("must not be called")
	x := &Extractor{FFmpeg: "ffmpeg", Runner: &fakeRunner{}, Clock: clock, Logger: quiet()}

	res := x.Extract(context.Background(), "/v/clip.mov", testSpec(t))
	if !res.OK || len(res.Warnings) != 0 {
		t.Fatalf("result = %+v", res)
	}
	if len(clock.birth) != 0 {
		t.Errorf("birth time set without capability")
	}
}

func TestExtractFailureIsReported(t *testing.T) {
	runner := &fakeRunner{out: []byte("  Invalid data found when processing input\n"), err: errors.New("exit status 1")}
	clock := newFakeClock(true)
	x := &Extractor{FFmpeg: "ffmpeg", Runner: runner, Clock: clock, Logger: quiet()}

	res := x.Extract(context.Background(), "/v/clip.mov", testSpec(t))
	if res.OK {
		t.Fatal("expected failure")
	}
	var xerr *ExitError
	if !errors.As(res.Err, &xerr) {
		t.Fatalf("err %T is not *ExitError", res.Err)
	}
	msg := res.Err.Error()
	for _, want := range []string{"0:10.5 -> 0:25", "exit status 1", "Invalid data found"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
	if len(clock.mod) != 0 {
		t.Error("failed cut must not be stamped")
	}
}

func TestExtractTimestampFailureIsSoft(t *testing.T) {
	clock := newFakeClock(true)
	clock.modErr = errors.New("read-only filesystem")
	clock.birthErr = errors.New("SetFile: exit status 1")
	x := &Extractor{FFmpeg: "ffmpeg", Runner: &fakeRunner{}, Clock: clock, Logger: quiet()}

	res := x.Extract(context.Background(), "/v/clip.mov", testSpec(t))
	if !res.OK || res.Err != nil {
		t.Fatalf("timestamp failure must not fail the cut: %+v", res)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestPreflightMissingTool(t *testing.T) {
	_, err := Preflight(filepath.Join(t.TempDir(), "no-such-ffmpeg"))
	if !errors.Is(err, ErrToolMissing) {
		t.Errorf("err = %v", err)
	}
}

// TestExtractWithFFmpeg runs the real tool when it is installed.
func TestExtractWithFFmpeg(t *testing.T) {
	ffmpeg, err := Preflight("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not installed")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp4")
	gen := exec.Command(ffmpeg, "-nostdin", "-loglevel", "error", "-y",
		"-f", "lavfi", "-i", "testsrc=duration=4:size=64x64:rate=10",
		"-c:v", "mpeg4", src)
	if out, err := gen.CombinedOutput(); err != nil {
		t.Skipf("cannot generate test source: %v: %s", err, out)
	}

	r, err := segments.NewRange("1", "3")
	if err != nil {
		t.Fatal(err)
	}
	spec := segments.Spec{
		Index:         1,
		Range:         r,
		OutputPath:    filepath.Join(dir, "src__1-3.mp4"),
		CreationEpoch: 1_700_000_001,
		ModEpoch:      1_700_000_003,
	}
	res := New(ffmpeg, nil).Extract(context.Background(), src, spec)
	if !res.OK {
		t.Fatalf("extract failed: %v", res.Err)
	}
	info, err := os.Stat(spec.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.ModTime().Unix() != spec.ModEpoch {
		t.Errorf("mtime = %d, want %d", info.ModTime().Unix(), spec.ModEpoch)
	}
}
