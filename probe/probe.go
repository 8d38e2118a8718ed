// Package probe inspects the source recording before it is cut.
package probe

import (
	"fmt"

	vidio "github.com/AlexEidt/Vidio"

	"quickcut/segments"
	"quickcut/timecode"
)

// Info is what the run needs to know about the source media.
type Info struct {
	Duration float64 // seconds
	Width    int
	Height   int
	FPS      float64
	Codec    string
}

// Media reads stream information with ffprobe through Vidio.
func Media(path string) (Info, error) {
	video, err := vidio.NewVideo(path)
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w", path, err)
	}
	defer video.Close()

	return Info{
		Duration: video.Duration(),
		Width:    video.Width(),
		Height:   video.Height(),
		FPS:      video.FPS(),
		Codec:    video.Codec(),
	}, nil
}

// CheckRanges returns one warning per range that reaches past the end of
// the media. A zero duration means unknown and yields no warnings.
func CheckRanges(duration float64, ranges []segments.TimeRange) []string {
	if duration <= 0 {
		return nil
	}
	var warnings []string
	for i, r := range ranges {
		if float64(r.StartSeconds) >= duration {
			warnings = append(warnings, fmt.Sprintf("segment %d (%s) starts after the end of the media (%s)",
				i+1, r, timecode.Format(int(duration))))
			continue
		}
		if float64(r.EndSeconds) > duration {
			warnings = append(warnings, fmt.Sprintf("segment %d (%s) ends after the end of the media (%s); it will be shorter",
				i+1, r, timecode.Format(int(duration))))
		}
	}
	return warnings
}
