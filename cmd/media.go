package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"quickcut/probe"
	"quickcut/segments"
	"quickcut/timecode"
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Show the timestamps and stream info QuickCut would use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := segments.Stat(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:     %s\n", src.Path)
			fmt.Fprintf(out, "Birth:    %s\n", time.Unix(src.BirthEpoch, 0).Format(time.DateTime))
			fmt.Fprintf(out, "Modified: %s\n", time.Unix(src.ModEpoch, 0).Format(time.DateTime))

			info, err := probe.Media(src.Path)
			if err != nil {
				a.logger.Warn("probe failed", "err", err)
				return nil
			}
			fmt.Fprintf(out, "Duration: %s (%.2fs)\n", timecode.Format(int(info.Duration)), info.Duration)
			fmt.Fprintf(out, "Video:    %s %dx%d @ %.2f fps\n", info.Codec, info.Width, info.Height, info.FPS)
			return nil
		},
	}
}
