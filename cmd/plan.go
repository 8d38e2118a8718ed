package cmd

import (
	"github.com/spf13/cobra"

	"quickcut/report"
	"quickcut/segments"
)

func newPlanCmd(a *app) *cobra.Command {
	var ranges []string
	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Show output paths and timestamps for a set of ranges",
		Long:  "Compute the segment plan for a video without running ffmpeg or creating directories.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := segments.Stat(args[0])
			if err != nil {
				return err
			}
			rs, err := collectRanges(cmd, ranges)
			if err != nil {
				return err
			}
			plan, err := segments.BuildPlan(src, rs)
			if err != nil {
				return err
			}
			return report.WritePlan(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().StringArrayVarP(&ranges, "range", "r", nil, "Segment as START-END or START,END (repeatable)")
	return cmd
}
