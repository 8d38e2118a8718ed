package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"quickcut/extract"
	"quickcut/filetimes"
	"quickcut/logging"
)

const (
	envLogLevel = "QUICKCUT_LOG_LEVEL"
	envFFmpeg   = "QUICKCUT_FFMPEG"
	envJobs     = "QUICKCUT_JOBS"
)

// app carries state shared by every subcommand.
type app struct {
	logLevel string
	ffmpeg   string
	logger   *slog.Logger

	// nil means the host implementation; tests swap in fakes
	runner extract.Runner
	clock  filetimes.Clock
}

func newRootCmd(a *app) *cobra.Command {
	var opts cutOptions
	root := &cobra.Command{
		Use:   "quickcut [file]",
		Short: "Cut segments out of a video without re-encoding",
		Long: `QuickCut extracts time ranges from one video with ffmpeg stream copy.
Each cut is stamped with the creation and modification time it had inside
the original recording, so cuts sort where they happened.

"quickcut <file>" is the same as "quickcut cut <file>".`,
		Example: `  quickcut movie.mp4
  quickcut clip.mov -r 0:00-0:05 -r 0:10-0:20`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(cmd.ErrOrStderr(), a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCut(cmd, a, args[0], opts)
		},
	}
	addCutFlags(root.Flags(), &opts)

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", envString(envLogLevel, "info"), "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.ffmpeg, "ffmpeg", envString(envFFmpeg, "ffmpeg"), "ffmpeg binary name or path (the duration check always runs ffprobe from PATH)")

	root.AddCommand(newCutCmd(a))
	root.AddCommand(newPlanCmd(a))
	root.AddCommand(newProbeCmd(a))
	return root
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
