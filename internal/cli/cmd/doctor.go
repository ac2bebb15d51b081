package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vid2anim/internal/config"
	"vid2anim/internal/util"
	"vid2anim/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose the ffmpeg installation and encoder support",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := config.Load()
			ff, ferr := deps.FindFFmpeg(getPersistentString(cmd, "ffmpeg", settings.FFmpegPath))
			if ferr != nil {
				return &ExitError{Code: ExitMissingDep, Err: ferr}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "FFmpeg: %s\n", ff)

			// Animated output needs libaom-av1 and libwebp compiled in.
			res, err := util.Run(cmd.Context(), util.CmdSpec{
				Path: ff,
				Args: []string{"-hide_banner", "-encoders"},
			})
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: fmt.Errorf("ffmpeg -encoders failed: %w", err)}
			}
			encoders := string(res.Stdout)
			for _, name := range []string{"libaom-av1", "libwebp"} {
				status := "missing"
				if strings.Contains(encoders, name) {
					status = "ok"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Encoder %-11s %s\n", name+":", status)
			}
			return nil
		},
	}
}
