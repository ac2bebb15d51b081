package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vid2anim/internal/config"
)

const (
	ExitOK         = 0
	ExitCLIError   = 1
	ExitMissingDep = 2
	ExitConvert    = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vid2anim [video]",
		Short:         "Convert a video into an animated AVIF or WebP image",
		Long:          "vid2anim turns a single video file into an animated AVIF or WebP image using ffmpeg two-pass encoding. Encoding parameters are remembered between runs; run without arguments for an interactive parameter form.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare `vid2anim` opens the interactive form; with a video
			// argument it behaves like `vid2anim convert`.
			if len(args) == 0 {
				return runTUI(cmd, args)
			}
			return runConvert(cmd, args, false)
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().String("ffmpeg", "", "Path to the ffmpeg executable (default: PATH lookup)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full ffmpeg commands/output")

	// Also bind convert flags on root, so `vid2anim <video>` works directly.
	bindConvertFlags(root.Flags())

	// Subcommands
	root.AddCommand(newConvertCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindConvertFlags(fs *pflag.FlagSet) {
	fs.StringP("format", "f", "", "Output format: avif, webp (default: last used)")
	fs.StringP("output", "o", "", "Output file path (default: input path with swapped extension)")
	fs.Bool("keep-temp", false, "Keep the two-pass stats working directory")

	// AVIF parameters
	fs.String("crf", "", "AVIF constant rate factor, 0-63")
	fs.String("avif-fps", "", "AVIF output frame rate")
	fs.String("avif-max-width", "", "AVIF maximum output width in px")
	fs.String("avif-scale-filter", "", "AVIF scale filter: lanczos, bilinear, bicubic")
	fs.String("cpu-used", "", "libaom-av1 cpu-used speed setting, 0-8")

	// WebP parameters
	fs.String("quality", "", "WebP output quality, 0-100")
	fs.String("webp-fps", "", "WebP output frame rate")
	fs.String("webp-max-width", "", "WebP maximum output width in px")
	fs.String("webp-scale-filter", "", "WebP scale filter: lanczos, bilinear, bicubic")
	fs.String("compression-level", "", "libwebp compression level, 0-6")
	fs.String("preset", "", "libwebp preset: none, default, photo, picture, drawing, icon, text")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	_ = config.Init(root)
	return root.ExecuteContext(ctx)
}

// Helpers
func getPersistentString(cmd *cobra.Command, name, def string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil || v == "" {
		return def
	}
	return v
}

func getPersistentBool(cmd *cobra.Command, name string, def bool) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return def
	}
	return v
}
