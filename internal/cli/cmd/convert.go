package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"vid2anim/internal/config"
	"vid2anim/internal/model"
	"vid2anim/internal/pipeline"
	"vid2anim/internal/util"
	"vid2anim/internal/util/deps"
	"vid2anim/internal/util/format"
	"vid2anim/internal/util/media"
)

// paramFlags maps convert flags onto bundle keys.
var paramFlags = map[string]string{
	"crf":               model.KeyCRF,
	"avif-fps":          model.KeyFrameRateAVIF,
	"avif-max-width":    model.KeyMaxWidthAVIF,
	"avif-scale-filter": model.KeyScaleFilterAVIF,
	"cpu-used":          model.KeyCPUUsed,
	"quality":           model.KeyQualityWebP,
	"webp-fps":          model.KeyFrameRateWebP,
	"webp-max-width":    model.KeyMaxWidthWebP,
	"webp-scale-filter": model.KeyScaleFilterWebP,
	"compression-level": model.KeyCompressionLevel,
	"preset":            model.KeyPreset,
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "convert <video>",
		Short:         "Convert a video file to an animated image",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, false)
		},
	}
	bindConvertFlags(cmd.Flags())
	return cmd
}

// assembleOptions resolves the effective options with precedence:
// explicit flag > saved setting > stock default.
func assembleOptions(cmd *cobra.Command) (model.CLIOptions, error) {
	settings := config.Load()

	outFormat := settings.Format
	if cmd.Flags().Changed("format") {
		raw, _ := cmd.Flags().GetString("format")
		parsed, err := model.ParseFormat(raw)
		if err != nil {
			return model.CLIOptions{}, err
		}
		outFormat = parsed
	}

	bundle := settings.Bundle.Clone()
	for flag, key := range paramFlags {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			bundle[key] = v
		}
	}

	output, _ := cmd.Flags().GetString("output")
	keepTemp, _ := cmd.Flags().GetBool("keep-temp")

	return model.CLIOptions{
		Format:     outFormat,
		Bundle:     bundle,
		FFmpegPath: getPersistentString(cmd, "ffmpeg", settings.FFmpegPath),
		OutputPath: output,
		KeepTemp:   keepTemp,
		Verbose:    getPersistentBool(cmd, "verbose", false),
	}, nil
}

func runConvert(cmd *cobra.Command, args []string, dryRun bool) error {
	inputPath := args[0]
	if !util.IsFile(inputPath) {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("input video not found: %s", inputPath)}
	}

	opts, err := assembleOptions(cmd)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = media.OutputPath(inputPath, opts.Format)
	}

	if dryRun {
		ffmpegPath, ferr := deps.FindFFmpeg(opts.FFmpegPath)
		if ferr != nil {
			// The plan is still useful without a local ffmpeg install.
			ffmpegPath = "ffmpeg"
		}
		printPlan(inputPath, outputPath, ffmpegPath, opts)
		return nil
	}

	ffmpegPath, ferr := deps.FindFFmpeg(opts.FFmpegPath)
	if ferr != nil {
		return &ExitError{Code: ExitMissingDep, Err: ferr}
	}

	// Persist the chosen parameters before converting, matching the
	// remember-on-convert behavior users expect from the settings store.
	saveSettings(inputPath, ffmpegPath, opts)

	workDir, werr := util.MakeTempWorkdir("convert")
	if werr != nil {
		return &ExitError{Code: ExitConvert, Err: fmt.Errorf("create work dir: %w", werr)}
	}
	defer func() {
		if opts.KeepTemp {
			fmt.Fprintf(os.Stderr, "keeping work dir: %s\n", workDir)
			return
		}
		_ = os.RemoveAll(workDir)
	}()

	svc := pipeline.NewService(
		pipeline.WithFFmpegPath(ffmpegPath),
		pipeline.WithVerbose(opts.Verbose),
		pipeline.WithWorkDir(workDir),
	)

	res := svc.Convert(cmd.Context(), inputPath, outputPath, opts.Format, opts.Bundle)
	switch res.Kind {
	case model.Succeeded:
		size := ""
		if fi, serr := os.Stat(res.OutputPath); serr == nil {
			size = " (" + format.HumanizeBytes(fi.Size()) + ")"
		}
		fmt.Printf("Saved: %s%s\n", res.OutputPath, size)
		return nil
	case model.EncoderNotFound:
		return &ExitError{Code: ExitMissingDep, Err: errors.New(res.Message())}
	default:
		return &ExitError{Code: ExitConvert, Err: errors.New(res.Message())}
	}
}

// saveSettings writes the effective parameters back to the settings store.
// Best-effort: a read-only config dir should not block the conversion.
func saveSettings(inputPath, ffmpegPath string, opts model.CLIOptions) {
	lastDir := filepath.Dir(inputPath)
	if abs, err := filepath.Abs(inputPath); err == nil {
		lastDir = filepath.Dir(abs)
	}
	err := config.Save(config.Settings{
		FFmpegPath:   ffmpegPath,
		LastVideoDir: lastDir,
		Format:       opts.Format,
		Bundle:       opts.Bundle,
	})
	if err != nil && opts.Verbose {
		fmt.Fprintf(os.Stderr, "warning: failed to save settings: %v\n", err)
	}
}
