package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"vid2anim/internal/encoder"
	"vid2anim/internal/model"
	"vid2anim/internal/util"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plan <video>",
		Short:         "Show the resolved parameters and ffmpeg commands without executing",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, true)
		},
	}
	bindConvertFlags(cmd.Flags())
	return cmd
}

// printPlan renders the resolved encoder configuration and both pass
// command lines.
func printPlan(inputPath, outputPath, ffmpegPath string, opts model.CLIOptions) {
	cfg, scaleFilter, maxWidth, frameRate := encoder.Resolve(opts.Format, opts.Bundle)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Parameter", "Value"})
	t.AppendRows([]table.Row{
		{"Input", inputPath},
		{"Output", outputPath},
		{"Format", opts.Format},
		{"Codec", cfg.Codec},
		{strings.TrimPrefix(cfg.Param1Key, "-"), cfg.Param1Val},
		{strings.TrimPrefix(cfg.Param2Key, "-"), cfg.Param2Val},
		{"Scale filter", scaleFilter},
		{"Max width", maxWidth},
		{"Frame rate", frameRate},
		{"FFmpeg", ffmpegPath},
	})
	t.Render()

	pass1 := encoder.BuildPassArgs(opts.Format, opts.Bundle, encoder.AnalysisPass, inputPath, outputPath)
	pass2 := encoder.BuildPassArgs(opts.Format, opts.Bundle, encoder.OutputPass, inputPath, outputPath)
	fmt.Println()
	fmt.Printf("Pass 1: %s\n", util.QuoteCommand(ffmpegPath, pass1))
	fmt.Printf("Pass 2: %s\n", util.QuoteCommand(ffmpegPath, pass2))
}
