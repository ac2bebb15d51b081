package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vid2anim/internal/ui"
)

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tui [video]",
		Short:         "Interactive parameter form",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runTUI,
	}
	bindConvertFlags(cmd.Flags())
	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return &ExitError{Code: ExitCLIError, Err: errors.New("interactive mode requires a terminal; use 'vid2anim convert' instead")}
	}

	opts, err := assembleOptions(cmd)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	inputPath := ""
	if len(args) > 0 {
		inputPath = args[0]
	}

	if err := ui.Run(cmd.Context(), inputPath, opts); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
