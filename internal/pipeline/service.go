// Package pipeline orchestrates the two-pass ffmpeg conversion workflow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"vid2anim/internal/encoder"
	"vid2anim/internal/model"
	"vid2anim/internal/progress"
	"vid2anim/internal/util"
)

// Service runs the analysis pass and the output pass in strict sequence and
// classifies the terminal outcome. It holds no state between conversions.
type Service struct {
	ffmpegPath string
	runner     util.CmdRunner
	verbose    bool
	workDir    string
	reporter   progress.Reporter
	jobID      string
}

// Option configures a Service.
type Option func(*Service)

// WithFFmpegPath sets the ffmpeg binary path.
func WithFFmpegPath(p string) Option {
	return func(s *Service) {
		s.ffmpegPath = p
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithVerbose enables command echo and stderr streaming.
func WithVerbose(v bool) Option {
	return func(s *Service) {
		s.verbose = v
	}
}

// WithWorkDir sets the working directory for both passes. ffmpeg drops its
// two-pass stats files in the working directory, so callers typically point
// this at a per-conversion temp dir. Empty means inherit.
func WithWorkDir(dir string) Option {
	return func(s *Service) {
		s.workDir = dir
	}
}

// WithReporter attaches a stage reporter (used by TUI).
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithJobID sets the job ID associated with reporter events.
func WithJobID(id string) Option {
	return func(s *Service) {
		s.jobID = id
	}
}

// NewService constructs a new Service with the provided options.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.runner == nil {
		s.runner = util.NewDefaultRunner()
	}
	return s
}

// Convert runs two-pass encoding of inputPath into outputPath. Pass 2 starts
// only if pass 1 exits with status 0; a failed pass is terminal for this
// call. The returned result is classified, never an error value: the caller
// decides how to present it.
func (s *Service) Convert(ctx context.Context, inputPath, outputPath string, format model.Format, bundle model.ParameterBundle) model.ConversionResult {
	if _, err := exec.LookPath(s.ffmpegPath); err != nil {
		return s.finish(model.ConversionResult{
			Kind:        model.EncoderNotFound,
			Diagnostic:  err.Error(),
			EncoderPath: s.ffmpegPath,
		})
	}

	for _, pass := range []int{encoder.AnalysisPass, encoder.OutputPass} {
		s.emitStage(pass)

		res, err := s.runner.Run(ctx, util.CmdSpec{
			Path:    s.ffmpegPath,
			Args:    encoder.BuildPassArgs(format, bundle, pass, inputPath, outputPath),
			Dir:     s.workDir,
			Verbose: s.verbose,
		})
		if err != nil || res.Code != 0 {
			return s.finish(s.classify(pass, res, err))
		}
	}

	return s.finish(model.ConversionResult{
		Kind:        model.Succeeded,
		OutputPath:  outputPath,
		EncoderPath: s.ffmpegPath,
	})
}

// classify maps a failed pass invocation onto the result taxonomy.
func (s *Service) classify(pass int, res util.CmdResult, err error) model.ConversionResult {
	out := model.ConversionResult{EncoderPath: s.ffmpegPath}

	switch {
	case res.Code > 0:
		out.Kind = model.EncoderFailed
		out.FailedPass = pass
		out.Diagnostic = strings.TrimSpace(string(res.Stderr))
	case errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
		out.Kind = model.EncoderNotFound
		out.Diagnostic = err.Error()
	default:
		out.Kind = model.UnexpectedError
		if err != nil {
			out.Diagnostic = err.Error()
		} else {
			out.Diagnostic = strings.TrimSpace(string(res.Stderr))
		}
	}
	return out
}

// finish forwards the terminal result to the reporter, if any.
func (s *Service) finish(result model.ConversionResult) model.ConversionResult {
	if s.reporter == nil {
		return result
	}
	if result.Ok() {
		var bytes int64
		if fi, err := os.Stat(result.OutputPath); err == nil {
			bytes = fi.Size()
		}
		s.reporter.Update(progress.Update{
			JobID:   s.jobID,
			Stage:   progress.StageCompleted,
			Message: fmt.Sprintf("Saved: %s", result.OutputPath),
		})
		s.reporter.Result(progress.Result{
			JobID:      s.jobID,
			OutputPath: result.OutputPath,
			Bytes:      bytes,
		})
		return result
	}
	s.reporter.Update(progress.Update{
		JobID:   s.jobID,
		Stage:   progress.StageError,
		Message: result.Message(),
	})
	s.reporter.Result(progress.Result{
		JobID: s.jobID,
		Err:   errors.New(result.Message()),
	})
	return result
}

func (s *Service) emitStage(pass int) {
	if s.reporter == nil {
		return
	}
	stage := progress.StagePass1
	msg := "Analyzing (pass 1)"
	if pass == encoder.OutputPass {
		stage = progress.StagePass2
		msg = "Encoding (pass 2)"
	}
	s.reporter.Update(progress.Update{JobID: s.jobID, Stage: stage, Message: msg})
}
