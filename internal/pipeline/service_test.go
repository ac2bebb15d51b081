package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"vid2anim/internal/model"
	"vid2anim/internal/progress"
	"vid2anim/internal/util"
)

type runnerStep struct {
	res util.CmdResult
	err error
}

// fakeRunner implements util.CmdRunner with scripted per-call outcomes and
// records every spec it receives.
type fakeRunner struct {
	calls []util.CmdSpec
	steps []runnerStep
}

func (f *fakeRunner) Run(_ context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	i := len(f.calls)
	f.calls = append(f.calls, spec)
	if i >= len(f.steps) {
		return util.CmdResult{}, nil
	}
	return f.steps[i].res, f.steps[i].err
}

type recordingReporter struct {
	updates []progress.Update
	results []progress.Result
}

func (r *recordingReporter) Update(u progress.Update) {
	r.updates = append(r.updates, u)
}
func (r *recordingReporter) Result(res progress.Result) {
	r.results = append(r.results, res)
}

// writeFakeFFmpeg drops an executable file into a temp dir so the service's
// pre-launch lookup succeeds without a real ffmpeg install.
func writeFakeFFmpeg(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(p, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("failed to create fake ffmpeg: %v", err)
	}
	return p
}

func exitFailure(code int, stderr string) runnerStep {
	return runnerStep{
		res: util.CmdResult{Stderr: []byte(stderr), Code: code},
		err: fmt.Errorf("command failed (exit %d)", code),
	}
}

func TestConvert_Success(t *testing.T) {
	ff := writeFakeFFmpeg(t)
	fr := &fakeRunner{}
	workDir := t.TempDir()

	s := NewService(
		WithFFmpegPath(ff),
		WithRunner(fr),
		WithWorkDir(workDir),
	)

	res := s.Convert(context.Background(), "/in/clip.mp4", "/in/clip.avif", model.FormatAVIF, model.DefaultBundle())
	if !res.Ok() {
		t.Fatalf("Convert = %+v, want success", res)
	}
	if res.OutputPath != "/in/clip.avif" {
		t.Errorf("OutputPath = %q", res.OutputPath)
	}
	if len(fr.calls) != 2 {
		t.Fatalf("runner called %d times, want 2", len(fr.calls))
	}

	// Both passes run against the same binary in the same working dir.
	for i, call := range fr.calls {
		if call.Path != ff {
			t.Errorf("call %d path = %q, want %q", i, call.Path, ff)
		}
		if call.Dir != workDir {
			t.Errorf("call %d dir = %q, want %q", i, call.Dir, workDir)
		}
	}

	// Pass ordering: analysis to the null sink first, then the real output.
	first := strings.Join(fr.calls[0].Args, " ")
	second := strings.Join(fr.calls[1].Args, " ")
	if !strings.Contains(first, "-pass 1 -f null -") {
		t.Errorf("first call is not the analysis pass: %v", fr.calls[0].Args)
	}
	if !strings.Contains(second, "-pass 2 -loop 0 /in/clip.avif") {
		t.Errorf("second call is not the output pass: %v", fr.calls[1].Args)
	}
}

func TestConvert_Pass1FailureShortCircuits(t *testing.T) {
	ff := writeFakeFFmpeg(t)
	fr := &fakeRunner{steps: []runnerStep{
		exitFailure(1, "Error while opening encoder for output stream"),
	}}

	s := NewService(WithFFmpegPath(ff), WithRunner(fr))
	res := s.Convert(context.Background(), "/in/clip.mp4", "/in/clip.avif", model.FormatAVIF, model.DefaultBundle())

	if res.Kind != model.EncoderFailed {
		t.Fatalf("Kind = %v, want EncoderFailed", res.Kind)
	}
	if res.FailedPass != 1 {
		t.Errorf("FailedPass = %d, want 1", res.FailedPass)
	}
	if !strings.Contains(res.Diagnostic, "opening encoder") {
		t.Errorf("Diagnostic = %q, want captured stderr", res.Diagnostic)
	}
	if len(fr.calls) != 1 {
		t.Errorf("runner called %d times, want 1 (pass 2 must not run)", len(fr.calls))
	}
}

func TestConvert_Pass2Failure(t *testing.T) {
	ff := writeFakeFFmpeg(t)
	fr := &fakeRunner{steps: []runnerStep{
		{},
		exitFailure(1, "Cannot write /in/clip.webp"),
	}}

	s := NewService(WithFFmpegPath(ff), WithRunner(fr))
	res := s.Convert(context.Background(), "/in/clip.mp4", "/in/clip.webp", model.FormatWebP, model.DefaultBundle())

	if res.Kind != model.EncoderFailed {
		t.Fatalf("Kind = %v, want EncoderFailed", res.Kind)
	}
	if res.FailedPass != 2 {
		t.Errorf("FailedPass = %d, want 2", res.FailedPass)
	}
	if !strings.Contains(res.Diagnostic, "Cannot write") {
		t.Errorf("Diagnostic = %q, want captured stderr", res.Diagnostic)
	}
	if len(fr.calls) != 2 {
		t.Errorf("runner called %d times, want 2", len(fr.calls))
	}
}

func TestConvert_EncoderNotFoundAtLaunch(t *testing.T) {
	ff := writeFakeFFmpeg(t)

	tests := []struct {
		name  string
		steps []runnerStep
		calls int
	}{
		{
			name:  "pass 1",
			steps: []runnerStep{{res: util.CmdResult{Code: -1}, err: &exec.Error{Name: "ffmpeg", Err: exec.ErrNotFound}}},
			calls: 1,
		},
		{
			name:  "pass 2",
			steps: []runnerStep{{}, {res: util.CmdResult{Code: -1}, err: fmt.Errorf("start: %w", fs.ErrNotExist)}},
			calls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &fakeRunner{steps: tt.steps}
			s := NewService(WithFFmpegPath(ff), WithRunner(fr))
			res := s.Convert(context.Background(), "/in/clip.mp4", "/in/clip.avif", model.FormatAVIF, model.DefaultBundle())
			if res.Kind != model.EncoderNotFound {
				t.Errorf("Kind = %v, want EncoderNotFound", res.Kind)
			}
			if res.EncoderPath != ff {
				t.Errorf("EncoderPath = %q, want %q", res.EncoderPath, ff)
			}
			if len(fr.calls) != tt.calls {
				t.Errorf("runner called %d times, want %d", len(fr.calls), tt.calls)
			}
		})
	}
}

func TestConvert_MissingBinarySkipsBothPasses(t *testing.T) {
	fr := &fakeRunner{}
	s := NewService(
		WithFFmpegPath(filepath.Join(t.TempDir(), "no-such-ffmpeg")),
		WithRunner(fr),
	)

	res := s.Convert(context.Background(), "/in/clip.mp4", "/in/clip.avif", model.FormatAVIF, model.DefaultBundle())
	if res.Kind != model.EncoderNotFound {
		t.Fatalf("Kind = %v, want EncoderNotFound", res.Kind)
	}
	if len(fr.calls) != 0 {
		t.Errorf("runner called %d times, want 0", len(fr.calls))
	}
}

func TestConvert_UnexpectedError(t *testing.T) {
	ff := writeFakeFFmpeg(t)
	fr := &fakeRunner{steps: []runnerStep{
		{res: util.CmdResult{Code: -1}, err: fmt.Errorf("fork/exec: %w", fs.ErrPermission)},
	}}

	s := NewService(WithFFmpegPath(ff), WithRunner(fr))
	res := s.Convert(context.Background(), "/in/clip.mp4", "/in/clip.avif", model.FormatAVIF, model.DefaultBundle())

	if res.Kind != model.UnexpectedError {
		t.Fatalf("Kind = %v, want UnexpectedError", res.Kind)
	}
	if !strings.Contains(res.Diagnostic, "fork/exec") {
		t.Errorf("Diagnostic = %q, want launch error text", res.Diagnostic)
	}
}

func TestConvert_ReporterStages(t *testing.T) {
	ff := writeFakeFFmpeg(t)
	rep := &recordingReporter{}
	fr := &fakeRunner{}

	s := NewService(
		WithFFmpegPath(ff),
		WithRunner(fr),
		WithReporter(rep),
		WithJobID("job-1"),
	)

	out := filepath.Join(t.TempDir(), "clip.webp")
	if err := os.WriteFile(out, make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("failed to create output file: %v", err)
	}

	res := s.Convert(context.Background(), "/in/clip.mp4", out, model.FormatWebP, model.DefaultBundle())
	if !res.Ok() {
		t.Fatalf("Convert = %+v, want success", res)
	}

	wantStages := []progress.Stage{progress.StagePass1, progress.StagePass2, progress.StageCompleted}
	if len(rep.updates) != len(wantStages) {
		t.Fatalf("got %d updates, want %d: %+v", len(rep.updates), len(wantStages), rep.updates)
	}
	for i, want := range wantStages {
		if rep.updates[i].Stage != want {
			t.Errorf("update %d stage = %q, want %q", i, rep.updates[i].Stage, want)
		}
		if rep.updates[i].JobID != "job-1" {
			t.Errorf("update %d job = %q, want job-1", i, rep.updates[i].JobID)
		}
	}
	if len(rep.results) != 1 || rep.results[0].Err != nil {
		t.Fatalf("results = %+v, want one success", rep.results)
	}
	if rep.results[0].Bytes != 2048 {
		t.Errorf("result bytes = %d, want 2048", rep.results[0].Bytes)
	}
}

func TestConvert_ReporterFailure(t *testing.T) {
	ff := writeFakeFFmpeg(t)
	rep := &recordingReporter{}
	fr := &fakeRunner{steps: []runnerStep{exitFailure(234, "Unknown encoder 'libaom-av1'")}}

	s := NewService(WithFFmpegPath(ff), WithRunner(fr), WithReporter(rep), WithJobID("job-2"))
	res := s.Convert(context.Background(), "/in/clip.mp4", "/in/clip.avif", model.FormatAVIF, model.DefaultBundle())

	if res.Kind != model.EncoderFailed {
		t.Fatalf("Kind = %v, want EncoderFailed", res.Kind)
	}
	last := rep.updates[len(rep.updates)-1]
	if last.Stage != progress.StageError {
		t.Errorf("final stage = %q, want error", last.Stage)
	}
	if len(rep.results) != 1 || rep.results[0].Err == nil {
		t.Fatalf("results = %+v, want one failure", rep.results)
	}
	if !strings.Contains(rep.results[0].Err.Error(), "Unknown encoder") {
		t.Errorf("result err = %v, want stderr text", rep.results[0].Err)
	}
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService()
	if s.runner == nil {
		t.Error("default runner not set")
	}
}
