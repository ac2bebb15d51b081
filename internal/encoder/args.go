package encoder

import (
	"fmt"
	"strconv"

	"vid2anim/internal/model"
)

// Pass numbers for two-pass encoding.
const (
	AnalysisPass = 1
	OutputPass   = 2
)

// nullSink is where the analysis pass writes its discarded output.
const nullSink = "-"

// BuildPassArgs constructs the ffmpeg argument list for one pass.
//
// The filter, frame-rate, codec, knob, and extra tokens are identical for
// both passes: ffmpeg's two-pass mode requires bit-identical encoding
// parameters across passes so the statistics from pass 1 apply to pass 2.
// Only the trailing pass-number and sink/output tokens differ:
//
//	pass 1: ... -pass 1 -f null -
//	pass 2: ... -pass 2 -loop 0 <output>
func BuildPassArgs(format model.Format, bundle model.ParameterBundle, pass int, inputPath, outputPath string) []string {
	cfg, scaleFilter, maxWidth, frameRate := Resolve(format, bundle)

	args := []string{
		"-i", inputPath,
		"-vf", fmt.Sprintf("scale=%s:-2:flags=%s", maxWidth, scaleFilter),
		"-r", frameRate,
		"-c:v", cfg.Codec,
		cfg.Param1Key, cfg.Param1Val,
		cfg.Param2Key, cfg.Param2Val,
	}
	args = append(args, cfg.Extra...)
	args = append(args, "-pass", strconv.Itoa(pass))

	if pass == AnalysisPass {
		args = append(args, "-f", "null", nullSink)
	} else {
		// -loop 0 repeats the animation indefinitely.
		args = append(args, "-loop", "0", outputPath)
	}
	return args
}
