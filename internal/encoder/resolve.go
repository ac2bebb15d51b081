// Package encoder translates a format selection and a parameter bundle into
// ordered ffmpeg argument lists for two-pass animated AVIF/WebP encoding.
package encoder

import "vid2anim/internal/model"

// EncoderConfig is the resolved, format-specific view of a parameter bundle:
// the codec plus the two primary quality knobs and fixed trailing arguments.
type EncoderConfig struct {
	Codec     string
	Param1Key string
	Param1Val string
	Param2Key string
	Param2Val string
	Extra     []string
}

// Resolve derives the encoder configuration and the shared scale-filter,
// max-width, and frame-rate values for the given format. It is a pure
// function of its inputs and performs no validation: malformed values are
// deferred to ffmpeg, which will fail the corresponding pass.
func Resolve(format model.Format, bundle model.ParameterBundle) (cfg EncoderConfig, scaleFilter, maxWidth, frameRate string) {
	if format == model.FormatWebP {
		cfg = EncoderConfig{
			Codec:     "libwebp",
			Param1Key: "-quality",
			Param1Val: bundle[model.KeyQualityWebP],
			Param2Key: "-compression_level",
			Param2Val: bundle[model.KeyCompressionLevel],
			Extra:     []string{"-preset", bundle[model.KeyPreset]},
		}
		return cfg, bundle[model.KeyScaleFilterWebP], bundle[model.KeyMaxWidthWebP], bundle[model.KeyFrameRateWebP]
	}

	cfg = EncoderConfig{
		Codec:     "libaom-av1",
		Param1Key: "-crf",
		Param1Val: bundle[model.KeyCRF],
		Param2Key: "-cpu-used",
		Param2Val: bundle[model.KeyCPUUsed],
		Extra:     []string{"-b:v", "0", "-pix_fmt", "yuv420p"},
	}
	return cfg, bundle[model.KeyScaleFilterAVIF], bundle[model.KeyMaxWidthAVIF], bundle[model.KeyFrameRateAVIF]
}
