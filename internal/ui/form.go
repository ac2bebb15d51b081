package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"vid2anim/internal/model"
)

// anyFormat marks a field shown regardless of the selected format.
const anyFormat = model.Format("")

// field is one editable row of the parameter form. Fields carrying a bundle
// key feed the ParameterBundle; the rest (ffmpeg path, video file) are
// plumbing for the conversion call itself.
type field struct {
	label  string
	key    string       // bundle key, empty for plumbing fields
	format model.Format // anyFormat, FormatAVIF, or FormatWebP
	input  textinput.Model
}

const (
	fieldFFmpeg = "ffmpeg_path"
	fieldVideo  = "input_video_path"
)

func newField(label, key string, format model.Format, value string, width int) field {
	in := textinput.New()
	in.SetValue(value)
	in.CharLimit = 256
	in.Width = width
	return field{label: label, key: key, format: format, input: in}
}

// buildFields lays out the form in display order: plumbing rows first, then
// the AVIF set, then the WebP set. Only the active format's set is shown.
func buildFields(opts model.CLIOptions, ffmpegPath, videoPath string) []field {
	b := opts.Bundle
	return []field{
		newField("FFmpeg path", fieldFFmpeg, anyFormat, ffmpegPath, 48),
		newField("Video file", fieldVideo, anyFormat, videoPath, 48),

		newField("CRF (0-63)", model.KeyCRF, model.FormatAVIF, b[model.KeyCRF], 12),
		newField("Frame rate", model.KeyFrameRateAVIF, model.FormatAVIF, b[model.KeyFrameRateAVIF], 12),
		newField("Max width (px)", model.KeyMaxWidthAVIF, model.FormatAVIF, b[model.KeyMaxWidthAVIF], 12),
		newField("Scale filter", model.KeyScaleFilterAVIF, model.FormatAVIF, b[model.KeyScaleFilterAVIF], 12),
		newField("CPU used (0-8)", model.KeyCPUUsed, model.FormatAVIF, b[model.KeyCPUUsed], 12),

		newField("Quality (0-100)", model.KeyQualityWebP, model.FormatWebP, b[model.KeyQualityWebP], 12),
		newField("Frame rate", model.KeyFrameRateWebP, model.FormatWebP, b[model.KeyFrameRateWebP], 12),
		newField("Max width (px)", model.KeyMaxWidthWebP, model.FormatWebP, b[model.KeyMaxWidthWebP], 12),
		newField("Scale filter", model.KeyScaleFilterWebP, model.FormatWebP, b[model.KeyScaleFilterWebP], 12),
		newField("Compression (0-6)", model.KeyCompressionLevel, model.FormatWebP, b[model.KeyCompressionLevel], 12),
		newField("Preset", model.KeyPreset, model.FormatWebP, b[model.KeyPreset], 12),
	}
}

// visibleFields returns indices of fields shown for the selected format,
// in display order.
func visibleFields(fields []field, format model.Format) []int {
	var idx []int
	for i, f := range fields {
		if f.format == anyFormat || f.format == format {
			idx = append(idx, i)
		}
	}
	return idx
}

// bundleFromFields collects every bundle-backed field, visible or not, so a
// format switch never loses the other format's values.
func bundleFromFields(fields []field, base model.ParameterBundle) model.ParameterBundle {
	out := base.Clone()
	for _, f := range fields {
		if f.format == anyFormat || f.key == "" {
			continue
		}
		out[f.key] = f.input.Value()
	}
	return out
}
