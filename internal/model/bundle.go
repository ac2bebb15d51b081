package model

// Parameter bundle keys. The key set doubles as the persisted settings
// vocabulary, so names stay flat and format-suffixed rather than nested.
const (
	KeyCRF             = "crf"
	KeyFrameRateAVIF   = "frame_rate_avif"
	KeyMaxWidthAVIF    = "max_width_avif"
	KeyScaleFilterAVIF = "scale_filter_avif"
	KeyCPUUsed         = "cpu_used"

	KeyQualityWebP      = "output_quality_webp"
	KeyFrameRateWebP    = "frame_rate_webp"
	KeyMaxWidthWebP     = "max_width_webp"
	KeyScaleFilterWebP  = "scale_filter_webp"
	KeyCompressionLevel = "compression_level"
	KeyPreset           = "preset"
)

// ParameterBundle holds the user-configured encoding parameters for both
// supported formats. All keys are present regardless of the selected format;
// only the active format's entries are read when building commands.
//
// Values stay strings end to end: they originate in flags or the settings
// file and are handed to ffmpeg verbatim, which does its own range checking.
type ParameterBundle map[string]string

// BundleKeys lists every bundle key in a stable order.
var BundleKeys = []string{
	KeyCRF,
	KeyFrameRateAVIF,
	KeyMaxWidthAVIF,
	KeyScaleFilterAVIF,
	KeyCPUUsed,
	KeyQualityWebP,
	KeyFrameRateWebP,
	KeyMaxWidthWebP,
	KeyScaleFilterWebP,
	KeyCompressionLevel,
	KeyPreset,
}

// DefaultBundle returns a bundle populated with the stock defaults.
func DefaultBundle() ParameterBundle {
	return ParameterBundle{
		KeyCRF:              "30",
		KeyFrameRateAVIF:    "16",
		KeyMaxWidthAVIF:     "720",
		KeyScaleFilterAVIF:  "lanczos",
		KeyCPUUsed:          "8",
		KeyQualityWebP:      "30",
		KeyFrameRateWebP:    "15",
		KeyMaxWidthWebP:     "720",
		KeyScaleFilterWebP:  "lanczos",
		KeyCompressionLevel: "6",
		KeyPreset:           "default",
	}
}

// Clone returns a copy of the bundle so callers can mutate freely.
func (b ParameterBundle) Clone() ParameterBundle {
	out := make(ParameterBundle, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
