package encoder

import (
	"reflect"
	"strings"
	"testing"

	"vid2anim/internal/model"
)

func avifBundle() model.ParameterBundle {
	b := model.DefaultBundle()
	b[model.KeyMaxWidthAVIF] = "720"
	b[model.KeyFrameRateAVIF] = "16"
	b[model.KeyScaleFilterAVIF] = "lanczos"
	b[model.KeyCRF] = "30"
	b[model.KeyCPUUsed] = "8"
	return b
}

func webpBundle() model.ParameterBundle {
	b := model.DefaultBundle()
	b[model.KeyPreset] = "photo"
	b[model.KeyQualityWebP] = "40"
	b[model.KeyCompressionLevel] = "5"
	return b
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name            string
		format          model.Format
		bundle          model.ParameterBundle
		wantCodec       string
		wantParam1      [2]string
		wantParam2      [2]string
		wantExtra       []string
		wantScaleFilter string
		wantMaxWidth    string
		wantFrameRate   string
	}{
		{
			name:            "AVIF",
			format:          model.FormatAVIF,
			bundle:          avifBundle(),
			wantCodec:       "libaom-av1",
			wantParam1:      [2]string{"-crf", "30"},
			wantParam2:      [2]string{"-cpu-used", "8"},
			wantExtra:       []string{"-b:v", "0", "-pix_fmt", "yuv420p"},
			wantScaleFilter: "lanczos",
			wantMaxWidth:    "720",
			wantFrameRate:   "16",
		},
		{
			name:            "WebP",
			format:          model.FormatWebP,
			bundle:          webpBundle(),
			wantCodec:       "libwebp",
			wantParam1:      [2]string{"-quality", "40"},
			wantParam2:      [2]string{"-compression_level", "5"},
			wantExtra:       []string{"-preset", "photo"},
			wantScaleFilter: "lanczos",
			wantMaxWidth:    "720",
			wantFrameRate:   "15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, scaleFilter, maxWidth, frameRate := Resolve(tt.format, tt.bundle)
			if cfg.Codec != tt.wantCodec {
				t.Errorf("Codec = %q, want %q", cfg.Codec, tt.wantCodec)
			}
			if cfg.Param1Key != tt.wantParam1[0] || cfg.Param1Val != tt.wantParam1[1] {
				t.Errorf("param1 = %q %q, want %q %q", cfg.Param1Key, cfg.Param1Val, tt.wantParam1[0], tt.wantParam1[1])
			}
			if cfg.Param2Key != tt.wantParam2[0] || cfg.Param2Val != tt.wantParam2[1] {
				t.Errorf("param2 = %q %q, want %q %q", cfg.Param2Key, cfg.Param2Val, tt.wantParam2[0], tt.wantParam2[1])
			}
			if !reflect.DeepEqual(cfg.Extra, tt.wantExtra) {
				t.Errorf("Extra = %v, want %v", cfg.Extra, tt.wantExtra)
			}
			if scaleFilter != tt.wantScaleFilter || maxWidth != tt.wantMaxWidth || frameRate != tt.wantFrameRate {
				t.Errorf("scale/width/rate = %q/%q/%q, want %q/%q/%q",
					scaleFilter, maxWidth, frameRate, tt.wantScaleFilter, tt.wantMaxWidth, tt.wantFrameRate)
			}
		})
	}
}

func TestBuildPassArgs_AVIF(t *testing.T) {
	bundle := avifBundle()

	pass1 := BuildPassArgs(model.FormatAVIF, bundle, AnalysisPass, "/videos/in.mp4", "/videos/in.avif")
	pass2 := BuildPassArgs(model.FormatAVIF, bundle, OutputPass, "/videos/in.mp4", "/videos/in.avif")

	wantPass1 := []string{
		"-i", "/videos/in.mp4",
		"-vf", "scale=720:-2:flags=lanczos",
		"-r", "16",
		"-c:v", "libaom-av1",
		"-crf", "30",
		"-cpu-used", "8",
		"-b:v", "0",
		"-pix_fmt", "yuv420p",
		"-pass", "1",
		"-f", "null", "-",
	}
	wantPass2 := []string{
		"-i", "/videos/in.mp4",
		"-vf", "scale=720:-2:flags=lanczos",
		"-r", "16",
		"-c:v", "libaom-av1",
		"-crf", "30",
		"-cpu-used", "8",
		"-b:v", "0",
		"-pix_fmt", "yuv420p",
		"-pass", "2",
		"-loop", "0", "/videos/in.avif",
	}
	if !reflect.DeepEqual(pass1, wantPass1) {
		t.Errorf("pass 1 args = %v, want %v", pass1, wantPass1)
	}
	if !reflect.DeepEqual(pass2, wantPass2) {
		t.Errorf("pass 2 args = %v, want %v", pass2, wantPass2)
	}
}

func TestBuildPassArgs_WebP(t *testing.T) {
	bundle := webpBundle()

	for _, pass := range []int{AnalysisPass, OutputPass} {
		args := BuildPassArgs(model.FormatWebP, bundle, pass, "/videos/in.mp4", "/videos/in.webp")
		joined := strings.Join(args, " ")
		for _, want := range []string{
			"-c:v libwebp",
			"-quality 40",
			"-compression_level 5",
			"-preset photo",
		} {
			if !strings.Contains(joined, want) {
				t.Errorf("pass %d args missing %q, got: %v", pass, want, args)
			}
		}
	}
}

// Two-pass encoding requires identical parameters across both passes; only
// the pass-number and sink/output tokens may differ.
func TestBuildPassArgs_PassesMatch(t *testing.T) {
	tests := []struct {
		name   string
		format model.Format
		bundle model.ParameterBundle
		output string
	}{
		{name: "AVIF", format: model.FormatAVIF, bundle: avifBundle(), output: "/out/clip.avif"},
		{name: "WebP", format: model.FormatWebP, bundle: webpBundle(), output: "/out/clip.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass1 := BuildPassArgs(tt.format, tt.bundle, AnalysisPass, "/in/clip.mp4", tt.output)
			pass2 := BuildPassArgs(tt.format, tt.bundle, OutputPass, "/in/clip.mp4", tt.output)

			// Shared prefix up to the "-pass" token must be identical.
			i1 := indexOf(pass1, "-pass")
			i2 := indexOf(pass2, "-pass")
			if i1 < 0 || i2 < 0 {
				t.Fatalf("missing -pass token: pass1=%v pass2=%v", pass1, pass2)
			}
			if i1 != i2 || !reflect.DeepEqual(pass1[:i1], pass2[:i2]) {
				t.Errorf("shared parameter prefix differs:\npass1: %v\npass2: %v", pass1[:i1], pass2[:i2])
			}

			// Endings: analysis discards to the null sink, output writes the file.
			wantTail1 := []string{"-pass", "1", "-f", "null", "-"}
			wantTail2 := []string{"-pass", "2", "-loop", "0", tt.output}
			if !reflect.DeepEqual(pass1[i1:], wantTail1) {
				t.Errorf("pass 1 tail = %v, want %v", pass1[i1:], wantTail1)
			}
			if !reflect.DeepEqual(pass2[i2:], wantTail2) {
				t.Errorf("pass 2 tail = %v, want %v", pass2[i2:], wantTail2)
			}
		})
	}
}

func indexOf(ss []string, q string) int {
	for i, s := range ss {
		if s == q {
			return i
		}
	}
	return -1
}
