package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"vid2anim/internal/model"
	"vid2anim/internal/util"
)

// OutputPath derives the output file path from the input video path by
// swapping the extension for the target format's.
func OutputPath(inputPath string, format model.Format) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + format.Ext()
}

// UniqueOutputPath returns OutputPath, appending a numeric suffix while the
// candidate already exists on disk.
func UniqueOutputPath(inputPath string, format model.Format) string {
	base := OutputPath(inputPath, format)
	if !util.IsFile(base) {
		return base
	}
	stem := strings.TrimSuffix(base, format.Ext())
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, format.Ext())
		if !util.IsFile(candidate) {
			return candidate
		}
	}
}
