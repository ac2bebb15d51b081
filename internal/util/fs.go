package util

import (
	"os"
	"path/filepath"
)

// MakeTempWorkdir creates a unique temp directory under $TMPDIR/vid2anim.
// Each conversion gets its own so ffmpeg's two-pass stats files never clash.
func MakeTempWorkdir(prefix string) (string, error) {
	base := filepath.Join(os.TempDir(), "vid2anim")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	// Prefix helps identification; OS will add random suffix.
	dir, err := os.MkdirTemp(base, prefix+"-")
	if err != nil {
		return "", err
	}
	return dir, nil
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
