package model

import (
	"fmt"
	"strings"
)

// Format identifies the target animated image format.
type Format string

const (
	FormatAVIF Format = "AVIF"
	FormatWebP Format = "WebP"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avif":
		return FormatAVIF, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("invalid format: %q (valid: avif|webp)", s)
	}
}

// Ext returns the output file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatWebP {
		return ".webp"
	}
	return ".avif"
}

func (f Format) String() string {
	return string(f)
}
