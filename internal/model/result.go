package model

import "fmt"

// ResultKind classifies the terminal outcome of a conversion.
type ResultKind int

const (
	// Succeeded means both passes exited cleanly and the output was written.
	Succeeded ResultKind = iota
	// EncoderNotFound means the ffmpeg executable could not be located or
	// launched, regardless of which pass triggered the attempt.
	EncoderNotFound
	// EncoderFailed means a pass ran but exited nonzero.
	EncoderFailed
	// UnexpectedError covers any other process-orchestration failure.
	UnexpectedError
)

// ConversionResult is the classified outcome of a single conversion call.
// It is created once per call and returned to the caller; presentation of
// the result is entirely the caller's concern.
type ConversionResult struct {
	Kind       ResultKind
	OutputPath string // set when Kind == Succeeded
	FailedPass int    // 1 or 2 when Kind == EncoderFailed, else 0
	Diagnostic string // captured stderr or error text, verbatim

	// EncoderPath is the configured ffmpeg path, echoed back so callers can
	// surface it in EncoderNotFound messages.
	EncoderPath string
}

// Ok reports whether the conversion produced an output file.
func (r ConversionResult) Ok() bool {
	return r.Kind == Succeeded
}

// Message renders a human-readable one-line summary of the result.
func (r ConversionResult) Message() string {
	switch r.Kind {
	case Succeeded:
		return fmt.Sprintf("converted to %s", r.OutputPath)
	case EncoderNotFound:
		return fmt.Sprintf("ffmpeg not found at %q; check the configured path", r.EncoderPath)
	case EncoderFailed:
		return fmt.Sprintf("ffmpeg pass %d failed: %s", r.FailedPass, r.Diagnostic)
	default:
		return fmt.Sprintf("unexpected error: %s", r.Diagnostic)
	}
}
