package model

// CLIOptions holds user-configurable runtime options as parsed from flags
// and the settings store.
type CLIOptions struct {
	Format     Format
	Bundle     ParameterBundle
	FFmpegPath string // Explicit ffmpeg path; empty = discover in PATH.
	OutputPath string // Explicit output path; empty = derive from input.
	KeepTemp   bool   // Keep the two-pass stats working directory.
	Verbose    bool
}
