package progress

// Stage identifies a high-level step in the conversion.
type Stage string

const (
	StagePass1     Stage = "pass 1"
	StagePass2     Stage = "pass 2"
	StageCompleted Stage = "completed"
	StageError     Stage = "error"
)

// Update conveys a stage change for a job. Updates are emitted only at pass
// boundaries; there is no mid-encode progress feed.
type Update struct {
	JobID   string
	Stage   Stage
	Message string // short human-friendly status line
}

// Result is emitted once per job when it completes or fails.
type Result struct {
	JobID      string
	OutputPath string
	Bytes      int64
	Err        error // nil on success
}

// Reporter is implemented by UI or any observer interested in stage events.
type Reporter interface {
	Update(u Update)
	Result(r Result)
}
