package checkrun

import (
	"time"

	"shapekit/internal/interp"
)

// Stage describes a phase of checking one value file.
type Stage string

const (
	// StageRead is reading and parsing the JSON file.
	StageRead Stage = "read"
	// StageDecode is decoding the parsed value against the type.
	StageDecode Stage = "decode"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Request configures a check run.
type Request struct {
	Files    []string
	Decoder  interp.Decoder
	Jobs     int
	Progress ProgressSink
}

// FileResult is the outcome for one value file. Err is set when the file
// could not be read or parsed; otherwise Result holds the decode outcome.
type FileResult struct {
	Path    string
	Result  interp.Result
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the file failed to load or to decode.
func (r FileResult) Failed() bool {
	return r.Err != nil || r.Result.IsFailure()
}
