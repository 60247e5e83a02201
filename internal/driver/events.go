package driver

// Stage is the step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota + 1
	StageScan
	StageAnalyze
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageScan:
		return "scan"
	case StageAnalyze:
		return "analyze"
	default:
		return ""
	}
}

// Status reports where a file is within its stage.
type Status uint8

const (
	StatusQueued Status = iota + 1
	StatusWorking
	StatusDone
	StatusError
)

// Event describes a progress change for one file. An Event with an empty
// File applies to the whole run.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Diags  int  // diagnostics found, set with StatusDone/StatusError
	Cached bool // result came from the disk cache
}

// emit sends ev on ch; a nil channel disables events.
func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}
