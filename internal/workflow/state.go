package workflow

// State is a position in the convert-and-install sequence.
type State int

const (
	StateIdle State = iota
	StateBackingUp
	StateAwaitingExternalTool
	StateVerifyingOutput
	StateInstalling
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:                 "idle",
	StateBackingUp:            "backing-up",
	StateAwaitingExternalTool: "awaiting-external-tool",
	StateVerifyingOutput:      "verifying-output",
	StateInstalling:           "installing",
	StateDone:                 "done",
	StateFailed:               "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the state only leaves through Reset or Cancel.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
