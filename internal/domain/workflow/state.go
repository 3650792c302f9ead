package workflow

// State is the level of the status message shown to the operator.
type State string

const (
	StateInfo       State = "info"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
	StateError      State = "error"
)

var validStates = map[State]bool{
	StateInfo:       true,
	StateProcessing: true,
	StateSuccess:    true,
	StateError:      true,
}

// IsBusy reports whether an analysis is running in this state.
func (s State) IsBusy() bool {
	return s == StateProcessing
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known status level
func (s State) IsValid() bool {
	return validStates[s]
}
