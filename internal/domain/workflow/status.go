package workflow

// NewStatusMachine builds the status lifecycle of an analysis session.
//
// Selecting files and failing are allowed from every idle state; an analysis
// can only be completed or failed while it is processing.
func NewStatusMachine() StateMachine {
	b := NewBuilder()
	for _, idle := range []State{StateInfo, StateSuccess, StateError} {
		b.Permit(idle, TriggerSelectFile, StateInfo).
			Permit(idle, TriggerFilesReady, StateSuccess).
			Permit(idle, TriggerStartAnalysis, StateProcessing).
			Permit(idle, TriggerFail, StateError)
	}
	b.Permit(StateProcessing, TriggerComplete, StateSuccess).
		Permit(StateProcessing, TriggerFail, StateError)

	return b.Build(StateInfo)
}
