package workflow

// Trigger is an operator or pipeline action that moves the status.
type Trigger string

const (
	TriggerSelectFile    Trigger = "SELECT_FILE"
	TriggerFilesReady    Trigger = "FILES_READY"
	TriggerStartAnalysis Trigger = "START_ANALYSIS"
	TriggerComplete      Trigger = "COMPLETE"
	TriggerFail          Trigger = "FAIL"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
