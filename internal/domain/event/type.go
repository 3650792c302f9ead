package event

// Type identifies what happened during an analysis session
type Type string

const (
	TypeFileSelected      Type = "file.selected"
	TypeAnalysisStarted   Type = "analysis.started"
	TypeAnalysisCompleted Type = "analysis.completed"
	TypeAnalysisFailed    Type = "analysis.failed"
	TypeResultInvalidated Type = "result.invalidated"
	TypeReportGenerated   Type = "report.generated"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeFileSelected,
		TypeAnalysisStarted,
		TypeAnalysisCompleted,
		TypeAnalysisFailed,
		TypeResultInvalidated,
		TypeReportGenerated:
		return true
	default:
		return false
	}
}
