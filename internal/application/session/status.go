package session

import (
	"errors"
	"strings"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/workflow"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/ingest"
)

// Status messages shown next to the status indicator.
const (
	MsgWaitingForFiles  = "Waiting for both files..."
	MsgFilesReady       = "Files ready. Click Analyze."
	MsgProcessing       = "Processing files..."
	MsgAnalysisComplete = "Analysis complete."
	MsgReportGenerated  = "Report generated."

	// FailureDetail heads the result area after a failed analysis.
	FailureDetail = "Failed to analyze files. Check if they are valid."
)

// Status is the current status level and its message.
type Status struct {
	State   workflow.State `json:"state" yaml:"state"`
	Message string         `json:"message" yaml:"message"`
}

// ErrorMessage converts err into the status message shown to the user.
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ingest.ErrInvalidFileType):
		return "Error: Invalid file type. Please select XML."
	case errors.Is(err, ingest.ErrUnidentifiedReportPair):
		return "Error: Could not identify report types. Please upload one of each."
	case errors.Is(err, ErrMissingFile):
		return "Error: Both files are required."
	case errors.Is(err, ErrAnalysisInProgress):
		return "Error: An analysis is already running."
	case errors.Is(err, ErrNoAnalysisResult):
		return "Error: Please analyze files first."
	}
	return "Error: " + capitalize(err.Error())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
