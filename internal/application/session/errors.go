package session

import "errors"

var (
	// ErrAnalysisInProgress is returned when an analysis is started while another is running
	ErrAnalysisInProgress = errors.New("analysis already in progress")

	// ErrNoAnalysisResult is returned when a result is requested before any analysis succeeded
	ErrNoAnalysisResult = errors.New("no analysis result available")

	// ErrMissingFile is returned when an analysis needs a file that was not selected
	ErrMissingFile = errors.New("both files are required")
)
