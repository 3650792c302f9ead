package ingest

import "errors"

var (
	// ErrInvalidFileType is returned when a file is selected for a slot that does not accept its type
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrUnsupportedFileType is returned when no loader handles the file's extension
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrUnidentifiedReportPair is returned when two reports are not one authorization register plus one primary report
	ErrUnidentifiedReportPair = errors.New("could not identify report types")

	// ErrUnidentifiedReport is returned when a single XML report has an unknown Name
	ErrUnidentifiedReport = errors.New("could not identify report type")

	// ErrFileTooLarge is returned when an input exceeds the configured size limit
	ErrFileTooLarge = errors.New("file too large")
)
