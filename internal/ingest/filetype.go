package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the broad family of an input file.
type Kind string

const (
	KindXML  Kind = "xml"
	KindPDF  Kind = "pdf"
	KindXLSX Kind = "xlsx"
	KindXLS  Kind = "xls"
	KindCSV  Kind = "csv"
)

var kindsByExt = map[string]Kind{
	".xml":  KindXML,
	".pdf":  KindPDF,
	".xlsx": KindXLSX,
	".xls":  KindXLS,
	".csv":  KindCSV,
}

// KindOf returns the kind of path based on its extension, case-insensitively.
func KindOf(path string) (Kind, error) {
	kind, ok := kindsByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Base(path))
	}
	return kind, nil
}

// CheckSelection accepts path only when its kind is one of allowed.
func CheckSelection(path string, allowed ...Kind) (Kind, error) {
	kind, err := KindOf(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidFileType, filepath.Base(path))
	}
	for _, a := range allowed {
		if kind == a {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidFileType, filepath.Base(path))
}
