package parser

import "github.com/SamuelAdmand/Bill-Counting-Tool/internal/xmldoc"

// ErrMalformedDocument is returned when a report cannot be read as its variant
var ErrMalformedDocument = xmldoc.ErrMalformedDocument
