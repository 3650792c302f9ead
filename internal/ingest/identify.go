package ingest

import (
	"fmt"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/parser"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/xmldoc"
)

// ReportTypes are the root Name identifiers of each XML export.
type ReportTypes struct {
	Authorization string
	Compilation   string
	Sanction      string
}

// Identify maps a document's root Name to its parser variant.
func (rt ReportTypes) Identify(doc xmldoc.Document) (parser.Variant, error) {
	name := doc.RootAttr("Name")
	switch {
	case name == "":
		tag := ""
		if root := doc.Root(); root != nil {
			tag = root.Tag()
		}
		return "", fmt.Errorf("%w: root element <%s> has no Name", ErrUnidentifiedReport, tag)
	case name == rt.Authorization:
		return parser.VariantAuthorizationRegister, nil
	case name == rt.Compilation:
		return parser.VariantCompilationSheet, nil
	case rt.Sanction != "" && name == rt.Sanction:
		return parser.VariantSanctionDetail, nil
	}
	return "", fmt.Errorf("%w: root Name %q", ErrUnidentifiedReport, name)
}

// Pair is an identified authorization register and primary report.
type Pair struct {
	Authorization  xmldoc.Document
	Primary        xmldoc.Document
	PrimaryVariant parser.Variant
}

// IdentifyPair works out which of two documents is the authorization register,
// regardless of the order they were selected in.
func (rt ReportTypes) IdentifyPair(a, b xmldoc.Document) (*Pair, error) {
	va, errA := rt.Identify(a)
	vb, errB := rt.Identify(b)
	if errA != nil || errB != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnidentifiedReportPair, firstErr(errA, errB))
	}

	switch {
	case va == parser.VariantAuthorizationRegister && vb.IsPrimary():
		return &Pair{Authorization: a, Primary: b, PrimaryVariant: vb}, nil
	case vb == parser.VariantAuthorizationRegister && va.IsPrimary():
		return &Pair{Authorization: b, Primary: a, PrimaryVariant: va}, nil
	}
	return nil, fmt.Errorf("%w: got %s and %s", ErrUnidentifiedReportPair, va, vb)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
