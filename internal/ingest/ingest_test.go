package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/parser"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/xmldoc"
)

var reportTypes = ReportTypes{
	Authorization: "RptSancDig_EPaymentAuthorizationIssueRegister",
	Compilation:   "RptSancDig_VoucherCompilationSheet",
	Sanction:      "RptSancDig_SanctionDetail",
}

func newLoader(t *testing.T) *Loader {
	t.Helper()
	text, err := NewTextExtractor("native", zap.NewNop())
	require.NoError(t, err)
	return NewLoader(text, 1<<20, zap.NewNop())
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func mustParse(t *testing.T, s string) xmldoc.Document {
	t.Helper()
	doc, err := xmldoc.Parse([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Kind
		wantErr bool
	}{
		{"register.xml", KindXML, false},
		{"REGISTER.XML", KindXML, false},
		{"listing.pdf", KindPDF, false},
		{"book.xlsx", KindXLSX, false},
		{"book.xls", KindXLS, false},
		{"rows.csv", KindCSV, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := KindOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckSelection(t *testing.T) {
	_, err := CheckSelection("register.xml", KindXML)
	assert.NoError(t, err)

	_, err = CheckSelection("register.pdf", KindXML)
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = CheckSelection("register.doc", KindXML, KindPDF)
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestReportTypes_IdentifyUnnamed(t *testing.T) {
	_, err := reportTypes.Identify(mustParse(t, `<Workbook><Sheet/></Workbook>`))
	assert.ErrorIs(t, err, ErrUnidentifiedReport)
	assert.ErrorContains(t, err, "<Workbook> has no Name")

	_, err = reportTypes.Identify(mustParse(t, `<Report Name="Other"/>`))
	assert.ErrorContains(t, err, `root Name "Other"`)
}

func TestReportTypes_IdentifyPair(t *testing.T) {
	auth := mustParse(t, `<Report Name="RptSancDig_EPaymentAuthorizationIssueRegister"/>`)
	comp := mustParse(t, `<Report Name="RptSancDig_VoucherCompilationSheet"/>`)
	sanc := mustParse(t, `<Report Name="RptSancDig_SanctionDetail"/>`)
	other := mustParse(t, `<Report Name="SomethingElse"/>`)
	unnamed := mustParse(t, `<Report/>`)

	t.Run("either order", func(t *testing.T) {
		p1, err := reportTypes.IdentifyPair(auth, comp)
		require.NoError(t, err)
		p2, err := reportTypes.IdentifyPair(comp, auth)
		require.NoError(t, err)

		assert.Same(t, auth, p1.Authorization)
		assert.Same(t, auth, p2.Authorization)
		assert.Same(t, comp, p2.Primary)
		assert.Equal(t, parser.VariantCompilationSheet, p2.PrimaryVariant)
	})

	t.Run("sanction detail as primary", func(t *testing.T) {
		p, err := reportTypes.IdentifyPair(sanc, auth)
		require.NoError(t, err)
		assert.Equal(t, parser.VariantSanctionDetail, p.PrimaryVariant)
	})

	t.Run("rejects", func(t *testing.T) {
		pairs := [][2]xmldoc.Document{
			{auth, auth},
			{comp, comp},
			{comp, sanc},
			{auth, other},
			{unnamed, comp},
		}
		for _, pair := range pairs {
			_, err := reportTypes.IdentifyPair(pair[0], pair[1])
			assert.ErrorIs(t, err, ErrUnidentifiedReportPair)
		}
	})
}

func TestLoader_LoadPair(t *testing.T) {
	dir := t.TempDir()
	auth := writeFile(t, dir, "auth.xml", []byte(`<Report Name="RptSancDig_EPaymentAuthorizationIssueRegister"/>`))
	comp := writeFile(t, dir, "comp.XML", []byte(`<Report Name="RptSancDig_VoucherCompilationSheet"/>`))

	docs, err := newLoader(t).LoadPair(context.Background(), comp, auth)
	require.NoError(t, err)

	assert.Equal(t, "RptSancDig_VoucherCompilationSheet", docs[0].RootAttr("Name"))
	assert.Equal(t, "RptSancDig_EPaymentAuthorizationIssueRegister", docs[1].RootAttr("Name"))
}

func TestLoader_LoadPairFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.xml", []byte(`<Report Name="x"/>`))
	broken := writeFile(t, dir, "broken.xml", []byte(`<a><b></a>`))
	wrongType := writeFile(t, dir, "listing.pdf", []byte(`%PDF`))
	l := newLoader(t)

	_, err := l.LoadPair(context.Background(), good, broken)
	assert.ErrorIs(t, err, xmldoc.ErrMalformedDocument)

	_, err = l.LoadPair(context.Background(), wrongType, good)
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = l.LoadPair(context.Background(), good, filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.xml", bytes.Repeat([]byte("a"), 64))

	_, err := NewLoader(nil, 32, zap.NewNop()).ReadFile(path)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = NewLoader(nil, 0, zap.NewNop()).ReadFile(path)
	assert.NoError(t, err)
}

func TestLoader_LoadRowsCSV(t *testing.T) {
	dir := t.TempDir()

	utf8Path := writeFile(t, dir, "rows.csv", []byte("\xEF\xBB\xBFVoucher Number,Bill Type\nN1001,Normal\nC2001,\"E-Bill\",extra\n"))
	rows, err := newLoader(t).LoadRows(context.Background(), utf8Path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Voucher Number", "Bill Type"}, rows[0])
	assert.Equal(t, []string{"C2001", "E-Bill", "extra"}, rows[2])

	// 0xE9 is e-acute in windows-1252
	legacyPath := writeFile(t, dir, "legacy.csv", []byte("Office,Voucher Number\nBh\xe9l,N1001\n"))
	rows, err = newLoader(t).LoadRows(context.Background(), legacyPath)
	require.NoError(t, err)
	assert.Equal(t, "Bhél", rows[1][0])
}

func TestLoader_LoadRowsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Voucher Number"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Token Number"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "N1001"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 1203))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := newLoader(t).LoadRows(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Voucher Number", "Token Number"}, {"N1001", "1203"}}, rows)
}

func TestLoader_LoadRowsXLSUnderXLSXContent(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue(f.GetSheetName(0), "A1", "N1001"))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	path := writeFile(t, t.TempDir(), "renamed.xls", buf.Bytes())
	rows, err := newLoader(t).LoadRows(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"N1001"}}, rows)
}

func samplePDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)
	for i, line := range lines {
		pdf.Text(20, float64(20+10*i), line)
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	n, err := PageCount(samplePDF(t, "N1001 Normal 1203"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = PageCount([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestLoader_LoadRowsPDF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "listing.pdf", samplePDF(t, "N1001 Normal 1203", "C2001 EBill 1190"))

	rows, err := newLoader(t).LoadRows(context.Background(), path)
	require.NoError(t, err)

	var text []string
	for _, row := range rows {
		require.Len(t, row, 1)
		text = append(text, row[0])
	}
	joined := strings.Join(text, "\n")
	assert.Contains(t, joined, "N1001")
	assert.Contains(t, joined, "C2001")
}

func TestLoader_LoadRowsBlankPDF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "blank.pdf", samplePDF(t))

	rows, err := newLoader(t).LoadRows(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoader_LoadRowsEmptyCSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", nil)

	rows, err := newLoader(t).LoadRows(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoader_LoadRowsRejectsXML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "r.xml", []byte(`<r/>`))
	_, err := newLoader(t).LoadRows(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestNewTextExtractor(t *testing.T) {
	e, err := NewTextExtractor("fitz", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &FitzExtractor{}, e)

	e, err = NewTextExtractor("native", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &NativeExtractor{}, e)

	_, err = NewTextExtractor("ocr", zap.NewNop())
	assert.Error(t, err)
}
