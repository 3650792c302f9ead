package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/session"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/categorize"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/event"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/workflow"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/ingest"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/parser"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/reconcile"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/report"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/storage"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

var (
	ncddoEBill  = entity.Bucket{Jurisdiction: entity.JurisdictionResident, BillType: entity.BillTypeEBill}
	cddoEBill   = entity.Bucket{Jurisdiction: entity.JurisdictionOuter, BillType: entity.BillTypeEBill}
	ncddoNormal = entity.Bucket{Jurisdiction: entity.JurisdictionResident, BillType: entity.BillTypeNormal}
	cddoNormal  = entity.Bucket{Jurisdiction: entity.JurisdictionOuter, BillType: entity.BillTypeNormal}
)

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func newTestAnalysisService(t *testing.T) (AnalysisService, *session.Session) {
	t.Helper()
	logger := zap.NewNop()

	text, err := ingest.NewTextExtractor("native", logger)
	require.NoError(t, err)

	rules := categorize.DefaultRules()
	rules.OuterOffices = []string{"JAIPUR", "DEHRADUN"}

	pipeline := Pipeline{
		Parsers: []parser.SourceParser{
			parser.NewAuthorizationRegisterParser(logger),
			parser.NewCompilationSheetParser(parser.NewHeadFilter(parser.DefaultGenericHeads, false), logger),
			parser.NewSanctionDetailParser(parser.NewHeadFilter(parser.DefaultGenericHeads, true), logger),
			parser.NewTabularParser(logger),
		},
		Reconciler:   reconcile.NewReconciler(categorize.NewCategorizer(rules), logger),
		Aggregator:   summary.NewAggregator(logger),
		Jurisdiction: JurisdictionRules{ResidentMarker: "LUCKNOW", VoucherPrefix: "N"},
		View:         summary.ViewOptions{ResidentTitle: "NCDDO Analysis (Lucknow)", OuterTitle: "CDDO Analysis (Outer)"},
	}
	types := ingest.ReportTypes{
		Authorization: entity.ReportAuthorizationRegister,
		Compilation:   entity.ReportCompilationSheet,
		Sanction:      entity.ReportSanctionDetail,
	}

	sess := session.New(logger)
	return NewAnalysisService(ingest.NewLoader(text, 1<<20, logger), types, pipeline, sess, logger), sess
}

func TestAnalysisService_AnalyzePair(t *testing.T) {
	ctx := context.Background()
	svc, sess := newTestAnalysisService(t)

	// order of selection does not matter
	require.NoError(t, svc.SelectFile(ctx, session.SlotFirst, fixture("compilation_sheet.xml")))
	require.NoError(t, svc.SelectFile(ctx, session.SlotSecond, fixture("authorization_register.xml")))
	assert.Equal(t, session.MsgFilesReady, sess.Status().Message)

	res, err := svc.AnalyzePair(ctx)
	require.NoError(t, err)

	assert.Equal(t, parser.VariantCompilationSheet, res.Variant)
	assert.Equal(t, "05/03/2025", res.Summary.ReportDate)
	assert.Equal(t, 3, res.Summary.Total)
	assert.Equal(t, 1, res.Summary.EBills)
	assert.Equal(t, "33.33%", res.Summary.Percentage)

	assert.Equal(t, 1, res.Summary.Bucket(ncddoEBill).Count)
	assert.Equal(t, 0, res.Summary.Bucket(cddoEBill).Count)
	assert.Equal(t, 1, res.Summary.Bucket(ncddoNormal).Count)
	assert.Equal(t, 1, res.Summary.Bucket(cddoNormal).Count)
	assert.Equal(t, []string{"1203"}, res.Summary.Bucket(ncddoNormal).Tokens)

	require.Len(t, res.View.Cards, 2)
	assert.Equal(t, "NCDDO Analysis (Lucknow)", res.View.Cards[0].Title)
	assert.Equal(t, []summary.BillLine{{Token: "1203", Category: "Gpf", Voucher: "N1001"}}, res.View.Cards[0].Bills)
	assert.Equal(t, []summary.BillLine{{Token: summary.NoToken, Category: "Gem(Outer)", Voucher: "C2001"}}, res.View.Cards[1].Bills)
	assert.Zero(t, res.Diagnostics.Unmatched)

	stored, err := sess.Result()
	require.NoError(t, err)
	assert.Same(t, res, stored)
	assert.Equal(t, workflow.StateSuccess, sess.Status().State)
	assert.Equal(t, session.MsgAnalysisComplete, sess.Status().Message)
}

func TestAnalysisService_SelectFileRejectsNonXML(t *testing.T) {
	ctx := context.Background()
	svc, sess := newTestAnalysisService(t)

	err := svc.SelectFile(ctx, session.SlotFirst, "register.pdf")
	assert.ErrorIs(t, err, ingest.ErrInvalidFileType)
	assert.Equal(t, "Error: Invalid file type. Please select XML.", sess.Status().Message)

	_, _, err = sess.Files()
	assert.ErrorIs(t, err, session.ErrMissingFile)
}

func TestAnalysisService_AnalyzePairNeedsBothFiles(t *testing.T) {
	ctx := context.Background()
	svc, sess := newTestAnalysisService(t)
	require.NoError(t, svc.SelectFile(ctx, session.SlotFirst, fixture("compilation_sheet.xml")))

	_, err := svc.AnalyzePair(ctx)
	assert.ErrorIs(t, err, session.ErrMissingFile)
	assert.Equal(t, "Error: Both files are required.", sess.Status().Message)
}

func TestAnalysisService_AnalyzePairUnidentified(t *testing.T) {
	ctx := context.Background()
	svc, sess := newTestAnalysisService(t)
	require.NoError(t, svc.SelectFile(ctx, session.SlotFirst, fixture("authorization_register.xml")))
	require.NoError(t, svc.SelectFile(ctx, session.SlotSecond, fixture("authorization_register.xml")))

	_, err := svc.AnalyzePair(ctx)
	assert.ErrorIs(t, err, ingest.ErrUnidentifiedReportPair)
	assert.Equal(t, workflow.StateError, sess.Status().State)
	assert.Equal(t, "Error: Could not identify report types. Please upload one of each.", sess.Status().Message)

	_, err = sess.Result()
	assert.ErrorIs(t, err, session.ErrNoAnalysisResult)

	events := sess.Events()
	assert.Equal(t, event.TypeAnalysisFailed, events[len(events)-1].Type)
}

func TestAnalysisService_AnalyzePairMalformed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAnalysisService(t)

	broken := filepath.Join(t.TempDir(), "broken.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<Report Name="), 0o644))

	require.NoError(t, svc.SelectFile(ctx, session.SlotFirst, broken))
	require.NoError(t, svc.SelectFile(ctx, session.SlotSecond, fixture("authorization_register.xml")))

	_, err := svc.AnalyzePair(ctx)
	assert.ErrorIs(t, err, parser.ErrMalformedDocument)
}

func TestAnalysisService_AnalyzeSingleSanction(t *testing.T) {
	tests := []struct {
		name           string
		office         string
		total          int
		ebills         int
		percentage     string
		officeNotFound bool
	}{
		{name: "all offices", total: 3, ebills: 1, percentage: "33.33%"},
		{name: "one office", office: "n201", total: 2, ebills: 1, percentage: "50.00%"},
		{name: "unknown office", office: "ZZZ", total: 0, ebills: 0, percentage: "0.00%", officeNotFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestAnalysisService(t)

			res, err := svc.AnalyzeSingle(context.Background(), fixture("sanction_detail.xml"), tt.office)
			require.NoError(t, err)

			assert.Equal(t, parser.VariantSanctionDetail, res.Variant)
			assert.Equal(t, tt.total, res.Summary.Total)
			assert.Equal(t, tt.ebills, res.Summary.EBills)
			assert.Equal(t, tt.percentage, res.Summary.Percentage)
			assert.Equal(t, tt.officeNotFound, res.Diagnostics.OfficeNotFound)
			assert.Equal(t, tt.total == 0, res.View.Empty())
		})
	}
}

func TestAnalysisService_AnalyzeSingleSanctionCategories(t *testing.T) {
	svc, _ := newTestAnalysisService(t)

	res, err := svc.AnalyzeSingle(context.Background(), fixture("sanction_detail.xml"), "")
	require.NoError(t, err)

	assert.Equal(t, "06/03/2025", res.Summary.ReportDate)
	assert.Equal(t, []summary.CategoryCount{{Label: "MINOR WORKS", Count: 1}}, res.Summary.Bucket(ncddoNormal).Categories)
	assert.Equal(t, []summary.CategoryCount{{Label: "WAGES", Count: 1}}, res.Summary.Bucket(cddoNormal).Categories)
}

func TestAnalysisService_AnalyzeSingleRegister(t *testing.T) {
	svc, _ := newTestAnalysisService(t)

	res, err := svc.AnalyzeSingle(context.Background(), fixture("authorization_register.xml"), "")
	require.NoError(t, err)

	assert.Equal(t, parser.VariantAuthorizationRegister, res.Variant)
	assert.Equal(t, "05/03/2025", res.Summary.ReportDate)
	// N1001 normal, N1002 e-bill, C2001 normal; C2002 has no details
	assert.Equal(t, 3, res.Summary.Total)
	assert.Equal(t, 1, res.Summary.Bucket(ncddoEBill).Count)
	assert.Equal(t, 1, res.Summary.Bucket(ncddoNormal).Count)
	assert.Equal(t, 1, res.Summary.Bucket(cddoNormal).Count)
}

func TestAnalysisService_AnalyzeSingleCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.csv")
	csv := "Voucher Number,Bill Type,Token Number,DDO Code\n" +
		"N5001,E-Bill,,N20145\n" +
		"N5002,Normal,1302,N20145\n" +
		"C5003,Normal,1301,C40011\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	svc, _ := newTestAnalysisService(t)
	res, err := svc.AnalyzeSingle(context.Background(), path, "")
	require.NoError(t, err)

	assert.Equal(t, parser.VariantTabular, res.Variant)
	require.NotNil(t, res.Tabular)
	assert.True(t, res.Tabular.HighConfidence())
	assert.Equal(t, "header", res.Diagnostics.Strategy)
	assert.False(t, res.Diagnostics.LowConfidence)
	assert.Zero(t, res.Diagnostics.Discrepancy)

	assert.Equal(t, 3, res.Summary.Total)
	assert.Equal(t, 1, res.Summary.Bucket(ncddoEBill).Count)
	assert.Equal(t, []string{"1302"}, res.Summary.Bucket(ncddoNormal).Tokens)
	assert.Equal(t, []string{"1301"}, res.Summary.Bucket(cddoNormal).Tokens)
	assert.Empty(t, res.View.Warnings)
}

func TestAnalysisService_AnalyzeSingleEmptyTabular(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty.csv", ""},
		{"blankline.csv", "\n"},
		{"blanks.csv", " , \n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			svc, sess := newTestAnalysisService(t)
			res, err := svc.AnalyzeSingle(context.Background(), path, "")
			require.NoError(t, err)

			assert.Equal(t, workflow.StateSuccess, sess.Status().State)
			assert.Zero(t, res.Summary.Total)
			assert.Equal(t, "0.00%", res.Summary.Percentage)
			assert.True(t, res.Diagnostics.NoRows)
			assert.True(t, res.View.Empty())
			require.Len(t, res.View.Warnings, 1)
			assert.Contains(t, res.View.Warnings[0], "No readable rows")
		})
	}
}

func TestAnalysisService_AnalyzeSingleUnsupported(t *testing.T) {
	svc, sess := newTestAnalysisService(t)

	_, err := svc.AnalyzeSingle(context.Background(), "notes.docx", "")
	assert.ErrorIs(t, err, ingest.ErrUnsupportedFileType)
	assert.Equal(t, workflow.StateError, sess.Status().State)
}

func TestJurisdictionRules_ClassifierFor(t *testing.T) {
	rules := JurisdictionRules{ResidentMarker: "LUCKNOW", VoucherPrefix: "N", CodePrefix: "N2"}

	tests := []struct {
		variant parser.Variant
		record  entity.VoucherRecord
		want    entity.Jurisdiction
	}{
		{parser.VariantCompilationSheet, entity.VoucherRecord{VoucherNumber: "C1", DDOName: "PAO Lucknow"}, entity.JurisdictionResident},
		{parser.VariantCompilationSheet, entity.VoucherRecord{VoucherNumber: "N1", DDOName: "RO JAIPUR"}, entity.JurisdictionOuter},
		{parser.VariantSanctionDetail, entity.VoucherRecord{VoucherNumber: "C1", DDOCode: "N20145"}, entity.JurisdictionResident},
		{parser.VariantSanctionDetail, entity.VoucherRecord{VoucherNumber: "N1", DDOCode: "C40011"}, entity.JurisdictionOuter},
		{parser.VariantTabular, entity.VoucherRecord{VoucherNumber: "N1"}, entity.JurisdictionResident},
		{parser.VariantAuthorizationRegister, entity.VoucherRecord{VoucherNumber: "C1", DDOName: "LUCKNOW"}, entity.JurisdictionOuter},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant)+"/"+tt.record.VoucherNumber, func(t *testing.T) {
			v := tt.record
			assert.Equal(t, tt.want, rules.ClassifierFor(tt.variant).Classify(&v))
		})
	}
}

func newTestReportService(t *testing.T, sess *session.Session) (ReportService, string) {
	t.Helper()
	dir := t.TempDir()
	logger := zap.NewNop()

	layout := report.Layout{
		OfficeName:  "PAO, GSI(NR),Lucknow",
		ReportTitle: "Daily Status Report of E. Bills",
		Signatures:  []string{"Assistant Accounts Officer", "Pre-Check Section", "PAO, GSI(NR), Lucknow"},
	}
	gen := report.NewGenerator(layout, nil, storage.NewLocalFileStorage(dir, logger), report.Options{
		FilenamePrefix: "Daily_Status_Report_",
		ExportXLSX:     true,
		Validate:       true,
	}, logger)

	svc := NewReportService(gen, sess, logger)
	svc.(*reportServiceImpl).now = func() time.Time {
		return time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	}
	return svc, dir
}

func TestReportService_GenerateFromResult(t *testing.T) {
	ctx := context.Background()
	analysis, sess := newTestAnalysisService(t)
	require.NoError(t, analysis.SelectFile(ctx, session.SlotFirst, fixture("authorization_register.xml")))
	require.NoError(t, analysis.SelectFile(ctx, session.SlotSecond, fixture("compilation_sheet.xml")))
	res, err := analysis.AnalyzePair(ctx)
	require.NoError(t, err)

	svc, dir := newTestReportService(t, sess)

	table, err := svc.StatusTable(res, summary.Overrides{Returned: map[entity.Bucket]string{ncddoEBill: "2"}})
	require.NoError(t, err)
	assert.Equal(t, "05/03/2025", table.Date)
	assert.Equal(t, 3, table.Rows[0].Total())

	out, err := svc.GenerateFromResult(ctx, res, summary.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "Daily_Status_Report_05-03-2025.pdf", out.Filename)
	assert.FileExists(t, filepath.Join(dir, "Daily_Status_Report_05-03-2025.pdf"))
	assert.FileExists(t, filepath.Join(dir, "Daily_Status_Report_05-03-2025.xlsx"))

	events := sess.Events()
	last := events[len(events)-1]
	assert.Equal(t, event.TypeReportGenerated, last.Type)
	assert.Equal(t, res.RunID, last.RunID)
}

func TestReportService_GenerateFromResultNeedsResult(t *testing.T) {
	svc, _ := newTestReportService(t, nil)

	_, err := svc.GenerateFromResult(context.Background(), nil, summary.Overrides{})
	assert.ErrorIs(t, err, session.ErrNoAnalysisResult)
}

func TestReportService_GenerateManual(t *testing.T) {
	svc, dir := newTestReportService(t, nil)

	out, err := svc.GenerateManual(context.Background(), summary.ManualInput{
		Percentage: "80",
		Rows: [4]summary.ManualRow{
			{Passed: "4", Returned: "1"},
			{Passed: "0"},
			{Passed: "2", Remarks: "• Gpf- 2 Bills"},
			{Passed: "x"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Daily_Status_Report_07-03-2025.pdf", out.Filename)
	assert.FileExists(t, filepath.Join(dir, out.Filename))
	assert.Positive(t, out.Size)
}
