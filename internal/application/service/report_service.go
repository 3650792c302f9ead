package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/session"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/report"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
	"github.com/SamuelAdmand/Bill-Counting-Tool/pkg/utils"
)

// ReportService produces the status report document
type ReportService interface {
	// StatusTable lays out an analysis result with the operator's overrides
	StatusTable(res *session.Result, ov summary.Overrides) (*summary.StatusTable, error)

	// ManualTable lays out operator input the way GenerateManual will render it
	ManualTable(in summary.ManualInput) *summary.StatusTable

	// GenerateFromResult renders and stores the report for an analysis result
	GenerateFromResult(ctx context.Context, res *session.Result, ov summary.Overrides) (*report.Output, error)

	// GenerateManual renders and stores a report typed in by the operator
	GenerateManual(ctx context.Context, in summary.ManualInput) (*report.Output, error)
}

type reportServiceImpl struct {
	generator *report.Generator
	session   *session.Session
	now       func() time.Time
	logger    *zap.Logger
}

// NewReportService creates a new ReportService. sess may be nil.
func NewReportService(generator *report.Generator, sess *session.Session, logger *zap.Logger) ReportService {
	return &reportServiceImpl{
		generator: generator,
		session:   sess,
		now:       time.Now,
		logger:    logger,
	}
}

// StatusTable builds the four-row table, dating it today when the result has no date
func (s *reportServiceImpl) StatusTable(res *session.Result, ov summary.Overrides) (*summary.StatusTable, error) {
	if res == nil || res.Summary == nil {
		return nil, session.ErrNoAnalysisResult
	}
	return summary.BuildStatusTable(res.Summary, ov, s.now()), nil
}

// ManualTable builds the four-row table from typed-in rows
func (s *reportServiceImpl) ManualTable(in summary.ManualInput) *summary.StatusTable {
	return summary.BuildManualTable(in, s.now())
}

// GenerateFromResult renders the report of a finished analysis
func (s *reportServiceImpl) GenerateFromResult(ctx context.Context, res *session.Result, ov summary.Overrides) (*report.Output, error) {
	table, err := s.StatusTable(res, ov)
	if err != nil {
		return nil, err
	}

	out, err := s.generator.Generate(ctx, table)
	if err != nil {
		s.logger.Error("Failed to generate report", zap.String("run_id", res.RunID), zap.Error(err))
		return nil, err
	}
	s.record(res.RunID, out)
	return out, nil
}

// GenerateManual renders a report that needs no analysis
func (s *reportServiceImpl) GenerateManual(ctx context.Context, in summary.ManualInput) (*report.Output, error) {
	if in.Date != "" && !utils.IsReportDate(in.Date) {
		s.logger.Warn("Manual report date is not dd/mm/yyyy", zap.String("date", in.Date))
	}
	table := s.ManualTable(in)

	out, err := s.generator.Generate(ctx, table)
	if err != nil {
		s.logger.Error("Failed to generate manual report", zap.Error(err))
		return nil, err
	}
	s.record("", out)
	return out, nil
}

func (s *reportServiceImpl) record(runID string, out *report.Output) {
	if s.session != nil {
		s.session.RecordReport(runID, out.PDFPath)
	}
}
