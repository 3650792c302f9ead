package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/session"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/ingest"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/parser"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/reconcile"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

// AnalysisService runs the dual-report and single-report workflows against a session
type AnalysisService interface {
	// SelectFile checks that path is an XML report and stores it in slot
	SelectFile(ctx context.Context, slot session.Slot, path string) error

	// AnalyzePair reconciles the two selected reports
	AnalyzePair(ctx context.Context) (*session.Result, error)

	// AnalyzeSingle counts one XML, PDF or spreadsheet report. officeFilter may be empty.
	AnalyzeSingle(ctx context.Context, path, officeFilter string) (*session.Result, error)
}

// Pipeline is the chain of components an analysis runs through.
type Pipeline struct {
	Parsers      []parser.SourceParser
	Reconciler   *reconcile.Reconciler
	Aggregator   *summary.Aggregator
	Jurisdiction JurisdictionRules
	View         summary.ViewOptions
}

type analysisServiceImpl struct {
	loader   *ingest.Loader
	types    ingest.ReportTypes
	parsers  map[parser.Variant]parser.SourceParser
	pipeline Pipeline
	session  *session.Session
	logger   *zap.Logger
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(
	loader *ingest.Loader,
	types ingest.ReportTypes,
	pipeline Pipeline,
	sess *session.Session,
	logger *zap.Logger,
) AnalysisService {
	parsers := make(map[parser.Variant]parser.SourceParser, len(pipeline.Parsers))
	for _, p := range pipeline.Parsers {
		parsers[p.Variant()] = p
	}
	return &analysisServiceImpl{
		loader:   loader,
		types:    types,
		parsers:  parsers,
		pipeline: pipeline,
		session:  sess,
		logger:   logger,
	}
}

// SelectFile rejects anything but XML before it is read
func (s *analysisServiceImpl) SelectFile(ctx context.Context, slot session.Slot, path string) error {
	if _, err := ingest.CheckSelection(path, ingest.KindXML); err != nil {
		s.session.Reject(ctx, err)
		return err
	}
	return s.session.SelectFile(ctx, slot, path)
}

// AnalyzePair loads both reports concurrently, works out which is the authorization
// register and joins it against the other.
func (s *analysisServiceImpl) AnalyzePair(ctx context.Context) (*session.Result, error) {
	first, second, err := s.session.Files()
	if err != nil {
		s.session.Reject(ctx, err)
		return nil, err
	}

	return s.session.Run(ctx, func(ctx context.Context, runID string) (*session.Result, error) {
		docs, err := s.loader.LoadPair(ctx, first, second)
		if err != nil {
			return nil, err
		}

		pair, err := s.types.IdentifyPair(docs[0], docs[1])
		if err != nil {
			return nil, err
		}

		auth, err := s.extract(parser.VariantAuthorizationRegister, &parser.Source{
			Name: "authorization register",
			Doc:  pair.Authorization,
		})
		if err != nil {
			return nil, err
		}
		primary, err := s.extract(pair.PrimaryVariant, &parser.Source{
			Name: pair.PrimaryVariant.String(),
			Doc:  pair.Primary,
		})
		if err != nil {
			return nil, err
		}

		rec := s.pipeline.Reconciler.Reconcile(reconcile.Input{
			Vouchers:      primary.Vouchers,
			Lookup:        auth.Lookup,
			Classifier:    s.pipeline.Jurisdiction.ClassifierFor(pair.PrimaryVariant),
			PrimaryDate:   primary.ReportDate,
			AuxiliaryDate: auth.ReportDate,
		})

		diag := summary.Diagnostics{
			Unmatched:  rec.Unmatched,
			Duplicates: auth.Duplicates + primary.Duplicates,
		}
		return s.finish(pair.PrimaryVariant, []string{first, second}, rec, diag, nil), nil
	})
}

// AnalyzeSingle routes XML reports to their own parser and everything else through
// the tabular fallback.
func (s *analysisServiceImpl) AnalyzeSingle(ctx context.Context, path, officeFilter string) (*session.Result, error) {
	kind, err := ingest.KindOf(path)
	if err != nil {
		s.session.Reject(ctx, err)
		return nil, err
	}

	return s.session.Run(ctx, func(ctx context.Context, runID string) (*session.Result, error) {
		if kind == ingest.KindXML {
			return s.analyzeXML(ctx, path, officeFilter)
		}
		return s.analyzeRows(ctx, path, officeFilter)
	})
}

func (s *analysisServiceImpl) analyzeXML(ctx context.Context, path, officeFilter string) (*session.Result, error) {
	doc, err := s.loader.LoadXML(ctx, path)
	if err != nil {
		return nil, err
	}
	variant, err := s.types.Identify(doc)
	if err != nil {
		return nil, err
	}

	ext, err := s.extract(variant, &parser.Source{
		Name:         filepath.Base(path),
		Doc:          doc,
		OfficeFilter: officeFilter,
	})
	if err != nil {
		return nil, err
	}

	rec := s.pipeline.Reconciler.Reconcile(reconcile.Input{
		Vouchers:    ext.Records(),
		Classifier:  s.pipeline.Jurisdiction.ClassifierFor(variant),
		PrimaryDate: ext.ReportDate,
	})

	diag := summary.Diagnostics{
		Duplicates:     ext.Duplicates,
		OfficeFilter:   officeFilter,
		OfficeNotFound: ext.OfficeNotFound,
	}
	return s.finish(variant, []string{path}, rec, diag, nil), nil
}

func (s *analysisServiceImpl) analyzeRows(ctx context.Context, path, officeFilter string) (*session.Result, error) {
	rows, err := s.loader.LoadRows(ctx, path)
	if err != nil {
		return nil, err
	}

	ext, err := s.extract(parser.VariantTabular, &parser.Source{
		Name:         filepath.Base(path),
		Rows:         rows,
		OfficeFilter: officeFilter,
	})
	if err != nil {
		return nil, err
	}

	rec := s.pipeline.Reconciler.Reconcile(reconcile.Input{
		Vouchers:   ext.Vouchers,
		Classifier: s.pipeline.Jurisdiction.ClassifierFor(parser.VariantTabular),
	})

	diag := summary.Diagnostics{
		Duplicates:     ext.Duplicates,
		OfficeFilter:   officeFilter,
		OfficeNotFound: ext.OfficeNotFound,
	}
	if ext.Tabular != nil {
		diag.Strategy = string(ext.Tabular.Strategy)
		diag.LowConfidence = !ext.Tabular.HighConfidence()
		diag.NoRows = ext.Tabular.RowsScanned == 0
		diag.Discrepancy = ext.Tabular.Discrepancy(rec.Total())
	}
	return s.finish(parser.VariantTabular, []string{path}, rec, diag, ext.Tabular), nil
}

func (s *analysisServiceImpl) extract(variant parser.Variant, src *parser.Source) (*parser.Extraction, error) {
	p, ok := s.parsers[variant]
	if !ok {
		return nil, fmt.Errorf("no parser registered for %s", variant)
	}
	return p.Extract(src)
}

func (s *analysisServiceImpl) finish(
	variant parser.Variant,
	sources []string,
	rec *reconcile.Result,
	diag summary.Diagnostics,
	tabular *parser.TabularStats,
) *session.Result {
	sum := s.pipeline.Aggregator.Summarize(rec)
	view := summary.NewView(rec, sum, diag, s.pipeline.View)

	for _, w := range view.Warnings {
		s.logger.Warn(w, zap.String("variant", variant.String()))
	}

	return &session.Result{
		Variant:     variant,
		Sources:     sources,
		Reconciled:  rec,
		Summary:     sum,
		View:        view,
		Diagnostics: diag,
		Tabular:     tabular,
		CompletedAt: time.Now(),
	}
}
