package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/dispatcher"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/service"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/session"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/categorize"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/config"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/event"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/ingest"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/parser"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/reconcile"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/report"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/storage"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

// IngestBundle holds input loading components.
type IngestBundle struct {
	Loader      *ingest.Loader
	ReportTypes ingest.ReportTypes
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Analysis service.AnalysisService
	Report   service.ReportService
}

// ProvideIngest creates the file loader with the configured PDF engine.
func ProvideIngest(cfg *config.Config, logger *zap.Logger) (*IngestBundle, error) {
	text, err := ingest.NewTextExtractor(cfg.Ingest.PDFEngine, logger)
	if err != nil {
		return nil, err
	}
	return &IngestBundle{
		Loader: ingest.NewLoader(text, cfg.Ingest.MaxFileSize, logger),
		ReportTypes: ingest.ReportTypes{
			Authorization: cfg.ReportTypes.Authorization,
			Compilation:   cfg.ReportTypes.Compilation,
			Sanction:      cfg.ReportTypes.Sanction,
		},
	}, nil
}

// ProvideCategorizer builds the category cascade from configuration.
func ProvideCategorizer(cfg *config.CategoriesConfig, jurisdiction *config.JurisdictionConfig) *categorize.Categorizer {
	rules := categorize.Rules{
		OuterMarketplaceMarker: cfg.OuterMarketplace.Marker,
		OuterMarketplaceLabel:  cfg.OuterMarketplace.Label,
		OuterOffices:           jurisdiction.OuterOffices,
		Uncategorized:          cfg.Uncategorized,
	}
	for _, r := range cfg.Rules {
		rules.Markers = append(rules.Markers, categorize.Rule{Marker: r.Marker, Label: r.Label})
	}
	return categorize.NewCategorizer(rules)
}

// ProvidePipeline creates the parsers, reconciler and aggregator an analysis runs through.
func ProvidePipeline(cfg *config.Config, logger *zap.Logger) *service.Pipeline {
	generic := cfg.Categories.GenericHeads
	return &service.Pipeline{
		Parsers: []parser.SourceParser{
			parser.NewAuthorizationRegisterParser(logger.Named("parser")),
			parser.NewCompilationSheetParser(parser.NewHeadFilter(generic, false), logger.Named("parser")),
			parser.NewSanctionDetailParser(parser.NewHeadFilter(generic, true), logger.Named("parser")),
			parser.NewTabularParser(logger.Named("parser")),
		},
		Reconciler: reconcile.NewReconciler(
			ProvideCategorizer(&cfg.Categories, &cfg.Jurisdiction),
			logger.Named("reconcile")),
		Aggregator: summary.NewAggregator(logger.Named("summary")),
		Jurisdiction: service.JurisdictionRules{
			ResidentMarker: cfg.Jurisdiction.ResidentMarker,
			VoucherPrefix:  cfg.Jurisdiction.ResidentVoucherPrefix,
			CodePrefix:     cfg.Jurisdiction.ResidentCodePrefix,
		},
		View: summary.ViewOptions{
			ResidentTitle: fmt.Sprintf("NCDDO Analysis (%s)", cfg.Office.City),
			OuterTitle:    "CDDO Analysis (Outer)",
		},
	}
}

// ProvideStorage creates the output storage for generated reports.
func ProvideStorage(cfg *config.ReportConfig, logger *zap.Logger) (*storage.LocalFileStorage, error) {
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("report output directory is required")
	}
	return storage.NewLocalFileStorage(cfg.OutputDir, logger.Named("storage")), nil
}

// ProvideGenerator creates the report generator drawing with fpdf.
func ProvideGenerator(cfg *config.Config, store storage.FileStorage, logger *zap.Logger) *report.Generator {
	layout := report.Layout{
		OfficeName:  cfg.Office.Name,
		ReportTitle: cfg.Office.ReportTitle,
		Signatures:  cfg.Office.Signatures,
	}
	return report.NewGenerator(layout, nil, store, report.Options{
		FilenamePrefix: cfg.Report.FilenamePrefix,
		ExportXLSX:     cfg.Report.ExportXLSX,
		Validate:       cfg.Report.Validate,
	}, logger.Named("report"))
}

// ProvideDispatcher creates the session event dispatcher with the debug log
// handler and, when given, an external listener.
func ProvideDispatcher(logger *zap.Logger, listener session.Listener) dispatcher.Dispatcher {
	d := dispatcher.NewDispatcher(logger.Named("events"))

	d.SubscribeAll("debug-log", func(ctx context.Context, evt *event.Event) error {
		logger.Debug("Session event",
			zap.String("type", evt.Type.String()),
			zap.String("run_id", evt.RunID),
			zap.Any("payload", evt.Payload))
		return nil
	})
	d.Subscribe(event.TypeReportGenerated, "report-log", func(ctx context.Context, evt *event.Event) error {
		logger.Debug("Report generated",
			zap.String("run_id", evt.RunID),
			zap.String("file", evt.GetPayloadString("file")))
		return nil
	})
	if listener != nil {
		d.SubscribeAll("listener", func(ctx context.Context, evt *event.Event) error {
			listener(evt)
			return nil
		})
	}
	return d
}

// ServiceDeps holds dependencies for creating services.
type ServiceDeps struct {
	Ingest    *IngestBundle
	Pipeline  *service.Pipeline
	Generator *report.Generator
	Session   *session.Session
	Logger    *zap.Logger
}

// ProvideServices creates the analysis and report services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil || deps.Ingest == nil || deps.Pipeline == nil || deps.Generator == nil || deps.Session == nil {
		return nil, fmt.Errorf("service dependencies are incomplete")
	}
	return &ServiceBundle{
		Analysis: service.NewAnalysisService(
			deps.Ingest.Loader,
			deps.Ingest.ReportTypes,
			*deps.Pipeline,
			deps.Session,
			deps.Logger.Named("analysis")),
		Report: service.NewReportService(deps.Generator, deps.Session, deps.Logger.Named("report")),
	}, nil
}
