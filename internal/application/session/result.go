package session

import (
	"context"
	"time"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/parser"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/reconcile"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

// Result is the outcome of one successful analysis. It is never modified after it is stored.
type Result struct {
	RunID       string
	Variant     parser.Variant
	Sources     []string
	Reconciled  *reconcile.Result
	Summary     *summary.Summary
	View        *summary.View
	Diagnostics summary.Diagnostics
	Tabular     *parser.TabularStats
	CompletedAt time.Time
}

// RunFunc performs an analysis for the given run ID.
type RunFunc func(ctx context.Context, runID string) (*Result, error)
