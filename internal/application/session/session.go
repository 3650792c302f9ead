// Package session holds the state of one analysis session: the selected files,
// the status indicator, the last analysis result and the event log.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/event"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/workflow"
)

// Slot identifies one of the two file inputs of the dual-report workflow.
type Slot int

const (
	SlotFirst Slot = iota
	SlotSecond
)

// Listener receives every event the session records.
type Listener func(evt *event.Event)

// Option configures a Session
type Option func(*Session)

// WithListener forwards events to l as they are recorded.
func WithListener(l Listener) Option {
	return func(s *Session) {
		s.listener = l
	}
}

// Session is safe for concurrent use. Only one analysis runs at a time and the
// last result is replaced as a whole, so readers see either the old or the new one.
type Session struct {
	mu       sync.Mutex
	machine  workflow.StateMachine
	message  string
	files    [2]string
	events   []*event.Event
	listener Listener

	running atomic.Bool
	result  atomic.Pointer[Result]

	logger *zap.Logger
}

// New creates a session waiting for files.
func New(logger *zap.Logger, opts ...Option) *Session {
	s := &Session{
		machine: workflow.NewStatusMachine(),
		message: MsgWaitingForFiles,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current status level and message.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.machine.State(), Message: s.message}
}

// Busy reports whether an analysis is running.
func (s *Session) Busy() bool {
	return s.running.Load()
}

// Result returns the last successful analysis.
func (s *Session) Result() (*Result, error) {
	res := s.result.Load()
	if res == nil {
		return nil, ErrNoAnalysisResult
	}
	return res, nil
}

// Events returns a copy of the event log.
func (s *Session) Events() []*event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*event.Event(nil), s.events...)
}

// Files returns the two selected files, or ErrMissingFile if either is empty.
func (s *Session) Files() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files[SlotFirst] == "" || s.files[SlotSecond] == "" {
		return s.files[SlotFirst], s.files[SlotSecond], ErrMissingFile
	}
	return s.files[SlotFirst], s.files[SlotSecond], nil
}

// SelectFile stores path in slot and clears the last result. The status
// becomes ready once both slots are filled.
func (s *Session) SelectFile(ctx context.Context, slot Slot, path string) error {
	if slot != SlotFirst && slot != SlotSecond {
		return fmt.Errorf("invalid file slot: %d", slot)
	}
	if s.running.Load() {
		return ErrAnalysisInProgress
	}

	s.mu.Lock()
	s.files[slot] = path
	ready := s.files[SlotFirst] != "" && s.files[SlotSecond] != ""
	s.mu.Unlock()

	s.invalidate("")
	s.record(event.NewEvent(event.TypeFileSelected, "", map[string]interface{}{
		"slot": int(slot),
		"file": filepath.Base(path),
	}))

	if ready {
		return s.transition(ctx, workflow.TriggerFilesReady, MsgFilesReady)
	}
	return s.transition(ctx, workflow.TriggerSelectFile, MsgWaitingForFiles)
}

// Reject reports a selection or input error on the status indicator.
func (s *Session) Reject(ctx context.Context, err error) {
	s.logger.Warn("Input rejected", zap.Error(err))
	if terr := s.transition(ctx, workflow.TriggerFail, ErrorMessage(err)); terr != nil {
		s.logger.Warn("Status not updated", zap.Error(terr))
	}
}

// Run performs one analysis with fn. The previous result is cleared first; on
// success the new result is stored, on failure the slot stays empty.
func (s *Session) Run(ctx context.Context, fn RunFunc) (*Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrAnalysisInProgress
	}
	defer s.running.Store(false)

	runID := uuid.NewString()
	s.invalidate(runID)
	if err := s.transition(ctx, workflow.TriggerStartAnalysis, MsgProcessing); err != nil {
		return nil, err
	}
	s.record(event.NewEvent(event.TypeAnalysisStarted, runID, nil))
	s.logger.Info("Analysis started", zap.String("run_id", runID))

	res, err := s.safeRun(ctx, runID, fn)
	if err == nil && res == nil {
		err = ErrNoAnalysisResult
	}
	if err != nil {
		s.logger.Error("Analysis failed", zap.String("run_id", runID), zap.Error(err))
		s.record(event.NewEvent(event.TypeAnalysisFailed, runID, map[string]interface{}{
			"error": err.Error(),
		}))
		if terr := s.transition(ctx, workflow.TriggerFail, ErrorMessage(err)); terr != nil {
			s.logger.Warn("Status not updated", zap.Error(terr))
		}
		return nil, err
	}

	res.RunID = runID
	if res.CompletedAt.IsZero() {
		res.CompletedAt = time.Now()
	}
	s.result.Store(res)

	payload := map[string]interface{}{"variant": res.Variant.String()}
	if res.Summary != nil {
		payload["total"] = res.Summary.Total
		payload["ebills"] = res.Summary.EBills
		payload["percentage"] = res.Summary.Percentage
	}
	s.record(event.NewEvent(event.TypeAnalysisCompleted, runID, payload))
	s.logger.Info("Analysis completed",
		zap.String("run_id", runID),
		zap.String("variant", res.Variant.String()))

	if err := s.transition(ctx, workflow.TriggerComplete, MsgAnalysisComplete); err != nil {
		return res, err
	}
	return res, nil
}

// RecordReport logs a generated report against the run it was built from.
// runID is empty for reports built from manual input.
func (s *Session) RecordReport(runID, path string) {
	s.record(event.NewEvent(event.TypeReportGenerated, runID, map[string]interface{}{
		"file": path,
	}))
}

// safeRun runs fn with panic recovery
func (s *Session) safeRun(ctx context.Context, runID string, fn RunFunc) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("analysis panic: %v", r)
		}
	}()
	return fn(ctx, runID)
}

func (s *Session) invalidate(runID string) {
	if prev := s.result.Swap(nil); prev != nil {
		s.record(event.NewEvent(event.TypeResultInvalidated, runID, map[string]interface{}{
			"previous_run_id": prev.RunID,
		}))
	}
}

func (s *Session) transition(ctx context.Context, trigger workflow.Trigger, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.machine.Fire(ctx, trigger); err != nil {
		return err
	}
	s.message = message
	return nil
}

func (s *Session) record(evt *event.Event) {
	s.mu.Lock()
	s.events = append(s.events, evt)
	listener := s.listener
	s.mu.Unlock()

	if listener == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Event listener panic recovered",
				zap.String("event_type", evt.Type.String()),
				zap.Any("panic", r))
		}
	}()
	listener(evt)
}
