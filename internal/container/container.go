// Package container wires the bill counting components from configuration and
// manages their lifecycle.
package container

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/dispatcher"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/session"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/config"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/event"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/report"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/storage"
)

// Container manages all application dependencies and lifecycle.
type Container struct {
	config *config.Config
	logger *zap.Logger

	ingest    *IngestBundle
	storage   *storage.LocalFileStorage
	generator *report.Generator
	events    dispatcher.Dispatcher
	session   *session.Session
	services  *ServiceBundle

	listener session.Listener

	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// Option configures a Container
type Option func(*Container)

// WithEventListener subscribes l to every session event.
func WithEventListener(l session.Listener) Option {
	return func(c *Container) {
		c.listener = l
	}
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall" yaml:"overall"`
	Components map[string]ComponentHealth `json:"components" yaml:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy" yaml:"healthy"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Container{
		config: cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start initializes all components in dependency order:
// 1. Ingest (loader and report types)
// 2. Storage and report generator
// 3. Event dispatcher and session
// 4. Application services
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.logger.Debug("Starting container initialization")

	bundle, err := ProvideIngest(c.config, c.logger.Named("ingest"))
	if err != nil {
		return fmt.Errorf("failed to initialize ingest: %w", err)
	}
	c.ingest = bundle

	store, err := ProvideStorage(&c.config.Report, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	c.storage = store
	c.generator = ProvideGenerator(c.config, store, c.logger)

	c.events = ProvideDispatcher(c.logger, c.listener)
	c.session = session.New(c.logger.Named("session"), session.WithListener(c.onEvent))

	services, err := ProvideServices(&ServiceDeps{
		Ingest:    c.ingest,
		Pipeline:  ProvidePipeline(c.config, c.logger),
		Generator: c.generator,
		Session:   c.session,
		Logger:    c.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.services = services

	c.ready.Store(true)
	c.logger.Debug("Container started",
		zap.String("pdf_engine", c.config.Ingest.PDFEngine),
		zap.String("output_dir", c.storage.BaseDir()))

	return nil
}

// Close marks the container closed and flushes the logger.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}
	if c.session != nil && c.session.Busy() {
		c.logger.Warn("Closing container while an analysis is running")
	}

	if c.events != nil {
		if err := c.events.Close(); err != nil {
			c.logger.Warn("Failed to close event dispatcher", zap.Error(err))
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)
	c.logger.Debug("Container closed")

	// syncing a console sink fails on some platforms
	_ = c.logger.Sync()
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health() *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	set := func(name string, h ComponentHealth) {
		status.Components[name] = h
		if !h.Healthy {
			status.Overall = false
		}
	}

	if c.storage == nil {
		set("storage", ComponentHealth{Healthy: false, Message: "not initialized"})
	} else if info, err := os.Stat(c.storage.BaseDir()); err == nil && !info.IsDir() {
		set("storage", ComponentHealth{Healthy: false, Message: c.storage.BaseDir() + " is not a directory"})
	} else {
		// a missing output directory is created on first save
		set("storage", ComponentHealth{Healthy: true, Message: c.storage.BaseDir()})
	}

	if c.events == nil {
		set("events", ComponentHealth{Healthy: false, Message: "not initialized"})
	} else {
		set("events", ComponentHealth{Healthy: true, Message: fmt.Sprintf("%d handlers", len(c.events.ListHandlers("")))})
	}

	if c.session == nil {
		set("session", ComponentHealth{Healthy: false, Message: "not initialized"})
	} else {
		st := c.session.Status()
		set("session", ComponentHealth{Healthy: true, Message: fmt.Sprintf("%s: %s", st.State, st.Message)})
	}

	if c.services == nil {
		set("services", ComponentHealth{Healthy: false, Message: "not initialized"})
	} else {
		set("services", ComponentHealth{Healthy: true})
	}

	return status
}

// onEvent hands session events to the dispatcher. Handler failures are logged
// by the dispatcher and never reach the session.
func (c *Container) onEvent(evt *event.Event) {
	_ = c.events.Dispatch(context.Background(), evt)
}

// Session returns the analysis session.
func (c *Container) Session() *session.Session {
	return c.session
}

// Events returns the session event dispatcher.
func (c *Container) Events() dispatcher.Dispatcher {
	return c.events
}

// Services returns all application services.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Generator returns the report generator.
func (c *Container) Generator() *report.Generator {
	return c.generator
}

// FileStorage returns the report output storage.
func (c *Container) FileStorage() storage.FileStorage {
	return c.storage
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *config.Config {
	return c.config
}
