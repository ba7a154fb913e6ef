package ui

import (
	"context"

	"github.com/rovshanmuradov/tokenview/internal/config"
	"github.com/rovshanmuradov/tokenview/internal/logger"
	"github.com/rovshanmuradov/tokenview/internal/metrics"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"go.uber.org/zap"
)

// ServiceProvider provides access to the fetch stack for UI screens
type ServiceProvider interface {
	GetLogger() *zap.Logger
	GetConfig() *config.Config
	GetContext() context.Context
	GetLogBuffer() *logger.LogBuffer

	// NewOrchestrator returns a fresh orchestrator; each screen owns one.
	NewOrchestrator() *tokenview.Orchestrator
}

// RealServiceProvider implements ServiceProvider with the HTTP clients
type RealServiceProvider struct {
	pairs     tokenview.PairSource
	gas       tokenview.GasSource
	collector *metrics.Collector
	logBuffer *logger.LogBuffer
	logger    *zap.Logger
	config    *config.Config
	context   context.Context
}

// NewRealServiceProvider creates a new real service provider
func NewRealServiceProvider(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	pairs tokenview.PairSource,
	gas tokenview.GasSource,
	collector *metrics.Collector,
	logBuffer *logger.LogBuffer,
) *RealServiceProvider {
	return &RealServiceProvider{
		pairs:     pairs,
		gas:       gas,
		collector: collector,
		logBuffer: logBuffer,
		logger:    logger.Named("ui"),
		config:    cfg,
		context:   ctx,
	}
}

// GetLogger returns the logger
func (p *RealServiceProvider) GetLogger() *zap.Logger {
	return p.logger
}

// GetConfig returns the config
func (p *RealServiceProvider) GetConfig() *config.Config {
	return p.config
}

// GetContext returns the context
func (p *RealServiceProvider) GetContext() context.Context {
	return p.context
}

// GetLogBuffer returns the in-memory log tail, may be nil
func (p *RealServiceProvider) GetLogBuffer() *logger.LogBuffer {
	return p.logBuffer
}

// NewOrchestrator builds an orchestrator from the configured policy
func (p *RealServiceProvider) NewOrchestrator() *tokenview.Orchestrator {
	return tokenview.NewOrchestrator(p.pairs, p.gas, OrchestratorOptions(p.config), p.logger, p.collector)
}

// OrchestratorOptions maps config onto orchestrator options
func OrchestratorOptions(cfg *config.Config) tokenview.Options {
	opts := tokenview.Options{Timeout: cfg.RequestTimeout, Policy: tokenview.CancelSuperseded}
	if !cfg.CancelSuperseded {
		opts.Policy = tokenview.CancelNone
	}
	return opts
}
