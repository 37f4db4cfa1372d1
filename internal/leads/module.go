// Package leads provides the lead capture bounded context module.
// This file defines the module that encapsulates sink setup and route registration.
package leads

import (
	"context"
	"fmt"

	"merkaz_backend/internal/email"
	apphttp "merkaz_backend/internal/http"
	"merkaz_backend/internal/leads/dispatch"
	"merkaz_backend/internal/leads/handler"
	"merkaz_backend/internal/leads/service"
	"merkaz_backend/internal/observability/metrics"
	"merkaz_backend/internal/sheets"
	"merkaz_backend/internal/whatsapp"
	"merkaz_backend/platform/config"
	"merkaz_backend/platform/logger"
	"merkaz_backend/platform/validator"
)

// ModuleConfig combines the config interfaces the leads module reads.
type ModuleConfig interface {
	config.SMTPConfig
	config.SheetsConfig
	config.WhatsAppConfig
	config.DispatchConfig
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the leads module. Sinks whose configuration is incomplete
// are left out of the dispatcher; the module still serves every route.
func NewModule(ctx context.Context, cfg ModuleConfig, val *validator.Validator, m *metrics.LeadMetrics, log *logger.Logger) (*Module, error) {
	sinks, err := buildSinks(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	linker, err := whatsapp.NewLinker(cfg)
	if err != nil {
		return nil, err
	}

	dispatcher := dispatch.New(sinks, cfg.GetSinkTimeout(), m, log)
	log.Info("lead dispatcher ready", "sinks", dispatcher.SinkNames(), "timeout", cfg.GetSinkTimeout().String())

	svc := service.New(dispatcher, linker, m)
	return &Module{
		handler: handler.New(svc, val, log),
		service: svc,
	}, nil
}

func buildSinks(ctx context.Context, cfg ModuleConfig, log *logger.Logger) ([]dispatch.Sink, error) {
	var sinks []dispatch.Sink

	if cfg.IsLeadEmailEnabled() {
		sinks = append(sinks, dispatch.NewEmailSink(email.NewSender(cfg), cfg.GetLeadEmailTo()))
	} else {
		log.Info("SMTP settings incomplete; lead email sink disabled")
	}

	if cfg.IsLeadSheetEnabled() {
		client, err := sheets.NewClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("init sheets client: %w", err)
		}
		sinks = append(sinks, dispatch.NewSheetSink(client))
	} else {
		log.Info("Google Sheets settings incomplete; lead sheet sink disabled")
	}

	return sinks, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public lead endpoint and the order form routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterLeadRoute(ctx.Public.Group("", ctx.RateLimit))
	m.handler.RegisterRoutes(ctx.V1.Group("/leads", ctx.RateLimit))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
