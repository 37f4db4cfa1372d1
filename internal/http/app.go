// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"merkaz_backend/platform/config"
	"merkaz_backend/platform/httpkit"
	"merkaz_backend/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and CORS settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Limiter throttles the public form routes per client IP. Nil disables it.
	Limiter httpkit.Limiter
	// Gatherer backs the /metrics endpoint. Nil serves the default registry.
	Gatherer prometheus.Gatherer
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
