// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultWhatsAppPhone  = "972585360510"
	defaultSheetsRange    = "A1"
	defaultSinkTimeout    = "8s"
	defaultRatePerMinute  = "20"
	defaultHTTPAddr       = ":8080"
	defaultCORSOrigins    = "http://localhost:3000"
	smtpImplicitTLSPort   = 465
	smtpDefaultSubmission = 587
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// SMTPConfig provides settings for the lead email sink.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetSMTPFrom() string
	GetLeadEmailTo() string
	IsSMTPImplicitTLS() bool
	IsLeadEmailEnabled() bool
}

// SheetsConfig provides settings for the Google Sheets lead sink.
type SheetsConfig interface {
	GetSheetsID() string
	GetSheetsRange() string
	GetServiceAccountEmail() string
	GetServiceAccountPrivateKey() string
	IsLeadSheetEnabled() bool
}

// WhatsAppConfig provides the deep link destination.
type WhatsAppConfig interface {
	GetWhatsAppPhone() string
}

// DispatchConfig provides lead dispatch tuning.
type DispatchConfig interface {
	GetSinkTimeout() time.Duration
}

// RateLimitConfig provides settings for the public endpoint rate limiter.
type RateLimitConfig interface {
	GetRateLimitPerMinute() int
	GetRedisURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	SMTPHost            string
	SMTPPortRaw         string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	SMTPFrom            string
	LeadEmailTo         string
	SheetsID            string
	SheetsRange         string
	ServiceAccountEmail string
	ServiceAccountKey   string
	WhatsAppPhone       string
	SinkTimeout         time.Duration
	RateLimitPerMinute  int
	RedisURL            string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string     { return c.SMTPHost }
func (c *Config) GetSMTPPort() int        { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string { return c.SMTPPassword }
func (c *Config) GetLeadEmailTo() string  { return c.LeadEmailTo }
func (c *Config) IsSMTPImplicitTLS() bool { return c.SMTPPort == smtpImplicitTLSPort }

// GetSMTPFrom falls back to the SMTP username when no sender is configured.
func (c *Config) GetSMTPFrom() string {
	if c.SMTPFrom != "" {
		return c.SMTPFrom
	}
	return c.SMTPUsername
}

// IsLeadEmailEnabled requires host, port, credentials and recipient together.
func (c *Config) IsLeadEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPPortRaw != "" && c.SMTPUsername != "" &&
		c.SMTPPassword != "" && c.LeadEmailTo != ""
}

// SheetsConfig implementation
func (c *Config) GetSheetsID() string                 { return c.SheetsID }
func (c *Config) GetSheetsRange() string              { return c.SheetsRange }
func (c *Config) GetServiceAccountEmail() string      { return c.ServiceAccountEmail }
func (c *Config) GetServiceAccountPrivateKey() string { return c.ServiceAccountKey }
func (c *Config) IsLeadSheetEnabled() bool {
	return c.SheetsID != "" && c.ServiceAccountEmail != "" && c.ServiceAccountKey != ""
}

// WhatsAppConfig implementation
func (c *Config) GetWhatsAppPhone() string { return c.WhatsAppPhone }

// DispatchConfig implementation
func (c *Config) GetSinkTimeout() time.Duration { return c.SinkTimeout }

// RateLimitConfig implementation
func (c *Config) GetRateLimitPerMinute() int { return c.RateLimitPerMinute }
func (c *Config) GetRedisURL() string        { return c.RedisURL }

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", defaultCORSOrigins))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	sinkTimeout, err := time.ParseDuration(getEnv("DISPATCH_SINK_TIMEOUT", defaultSinkTimeout))
	if err != nil || sinkTimeout <= 0 {
		return nil, fmt.Errorf("DISPATCH_SINK_TIMEOUT must be a positive duration")
	}

	ratePerMinute, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", defaultRatePerMinute))
	if err != nil || ratePerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be a positive integer")
	}

	smtpPortRaw := strings.TrimSpace(getEnv("SMTP_PORT", ""))
	smtpPort := smtpDefaultSubmission
	if smtpPortRaw != "" {
		smtpPort, err = strconv.Atoi(smtpPortRaw)
		if err != nil || smtpPort <= 0 || smtpPort > 65535 {
			return nil, fmt.Errorf("SMTP_PORT must be a valid port number")
		}
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", defaultHTTPAddr),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPortRaw:         smtpPortRaw,
		SMTPPort:            smtpPort,
		SMTPUsername:        getEnv("SMTP_USER", ""),
		SMTPPassword:        getEnv("SMTP_PASS", ""),
		SMTPFrom:            getEnv("SMTP_FROM", ""),
		LeadEmailTo:         getEnv("LEAD_EMAIL_TO", ""),
		SheetsID:            getEnv("GOOGLE_SHEETS_ID", ""),
		SheetsRange:         getEnv("GOOGLE_SHEETS_RANGE", defaultSheetsRange),
		ServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		ServiceAccountKey:   expandNewlines(getEnv("GOOGLE_PRIVATE_KEY", "")),
		WhatsAppPhone:       getEnv("WHATSAPP_PHONE", defaultWhatsAppPhone),
		SinkTimeout:         sinkTimeout,
		RateLimitPerMinute:  ratePerMinute,
		RedisURL:            getEnv("REDIS_URL", ""),
	}

	if strings.TrimSpace(cfg.WhatsAppPhone) == "" {
		return nil, fmt.Errorf("WHATSAPP_PHONE must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// expandNewlines turns literal "\n" sequences (common when a PEM key is
// stored in a single-line env var) into real newlines.
func expandNewlines(value string) string {
	return strings.ReplaceAll(value, `\n`, "\n")
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
