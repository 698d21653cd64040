package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML overlay. Unset keys leave the current value alone.
type FileConfig struct {
	ServerAddress      *string  `yaml:"server_address"`
	Environment        *string  `yaml:"environment"`
	HistoryBackend     *string  `yaml:"history_backend"`
	AWSRegion          *string  `yaml:"aws_region"`
	DynamoDBTable      *string  `yaml:"table_name"`
	EventBusName       *string  `yaml:"event_bus_name"`
	SupabaseURL        *string  `yaml:"supabase_url"`
	SupabaseTable      *string  `yaml:"supabase_table"`
	LogLevel           *string  `yaml:"log_level"`
	AuthProvider       *string  `yaml:"auth_provider"`
	JWTIssuer          *string  `yaml:"jwt_issuer"`
	JWTAudience        *string  `yaml:"jwt_audience"`
	RemedySearchURL    *string  `yaml:"remedy_search_url"`
	RateLimitPerMinute *int     `yaml:"rate_limit_per_minute"`
	EnableMetrics      *bool    `yaml:"enable_metrics"`
	EnableTracing      *bool    `yaml:"enable_tracing"`
	EnableCORS         *bool    `yaml:"enable_cors"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
}

// LoadFile reads and parses a YAML config file
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}

// ApplyTo copies every key present in the file onto cfg. Secrets are never
// read from the file.
func (f *FileConfig) ApplyTo(cfg *Config) {
	setString(&cfg.ServerAddress, f.ServerAddress)
	setString(&cfg.Environment, f.Environment)
	setString(&cfg.HistoryBackend, f.HistoryBackend)
	setString(&cfg.AWSRegion, f.AWSRegion)
	setString(&cfg.DynamoDBTable, f.DynamoDBTable)
	setString(&cfg.EventBusName, f.EventBusName)
	setString(&cfg.SupabaseURL, f.SupabaseURL)
	setString(&cfg.SupabaseTable, f.SupabaseTable)
	setString(&cfg.LogLevel, f.LogLevel)
	setString(&cfg.AuthProvider, f.AuthProvider)
	setString(&cfg.JWTIssuer, f.JWTIssuer)
	setString(&cfg.JWTAudience, f.JWTAudience)
	setString(&cfg.RemedySearchURL, f.RemedySearchURL)

	if f.RateLimitPerMinute != nil {
		cfg.RateLimitPerMinute = *f.RateLimitPerMinute
	}
	if f.EnableMetrics != nil {
		cfg.EnableMetrics = *f.EnableMetrics
	}
	if f.EnableTracing != nil {
		cfg.EnableTracing = *f.EnableTracing
	}
	if f.EnableCORS != nil {
		cfg.EnableCORS = *f.EnableCORS
	}
	if len(f.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = append([]string(nil), f.AllowedOrigins...)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
