package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// History backends
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendSupabase = "supabase"
)

// Auth providers
const (
	AuthProviderJWT      = "jwt"
	AuthProviderSupabase = "supabase"
)

// DefaultRemedySearchURL is the retail search template remedy links use
const DefaultRemedySearchURL = "https://www.cvs.com/search?searchTerm="

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// History storage
	HistoryBackend string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string

	// Supabase configuration
	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseTable          string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Logging. LogLevelFromEnv marks a LOG_LEVEL override, which config
	// file reloads must not replace.
	LogLevel        string
	LogLevelFromEnv bool

	// Authentication
	AuthProvider string
	JWTSecret    string
	JWTIssuer    string
	JWTAudience  string

	// Domain settings
	RemedySearchURL    string
	RateLimitPerMinute int

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool

	AllowedOrigins []string

	// ConfigFile is the optional YAML overlay the values were merged from
	ConfigFile string
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ServerAddress:      ":8080",
		Environment:        "development",
		HistoryBackend:     BackendMemory,
		AWSRegion:          "us-west-2",
		DynamoDBTable:      "symptom-checks",
		SupabaseTable:      "symptom_checks",
		LogLevel:           "info",
		AuthProvider:       AuthProviderJWT,
		JWTAudience:        "authenticated",
		RemedySearchURL:    DefaultRemedySearchURL,
		RateLimitPerMinute: 60,
		EnableMetrics:      true,
		EnableTracing:      false,
		EnableCORS:         true,
		AllowedOrigins:     []string{"http://localhost:3000"},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by CONFIG_FILE, and environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		file.ApplyTo(cfg)
		cfg.ConfigFile = path
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.HistoryBackend = strings.ToLower(getEnv("HISTORY_BACKEND", c.HistoryBackend))

	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", c.DynamoDBTable))
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)

	c.SupabaseURL = getEnv("SUPABASE_URL", c.SupabaseURL)
	c.SupabaseServiceRoleKey = getEnv("SUPABASE_SERVICE_ROLE_KEY", c.SupabaseServiceRoleKey)
	c.SupabaseTable = getEnv("SUPABASE_TABLE", c.SupabaseTable)

	c.LambdaFunctionName = getEnv("AWS_LAMBDA_FUNCTION_NAME", c.LambdaFunctionName)
	c.IsLambda = getEnvBool("IS_LAMBDA", c.IsLambda || c.LambdaFunctionName != "")

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogLevelFromEnv = os.Getenv("LOG_LEVEL") != ""

	c.AuthProvider = strings.ToLower(getEnv("AUTH_PROVIDER", c.AuthProvider))
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getEnv("JWT_ISSUER", c.JWTIssuer)
	c.JWTAudience = getEnv("JWT_AUDIENCE", c.JWTAudience)

	c.RemedySearchURL = getEnv("REMEDY_SEARCH_URL", c.RemedySearchURL)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.HistoryBackend {
	case BackendMemory:
	case BackendDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required for the dynamodb backend")
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase backend")
		}
	default:
		return fmt.Errorf("unknown HISTORY_BACKEND %q", c.HistoryBackend)
	}

	switch c.AuthProvider {
	case AuthProviderJWT:
		if c.IsProduction() && c.JWTSecret == "" && !c.IsLambda {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
	case AuthProviderSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for supabase auth")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.RemedySearchURL == "" {
		return fmt.Errorf("REMEDY_SEARCH_URL cannot be empty")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
