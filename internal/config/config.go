package config

import (
	"os"
	"strconv"

	"rehabengine/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	AI        AIConfig
	Server    ServerConfig
	Report    ReportConfig
	Generator GeneratorConfig
	Artifacts ArtifactConfig
}

// DatabaseConfig holds database connection settings. An empty URL disables
// persistence; the service then runs purely in-memory.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// Enabled reports whether a database was configured.
func (d DatabaseConfig) Enabled() bool { return d.URL != "" }

// AIConfig holds LLM justification settings. An empty key disables the
// client; templated justifications are used instead.
type AIConfig struct {
	OpenAIKey   string
	OpenAIModel string
	MaxTokens   int
	Temperature float64
}

// Enabled reports whether an API key was configured.
func (a AIConfig) Enabled() bool { return a.OpenAIKey != "" }

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ReportConfig holds ops/report server settings
type ReportConfig struct {
	Port    string
	Enabled bool
}

// GeneratorConfig holds dataset generation defaults
type GeneratorConfig struct {
	DefaultInmates int
	DefaultSeed    int64
	MinInmates     int
	MaxInmates     int
	OutputDir      string
}

// ArtifactConfig holds model artifact settings
type ArtifactConfig struct {
	ModelsDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		AI: AIConfig{
			OpenAIKey:   getEnvOrDefault("OPENAI_API_KEY", ""),
			OpenAIModel: getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 500),
			Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.3),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Report: ReportConfig{
			Port:    getEnvOrDefault("REPORT_PORT", "8081"),
			Enabled: getEnvBoolOrDefault("REPORT_ENABLED", true),
		},
		Generator: GeneratorConfig{
			DefaultInmates: getEnvIntOrDefault("GEN_DEFAULT_INMATES", 1000),
			DefaultSeed:    int64(getEnvIntOrDefault("GEN_DEFAULT_SEED", 42)),
			MinInmates:     getEnvIntOrDefault("GEN_MIN_INMATES", 100),
			MaxInmates:     getEnvIntOrDefault("GEN_MAX_INMATES", 10000),
			OutputDir:      getEnvOrDefault("GEN_OUTPUT_DIR", "./data"),
		},
		Artifacts: ArtifactConfig{
			ModelsDir: getEnvOrDefault("MODELS_DIR", "./models"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Generator.MinInmates <= 0 || config.Generator.MaxInmates < config.Generator.MinInmates {
		return errors.ConfigInvalid("generator inmate bounds are invalid")
	}
	if config.Generator.DefaultInmates < config.Generator.MinInmates ||
		config.Generator.DefaultInmates > config.Generator.MaxInmates {
		return errors.ConfigInvalid("default inmate count is outside configured bounds")
	}
	if config.Artifacts.ModelsDir == "" {
		return errors.ConfigInvalid("models directory is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
