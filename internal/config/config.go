package config

import (
	"os"
	"strconv"

	"datacraft/internal/diagnose"
	"datacraft/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Diagnose diagnose.Thresholds
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings. The URL is optional:
// when empty the service runs without report persistence.
type DatabaseConfig struct {
	URL string
}

// StorageConfig holds file storage settings
type StorageConfig struct {
	PublicDir   string
	MaxFileSize int64 // bytes
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Storage: StorageConfig{
			PublicDir:   getEnvOrDefault("PUBLIC_DIR", "public"),
			MaxFileSize: int64(getEnvIntOrDefault("MAX_FILE_SIZE_MB", 50)) * 1024 * 1024,
		},
		Diagnose: loadThresholds(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// loadThresholds starts from the engine defaults and applies env overrides.
// Every policy constant of the engine is reachable from the environment.
func loadThresholds() diagnose.Thresholds {
	th := diagnose.DefaultThresholds()
	th.DetectSampleSize = getEnvIntOrDefault("DETECT_SAMPLE_SIZE", th.DetectSampleSize)
	th.NumericMinRatio = getEnvFloatOrDefault("NUMERIC_MIN_RATIO", th.NumericMinRatio)
	th.IdentifierMinRatio = getEnvFloatOrDefault("IDENTIFIER_MIN_RATIO", th.IdentifierMinRatio)
	th.DatePatternMinRatio = getEnvFloatOrDefault("DATE_PATTERN_MIN_RATIO", th.DatePatternMinRatio)
	th.DateParseMinRatio = getEnvFloatOrDefault("DATE_PARSE_MIN_RATIO", th.DateParseMinRatio)
	th.CategoricalMaxRatio = getEnvFloatOrDefault("CATEGORICAL_MAX_RATIO", th.CategoricalMaxRatio)
	th.CategoricalMaxUnique = getEnvIntOrDefault("CATEGORICAL_MAX_UNIQUE", th.CategoricalMaxUnique)
	th.MomentMinDistinct = getEnvIntOrDefault("MOMENT_MIN_DISTINCT", th.MomentMinDistinct)
	th.TopCategories = getEnvIntOrDefault("TOP_CATEGORIES", th.TopCategories)
	th.MNARMinAbsCorrelation = getEnvFloatOrDefault("MNAR_MIN_ABS_CORRELATION", th.MNARMinAbsCorrelation)
	th.Parallelism = getEnvIntOrDefault("PROFILE_PARALLELISM", th.Parallelism)
	return th
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Storage.PublicDir == "" {
		return errors.ConfigInvalid("public directory is required")
	}
	if config.Diagnose.NumericMinRatio <= 0 || config.Diagnose.NumericMinRatio > 1 {
		return errors.ConfigInvalid("NUMERIC_MIN_RATIO must be in (0,1]")
	}
	if config.Diagnose.MNARMinAbsCorrelation < 0 || config.Diagnose.MNARMinAbsCorrelation >= 1 {
		return errors.ConfigInvalid("MNAR_MIN_ABS_CORRELATION must be in [0,1)")
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
