package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Analysis AnalysisConfig
	LLM      LLMConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// AnalysisConfig bounds the extraction pipeline
type AnalysisConfig struct {
	MaxDocumentBytes int           `yaml:"max_document_bytes"`
	MaxPages         int           `yaml:"max_pages"`
	Workers          int           `yaml:"workers"`
	QueueSize        int           `yaml:"queue_size"`
	ProcessTimeout   time.Duration `yaml:"process_timeout"`
	IntakeDir        string        `yaml:"intake_dir"`
}

// LLMConfig holds narrative generator configuration
type LLMConfig struct {
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"-"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// fileConfig is the optional YAML overlay. Only analysis limits and LLM
// tuning live in the file; credentials and addresses stay in the
// environment.
type fileConfig struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	LLM      LLMConfig      `yaml:"llm"`
}

// LoadConfig loads configuration from environment variables, then overlays
// the YAML file named by CONFIG_FILE when set.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Analysis: AnalysisConfig{
			MaxDocumentBytes: getEnvAsInt("ANALYSIS_MAX_DOCUMENT_BYTES", 8<<20),
			MaxPages:         getEnvAsInt("ANALYSIS_MAX_PAGES", 200),
			Workers:          getEnvAsInt("ANALYSIS_WORKERS", 4),
			QueueSize:        getEnvAsInt("ANALYSIS_QUEUE_SIZE", 64),
			ProcessTimeout:   getEnvAsDuration("ANALYSIS_PROCESS_TIMEOUT", 2*time.Minute),
			IntakeDir:        getEnv("ANALYSIS_INTAKE_DIR", ""),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, NewAppError("CONFIG_ERROR", fmt.Sprintf("load %s", path), err)
		}
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	if fc.Analysis.MaxDocumentBytes > 0 {
		c.Analysis.MaxDocumentBytes = fc.Analysis.MaxDocumentBytes
	}
	if fc.Analysis.MaxPages > 0 {
		c.Analysis.MaxPages = fc.Analysis.MaxPages
	}
	if fc.Analysis.Workers > 0 {
		c.Analysis.Workers = fc.Analysis.Workers
	}
	if fc.Analysis.QueueSize > 0 {
		c.Analysis.QueueSize = fc.Analysis.QueueSize
	}
	if fc.Analysis.ProcessTimeout > 0 {
		c.Analysis.ProcessTimeout = fc.Analysis.ProcessTimeout
	}
	if fc.Analysis.IntakeDir != "" {
		c.Analysis.IntakeDir = fc.Analysis.IntakeDir
	}
	if fc.LLM.Model != "" {
		c.LLM.Model = fc.LLM.Model
	}
	if fc.LLM.Temperature > 0 {
		c.LLM.Temperature = fc.LLM.Temperature
	}
	if fc.LLM.Timeout > 0 {
		c.LLM.Timeout = fc.LLM.Timeout
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Analysis.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "ANALYSIS_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
