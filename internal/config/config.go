package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all process-wide settings. It is read once at startup and never
// mutated afterwards; an empty optional value selects another code path.
type Config struct {
	// Server
	Port               string
	Environment        string
	LogLevel           string
	CORSAllowedOrigins []string
	ErrorRendering     string

	// Remote inference
	RemoteAIURL     string
	RemoteAITimeout time.Duration

	// Local model
	LocalModel LocalModelConfig

	// Figma
	FigmaAPIKey  string
	FigmaAPIBase string

	// Files
	UploadDir         string
	GenerationProfile string
}

// LocalModelConfig locates the local generation pipeline.
type LocalModelConfig struct {
	Dir     string
	BaseURL string
	Name    string
	APIKey  string
	Device  string
	// Timeout bounds one inference, including the wait for the pipeline.
	Timeout time.Duration
}

const (
	ServiceName = "code-converter-backend"
	Version     = "0.1.0"
)

const (
	ErrorRenderingJSON   = "json"
	ErrorRenderingInline = "inline"
)

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", getEnv("FLASK_RUN_PORT", "5000")),
		Environment:        getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ErrorRendering:     errorRendering(getEnv("ERROR_RENDERING", ErrorRenderingJSON)),

		RemoteAIURL:     os.Getenv("COLAB_AI_API_URL"),
		RemoteAITimeout: getDuration("REMOTE_AI_TIMEOUT", 120*time.Second),

		LocalModel: LocalModelConfig{
			Dir:     getEnv("LOCAL_MODEL_DIR", "models/nlp_code_generator"),
			BaseURL: getEnv("LOCAL_MODEL_URL", "http://localhost:8081/v1"),
			Name:    getEnv("LOCAL_MODEL_NAME", "Salesforce/codegen-350M-mono"),
			APIKey:  os.Getenv("LOCAL_MODEL_API_KEY"),
			Device:  getEnv("LOCAL_MODEL_DEVICE", "auto"),
			Timeout: getDuration("LOCAL_MODEL_TIMEOUT", 60*time.Second),
		},

		// FPGMA_API_KEY is the name older deployments used.
		FigmaAPIKey:  getEnv("FIGMA_API_KEY", os.Getenv("FPGMA_API_KEY")),
		FigmaAPIBase: getEnv("FIGMA_API_BASE", "https://api.figma.com/v1/files/"),

		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		GenerationProfile: getEnv("GENERATION_PROFILE", "config/generation_profile.json"),
	}
}

// TextRequestBudget is the longest a text conversion can take: one remote
// attempt followed by one local attempt.
func (c *Config) TextRequestBudget() time.Duration {
	return c.RemoteAITimeout + c.LocalModel.Timeout
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func errorRendering(value string) string {
	if strings.EqualFold(value, ErrorRenderingInline) {
		return ErrorRenderingInline
	}
	return ErrorRenderingJSON
}
