package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	MaxUploadMB int

	GoogleProjectID   string
	GoogleLocation    string
	GoogleCredentials string
	GeminiModel       string

	DescriberProvider string
	STTProvider       string

	OpenAIKey         string
	OpenAIVisionModel string

	FPTApiKey string
	FPTSTTURL string

	SentryDSN string
	LogLevel  string
	LogFormat string

	Speech Speech
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		GoogleProjectID:   os.Getenv("GOOGLE_PROJECT_ID"),
		GoogleLocation:    getEnv("GOOGLE_LOCATION", "us-central1"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		DescriberProvider: strings.ToLower(getEnv("DESCRIBER_PROVIDER", "google")),
		STTProvider:       strings.ToLower(getEnv("STT_PROVIDER", "google")),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIVisionModel: getEnv("OPENAI_VISION_MODEL", "gpt-4o-mini"),
		FPTApiKey:         os.Getenv("FPT_AI_API_KEY"),
		FPTSTTURL:         getEnv("FPT_AI_STT_URL", "https://api.fpt.ai/hmi/asr/v1"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}

	maxUpload, err := strconv.Atoi(getEnv("MAX_UPLOAD_MB", "32"))
	if err != nil || maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer")
	}
	cfg.MaxUploadMB = maxUpload

	speech := DefaultSpeech()
	if path := os.Getenv("VOICES_FILE"); path != "" {
		speech, err = LoadSpeech(path)
		if err != nil {
			return nil, err
		}
	}
	cfg.Speech = speech

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DescriberProvider {
	case "google":
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when DESCRIBER_PROVIDER=openai")
		}
	default:
		return fmt.Errorf("unsupported describer provider: %s. Supported: google, openai", c.DescriberProvider)
	}

	switch c.STTProvider {
	case "google":
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when STT_PROVIDER=openai")
		}
	case "fpt":
		if c.FPTApiKey == "" {
			return fmt.Errorf("FPT_AI_API_KEY is required when STT_PROVIDER=fpt")
		}
	default:
		return fmt.Errorf("unsupported STT provider: %s. Supported: google, openai, fpt", c.STTProvider)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
