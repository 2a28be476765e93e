package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	APIPrefix   string `json:"api_prefix"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// Upstream lookup services
	GeocodingBaseURL string        `json:"geocoding_base_url"`
	WeatherBaseURL   string        `json:"weather_base_url"`
	WikipediaBaseURL string        `json:"wikipedia_base_url"`
	UpstreamTimeout  time.Duration `json:"-"`

	// AI / LLM
	AnthropicAPIKey  string  `json:"anthropic_api_key"`
	AnthropicBaseURL string  `json:"anthropic_base_url"` // override for Z.ai / custom proxy
	Model            string  `json:"model"`
	MaxTokens        int     `json:"max_tokens"`
	Temperature      float64 `json:"temperature"`

	// Agent loop
	MaxRounds    int `json:"max_rounds"`
	AgentTimeout int `json:"agent_timeout"` // seconds

	// Security
	MaxQuestionLength  int  `json:"max_question_length"`
	EnableAuditLogging bool `json:"enable_audit_logging"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		APIPrefix:          DefaultAPIPrefix,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		APIKeyHeader:       "X-API-Key",
		EnableAuth:         false,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		GeocodingBaseURL:   DefaultGeocodingBaseURL,
		WeatherBaseURL:     DefaultWeatherBaseURL,
		WikipediaBaseURL:   DefaultWikipediaBaseURL,
		UpstreamTimeout:    DefaultUpstreamTimeout,
		Model:              DefaultModel,
		MaxTokens:          DefaultMaxTokens,
		Temperature:        DefaultTemperature,
		MaxRounds:          DefaultMaxRounds,
		AgentTimeout:       DefaultAgentTimeout,
		MaxQuestionLength:  DefaultMaxQuestionLength,
		EnableAuditLogging: true,
	}

	// Load from JSON config file if specified
	if path := getEnv("ALMANAC_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("ALMANAC_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("ALMANAC_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("ALMANAC_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("ALMANAC_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("ALMANAC_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
		cfg.EnableAuth = true
	}
	if v := getEnv("ALMANAC_GEOCODING_URL", ""); v != "" {
		cfg.GeocodingBaseURL = v
	}
	if v := getEnv("ALMANAC_WEATHER_URL", ""); v != "" {
		cfg.WeatherBaseURL = v
	}
	if v := getEnv("ALMANAC_WIKIPEDIA_URL", ""); v != "" {
		cfg.WikipediaBaseURL = v
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("ALMANAC_MODEL", ""); v != "" {
		cfg.Model = v
	}
	if v := getEnv("ALMANAC_MAX_TOKENS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
	if v := getEnv("ALMANAC_TEMPERATURE", ""); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = t
		}
	}
	if v := getEnv("ALMANAC_MAX_ROUNDS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRounds = n
		}
	}
	if v := getEnv("ALMANAC_AGENT_TIMEOUT", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AgentTimeout = n
		}
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("ENABLE_AUDIT_LOGGING", ""); v != "" {
		cfg.EnableAuditLogging = v == "true" || v == "1"
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
