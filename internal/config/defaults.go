package config

import "time"

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultAPIPrefix   = "/api/v1"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	DefaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1"
	DefaultWeatherBaseURL   = "https://api.open-meteo.com/v1"
	DefaultWikipediaBaseURL = "https://en.wikipedia.org/w/api.php"

	// Every upstream lookup blocks for at most this long.
	DefaultUpstreamTimeout = 30 * time.Second

	DefaultModel       = "claude-sonnet-4-6"
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.1

	// Model/tool cycles before a run is aborted with BudgetExceededError.
	DefaultMaxRounds    = 10
	DefaultAgentTimeout = 120 // seconds

	DefaultMaxQuestionLength = 2000

	DefaultCORSMaxAge = 300
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
}
