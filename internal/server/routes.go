package server

import (
	"net/http"

	"github.com/almanacai/almanac/internal/agent"
	"github.com/almanacai/almanac/internal/handler"
	"github.com/almanacai/almanac/internal/middleware"
	"github.com/almanacai/almanac/internal/security"
	"github.com/almanacai/almanac/internal/service"
	"github.com/almanacai/almanac/internal/tools"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func (s *Server) setupRoutes() (http.Handler, error) {
	cfg := s.cfg

	// ─── Services ───────────────────────────────────────────────────────────────
	geoSvc := service.NewGeocodingService(cfg.GeocodingBaseURL, cfg.UpstreamTimeout)
	weatherSvc := service.NewWeatherService(cfg.WeatherBaseURL, cfg.UpstreamTimeout)
	wikiSvc := service.NewWikipediaService(cfg.WikipediaBaseURL, cfg.UpstreamTimeout)

	toolSet := []tools.Tool{
		tools.GeocodeCityTool(geoSvc),
		tools.CurrentWeatherTool(weatherSvc),
		tools.SearchWikipediaTool(wikiSvc),
		tools.CalculateTool(),
	}

	// ─── Security ───────────────────────────────────────────────────────────────
	validator := security.NewQuestionValidator(cfg.MaxQuestionLength)
	auditLogger := security.NewAuditLogger(cfg.EnableAuditLogging)

	// ─── AI Agent ───────────────────────────────────────────────────────────────
	var queryH *agent.QueryHandler
	if cfg.AnthropicAPIKey != "" {
		almanacAgent := agent.NewAlmanacAgent(
			cfg.AnthropicAPIKey,
			cfg.Model,
			cfg.AnthropicBaseURL,
			cfg.MaxTokens,
			cfg.Temperature,
			cfg.MaxRounds,
		)
		queryH = agent.NewQueryHandler(almanacAgent, toolSet, service.NewIntentRouter(), validator, auditLogger)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set - /api/v1/ask disabled")
	}

	log.Info().
		Bool("agent_enabled", queryH != nil).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Int("max_rounds", cfg.MaxRounds).
		Msg("service configuration")

	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("WARNING: auth enabled but no API keys configured - all API requests will be rejected")
	}

	// ─── Handlers ───────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(geoSvc)
	askH := handler.NewAskHandler(queryH)
	toolsH := handler.NewToolsHandler(toolSet)
	lookupH := handler.NewLookupHandler(geoSvc, weatherSvc, wikiSvc)
	calcH := handler.NewCalculateHandler()

	// ─── Router ─────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	apiMiddleware := []func(http.Handler) http.Handler{
		middleware.RateLimit(cfg.RateLimitPerMinute),
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		apiMiddleware = append(apiMiddleware, middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
	}

	r.Group(func(r chi.Router) {
		for _, m := range apiMiddleware {
			r.Use(m)
		}

		r.Route(cfg.APIPrefix, func(r chi.Router) {
			r.Post("/ask", askH.Ask)
			r.Get("/tools", toolsH.List)
			r.Get("/geocode", lookupH.Geocode)
			r.Get("/weather", lookupH.Weather)
			r.Get("/wikipedia", lookupH.Wikipedia)
			r.Post("/calculate", calcH.Calculate)
		})
	})

	return r, nil
}
