package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/almanacai/almanac/internal/agent"
	"github.com/almanacai/almanac/internal/config"
	"github.com/almanacai/almanac/internal/models"
	"github.com/almanacai/almanac/internal/security"
	"github.com/almanacai/almanac/internal/server"
	"github.com/almanacai/almanac/internal/service"
	"github.com/almanacai/almanac/internal/tools"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultQuestion = "What's the current weather like in Karachi?"

func main() {
	root := &cobra.Command{
		Use:   "almanac",
		Short: "A tool-calling assistant for weather, encyclopedia and arithmetic questions",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.AddCommand(serveCmd(), askCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	setupLogging(cfg)
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			srv, err := server.New(cfg)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}
}

func askCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.AnthropicAPIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY is not set")
			}

			question := defaultQuestion
			if len(args) == 1 {
				question = args[0]
			}

			geoSvc := service.NewGeocodingService(cfg.GeocodingBaseURL, cfg.UpstreamTimeout)
			weatherSvc := service.NewWeatherService(cfg.WeatherBaseURL, cfg.UpstreamTimeout)
			wikiSvc := service.NewWikipediaService(cfg.WikipediaBaseURL, cfg.UpstreamTimeout)

			toolSet := []tools.Tool{
				tools.GeocodeCityTool(geoSvc),
				tools.CurrentWeatherTool(weatherSvc),
				tools.SearchWikipediaTool(wikiSvc),
				tools.CalculateTool(),
			}

			almanacAgent := agent.NewAlmanacAgent(
				cfg.AnthropicAPIKey,
				cfg.Model,
				cfg.AnthropicBaseURL,
				cfg.MaxTokens,
				cfg.Temperature,
				cfg.MaxRounds,
			)
			queryH := agent.NewQueryHandler(
				almanacAgent,
				toolSet,
				service.NewIntentRouter(),
				security.NewQuestionValidator(cfg.MaxQuestionLength),
				security.NewAuditLogger(cfg.EnableAuditLogging),
			)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			req := models.AskRequest{Question: question, Trace: trace}
			req.SetDefaults()

			resp, err := queryH.Handle(ctx, &req, "")
			if err != nil {
				return err
			}

			if trace {
				for _, step := range resp.Steps {
					switch step.Type {
					case "tool_request":
						fmt.Fprintf(os.Stderr, "-> %s(%v)\n", step.Tool, step.Args)
					case "tool_result":
						fmt.Fprintf(os.Stderr, "<- %s: %s\n", step.Tool, step.Content)
					}
				}
			}

			fmt.Println(resp.Answer)
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print each tool request and result to stderr")
	return cmd
}
