// Command conciergd runs the customer-support agent engine: an HTTP
// API that classifies incoming messages, dispatches them to a
// specialized agent, and streams the reply.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/bububa/instructor-go/pkg/instructor"
	"github.com/joho/godotenv"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/voyantic/concierge/agents"
	"github.com/voyantic/concierge/classifier"
	"github.com/voyantic/concierge/config"
	"github.com/voyantic/concierge/contextwindow"
	"github.com/voyantic/concierge/httpapi"
	"github.com/voyantic/concierge/orchestrator"
	"github.com/voyantic/concierge/provider"
	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/store/memstore"
	"github.com/voyantic/concierge/store/pgstore"
	"github.com/voyantic/concierge/tokens"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONCIERGE_CONFIG"), "path to YAML config")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conversations, commerce, cleanup, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("connecting store failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	client := newInstructor(cfg.Provider)
	llm := provider.New(
		provider.WithClient(client),
		provider.WithModel(cfg.Model),
		provider.WithTemperature(cfg.Temperature),
		provider.WithMaxTokens(cfg.MaxTokens),
	)
	routerLLM := provider.New(
		provider.WithClient(client),
		provider.WithModel(cfg.RouterModelName()),
		provider.WithTemperature(cfg.Temperature),
		provider.WithMaxTokens(cfg.MaxTokens),
	)

	registry := agents.NewRegistry(conversations, commerce)
	cls := classifier.New(routerLLM, classifier.WithLogger(logger))
	compactorOpts := []contextwindow.Option{
		contextwindow.WithMaxContextTokens(cfg.MaxContextTokens),
		contextwindow.WithKeepRecent(cfg.KeepRecent),
		contextwindow.WithLogger(logger),
	}
	if cfg.TokenEncoding != "" {
		estimator, err := tokens.NewTiktokenEstimator(cfg.TokenEncoding)
		if err != nil {
			logger.Error("loading token encoding failed", "encoding", cfg.TokenEncoding, "error", err)
			os.Exit(1)
		}
		compactorOpts = append(compactorOpts, contextwindow.WithEstimator(estimator))
	}
	compactor := contextwindow.NewCompactor(llm, compactorOpts...)
	loop := agents.NewLoop(llm, agents.WithMaxSteps(cfg.MaxToolSteps), agents.WithLogger(logger))
	orch := orchestrator.New(conversations, registry, cls, compactor, loop, llm,
		orchestrator.WithLogger(logger))

	srv := httpapi.New(orch, conversations, registry, httpapi.WithLogger(logger))
	logger.Info("listening", "addr", cfg.Listen, "provider", cfg.Provider, "model", cfg.Model)
	if err := srv.Run(cfg.Listen); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// buildStores connects postgres when a DSN is configured, otherwise
// serves the seeded in-memory store.
func buildStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.ConversationStore, store.CommerceStore, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("no database configured, using seeded in-memory store")
		mem := memstore.New()
		mem.Seed()
		return mem, mem, func() {}, nil
	}
	pool, err := pgstore.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	pg := pgstore.New(pool)
	return pg, pg, pool.Close, nil
}

func newInstructor(providerName string) instructor.Instructor {
	switch providerName {
	case config.ProviderAnthropic:
		authToken := os.Getenv("ANTHROPIC_API_KEY")
		baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
		opts := make([]anthropic.ClientOption, 0, 1)
		if baseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(baseURL))
		}
		clt := anthropic.NewClient(authToken, opts...)
		return instructor.FromAnthropic(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation())
	default:
		authToken := os.Getenv("OPENAI_API_KEY")
		baseURL := os.Getenv("OPENAI_API_BASE_URL")
		cfg := openai.DefaultConfig(authToken)
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		clt := openai.NewClientWithConfig(cfg)
		return instructor.FromOpenAI(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation())
	}
}
