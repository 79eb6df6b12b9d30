package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/adapters"
	"github.com/mitre88/go-on-line/internal/bootstrap"
	aiDelivery "github.com/mitre88/go-on-line/internal/delivery/ai"
	gameDelivery "github.com/mitre88/go-on-line/internal/delivery/game"
	statsDelivery "github.com/mitre88/go-on-line/internal/delivery/stats"
	ownMiddleware "github.com/mitre88/go-on-line/internal/middleware"
	"github.com/mitre88/go-on-line/internal/repository"
	aiUC "github.com/mitre88/go-on-line/internal/usecase/ai"
	gameUC "github.com/mitre88/go-on-line/internal/usecase/game"
	statsUC "github.com/mitre88/go-on-line/internal/usecase/stats"
)

type mainDeliveryHandler struct {
	ai    *aiDelivery.AiHandler
	game  *gameDelivery.GameHandler
	stats *statsDelivery.StatsHandler
}

// dataBaseAdapters holds the optional backends; a nil adapter means the
// in-memory store is used instead.
type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorf("Failed to setup configuration: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.Close(context.Background())

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %v", err)
		}
	}()

	logger.Infof("Server is running on port %s (advisor: %s)", cfg.ServerPort, cfg.MoveAdvisor)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/ai-move", h.ai.HandleAiMove)
		r.Get("/stats", h.stats.GetStats)
		r.Post("/stats", h.stats.UpdateStats)
		r.Get("/archive", h.game.HandleArchive)
		r.Route("/games", h.game.Routes)
	})
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	result := &dataBaseAdapters{}

	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(cfg)
		if err := redisAdapter.Init(ctx); err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		result.redisAdapter = redisAdapter
	} else {
		log.Warn("REDIS_URL is empty, sessions and stats are kept in memory")
	}

	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(cfg)
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Fatalf("Failed to initialize MongoDB: %v", err)
		}
		result.mongoAdapter = mongoAdapter
	} else {
		log.Warn("MONGO_URI is empty, finished games are archived in memory")
	}

	return result
}

func (d *dataBaseAdapters) Close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
}

func initializeDeliveryHandlers(
	cfg *bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	var (
		sessionStore gameUC.SessionStore
		statsStore   statsUC.StatsStore
		archiveStore gameUC.ArchiveStore
	)
	if databaseAdapters.redisAdapter != nil {
		client := databaseAdapters.redisAdapter.GetClient()
		sessionStore = repository.NewSessionRedisStorage(client, cfg.SessionTtl())
		statsStore = repository.NewRedisStatsStorage(client)
	} else {
		sessionStore = repository.NewMemorySessionStorage(cfg.SessionTtl())
		statsStore = repository.NewMemoryStatsStorage(time.Now())
	}
	if databaseAdapters.mongoAdapter != nil {
		archiveStore = repository.NewMongoArchiveStorage(log, databaseAdapters.mongoAdapter.Database)
	} else {
		archiveStore = repository.NewMemoryArchiveStorage()
	}

	aiUseCase := aiUC.NewAiUseCase(newMoveSuggester(cfg, log), cfg.AiTimeout(), log)
	statsUseCase := statsUC.NewStatsUseCase(statsStore, log)
	gameUseCase := gameUC.NewGameUseCase(sessionStore, archiveStore, aiUseCase, statsUseCase, log, cfg.PageLimitGames)

	return &mainDeliveryHandler{
		ai:    aiDelivery.NewAiHandler(log, aiUseCase),
		game:  gameDelivery.NewGameHandler(log, gameUseCase),
		stats: statsDelivery.NewStatsHandler(log, statsUseCase),
	}
}

// newMoveSuggester returns nil when the configured advisor cannot be used,
// which makes the AI play random legal moves.
func newMoveSuggester(cfg *bootstrap.Config, log *zap.SugaredLogger) aiUC.MoveSuggester {
	switch cfg.MoveAdvisor {
	case bootstrap.AdvisorLlm:
		adapter := adapters.NewLlmAdapter(cfg)
		if !adapter.Configured() {
			log.Warn("LLM_API_KEY is empty, the AI plays random legal moves")
			return nil
		}
		return aiUC.NewLlmSuggester(repository.NewLlmRepository(adapter, log))
	case bootstrap.AdvisorKatago:
		if cfg.KatagoBotUrl == "" {
			log.Warn("KATAGO_BOT_URL is empty, the AI plays random legal moves")
			return nil
		}
		client := &http.Client{Timeout: cfg.AiTimeout()}
		return aiUC.NewKatagoSuggester(repository.NewKatagoRepository(cfg, log, client))
	default:
		return nil
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
