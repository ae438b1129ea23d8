package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"market-mood/internal/advisor"
	"market-mood/internal/analysis"
	"market-mood/internal/bot"
	"market-mood/internal/cache"
	"market-mood/internal/config"
	"market-mood/internal/db"
	"market-mood/internal/handler"
	"market-mood/internal/job"
	"market-mood/internal/provider"
	"market-mood/internal/repository"
	"market-mood/internal/service"
	"market-mood/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "market-mood/docs"
)

var (
	loadEnvFunc         = godotenv.Load
	loadConfigFunc      = config.Load
	initPostgresFunc    = db.InitPostgres
	initRedisFunc       = cache.InitRedis
	initTracerFunc      = tracing.InitTracer
	newNewsProviderFunc = func(cfg *config.Config, tracer trace.Tracer) analysis.NewsReader {
		return provider.NewNewsProvider(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.NewsQuery, cfg.NewsPageSize, tracer)
	}
	newMarketProviderFunc = func(cfg *config.Config, tracer trace.Tracer) service.MarketProvider {
		return provider.NewMarketIndexProvider(cfg.MarketAPIURL, tracer)
	}
	startAnalysisJobFunc   = func(j *job.AnalysisJob, ctx context.Context) { go j.Start(ctx) }
	startMarketPollerFunc  = func(p *job.MarketPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Market Mood API
// @version         1.0
// @description     News sentiment scoring, market correlation and forecasting service.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	initPostgresFunc(ctx, cfg.DatabaseURL)
	initRedisFunc(ctx, cfg.RedisURL)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Repositories (tolerate a nil pool: persistence is then skipped)
	var analysisStore analysis.Store
	var marketRepo service.MarketRepository
	var convStore advisor.ConversationStore
	if db.Pool != nil {
		analysisStore = analysis.NewRepository(db.Pool, tracer)
		marketRepo = repository.NewMarketRepository(db.Pool, tracer)
		convStore = repository.NewConversationRepository(db.Pool, tracer)
	}

	// Providers
	newsProvider := newNewsProviderFunc(cfg, tracer)
	marketProvider := newMarketProviderFunc(cfg, tracer)

	// Core analysis pipeline
	engine := analysis.NewEngine(analysis.DefaultLexicon(), analysis.DefaultAliases())
	analysisSvc := analysis.NewService(tracer, engine, newsProvider, marketProvider, analysisStore, cache.Client, analysis.ServiceConfig{
		Symbol:       cfg.MarketSymbol,
		LookbackDays: cfg.LookbackDays,
	})
	analysisWrapper := service.NewAnalysisService(tracer, analysisSvc)

	marketSvc := service.NewMarketService(tracer, marketProvider, marketRepo, cache.Client, cfg.MarketSymbol)

	// Background jobs
	analysisJob := job.NewAnalysisJob(tracer, analysisWrapper, time.Duration(cfg.AnalysisPollSecs)*time.Second)
	startAnalysisJobFunc(analysisJob, ctx)
	marketPoller := job.NewMarketPoller(tracer, marketSvc, cfg.MarketPollSecs, cfg.LookbackDays)
	startMarketPollerFunc(marketPoller, ctx)

	// Advisor and Telegram bot
	var advisorSvc *advisor.AdvisorService
	if cfg.OpenAIAPIKey != "" && convStore != nil {
		llm := advisor.NewOpenAIClient(cfg.OpenAIAPIKey)
		advisorSvc = advisor.NewAdvisorService(tracer, llm, analysisWrapper, marketSvc, convStore, cfg.OpenAIModel, cfg.AdvisorMaxHistory)
	}
	startTelegramBotFunc(cfg.TelegramBotToken, analysisWrapper, advisorSvc)

	// Handlers and routes
	h := handler.New(tracer, analysisWrapper, analysisWrapper, marketSvc)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("market-mood"))
	r.Use(cors.Default())
	r.Use(handler.APIKeyAuth(cfg.APIKey))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
