package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/healthline-ai/hospital-assistant/internal/agent"
	"github.com/healthline-ai/hospital-assistant/internal/api/router"
	"github.com/healthline-ai/hospital-assistant/internal/booking"
	appconfig "github.com/healthline-ai/hospital-assistant/internal/config"
	"github.com/healthline-ai/hospital-assistant/internal/notify"
	"github.com/healthline-ai/hospital-assistant/internal/observability/metrics"
	"github.com/healthline-ai/hospital-assistant/internal/reference"
	"github.com/healthline-ai/hospital-assistant/internal/storage"
	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

func main() {
	// Best effort; the usual deployment sets real environment variables.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting hospital-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.GeminiAPIKey == "" {
		logger.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	bookingMetrics := metrics.NewBookingMetrics(registry)
	chatMetrics := metrics.NewChatMetrics(registry)

	store := storage.NewFileStore(cfg.ScheduleFile, cfg.AbsencesFile, cfg.BookingsFile, logger)
	smsSender := notify.NewLogSMSSender(logger)
	bookings := booking.NewService(store, smsSender, logger,
		booking.WithHorizon(cfg.HorizonDays),
		booking.WithDailyCapacity(cfg.DailyCapacity),
		booking.WithMetrics(bookingMetrics),
	)

	ctx := context.Background()
	llm, err := agent.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("failed to initialize Gemini client", "error", err)
		os.Exit(1)
	}
	defer llm.Close()

	var history agent.HistoryStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		history = agent.NewRedisHistoryStore(redisClient, cfg.SessionTTL)
		logger.Info("session history backed by Redis", "addr", cfg.RedisAddr)
	} else {
		history = agent.NewMemoryHistoryStore()
		logger.Info("session history kept in memory")
	}

	ref := reference.NewStore(cfg.HospitalFile, logger)
	toolset := agent.NewToolset(bookings, store, ref, logger, chatMetrics)
	chat := agent.NewService(llm, toolset, history, logger,
		agent.WithMaxToolRounds(cfg.AgentMaxTurns),
		agent.WithTemperature(float32(cfg.AgentTemperature)),
		agent.WithChatMetrics(chatMetrics),
	)

	r := router.New(&router.Config{
		Logger:         logger,
		ChatHandler:    agent.NewHandler(chat, logger),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
