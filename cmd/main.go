package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostelcare/backend/internal/announcement"
	"hostelcare/backend/internal/api/handler"
	"hostelcare/backend/internal/complaint"
	"hostelcare/backend/internal/config"
	"hostelcare/backend/internal/hub"
	"hostelcare/backend/internal/localization"
	"hostelcare/backend/internal/notification"
	"hostelcare/backend/internal/roster"
	"hostelcare/backend/internal/storage"
	"hostelcare/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(ctx context.Context, cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Println("Database and Redis connections established.")
	return db, rdb
}

// setupTelegram returns nil when no bot token is configured or the bot
// cannot be authorized; the service then runs without Telegram.
func setupTelegram(cfg *config.Config) *tgbotapi.BotAPI {
	if cfg.TelegramBotToken == "" {
		log.Println("INFO: TELEGRAM_BOT_TOKEN not set, Telegram delivery disabled")
		return nil
	}
	bot, err := telegram.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Printf("WARN: Telegram bot unavailable, continuing without it: %v", err)
		return nil
	}
	return bot
}

func main() {
	log.Println("Starting HostelCare Backend...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, rdb := setupDependencies(ctx, cfg)
	s := storage.NewStorageService(db, rdb)
	if err := s.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	localizer, err := localization.NewDefaultLocalizer()
	if err != nil {
		log.Fatalf("Failed to load message catalogs: %v", err)
	}
	messages := &notification.Catalog{Localizer: localizer, Lang: cfg.DefaultLanguage}

	// Every notification lands in the inbox; linked chats also get it on Telegram.
	sinks := notification.MultiSink{&notification.StoreSink{Store: s}}
	bot := setupTelegram(cfg)
	if bot != nil {
		sinks = append(sinks, &notification.TelegramSink{Bot: bot, Users: s})
	}
	dispatcher := notification.NewDispatcher(sinks, cfg.NotifyTimeout, cfg.NotifyConcurrency)

	complaints := complaint.NewService(s, s, s, dispatcher, messages)
	announcements := announcement.NewService(s, s, dispatcher, messages)
	rosterSvc := roster.NewService(s, s)

	if bot != nil {
		commands := &telegram.CommandHandler{Bot: bot, Auth: rosterSvc, Store: s, Localizer: localizer, Lang: cfg.DefaultLanguage}
		go telegram.NewBotService(bot, commands).Run(ctx)
	}

	pushHub := hub.NewManagerService(s)
	go pushHub.Run(ctx)

	r := gin.Default()
	h := handler.NewHandler(complaints, s, announcements, rosterSvc, handler.NewAuth(cfg.JWTSecret, cfg.JWTTTL), pushHub)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("INFO: Listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("INFO: Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: HTTP shutdown: %v", err)
	}
	dispatcher.Wait()
	if err := rdb.Close(); err != nil {
		log.Printf("WARN: Redis close: %v", err)
	}
	log.Println("INFO: Stopped.")
}
