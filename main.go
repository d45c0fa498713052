package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"event_ticketing/config"
	"event_ticketing/database"
	"event_ticketing/handler"
	"event_ticketing/helper"
	"event_ticketing/notification"
	"event_ticketing/repository"
	"event_ticketing/router"
	"event_ticketing/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)
	slog.SetDefault(log)

	if cfg.Auth.JWTSecret == "" {
		log.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	if cfg.Payment.TicketSecret == "" {
		log.Warn("TICKET_SIGNING_SECRET not set, ticket materialization and check-in will fail")
	}

	db, err := database.ConnectDB(cfg.Database, log)
	if err != nil {
		log.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		log.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	database.SeedData(db, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, log)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.URL})
	defer redisClient.Close()

	orderRepo := repository.NewOrderRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	ticketTypeRepo := repository.NewTicketTypeRepository(db)
	eventRepo := repository.NewEventRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	webhookRepo := repository.NewWebhookEventRepository(db)

	publisher := notification.NewRedisPublisher(redisClient)

	var notifier service.TicketNotifier = notification.NewLogNotifier(log)
	if cfg.Mail.Host != "" {
		mailer, err := notification.NewMailer(cfg.Mail, log)
		if err != nil {
			log.Error("failed to init mailer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		notifier = mailer
	}

	var uploader service.CoverUploader
	if cfg.Cloudinary.CloudName != "" {
		cld, err := helper.NewCloudinaryUploader(cfg.Cloudinary)
		if err != nil {
			log.Warn("cover uploads disabled", slog.String("error", err.Error()))
		} else {
			uploader = cld
		}
	}

	signer := service.NewTicketSigner(cfg.Payment.TicketSecret)
	secrets := service.NewSecretResolver(redisClient, settingRepo, cfg.Payment.SecretKey, cfg.Redis.CacheTTL, log)
	completer := service.NewOrderCompleter(orderRepo, publisher, log)
	materializer := service.NewTicketMaterializer(orderRepo, ticketRepo, ticketTypeRepo, accountRepo, notifier, publisher, signer, log)

	h := handler.New(handler.Deps{
		Auth:         service.NewAuthService(accountRepo, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, log),
		Catalog:      service.NewCatalogService(eventRepo, ticketTypeRepo, uploader, log),
		Orders:       service.NewOrderService(eventRepo, ticketTypeRepo, orderRepo, log),
		Materializer: materializer,
		Reconciler:   service.NewPaymentReconciler(secrets, orderRepo, completer, webhookRepo, publisher, log),
		Checkin:      service.NewCheckinService(ticketRepo, eventRepo, signer, log),
		Secrets:      secrets,
		OrderFeed:    publisher,
		HealthChecks: map[string]handler.HealthCheck{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
		SignatureHeader: cfg.Payment.SignatureHeader,
		SecureCookies:   cfg.IsProduction(),
		Log:             log,
	})

	scheduler, err := helper.StartScheduler(cfg.Jobs, service.NewSweeper(orderRepo, materializer, log), log)
	if err != nil {
		log.Error("failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	router.SetupRoutes(app, h, cfg.Auth.JWTSecret)

	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			log.Error("server stopped", slog.String("error", err.Error()))
		}
	}()
	log.Info("server started", slog.String("addr", cfg.Server.Addr), slog.String("env", cfg.Environment))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := scheduler.Stop(); err != nil {
		log.Warn("scheduler shutdown", slog.String("error", err.Error()))
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warn("server shutdown", slog.String("error", err.Error()))
	}
}

func newLogger(cfg *config.AppConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
