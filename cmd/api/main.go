package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Amanshah2829/smart-society-sub000/api/routes"
	"github.com/Amanshah2829/smart-society-sub000/internal/analytics"
	"github.com/Amanshah2829/smart-society-sub000/internal/announcements"
	"github.com/Amanshah2829/smart-society-sub000/internal/auth"
	"github.com/Amanshah2829/smart-society-sub000/internal/bills"
	"github.com/Amanshah2829/smart-society-sub000/internal/chat"
	"github.com/Amanshah2829/smart-society-sub000/internal/complaints"
	"github.com/Amanshah2829/smart-society-sub000/internal/feed"
	"github.com/Amanshah2829/smart-society-sub000/internal/ledger"
	"github.com/Amanshah2829/smart-society-sub000/internal/notifications"
	"github.com/Amanshah2829/smart-society-sub000/internal/sites"
	"github.com/Amanshah2829/smart-society-sub000/internal/users"
	"github.com/Amanshah2829/smart-society-sub000/internal/visitors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/auth/session"
	"github.com/Amanshah2829/smart-society-sub000/pkg/config"
	"github.com/Amanshah2829/smart-society-sub000/pkg/db"
	"github.com/Amanshah2829/smart-society-sub000/pkg/logger"
	"github.com/Amanshah2829/smart-society-sub000/pkg/metrics"
	"github.com/Amanshah2829/smart-society-sub000/pkg/migrate"
	"github.com/Amanshah2829/smart-society-sub000/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	sitesRepo := sites.NewRepository(gormDB)
	billsRepo := bills.NewRepository(gormDB)
	complaintsRepo := complaints.NewRepository(gormDB)
	visitorsRepo := visitors.NewRepository(gormDB)
	announcementsRepo := announcements.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	feedRepo := feed.NewRepository(gormDB)
	chatRepo := chat.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)
	analyticsRepo := analytics.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		fatal(logg, "failed to create auth service", err)
	}

	usersService, err := users.NewService(users.ServiceParams{
		Repo:           usersRepo,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		fatal(logg, "failed to create users service", err)
	}

	sitesService, err := sites.NewService(sites.ServiceParams{
		Repo:           sitesRepo,
		UserRepo:       usersRepo,
		Tx:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		fatal(logg, "failed to create sites service", err)
	}

	billsService, err := bills.NewService(bills.ServiceParams{
		Repo:     billsRepo,
		Sites:    sitesRepo,
		Users:    usersRepo,
		Notifier: notificationsRepo,
		Tx:       dbClient,
		Billing:  cfg.Billing,
		Logger:   logg,
	})
	if err != nil {
		fatal(logg, "failed to create bills service", err)
	}

	complaintsService, err := complaints.NewService(complaints.ServiceParams{
		Repo:     complaintsRepo,
		Notifier: notificationsRepo,
		Tx:       dbClient,
	})
	if err != nil {
		fatal(logg, "failed to create complaints service", err)
	}

	visitorsService, err := visitors.NewService(visitors.ServiceParams{
		Repo:      visitorsRepo,
		Residents: usersRepo,
		Notifier:  notificationsRepo,
		Tx:        dbClient,
	})
	if err != nil {
		fatal(logg, "failed to create visitors service", err)
	}

	announcementsService, err := announcements.NewService(announcements.ServiceParams{
		Repo:     announcementsRepo,
		Users:    usersRepo,
		Notifier: notificationsRepo,
		Tx:       dbClient,
	})
	if err != nil {
		fatal(logg, "failed to create announcements service", err)
	}

	ledgerService, err := ledger.NewService(ledger.ServiceParams{Repo: ledgerRepo})
	if err != nil {
		fatal(logg, "failed to create ledger service", err)
	}

	feedService, err := feed.NewService(feed.ServiceParams{Repo: feedRepo, Tx: dbClient})
	if err != nil {
		fatal(logg, "failed to create feed service", err)
	}

	chatService, err := chat.NewService(chat.ServiceParams{Repo: chatRepo})
	if err != nil {
		fatal(logg, "failed to create chat service", err)
	}

	notificationsService, err := notifications.NewService(notifications.ServiceParams{Repo: notificationsRepo})
	if err != nil {
		fatal(logg, "failed to create notifications service", err)
	}

	analyticsService, err := analytics.NewService(analytics.ServiceParams{Repo: analyticsRepo})
	if err != nil {
		fatal(logg, "failed to create analytics service", err)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	router := routes.NewRouter(cfg, logg, redisClient, sessionManager, httpMetrics, routes.Services{
		Auth:          authService,
		Users:         usersService,
		Sites:         sitesService,
		Bills:         billsService,
		Complaints:    complaintsService,
		Visitors:      visitorsService,
		Announcements: announcementsService,
		Ledger:        ledgerService,
		Feed:          feedService,
		Chat:          chatService,
		Notifications: notificationsService,
		Analytics:     analyticsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server shut down gracefully")
}

func fatal(logg *logger.Logger, msg string, err error) {
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
