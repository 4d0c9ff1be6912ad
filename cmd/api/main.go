package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weddingbazaar/wedding-bazaar-backend/api/routes"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/auth"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/bookings"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/catalog"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/categories"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/notifications"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/offdays"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/payments"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/subscriptions"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/users"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/vendors"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/wallet"
	squarewebhook "github.com/weddingbazaar/wedding-bazaar-backend/internal/webhooks/square"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/auth/session"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/config"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/logger"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/metrics"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/migrate"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/redis"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/square"

	"github.com/prometheus/client_golang/prometheus"
)

const webhookGuardTTL = 48 * time.Hour

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	squareClient, err := square.NewClient(context.Background(), cfg.Square, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap square client", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()

	notificationsSvc, err := notifications.NewService(notifications.NewRepository(gormDB))
	exitOn(logg, "notifications service", err)

	subscriptionsSvc, err := subscriptions.NewService(subscriptions.NewRepository(gormDB), dbClient, squareClient)
	exitOn(logg, "subscriptions service", err)

	catalogSvc, err := catalog.NewService(catalog.NewRepository(gormDB), subscriptionsSvc)
	exitOn(logg, "catalog service", err)

	bookingsSvc, err := bookings.NewService(bookings.NewRepository(gormDB), dbClient, catalogSvc, notificationsSvc)
	exitOn(logg, "bookings service", err)

	walletSvc, err := wallet.NewService(wallet.NewRepository(gormDB))
	exitOn(logg, "wallet service", err)

	paymentsSvc, err := payments.NewService(payments.NewRepository(gormDB), dbClient, bookingsSvc, squareClient, walletSvc, notificationsSvc)
	exitOn(logg, "payments service", err)

	vendorsSvc, err := vendors.NewService(vendors.NewRepository(gormDB), dbClient)
	exitOn(logg, "vendors service", err)

	categoriesSvc, err := categories.NewService(categories.NewRepository(gormDB))
	exitOn(logg, "categories service", err)

	offdaysSvc, err := offdays.NewService(offdays.NewRepository(gormDB), dbClient)
	exitOn(logg, "off-days service", err)

	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(gormDB),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	exitOn(logg, "auth service", err)

	registerSvc, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		Vendors:        vendorsSvc,
		PasswordConfig: cfg.Password,
	})
	exitOn(logg, "register service", err)

	webhookSvc, err := squarewebhook.NewService(squarewebhook.ServiceParams{
		Payments:      paymentsSvc,
		Subscriptions: subscriptionsSvc,
	})
	exitOn(logg, "webhook service", err)

	webhookGuard, err := squarewebhook.NewIdempotencyGuard(redisClient, webhookGuardTTL, "square-webhook")
	exitOn(logg, "webhook guard", err)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.RouterParams{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		SessionChecker: sessionManager,
		HTTPMetrics:    httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),

		AuthService:     authSvc,
		RegisterService: registerSvc,
		Bookings:        bookingsSvc,
		Payments:        paymentsSvc,
		Vendors:         vendorsSvc,
		Catalog:         catalogSvc,
		Categories:      categoriesSvc,
		OffDays:         offdaysSvc,
		Notifications:   notificationsSvc,
		Subscriptions:   subscriptionsSvc,
		Wallet:          walletSvc,

		SquareClient: squareClient,
		WebhookSvc:   webhookSvc,
		WebhookGuard: webhookGuard,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func exitOn(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+resource, err)
	os.Exit(1)
}
