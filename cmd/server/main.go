package main

import (
	"log"
	"net/http"

	"pagsmile-checkout/internal/config"
	"pagsmile-checkout/internal/db"
	"pagsmile-checkout/internal/httpapi"
	"pagsmile-checkout/internal/logger"
	"pagsmile-checkout/internal/middleware"
	"pagsmile-checkout/internal/order"
	"pagsmile-checkout/internal/pagsmile"
	"pagsmile-checkout/internal/transaction"
	"pagsmile-checkout/internal/webhook"
	"pagsmile-checkout/internal/webhook/ledger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	// The dispatch ledger falls back to process memory when no database
	// is configured, which is enough for a single instance.
	var led ledger.Ledger = ledger.NewMemory()
	if cfg.DBURL != "" {
		database, err := db.Open(cfg.DBURL)
		if err != nil {
			logger.L().Fatal("failed to connect db", zap.Error(err))
		}
		defer database.Close()
		led = ledger.NewPostgres(database)
	} else {
		logger.L().Warn("DB_URL not set, webhook dedup is in-memory only")
	}

	client := pagsmile.NewClient(cfg.AppID, cfg.SecurityKey)
	orderSvc := order.NewService(client, cfg)
	txSvc := transaction.NewService(client, cfg)

	webhooks := webhook.NewHandler(nil, led)
	verifier := webhook.NewVerifier(cfg.SecurityKey)

	api := httpapi.NewHandler(cfg, orderSvc, txSvc, webhooks, verifier)

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	api.Routes(r)

	logger.L().Info("checkout server running",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.Environment),
	)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, r))
}
