package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcart "github.com/mddstore/backend/internal/application/cart"
	appcatalog "github.com/mddstore/backend/internal/application/catalog"
	appidentity "github.com/mddstore/backend/internal/application/identity"
	"github.com/mddstore/backend/internal/application/notification"
	"github.com/mddstore/backend/internal/application/ordering"
	apppayment "github.com/mddstore/backend/internal/application/payment"
	appreport "github.com/mddstore/backend/internal/application/report"
	"github.com/mddstore/backend/internal/infrastructure/auth"
	"github.com/mddstore/backend/internal/infrastructure/cache"
	"github.com/mddstore/backend/internal/infrastructure/config"
	"github.com/mddstore/backend/internal/infrastructure/email"
	"github.com/mddstore/backend/internal/infrastructure/logger"
	infrapayment "github.com/mddstore/backend/internal/infrastructure/payment"
	"github.com/mddstore/backend/internal/infrastructure/persistence"
	"github.com/mddstore/backend/internal/infrastructure/storage"
	"github.com/mddstore/backend/internal/interfaces/http/handler"
	"github.com/mddstore/backend/internal/interfaces/http/router"
)

func main() {
	configPath := flag.String("config", os.Getenv("MDD_CONFIG"), "path to a config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := persistence.NewPostgres(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := persistence.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// Repositories
	users := persistence.NewUserRepository(db)
	products := persistence.NewProductRepository(db)
	carts := persistence.NewCartRepository(db)
	orders := persistence.NewOrderRepository(db)
	reports := persistence.NewSalesReportRepository(db)

	// Webhook idempotency: Redis when reachable, in-process otherwise
	var idempotency apppayment.IdempotencyStore
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, falling back to in-memory webhook dedup",
			zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		idempotency = cache.NewMemoryIdempotencyStore()
	} else {
		idempotency = cache.NewRedisIdempotencyStore(redisClient)
	}

	gateway := infrapayment.NewRazorpayGateway(
		cfg.Payment.KeyID, cfg.Payment.KeySecret,
		cfg.Payment.WebhookSecret, cfg.Payment.BaseURL, log)

	imageStore, err := buildStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	notifier, err := buildNotifier(ctx, cfg, log)
	if err != nil {
		return err
	}

	pricingCfg, err := parsePricing(cfg.Pricing)
	if err != nil {
		return fmt.Errorf("parse pricing config: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)

	// Application services
	identitySvc := appidentity.NewService(users, auth.NewBcryptHasher(), jwtManager, log)
	catalogSvc := appcatalog.NewService(products, imageStore, log)
	cartSvc := appcart.NewService(carts, products, log)
	orderingSvc := ordering.NewService(orders, carts, products, users,
		ordering.NewSequencer(orders, log), ordering.NewPricer(pricingCfg),
		gateway, notifier, log)
	paymentSvc := apppayment.NewService(orders, products, users, gateway, idempotency, notifier, log)
	reportSvc := appreport.NewService(reports, log)

	engine := router.New(router.Handlers{
		Auth:    handler.NewAuthHandler(identitySvc, log),
		Product: handler.NewProductHandler(catalogSvc, log),
		Cart:    handler.NewCartHandler(cartSvc, log),
		Order:   handler.NewOrderHandler(orderingSvc, log),
		Payment: handler.NewPaymentHandler(paymentSvc, log),
		Admin:   handler.NewAdminHandler(orderingSvc, reportSvc, catalogSvc, log),
		System:  handler.NewSystemHandler(db),
	}, jwtManager, log, cfg.HTTP.AllowedOrigin)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("goodbye")
	return nil
}

func buildStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (appcatalog.Storage, error) {
	if cfg.Storage.Provider != "s3" {
		log.Info("using stub image storage", zap.String("provider", cfg.Storage.Provider))
		return storage.NewStubStorage(cfg.Storage.BaseURL), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return storage.NewS3Storage(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket, cfg.Storage.BaseURL, log), nil
}

func buildNotifier(ctx context.Context, cfg *config.Config, log *zap.Logger) (notification.Notifier, error) {
	switch cfg.Email.Provider {
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Email.Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		sender := email.NewSESSender(sesv2.NewFromConfig(awsCfg), cfg.Email.From)
		return notification.NewEmailNotifier(sender, log), nil
	case "log":
		return notification.NewEmailNotifier(email.NewLogSender(log), log), nil
	default:
		return notification.NoopNotifier{}, nil
	}
}

func parsePricing(cfg config.PricingConfig) (ordering.PricingConfig, error) {
	out := ordering.DefaultPricingConfig()

	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return out, fmt.Errorf("free_shipping_threshold %q: %w", cfg.FreeShippingThreshold, err)
	}
	cost, err := decimal.NewFromString(cfg.FlatShippingCost)
	if err != nil {
		return out, fmt.Errorf("flat_shipping_cost %q: %w", cfg.FlatShippingCost, err)
	}
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return out, fmt.Errorf("tax_rate %q: %w", cfg.TaxRate, err)
	}

	out.FreeShippingThreshold = threshold
	out.FlatShippingCost = cost
	out.TaxRate = rate
	return out, nil
}
