package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "github.com/saborshop/storefront/docs"
	"github.com/saborshop/storefront/internal/api"
	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/service"
	mongodb "github.com/saborshop/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/saborshop/storefront/internal/infrastructure/db/redis"
	"github.com/saborshop/storefront/internal/infrastructure/http/handlers"
	"github.com/saborshop/storefront/internal/infrastructure/mailer"
	"github.com/saborshop/storefront/internal/infrastructure/mealdb"
	"github.com/saborshop/storefront/internal/infrastructure/queue"
	"github.com/saborshop/storefront/internal/pkg/config"
	"github.com/saborshop/storefront/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Pretty:    !cfg.IsProduction(),
		Component: "api",
	})
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	httpClient := &http.Client{Timeout: cfg.MealDB.Timeout}
	catalog := service.NewCatalogService(mealdb.New(cfg.MealDB.BaseURL, httpClient), log)

	orders := mongodb.NewOrderRepository(db)
	emailjs := mailer.NewEmailJS(mailer.Config{
		Endpoint:   cfg.EmailJS.Endpoint,
		PublicKey:  cfg.EmailJS.PublicKey,
		PrivateKey: cfg.EmailJS.PrivateKey,
	}, nil)
	dispatcher := queue.NewDispatcher(cfg.EmailJS.Workers, emailjs, orders, queue.Template{
		ServiceID:  cfg.EmailJS.ServiceID,
		TemplateID: cfg.EmailJS.TemplateID,
	}, log)
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	sessions := service.NewRegistry(catalog, redisdb.NewKVStore(rdb), domain.Classify(cfg.DefaultWidth), log)
	go sessions.RunSweeper(workerCtx, cfg.SessionSweep, cfg.SessionIdle)

	e := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(mongodb.NewAccountRepository(db), redisdb.NewCaptchaStore(rdb), cfg.JWTSecret, cfg.TokenTTL),
		Catalog:   catalog,
		Sessions:  sessions,
		Checkout:  service.NewCheckoutService(orders, dispatcher, emailjs, log),
		JWTSecret: cfg.JWTSecret,
		Checks: map[string]handlers.Check{
			"mongo": handlers.MongoCheck(db),
			"redis": handlers.RedisCheck(rdb),
		},
		Log: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Bool("email", emailjs.Enabled()).Msg("storefront api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		cancelWorkers()
		dispatcher.Wait()
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	cancelWorkers()
	dispatcher.Wait()
	return nil
}
