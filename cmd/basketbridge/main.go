package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"basket-bridge/cmd/basketbridge/config"
	"basket-bridge/internal/basketbridge"
	"basket-bridge/internal/basketbridge/data/database"
	"basket-bridge/internal/basketbridge/data/dbrepository"
	"basket-bridge/internal/basketbridge/feedmonitor"
	"basket-bridge/internal/basketbridge/ordersfeed"
	"basket-bridge/internal/basketbridge/retail"
	"basket-bridge/internal/basketbridge/service"
	"basket-bridge/internal/basketbridge/settings"
	"basket-bridge/pkg/jwtfactory"
	"basket-bridge/pkg/logging"
	"basket-bridge/pkg/pgxstorage"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewZapLogger(zapcore.DebugLevel)
	if err != nil {
		log.Fatal(err)
	}

	dbFactory := database.NewPgxDatabaseFactory(
		database.Config{
			ConnectionString: cfg.DB.ConnectionString,
		},
	)
	storage, err := pgxstorage.New(dbFactory)
	if err != nil {
		log.Fatal(err)
	}
	repository := dbrepository.New(storage, logger)
	transactionManager := pgxstorage.NewTransactionsManager(storage)

	tokenAuth := jwtauth.New(cfg.JWTConfig.Algorithm, []byte(cfg.JWTConfig.Secret), nil)
	tokenFactory := jwtfactory.New(tokenAuth, cfg.JWTConfig.ExpirationTime)

	tokenCache := retail.NewTokenCache()
	tokenManager := retail.NewTokenManager(tokenCache, logger)
	settingsStore := settings.New(cfg.Retail, tokenCache)
	submitter := retail.NewSubmitter(tokenManager, logger)

	authorizationService := service.NewAuthorization(repository, transactionManager, tokenFactory)
	ordersService := service.NewOrders(transactionManager, repository)
	handoffService := service.NewHandoff(repository, submitter, settingsStore, logger)

	server := basketbridge.NewServer(
		cfg.Server,
		tokenAuth,
		basketbridge.Services{
			Registration:  authorizationService,
			Authorization: authorizationService,
			Orders:        ordersService,
			Handoff:       handoffService,
			Settings:      settingsStore,
		},
		logger,
	)

	var monitor *feedmonitor.FeedMonitor
	if cfg.Feed.FeedURL != "" {
		feedClient := ordersfeed.NewOrdersFeed(cfg.Feed, logger)
		monitor = feedmonitor.NewFeedMonitor(cfg.Monitor, feedClient, ordersService, logger)
	}

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGABRT,
	)
	defer cancelCtx()

	if err := run(rootCtx, cfg, server, monitor, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
	} else {
		logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	}
}

func run(
	rootCtx context.Context,
	cfg *config.Config,
	server *basketbridge.Server,
	monitor *feedmonitor.FeedMonitor,
	logger *logging.ZapLogger,
) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if monitor != nil {
		g.Go(func() error {
			monitor.Run()
			return nil
		})

		g.Go(func() error {
			defer logger.InfoCtx(ctx, "Shutting down feed monitor")
			<-ctx.Done()
			monitor.Stop()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occured: %w", err)
	}

	return nil
}
