package basketbridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"basket-bridge/internal/basketbridge/handlers"
	"basket-bridge/internal/basketbridge/middleware"
	"basket-bridge/pkg/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
}

type Services struct {
	Registration  handlers.RegistrationService
	Authorization handlers.AuthorizationService
	Orders        OrdersService
	Handoff       handlers.BasketHandoffService
	Settings      handlers.SettingsStore
}

type OrdersService interface {
	handlers.OrdersGettingService
	handlers.OrderGettingService
	handlers.FeedIngestService
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func NewServer(
	cfg Config,
	tokenAuth *jwtauth.JWTAuth,
	services Services,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: createMux(tokenAuth, services, logger),
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	tokenAuth *jwtauth.JWTAuth,
	services Services,
	logger *logging.ZapLogger,
) *chi.Mux {
	registrationHandler := handlers.NewRegisterHandler(services.Registration, logger)
	authorizationHandler := handlers.NewAuthorizationHandler(services.Authorization, logger)
	ordersGettingHandler := handlers.NewOrdersGettingHandler(services.Orders, logger)
	orderGettingHandler := handlers.NewOrderGettingHandler(services.Orders, logger)
	basketHandoffHandler := handlers.NewBasketHandoffHandler(services.Handoff, logger)
	feedIngestHandler := handlers.NewFeedIngestHandler(services.Orders, logger)
	configUpdateHandler := handlers.NewConfigUpdateHandler(services.Settings, logger)

	loggerContext := middleware.NewLoggerContext()
	panicRecover := middleware.NewPanicRecover(logger)

	router := chi.NewRouter()
	router.Use(loggerContext.CreateHandler)
	router.Use(panicRecover.CreateHandler)

	router.Route("/api/operator", func(router chi.Router) {
		router.Post("/register", registrationHandler.ServeHTTP)
		router.Post("/login", authorizationHandler.ServeHTTP)
	})

	router.Group(func(router chi.Router) {
		router.Use(jwtauth.Verifier(tokenAuth))
		router.Use(jwtauth.Authenticator(tokenAuth))

		router.Get("/api/orders", ordersGettingHandler.ServeHTTP)
		router.Get("/api/orders/{orderID}", orderGettingHandler.ServeHTTP)
		router.Post("/api/orders/{orderID}/handoff", basketHandoffHandler.ServeHTTP)
		router.Post("/api/feed", feedIngestHandler.ServeHTTP)
		router.Put("/api/config", configUpdateHandler.ServeHTTP)
	})

	return router
}
