package main

import (
	"database/sql"
	"net/http"

	"tableorder-be/internal/config"
	"tableorder-be/internal/db"
	"tableorder-be/internal/logger"
	"tableorder-be/internal/menu"
	"tableorder-be/internal/metrics"
	"tableorder-be/internal/middleware"
	"tableorder-be/internal/order"
	"tableorder-be/internal/transport"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Indirections for testing: tests swap these out so run() can be
// exercised without a real database or a listening socket.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	logger.L().Info("server listening",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(cfg *config.Config, database *sql.DB) *mux.Router {
	menuRepo := menu.NewRepository(database)
	menuSvc := menu.NewService(menuRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	return setupRouter(menu.NewHandler(menuSvc), order.NewHandler(orderSvc))
}

func setupRouter(menuHandler *menu.Handler, orderHandler *order.Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(logger.RequestIDMiddleware)
	router.Use(logger.LoggingMiddleware)
	router.Use(metrics.CountRequests)

	router.HandleFunc("/healthz", healthz).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.RateLimitMiddleware)
	menuHandler.Register(api)
	orderHandler.Register(api)

	return router
}

func healthz(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"metrics": metrics.Snapshot(),
	})
}
