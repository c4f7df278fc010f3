// @title           Thinkboard API
// @version         1.0
// @description     Notes API with a Redis-backed sliding-window rate limit.
// @host            localhost:8080
// @BasePath        /api
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

	"github.com/Insane-9/Thinkboard-X/internal/app"
	"github.com/Insane-9/Thinkboard-X/internal/config"

	"go.uber.org/zap"

	_ "github.com/Insane-9/Thinkboard-X/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The zap logger needs the loaded env, so this one goes raw.
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.App.Env)
	defer logger.Sync()

	logger.Info("config loaded, connecting to DB and Redis",
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version))

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("app init", zap.Error(err))
	}
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if err := application.Close(ctx); err != nil {
		logger.Error("app close", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "prod" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
