package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuzvak/rocketshoes-cart/internal/app"
	"github.com/yuzvak/rocketshoes-cart/internal/config"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/http/server"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		logger.NewLogger().Fatal("Failed to load configuration", "error", configErr, "path", *configPath)
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Console: cfg.Log.Console})
	log.Info("Starting RocketShoes cart service", "storage", cfg.Storage.Driver, "catalog", cfg.Catalog.BaseURL)

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	cartApp, err := app.Build(serverCtx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialise cart", "error", err)
	}
	defer cartApp.Close()

	httpServer := server.NewServer(cfg, cartApp.Store, cartApp.HealthChecks(), cartApp.Clock, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Info("Shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		serverStopCtx()
	}()

	log.Info("Server starting", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}
