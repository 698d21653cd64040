package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"symptomcheck/infrastructure/config"
	"symptomcheck/infrastructure/di"
	"symptomcheck/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const devUserID = "dev-user"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Local runs without a secret get a throwaway one and a printed token
	var devToken string
	if cfg.IsDevelopment() && cfg.AuthProvider == config.AuthProviderJWT && cfg.JWTSecret == "" {
		cfg.JWTSecret = uuid.NewString()
		devToken, err = auth.NewJWTGenerator(cfg.JWTSecret, cfg.JWTIssuer, []string{cfg.JWTAudience}, 24*time.Hour).
			GenerateToken(devUserID, devUserID+"@localhost")
		if err != nil {
			log.Fatalf("Failed to issue development token: %v", err)
		}
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()
	logger := container.Logger

	if devToken != "" {
		logger.Warn("JWT_SECRET not set, using a generated development secret",
			zap.String("userID", devUserID),
			zap.String("token", devToken),
		)
	}

	if cfg.ConfigFile != "" {
		watcher, err := config.NewWatcher(cfg.ConfigFile, logger)
		if err != nil {
			logger.Warn("Config file watcher disabled", zap.String("path", cfg.ConfigFile), zap.Error(err))
		} else {
			watcher.OnChange(container.ApplyFileConfig)
			watcher.Start()
			defer watcher.Stop()
		}
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      container.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("historyBackend", cfg.HistoryBackend),
			zap.String("authProvider", cfg.AuthProvider),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	_ = logger.Sync()
	log.Println("Server stopped")
}
