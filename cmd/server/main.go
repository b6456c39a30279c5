// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/textlens/TextLensHub/internal/api"
	"github.com/textlens/TextLensHub/internal/app"
	"github.com/textlens/TextLensHub/internal/config"
	"github.com/textlens/TextLensHub/internal/utils"
)

func main() {
	log.Println("starting TextLensHub server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	log.Printf("configuration loaded, port: %s", cfg.Port)

	logFile := filepath.Join(cfg.LogDir, fmt.Sprintf("server_%s.log", time.Now().Format("2006-01-02")))
	if err := utils.InitLogger(logFile); err != nil {
		log.Printf("warning: failed to initialize log file: %v", err)
	}
	if cfg.DebugMode {
		utils.GetLogger().SetLogLevel(utils.DEBUG)
	}

	if err := app.InitServices(cfg); err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}

	if err := app.HealthCheck(); err != nil {
		log.Fatalf("service health check failed: %v", err)
	}

	router, err := api.SetupRouter(cfg)
	if err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}

	log.Printf("dashboard available at http://localhost:%s", cfg.Port)
	log.Printf("analysis service: %s", cfg.AnalysisBaseURL)

	runWithGracefulShutdown(router, cfg.Port)
}

func runWithGracefulShutdown(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced server shutdown: %v", err)
	}

	log.Println("server stopped")
}
