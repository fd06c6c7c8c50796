package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/skirmishlabs/combat-api/internal/handlers/httpapi"
	battleorch "github.com/skirmishlabs/combat-api/internal/orchestrators/battle"
	"github.com/skirmishlabs/combat-api/internal/pkg/clock"
	"github.com/skirmishlabs/combat-api/internal/pkg/idgen"
	redisclient "github.com/skirmishlabs/combat-api/internal/redis"
	"github.com/skirmishlabs/combat-api/internal/repositories/battles"
	"github.com/skirmishlabs/combat-api/internal/rules"
)

var (
	httpPort  int
	redisAddr string
	dataDir   string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the combat API HTTP server with the rules data loaded from the data directory.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "port", 8080, "HTTP server port")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for battle records (empty: in-memory)")
	serverCmd.Flags().StringVar(&dataDir, "data-dir", "data", "directory holding the rules YAML files")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	registry, err := rules.Load(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load rules data from %s: %w", dataDir, err)
	}

	clk := clock.New()

	var repo battles.Repository
	if redisAddr != "" {
		client, err := redisclient.NewClient(redisAddr, nil)
		if err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
		}
		defer func() {
			if err := client.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()

		repo, err = battles.NewRedisRepository(&battles.Config{Client: client, Clock: clk})
		if err != nil {
			return fmt.Errorf("failed to create battle repository: %w", err)
		}
		slog.Info("using redis battle repository", "addr", redisAddr)
	} else {
		repo = battles.NewInMemoryRepository(clk)
		slog.Info("using in-memory battle repository")
	}

	service, err := battleorch.NewOrchestrator(&battleorch.Config{
		BattleRepo:  repo,
		Rules:       registry,
		IDGenerator: idgen.NewUUID("btl"),
		Clock:       clk,
	})
	if err != nil {
		return fmt.Errorf("failed to create battle orchestrator: %w", err)
	}

	handler, err := httpapi.NewHandler(&httpapi.Config{BattleService: service})
	if err != nil {
		return fmt.Errorf("failed to create HTTP handler: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("combat API server starting", "port", httpPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	slog.Info("server stopped")
	return nil
}
