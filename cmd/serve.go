package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/subcast/subcast/api"
	"github.com/subcast/subcast/api/types"
	"github.com/subcast/subcast/pkg/config"
)

var (
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the subscription manager API server",
	Long: `Start the HTTP server exposing the local subscription store, and
refresh all subscriptions on the configured schedule.

Example:
  subcast serve
  subcast serve --port 9090`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	service, stopDirectory := buildService(db, cfg)
	defer stopDirectory()

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort), &types.Dependencies{
		DB:            db,
		Subscriptions: service,
	}, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	// Periodic refresh of all subscriptions
	scheduler := cron.New()
	if cfg.Sync.Schedule != "" {
		_, err := scheduler.AddFunc(cfg.Sync.Schedule, func() {
			if err := service.RefreshAll(context.Background()); err != nil {
				log.Printf("[WARN] Scheduled refresh failed: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid sync schedule %q: %w", cfg.Sync.Schedule, err)
		}
		scheduler.Start()
		log.Printf("[INFO] Refreshing subscriptions on schedule %q", cfg.Sync.Schedule)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Listening on %s:%d", serverHost, serverPort)

	select {
	case <-stop:
		log.Printf("[INFO] Shutting down")
	case err := <-serverErr:
		log.Printf("[ERROR] %v", err)
	}

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
