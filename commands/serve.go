package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"goginie/events"
	"goginie/handlers"
	"goginie/orchestrator"
)

const shutdownTimeout = 10 * time.Second

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GoGinie HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, orchestrator.WithCompletion(func(s orchestrator.Summary) {
			log.Printf("📨 Trip %s summary ready: %d booked, %d failed", s.ConfirmationCode, len(s.Booked), len(s.Failed))
		}))
		if err != nil {
			return err
		}
		defer a.Close()

		if err := events.LogNotifications(ctx, a.bus); err != nil {
			return err
		}

		if cfg.GinMode == "release" {
			gin.SetMode(gin.ReleaseMode)
		}
		r := gin.Default()

		// Trusted proxies (hosted deployments sit behind a proxy)
		r.SetTrustedProxies([]string{"0.0.0.0/0"})

		allowedOrigins := append([]string{"http://localhost:5173", "http://localhost:3000"}, cfg.FrontendURLs...)
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))

		server := &handlers.Server{
			Catalog:  a.catalog,
			Planner:  a.planner,
			Agent:    a.agent,
			Bookings: a.store,
			Bus:      a.bus,
			DB:       a.db,
		}
		server.Register(r.Group("/api"))

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: r,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("🚀 GoGinie API starting on port %s", cfg.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Println("⏳ Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Println("✅ Server exited")
		return nil
	},
}

func init() {
	ServeCmd.Flags().StringP("port", "p", "", "listen port (overrides PORT)")
}
