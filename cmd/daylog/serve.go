// ABOUTME: CLI command for the HTTP JSON API.
// ABOUTME: Serves the gin router until interrupted, then shuts down gracefully.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/harperreed/daylog/internal/api"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP JSON API",
	Long: `Serve the daylog HTTP JSON API.

ROUTES:

  GET    /healthz
  GET    /api/records?month=YYYY-MM&type=TYPE
  POST   /api/records                 {"type","value","date","minutes"}
  GET    /api/records/:id
  PUT    /api/records/:id             {"date","value","unit"}
  DELETE /api/records/:id
  GET    /api/days/:date              YYYY-MM-DD or "today"
  GET    /api/reports/:month          YYYY-MM or "current"
  GET    /api/reports/:month/csv
  POST   /api/import                  CSV body, or a JSON snapshot

The address defaults to 127.0.0.1:8080 (config "listen", DAYLOG_LISTEN).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.GetListen()
		if serveListen != "" {
			addr = serveListen
		}

		gin.SetMode(gin.ReleaseMode)
		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewRouter(api.NewAPI(store, logger)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()
		color.Green("✓ Listening on http://%s", addr)

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
