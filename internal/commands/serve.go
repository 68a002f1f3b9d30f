package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/server"
	"github.com/work-hours/tracker/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local status API",
	Long: `Serve a small read-only HTTP API on localhost so status bars and other
tools can display the running session.

  GET /session   the active session, or {"active": false}
  GET /healthz   liveness check`,
	Run: withTracker(runServe),
}

func init() {
	serveCmd.Flags().String("listen", "", "Bind address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) {
	addr := cfg.ListenAddr
	if flagAddr, _ := cmd.Flags().GetString("listen"); flagAddr != "" {
		addr = flagAddr
	}

	// Keep the state file's elapsed display fresh for anything reading it
	// directly while the server runs.
	ticker := session.NewTicker(sessions)
	ticker.Start()
	defer ticker.Stop()

	handler := server.NewHandler(sessions)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("status server listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			fmt.Printf("Error: %v\n", err)
		}
	case <-stop:
		logrus.Info("shutting down status server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}
