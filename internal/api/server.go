// Package api serves a read-only JSON view of the Unyson install.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"unyson/internal/app"
	"unyson/internal/util"
)

const (
	defaultBindAddr = "127.0.0.1"
	defaultAPIPort  = "8585"
	shutdownTimeout = 10 * time.Second
)

// NewRouter builds the API handler tree. allowedOrigin enables CORS for one
// origin when set.
func NewRouter(a *app.Context, allowedOrigin string) http.Handler {
	router := mux.NewRouter()
	RegisterRoutes(router, a)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "Unyson API server running"})
	}).Methods(http.MethodGet)

	return loggingMiddleware(corsMiddleware(router, allowedOrigin))
}

// ListenAddr resolves the --host and --port flags into a listen address.
func ListenAddr(hostFlag, portFlag string) string {
	bindAddr := defaultBindAddr
	if hostFlag != "" {
		if hostFlag == "localhost" {
			bindAddr = "127.0.0.1"
		} else if net.ParseIP(hostFlag) != nil {
			bindAddr = hostFlag
		} else {
			util.Log.Warnf("Invalid IP address or unsupported hostname ('%s') provided via --host flag. Defaulting API server to listen on '%s'.", hostFlag, defaultBindAddr)
		}
	}

	port := defaultAPIPort
	if portFlag != "" {
		port = portFlag
	}
	return net.JoinHostPort(bindAddr, port)
}

// StartServer runs the API server until SIGINT or SIGTERM.
func StartServer(a *app.Context, hostFlag, portFlag, allowedOrigin string) error {
	listenAddr := ListenAddr(hostFlag, portFlag)
	// request logs are written at info level
	util.EnsureLevel(logrus.InfoLevel)

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      NewRouter(a, allowedOrigin),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrChan := make(chan error, 1)

	go func() {
		util.Log.Infof("Starting Unyson API server on http://%s", listenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			util.Log.Errorf("API server ListenAndServe error: %v", err)
			serverErrChan <- fmt.Errorf("failed to start API server: %w", err)
		}
		close(serverErrChan)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErrChan:
		return err
	case sig := <-quit:
		util.Log.Infof("Received signal %v. Shutting down API server...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		util.Log.Errorf("API server forced to shutdown: %v", err)
		return fmt.Errorf("api server shutdown failed: %w", err)
	}

	util.Log.Info("API server stopped gracefully.")
	return nil
}
