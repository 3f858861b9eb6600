package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"arena-server/api"
	"arena-server/config"
	"arena-server/logging"
	"arena-server/server"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(cfg.LogFile); err != nil {
		os.Stderr.WriteString("logging init: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logging.Sync()

	// Core simulation server
	arena := server.NewArenaServer(cfg)
	go arena.Run()

	r := chi.NewRouter()

	// Optional static frontend. When STATIC_DIR is unset the server is
	// API + websocket only.
	if cfg.StaticDir != "" {
		r.Handle("/*", server.StaticFileServer(cfg.StaticDir, "/index.html"))
	}

	// Mount REST API under /api
	r.Mount("/api", api.NewRouter(cfg, arena))
	// Keep websocket endpoint
	r.HandleFunc("/ws", arena.HandleWS)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Log.Infow("server started", "addr", cfg.Addr, "tickHz", cfg.TickHz)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logging.Log.Infow("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Fatalw("listen", "err", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorw("http shutdown", "err", err)
	}
	arena.Stop()
}
