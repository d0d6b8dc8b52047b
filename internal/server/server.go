package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"fortunestreet/internal/config"

	"go.uber.org/zap"
)

// Server ties together HTTP serving and the display feeds.
type Server struct {
	settings config.Settings
	static   fs.FS
	log      *zap.Logger
}

// New returns a server for settings. static holds the board page assets.
func New(settings config.Settings, static fs.FS, log *zap.Logger) *Server {
	return &Server{settings: settings, static: static, log: log}
}

// Handler builds the route table. Hubs created through it stop when ctx ends.
func (s *Server) Handler(ctx context.Context) http.Handler {
	handlers := NewHandlers(ctx, s.settings, s.log)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(s.static)))
	mux.HandleFunc("/api/create", handlers.HandleCreateGame)
	mux.HandleFunc("/api/state", handlers.HandleState)
	mux.HandleFunc("/api/qr", handlers.HandleQR)
	mux.HandleFunc("/ws", handlers.HandleWS)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.settings.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.log.Info("server listening",
		zap.String("addr", addr),
		zap.String("create", fmt.Sprintf("http://localhost%s/api/create", addr)),
	)

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
