package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fortunestreet/internal/config"
	"fortunestreet/internal/server"

	"go.uber.org/zap"
)

//go:embed web/static
var static embed.FS

func main() {
	port := flag.Int("port", 8080, "server port")
	configPath := flag.String("config", "", "JSON settings file")
	seed := flag.Uint64("seed", 0, "random seed for new games (0 uses the clock)")
	botInterval := flag.Duration("bot-interval", 2*time.Second, "delay between bot turns")
	debug := flag.Bool("debug", false, "development logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	settings, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	// Flags given on the command line win over the settings file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			settings.Port = *port
		case "seed":
			settings.Seed = *seed
		case "bot-interval":
			settings.BotIntervalMS = int(*botInterval / time.Millisecond)
		}
	})
	if err := settings.Validate(); err != nil {
		logger.Fatal("invalid settings", zap.Error(err))
	}

	assets, err := fs.Sub(static, "web/static")
	if err != nil {
		logger.Fatal("static assets", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(settings, assets, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
