package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/medbot/internal/config"
	"github.com/Skufu/medbot/internal/console"
	"github.com/Skufu/medbot/internal/logging"
	"github.com/Skufu/medbot/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	switch cfg.Mode {
	case config.ModeHTTP:
		gin.SetMode(cfg.GinMode)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := server.ListenAndServe(ctx, cfg.Port, logger); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	default:
		// The console run always exits 0, even when input ends early.
		if _, err := console.NewSession(os.Stdin, os.Stdout, logger).Run(); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				logger.Warn().Msg("input ended before the consultation finished")
				return
			}
			logger.Error().Err(err).Msg("consultation failed")
		}
	}
}
