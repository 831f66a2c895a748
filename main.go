package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/config"
	"github.com/c14220110/radiology-client/internal/app"
)

func main() {
	cfg := config.LoadConfig()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(level)

	client, err := app.New(cfg, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("wiring failed")
	}

	ctx := context.Background()
	log.Info().Str("backend", cfg.APIBaseURL).Msg("radiology client starting")

	// Silent session restore, then the interactive loop.
	client.Start(ctx)
	client.RunLoop(ctx, os.Stdin, os.Stdout)

	client.Logout(ctx)
}
