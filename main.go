package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/finance-tracker/backend/internal/config"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration")
	}

	gin.SetMode(cfg.GinMode)

	output := io.Writer(os.Stdout)
	if cfg.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	err = os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Err(err).Str("directory", cfg.DataDir).Msg("Data directory")
	}

	err = models.Connect(filepath.Join(cfg.DataDir, "finance.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("Database")
	}

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Err(err).Msg("Router")
	}

	base := cfg.APIURL.Path
	if base == "" {
		base = "/"
	}
	router.AttachRoutes(cfg, r.Group(base))

	log.Info().Str("port", cfg.Port).Str("url", cfg.APIURL.String()).Msg("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server")
	}
}
