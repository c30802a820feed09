package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"clubsync-api/config"
	"clubsync-api/db"
	"clubsync-api/middlewares"
	"clubsync-api/routes"
)

func initLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

//	@title						ClubSync API
//	@version					1.0
//	@description				REST backend for the ClubSync nightclub ticketing platform.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	populate := flag.Bool("populate", false, "seed the database with fake data on startup")
	flag.Parse()

	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	initLogger(cfg.Log)

	jwtSecret := middlewares.InitJWTSecret(cfg.JWT.Secret)
	middlewares.InitPrometheus()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the database")
	}
	defer pool.Close()

	if err := db.InitSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize the schema")
	}

	if *populate {
		if err := db.PopulateDatabase(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to populate the database")
		}
	} else if err := db.EnsureAdminUser(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure the admin account")
	}

	handler := routes.SetupRoutes(pool, jwtSecret, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
