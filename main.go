package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sectionledger/backend/internal/config"
	"github.com/sectionledger/backend/internal/events"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
	"github.com/sectionledger/backend/internal/router"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet, the default one writes JSON to stderr
		log.Fatal().Err(err).Msg("Configuration")
	}

	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create data directory
	err = os.MkdirAll(filepath.Dir(cfg.DatabasePath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	db, err := models.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("Events")
		}
		log.Info().Str("exchange", cfg.AMQPExchange).Str("queue", cfg.AMQPQueue).Msg("Publishing ledger events")
	}
	defer publisher.Close()

	service := ledger.New(db,
		ledger.WithTimeout(cfg.StoreTimeout),
		ledger.WithAttempts(cfg.StoreAttempts),
		ledger.WithBackoff(cfg.StoreBackoff),
		ledger.WithPublisher(publisher),
		ledger.WithLocale(cfg.Language()),
	)

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(r.Group("/"), service, cfg.EnablePprof)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server")
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("Server stopped")
}
