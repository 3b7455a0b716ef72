package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gridironhq/draftroom/go/internal/draft/eventstore"
	"github.com/gridironhq/draftroom/go/internal/draft/gateway"
	"github.com/gridironhq/draftroom/go/internal/draft/relay"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup database")
	}
	defer database.Close()

	services := setupServices(database, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Durable event log, optional. Sessions stay fully functional
	// without it; the relay just skips the persistence hop.
	var store relay.Store
	if getEnvAsBool("EVENT_STORE_ENABLED", false) {
		pool, err := setupEventPool(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to setup event store")
		}
		defer pool.Close()

		es := eventstore.NewStore(pool)
		if err := es.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate event store")
		}
		store = es
	}

	var ws *gateway.WebSocketHandler
	var publisher relay.Publisher
	if getEnvAsBool("NATS_ENABLED", false) {
		jsCfg := relay.DefaultJetStreamConfig()
		jsCfg.URL = getEnv("NATS_URL", jsCfg.URL)
		jsPub, err := relay.NewJetStreamPublisher(jsCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to setup JetStream publisher")
		}
		defer jsPub.Close()
		publisher = jsPub

		cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
		go cm.Start(ctx)

		consumerCfg := gateway.DefaultJetStreamConsumerConfig()
		consumerCfg.URL = getEnv("NATS_URL", consumerCfg.URL)
		consumer, err := gateway.NewEventConsumer(cm, consumerCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to setup JetStream consumer")
		}
		defer consumer.Close()
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("event consumer stopped")
			}
		}()

		ws = gateway.NewWebSocketHandler(cm)
	} else {
		publisher = relay.NewLogPublisher(slog.Default())
	}

	var eventRelay *relay.Relay
	if cfg.Relay.Enabled {
		relayCfg := relay.DefaultConfig()
		relayCfg.PollInterval = cfg.Relay.PollInterval
		eventRelay = relay.New(services.Registry, store, publisher, relayCfg, clockwork.NewRealClock(), slog.Default())
		if err := eventRelay.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to start event relay")
		}
	}

	server := setupServer(services, ws)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting draftroom server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	if eventRelay != nil {
		if err := eventRelay.Stop(); err != nil {
			log.Error().Err(err).Msg("relay shutdown failed")
		}
	}
	cancel()
}
