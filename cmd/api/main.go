package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"example.com/roster/internal/api"
	"example.com/roster/internal/catalog"
	"example.com/roster/internal/config"
	"example.com/roster/internal/domain"
	"example.com/roster/internal/events"
	"example.com/roster/internal/persistence/mongodb"
	httptransport "example.com/roster/internal/transport/http"
)

func main() {
	cfg := config.Load()
	configureLogging(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		connectCancel()
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		connectCancel()
		log.Fatal().Err(err).Msg("mongodb unreachable")
	}
	connectCancel()
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	log.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongodb")

	store := mongodb.NewStore(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection))

	inserted, err := store.InitializeIfEmpty(ctx, catalog.Activities())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed activity catalog")
	}
	if inserted > 0 {
		log.Info().Int("activities", inserted).Msg("seeded empty activity store")
	} else {
		log.Info().Msg("activity store already populated, skipping seed")
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.RosterTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.RosterTopic).Msg("roster event publishing enabled")
	}

	service := domain.NewService(store, publisher)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
	})

	// Tag each request with an ID and log it on the way in.
	requestLogger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)
			log.Debug().Str("request_id", requestID).Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
			next.ServeHTTP(w, r)
		})
	}

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address: cfg.HTTPAddress,
	}, requestLogger(mux))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("address", cfg.HTTPAddress).Msg("roster service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func configureLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(parsed)
}
