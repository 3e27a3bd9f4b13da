package main

import (
	"database/sql"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sandlot-league/clubhouse/go/internal/dbconfig"
	"github.com/sandlot-league/clubhouse/go/internal/draft"
	"github.com/sandlot-league/clubhouse/go/internal/draftorder"
	"github.com/sandlot-league/clubhouse/go/internal/gateway"
	"github.com/sandlot-league/clubhouse/go/internal/outbox"
	"github.com/sandlot-league/clubhouse/go/internal/season"
	"github.com/sandlot-league/clubhouse/go/internal/store"
	"github.com/sandlot-league/clubhouse/go/internal/trade"
)

// Services bundles the wired application layer.
type Services struct {
	Store      *store.Store
	Seasons    *season.App
	Draft      *draft.App
	DraftOrder *draftorder.App
	Trades     *trade.App

	Outbox   *outbox.Listener
	Gateway  *gateway.ConnectionManager
	WSRoutes *gateway.WebSocketHandler
	Consumer *gateway.EventConsumer
}

func setupServices(database *sql.DB, dbCfg dbconfig.Config, config *Config) (*Services, error) {
	// Database layer → Runner → engine layer.
	st := store.New(database)
	clock := clockwork.NewRealClock()

	publisherCfg := outbox.DefaultNATSPublisherConfig()
	publisherCfg.URL = config.NATS.URL
	publisherCfg.StreamName = config.NATS.StreamName
	publisher, err := outbox.NewNATSPublisher(publisherCfg)
	if err != nil {
		return nil, err
	}

	listenerCfg := outbox.DefaultListenerConfig(dbCfg.DSN())
	listenerCfg.FallbackInterval = time.Duration(config.Outbox.FallbackIntervalSeconds) * time.Second
	listenerCfg.BatchSize = config.Outbox.BatchSize

	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())

	consumerCfg := gateway.DefaultConsumerConfig()
	consumerCfg.URL = config.NATS.URL
	consumerCfg.StreamName = config.NATS.StreamName
	consumer, err := gateway.NewEventConsumer(cm, consumerCfg)
	if err != nil {
		publisher.Close()
		return nil, err
	}

	return &Services{
		Store:      st,
		Seasons:    season.NewApp(st, clock),
		Draft:      draft.NewApp(st, clock),
		DraftOrder: draftorder.NewApp(st),
		Trades:     trade.NewApp(st, clock),
		Outbox:     outbox.NewListener(listenerCfg, st, publisher),
		Gateway:    cm,
		WSRoutes:   gateway.NewWebSocketHandler(cm),
		Consumer:   consumer,
	}, nil
}
