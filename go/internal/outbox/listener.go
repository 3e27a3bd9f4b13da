package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league"
)

// ListenerConfig holds configuration for the outbox relay.
type ListenerConfig struct {
	DatabaseURL      string
	NotifyChannel    string
	FallbackInterval time.Duration
	MaxRetries       int
	RetryDelay       time.Duration
	PingInterval     time.Duration
	BatchSize        int32
}

// DefaultListenerConfig returns default relay configuration.
func DefaultListenerConfig(databaseURL string) ListenerConfig {
	return ListenerConfig{
		DatabaseURL:      databaseURL,
		NotifyChannel:    "league_events",
		FallbackInterval: 30 * time.Second,
		MaxRetries:       5,
		RetryDelay:       200 * time.Millisecond,
		PingInterval:     90 * time.Second,
		BatchSize:        100,
	}
}

// Listener relays unsent event log rows to the message bus. It wakes on
// Postgres NOTIFY for low latency and sweeps the backlog on a fallback
// ticker so events written while the relay was down still go out.
type Listener struct {
	config    ListenerConfig
	runner    league.Runner
	publisher Publisher
	listener  *pq.Listener
}

// NewListener creates an outbox relay. Call Start to begin relaying.
func NewListener(config ListenerConfig, runner league.Runner, publisher Publisher) *Listener {
	return &Listener{
		config:    config,
		runner:    runner,
		publisher: publisher,
	}
}

// Start listens for notifications and relays events until ctx is done.
func (l *Listener) Start(ctx context.Context) error {
	eventCallback := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Error().Err(err).Int("event", int(ev)).Msg("outbox listener connection event")
		}
	}

	l.listener = pq.NewListener(l.config.DatabaseURL, 10*time.Second, time.Minute, eventCallback)
	if err := l.listener.Listen(l.config.NotifyChannel); err != nil {
		return fmt.Errorf("failed to listen on channel %s: %w", l.config.NotifyChannel, err)
	}

	log.Info().
		Str("channel", l.config.NotifyChannel).
		Dur("fallback_interval", l.config.FallbackInterval).
		Msg("outbox relay started")

	// Drain anything queued while the relay was down.
	if err := l.processUnsent(ctx); err != nil {
		log.Error().Err(err).Msg("failed to process event backlog")
	}

	fallbackTicker := time.NewTicker(l.config.FallbackInterval)
	defer fallbackTicker.Stop()

	pingTicker := time.NewTicker(l.config.PingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("outbox relay shutting down")
			return l.listener.Close()

		case note := <-l.listener.Notify:
			if note == nil {
				// Connection dropped; pq reconnects and re-listens on its
				// own, but notifications in the gap are lost.
				log.Warn().Msg("outbox listener reconnected, sweeping backlog")
				if err := l.processUnsent(ctx); err != nil {
					log.Error().Err(err).Msg("failed to sweep backlog after reconnect")
				}
				continue
			}
			l.handleNotification(ctx, note)

		case <-fallbackTicker.C:
			if err := l.processUnsent(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process event backlog")
			}

		case <-pingTicker.C:
			if err := l.listener.Ping(); err != nil {
				log.Error().Err(err).Msg("outbox listener ping failed")
			}
		}
	}
}

// handleNotification relays the single event named in a NOTIFY payload.
func (l *Listener) handleNotification(ctx context.Context, note *pq.Notification) {
	eventID, err := uuid.Parse(note.Extra)
	if err != nil {
		log.Error().Err(err).Str("payload", note.Extra).Msg("invalid notification payload")
		return
	}

	err = l.runner.RunTx(ctx, func(tx league.Tx) error {
		event, err := tx.Events.GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to fetch event %s: %w", eventID, err)
		}
		if event.SentAt != nil {
			// A fallback sweep beat us to it.
			return nil
		}
		if err := l.publishWithRetry(ctx, event); err != nil {
			return err
		}
		return tx.Events.MarkSent(ctx, event.ID)
	})
	if err != nil {
		log.Error().Err(err).Str("event_id", eventID.String()).Msg("failed to relay event")
	}
}

// processUnsent relays a batch of backlog events. Rows are locked with
// SKIP LOCKED so concurrent relays never double-publish.
func (l *Listener) processUnsent(ctx context.Context) error {
	return l.runner.RunTx(ctx, func(tx league.Tx) error {
		backlog, err := tx.Events.FetchUnsent(ctx, l.config.BatchSize)
		if err != nil {
			return fmt.Errorf("failed to fetch unsent events: %w", err)
		}

		for _, event := range backlog {
			if err := l.publishWithRetry(ctx, event); err != nil {
				return err
			}
			if err := tx.Events.MarkSent(ctx, event.ID); err != nil {
				return fmt.Errorf("failed to mark event %s sent: %w", event.ID, err)
			}
		}

		if len(backlog) > 0 {
			log.Info().Int("count", len(backlog)).Msg("relayed event backlog")
		}
		return nil
	})
}

// publishWithRetry publishes with linear backoff between attempts.
func (l *Listener) publishWithRetry(ctx context.Context, event events.LeagueEvent) error {
	var lastErr error
	for attempt := 1; attempt <= l.config.MaxRetries; attempt++ {
		if err := l.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Warn().
				Err(err).
				Str("event_id", event.ID.String()).
				Int("attempt", attempt).
				Msg("publish attempt failed")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.config.RetryDelay * time.Duration(attempt)):
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("failed to publish event %s after %d attempts: %w", event.ID, l.config.MaxRetries, lastErr)
}
