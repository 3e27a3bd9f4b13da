package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/league/leaguetest"
)

type capturePublisher struct {
	published []events.LeagueEvent
	failures  int
}

func (p *capturePublisher) Publish(ctx context.Context, event events.LeagueEvent) error {
	if p.failures > 0 {
		p.failures--
		return errors.New("bus unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func (p *capturePublisher) Close() {}

func newRelay(store *leaguetest.Store, pub Publisher) *Listener {
	cfg := DefaultListenerConfig("postgres://localhost/test")
	cfg.RetryDelay = time.Millisecond
	return NewListener(cfg, store, pub)
}

func appendEvent(t *testing.T, store *leaguetest.Store, seasonID uuid.UUID, typ events.EventType) events.LeagueEvent {
	t.Helper()
	var out events.LeagueEvent
	err := store.RunTx(context.Background(), func(tx league.Tx) error {
		var err error
		out, err = tx.Events.Append(context.Background(), events.LeagueEvent{
			SeasonID: seasonID,
			Type:     typ,
			ActorID:  uuid.New(),
			Payload:  []byte(`{}`),
		})
		return err
	})
	require.NoError(t, err)
	return out
}

func TestProcessUnsentRelaysBacklog(t *testing.T) {
	store := leaguetest.NewStore()
	pub := &capturePublisher{}
	relay := newRelay(store, pub)

	seasonID := uuid.New()
	first := appendEvent(t, store, seasonID, events.EventTypeDraftUpdate)
	second := appendEvent(t, store, seasonID, events.EventTypeTradeProposed)

	// Already-sent rows are not part of the backlog.
	sent := appendEvent(t, store, seasonID, events.EventTypeSeasonStateUpdate)
	require.NoError(t, store.MarkSent(context.Background(), sent.ID))

	require.NoError(t, relay.processUnsent(context.Background()))

	require.Len(t, pub.published, 2)
	assert.Equal(t, first.ID, pub.published[0].ID)
	assert.Equal(t, second.ID, pub.published[1].ID)

	for _, event := range store.Events {
		assert.NotNil(t, event.SentAt, "event %s should be marked sent", event.ID)
	}
}

func TestProcessUnsentRetriesTransientFailures(t *testing.T) {
	store := leaguetest.NewStore()
	pub := &capturePublisher{failures: 2}
	relay := newRelay(store, pub)

	event := appendEvent(t, store, uuid.New(), events.EventTypeDraftUpdate)

	require.NoError(t, relay.processUnsent(context.Background()))
	require.Len(t, pub.published, 1)
	assert.Equal(t, event.ID, pub.published[0].ID)
}

func TestProcessUnsentKeepsBacklogOnExhaustedRetries(t *testing.T) {
	store := leaguetest.NewStore()
	pub := &capturePublisher{failures: 100}
	relay := newRelay(store, pub)

	appendEvent(t, store, uuid.New(), events.EventTypeDraftUpdate)

	err := relay.processUnsent(context.Background())
	require.Error(t, err)

	// The transaction rolled back, so the event stays unsent for the
	// next sweep.
	require.Len(t, store.Events, 1)
	assert.Nil(t, store.Events[0].SentAt)
}

func TestHandleNotificationRelaysSingleEvent(t *testing.T) {
	store := leaguetest.NewStore()
	pub := &capturePublisher{}
	relay := newRelay(store, pub)

	event := appendEvent(t, store, uuid.New(), events.EventTypePreDraftUpdate)

	relay.handleNotification(context.Background(), &pq.Notification{Extra: event.ID.String()})

	require.Len(t, pub.published, 1)
	assert.Equal(t, event.ID, pub.published[0].ID)
	assert.NotNil(t, store.Events[0].SentAt)
}

func TestHandleNotificationSkipsAlreadySent(t *testing.T) {
	store := leaguetest.NewStore()
	pub := &capturePublisher{}
	relay := newRelay(store, pub)

	event := appendEvent(t, store, uuid.New(), events.EventTypePreDraftUpdate)
	require.NoError(t, store.MarkSent(context.Background(), event.ID))

	relay.handleNotification(context.Background(), &pq.Notification{Extra: event.ID.String()})

	assert.Empty(t, pub.published)
}

func TestHandleNotificationIgnoresBadPayload(t *testing.T) {
	store := leaguetest.NewStore()
	pub := &capturePublisher{}
	relay := newRelay(store, pub)

	relay.handleNotification(context.Background(), &pq.Notification{Extra: "not-a-uuid"})

	assert.Empty(t, pub.published)
}
