package eventlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/sqlutil"
	"github.com/sandlot-league/clubhouse/go/internal/store/db"
)

type Querier interface {
	CountSeasonEventsByType(ctx context.Context, arg db.CountSeasonEventsByTypeParams) (int64, error)
	FetchEventByID(ctx context.Context, id uuid.UUID) (db.LeagueEvent, error)
	FetchUnsentEvents(ctx context.Context, limit int32) ([]db.LeagueEvent, error)
	InsertLeagueEvent(ctx context.Context, arg db.InsertLeagueEventParams) (db.LeagueEvent, error)
	ListSeasonEvents(ctx context.Context, arg db.ListSeasonEventsParams) ([]db.LeagueEvent, error)
	MarkEventSent(ctx context.Context, id uuid.UUID) error
}

// Repository implements league.EventStore on top of sqlc queries.
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) Append(ctx context.Context, event events.LeagueEvent) (events.LeagueEvent, error) {
	id := event.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	row, err := r.queries.InsertLeagueEvent(ctx, db.InsertLeagueEventParams{
		ID:        id,
		SeasonID:  event.SeasonID,
		EventType: string(event.Type),
		ActorID:   event.ActorID,
		Payload:   pqtype.NullRawMessage{RawMessage: event.Payload, Valid: len(event.Payload) > 0},
	})
	if err != nil {
		return events.LeagueEvent{}, fmt.Errorf("failed to append league event: %w", err)
	}
	return r.dbEventToModel(row), nil
}

func (r *Repository) CountByType(ctx context.Context, seasonID uuid.UUID, eventType events.EventType) (int64, error) {
	count, err := r.queries.CountSeasonEventsByType(ctx, db.CountSeasonEventsByTypeParams{
		SeasonID:  seasonID,
		EventType: string(eventType),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count season events: %w", err)
	}
	return count, nil
}

func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]events.LeagueEvent, error) {
	rows, err := r.queries.FetchUnsentEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent events: %w", err)
	}
	out := make([]events.LeagueEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.dbEventToModel(row))
	}
	return out, nil
}

func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkEventSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark event sent: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (events.LeagueEvent, error) {
	row, err := r.queries.FetchEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events.LeagueEvent{}, fmt.Errorf("league event %s: %w", id, league.ErrNotFound)
		}
		return events.LeagueEvent{}, fmt.Errorf("failed to fetch league event: %w", err)
	}
	return r.dbEventToModel(row), nil
}

func (r *Repository) ListSeasonEvents(ctx context.Context, seasonID uuid.UUID, limit, offset int32) ([]events.LeagueEvent, error) {
	rows, err := r.queries.ListSeasonEvents(ctx, db.ListSeasonEventsParams{
		SeasonID: seasonID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list season events: %w", err)
	}
	out := make([]events.LeagueEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.dbEventToModel(row))
	}
	return out, nil
}

func (r *Repository) dbEventToModel(row db.LeagueEvent) events.LeagueEvent {
	var payload []byte
	if row.Payload.Valid {
		payload = row.Payload.RawMessage
	}
	return events.LeagueEvent{
		ID:        row.ID,
		SeasonID:  row.SeasonID,
		Type:      events.EventType(row.EventType),
		ActorID:   row.ActorID,
		Payload:   payload,
		CreatedAt: row.CreatedAt,
		SentAt:    sqlutil.FromSqlTime(row.SentAt),
	}
}
