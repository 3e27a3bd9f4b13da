package season

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
	"github.com/sandlot-league/clubhouse/go/internal/sqlutil"
	"github.com/sandlot-league/clubhouse/go/internal/store/db"
)

type Querier interface {
	CreateSeason(ctx context.Context, arg db.CreateSeasonParams) (db.Season, error)
	GetCurrentSeason(ctx context.Context) (db.Season, error)
	GetCurrentSeasonForUpdate(ctx context.Context) (db.Season, error)
	UpdateSeasonPhase(ctx context.Context, arg db.UpdateSeasonPhaseParams) (db.Season, error)
	UpdateCurrentDrafter(ctx context.Context, arg db.UpdateCurrentDrafterParams) error
	UpdateSeasonTimer(ctx context.Context, arg db.UpdateSeasonTimerParams) (db.Season, error)
}

// Repository implements league.SeasonStore on top of sqlc queries.
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) CreateSeason(ctx context.Context, settings models.SeasonSettings) (models.Season, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return models.Season{}, fmt.Errorf("failed to marshal season settings: %w", err)
	}
	row, err := r.queries.CreateSeason(ctx, db.CreateSeasonParams{
		ID:       uuid.New(),
		Phase:    string(models.SeasonPhasePreSeason),
		Settings: raw,
	})
	if err != nil {
		return models.Season{}, fmt.Errorf("failed to create season: %w", err)
	}
	return r.dbSeasonToModel(row)
}

func (r *Repository) GetCurrentSeason(ctx context.Context) (models.Season, error) {
	row, err := r.queries.GetCurrentSeason(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Season{}, fmt.Errorf("current season: %w", league.ErrNotFound)
		}
		return models.Season{}, fmt.Errorf("failed to get current season: %w", err)
	}
	return r.dbSeasonToModel(row)
}

func (r *Repository) GetCurrentSeasonForUpdate(ctx context.Context) (models.Season, error) {
	row, err := r.queries.GetCurrentSeasonForUpdate(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Season{}, fmt.Errorf("current season: %w", league.ErrNotFound)
		}
		return models.Season{}, fmt.Errorf("failed to lock current season: %w", err)
	}
	return r.dbSeasonToModel(row)
}

func (r *Repository) UpdatePhase(ctx context.Context, seasonID uuid.UUID, phase models.SeasonPhase) error {
	if _, err := r.queries.UpdateSeasonPhase(ctx, db.UpdateSeasonPhaseParams{
		ID:    seasonID,
		Phase: string(phase),
	}); err != nil {
		return fmt.Errorf("failed to update season phase: %w", err)
	}
	return nil
}

func (r *Repository) SetCurrentDrafter(ctx context.Context, seasonID uuid.UUID, drafterID *uuid.UUID) error {
	if err := r.queries.UpdateCurrentDrafter(ctx, db.UpdateCurrentDrafterParams{
		ID:               seasonID,
		CurrentDrafterID: sqlutil.ToNullUUID(drafterID),
	}); err != nil {
		return fmt.Errorf("failed to update current drafter: %w", err)
	}
	return nil
}

func (r *Repository) UpdateTimer(ctx context.Context, seasonID uuid.UUID, startedAt, pausedAt *time.Time, durationSec int) error {
	if _, err := r.queries.UpdateSeasonTimer(ctx, db.UpdateSeasonTimerParams{
		ID:               seasonID,
		TimerStartedAt:   sqlutil.ToSqlTime(startedAt),
		TimerPausedAt:    sqlutil.ToSqlTime(pausedAt),
		TimerDurationSec: int32(durationSec),
	}); err != nil {
		return fmt.Errorf("failed to update season timer: %w", err)
	}
	return nil
}

func (r *Repository) dbSeasonToModel(row db.Season) (models.Season, error) {
	var settings models.SeasonSettings
	if err := json.Unmarshal(row.Settings, &settings); err != nil {
		return models.Season{}, fmt.Errorf("failed to unmarshal season settings: %w", err)
	}
	return models.Season{
		ID:               row.ID,
		Phase:            models.SeasonPhase(row.Phase),
		CurrentDrafterID: sqlutil.FromNullUUID(row.CurrentDrafterID),
		Settings:         settings,
		TimerStartedAt:   sqlutil.FromSqlTime(row.TimerStartedAt),
		TimerPausedAt:    sqlutil.FromSqlTime(row.TimerPausedAt),
		TimerDurationSec: int(row.TimerDurationSec),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}
