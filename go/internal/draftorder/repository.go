package draftorder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
	"github.com/sandlot-league/clubhouse/go/internal/sqlutil"
	"github.com/sandlot-league/clubhouse/go/internal/store/db"
)

type Querier interface {
	ClearPreDraftForPlayer(ctx context.Context, arg db.ClearPreDraftForPlayerParams) error
	GetDraftOrderEntry(ctx context.Context, arg db.GetDraftOrderEntryParams) (db.DraftOrderEntry, error)
	InsertDraftOrderEntry(ctx context.Context, arg db.InsertDraftOrderEntryParams) error
	ListDraftOrder(ctx context.Context, seasonID uuid.UUID) ([]db.DraftOrderEntry, error)
	SetPreDraft(ctx context.Context, arg db.SetPreDraftParams) (int64, error)
	UpdateTurnIndex(ctx context.Context, arg db.UpdateTurnIndexParams) error
}

// Repository implements league.DraftOrderStore on top of sqlc queries.
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) ListDraftOrder(ctx context.Context, seasonID uuid.UUID) ([]models.DraftOrderEntry, error) {
	rows, err := r.queries.ListDraftOrder(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft order: %w", err)
	}
	entries := make([]models.DraftOrderEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, r.dbEntryToModel(row))
	}
	return entries, nil
}

func (r *Repository) GetEntry(ctx context.Context, seasonID, userID uuid.UUID) (models.DraftOrderEntry, error) {
	row, err := r.queries.GetDraftOrderEntry(ctx, db.GetDraftOrderEntryParams{
		SeasonID: seasonID,
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DraftOrderEntry{}, fmt.Errorf("draft order entry for user %s: %w", userID, league.ErrNotFound)
		}
		return models.DraftOrderEntry{}, fmt.Errorf("failed to get draft order entry: %w", err)
	}
	return r.dbEntryToModel(row), nil
}

func (r *Repository) InsertEntry(ctx context.Context, seasonID, userID uuid.UUID, turnIndex int) error {
	if err := r.queries.InsertDraftOrderEntry(ctx, db.InsertDraftOrderEntryParams{
		SeasonID:  seasonID,
		UserID:    userID,
		TurnIndex: int32(turnIndex),
	}); err != nil {
		return fmt.Errorf("failed to insert draft order entry: %w", err)
	}
	return nil
}

func (r *Repository) UpdateTurnIndex(ctx context.Context, seasonID, userID uuid.UUID, turnIndex int) error {
	if err := r.queries.UpdateTurnIndex(ctx, db.UpdateTurnIndexParams{
		SeasonID:  seasonID,
		UserID:    userID,
		TurnIndex: int32(turnIndex),
	}); err != nil {
		return fmt.Errorf("failed to update turn index: %w", err)
	}
	return nil
}

func (r *Repository) SetPreDraft(ctx context.Context, seasonID, userID uuid.UUID, playerID *uuid.UUID) (bool, error) {
	affected, err := r.queries.SetPreDraft(ctx, db.SetPreDraftParams{
		SeasonID:         seasonID,
		UserID:           userID,
		PreDraftPlayerID: sqlutil.ToNullUUID(playerID),
	})
	if err != nil {
		return false, fmt.Errorf("failed to set pre-draft: %w", err)
	}
	return affected == 1, nil
}

func (r *Repository) ClearPreDraftForPlayer(ctx context.Context, seasonID, playerID uuid.UUID) error {
	if err := r.queries.ClearPreDraftForPlayer(ctx, db.ClearPreDraftForPlayerParams{
		SeasonID:         seasonID,
		PreDraftPlayerID: uuid.NullUUID{UUID: playerID, Valid: true},
	}); err != nil {
		return fmt.Errorf("failed to clear pre-draft for player: %w", err)
	}
	return nil
}

func (r *Repository) dbEntryToModel(row db.DraftOrderEntry) models.DraftOrderEntry {
	return models.DraftOrderEntry{
		UserID:           row.UserID,
		SeasonID:         row.SeasonID,
		TurnIndex:        int(row.TurnIndex),
		PreDraftPlayerID: sqlutil.FromNullUUID(row.PreDraftPlayerID),
	}
}
