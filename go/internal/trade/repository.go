package trade

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
	CreateTrade(ctx context.Context, arg db.CreateTradeParams) (db.Trade, error)
	CreateTradePlayer(ctx context.Context, arg db.CreateTradePlayerParams) error
	GetTrade(ctx context.Context, id uuid.UUID) (db.Trade, error)
	GetTradeForUpdate(ctx context.Context, id uuid.UUID) (db.Trade, error)
	ListPendingTradePlayersForUsers(ctx context.Context, arg db.ListPendingTradePlayersForUsersParams) ([]db.TradePlayer, error)
	ListPendingTradesForUser(ctx context.Context, arg db.ListPendingTradesForUserParams) ([]db.Trade, error)
	ListTradePlayers(ctx context.Context, tradeID uuid.UUID) ([]db.TradePlayer, error)
	ListTrades(ctx context.Context, arg db.ListTradesParams) ([]db.Trade, error)
	ResolveTrade(ctx context.Context, arg db.ResolveTradeParams) (int64, error)
}

// Repository implements league.TradeStore on top of sqlc queries.
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) CreateTrade(ctx context.Context, trade models.Trade) (models.Trade, error) {
	id := trade.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	row, err := r.queries.CreateTrade(ctx, db.CreateTradeParams{
		ID:           id,
		SeasonID:     trade.SeasonID,
		FromUserID:   trade.FromUserID,
		ToUserID:     trade.ToUserID,
		ProposalText: sqlutil.ToSqlString(trade.ProposalText),
	})
	if err != nil {
		return models.Trade{}, fmt.Errorf("failed to create trade: %w", err)
	}
	return r.dbTradeToModel(row), nil
}

func (r *Repository) AddTradePlayer(ctx context.Context, leg models.TradePlayer) error {
	id := leg.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	if err := r.queries.CreateTradePlayer(ctx, db.CreateTradePlayerParams{
		ID:         id,
		TradeID:    leg.TradeID,
		PlayerID:   leg.PlayerID,
		FromTeamID: leg.FromTeamID,
		ToTeamID:   leg.ToTeamID,
	}); err != nil {
		return fmt.Errorf("failed to create trade player: %w", err)
	}
	return nil
}

func (r *Repository) GetTrade(ctx context.Context, id uuid.UUID) (models.Trade, error) {
	row, err := r.queries.GetTrade(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trade{}, fmt.Errorf("trade %s: %w", id, league.ErrNotFound)
		}
		return models.Trade{}, fmt.Errorf("failed to get trade: %w", err)
	}
	return r.dbTradeToModel(row), nil
}

func (r *Repository) GetTradeForUpdate(ctx context.Context, id uuid.UUID) (models.Trade, error) {
	row, err := r.queries.GetTradeForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trade{}, fmt.Errorf("trade %s: %w", id, league.ErrNotFound)
		}
		return models.Trade{}, fmt.Errorf("failed to lock trade: %w", err)
	}
	return r.dbTradeToModel(row), nil
}

func (r *Repository) ListTradePlayers(ctx context.Context, tradeID uuid.UUID) ([]models.TradePlayer, error) {
	rows, err := r.queries.ListTradePlayers(ctx, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade players: %w", err)
	}
	legs := make([]models.TradePlayer, 0, len(rows))
	for _, row := range rows {
		legs = append(legs, r.dbTradePlayerToModel(row))
	}
	return legs, nil
}

func (r *Repository) ListPendingTradesForUser(ctx context.Context, seasonID, userID uuid.UUID) ([]models.Trade, error) {
	rows, err := r.queries.ListPendingTradesForUser(ctx, db.ListPendingTradesForUserParams{
		SeasonID: seasonID,
		UserID:   userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending trades: %w", err)
	}
	trades := make([]models.Trade, 0, len(rows))
	for _, row := range rows {
		trades = append(trades, r.dbTradeToModel(row))
	}
	return trades, nil
}

func (r *Repository) ListTrades(ctx context.Context, seasonID uuid.UUID, limit, offset int32) ([]models.Trade, error) {
	rows, err := r.queries.ListTrades(ctx, db.ListTradesParams{
		SeasonID: seasonID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	trades := make([]models.Trade, 0, len(rows))
	for _, row := range rows {
		trades = append(trades, r.dbTradeToModel(row))
	}
	return trades, nil
}

func (r *Repository) Resolve(ctx context.Context, id uuid.UUID, status models.TradeStatus, responseText *string) (bool, error) {
	affected, err := r.queries.ResolveTrade(ctx, db.ResolveTradeParams{
		ID:           id,
		Status:       string(status),
		ResponseText: sqlutil.ToSqlString(responseText),
	})
	if err != nil {
		return false, fmt.Errorf("failed to resolve trade: %w", err)
	}
	return affected == 1, nil
}

func (r *Repository) ListPendingTradePlayersForUsers(ctx context.Context, seasonID, excludeTradeID uuid.UUID, userIDs []uuid.UUID) ([]models.TradePlayer, error) {
	rows, err := r.queries.ListPendingTradePlayersForUsers(ctx, db.ListPendingTradePlayersForUsersParams{
		SeasonID:       seasonID,
		ExcludeTradeID: excludeTradeID,
		UserIds:        userIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending trade players: %w", err)
	}
	legs := make([]models.TradePlayer, 0, len(rows))
	for _, row := range rows {
		legs = append(legs, r.dbTradePlayerToModel(row))
	}
	return legs, nil
}

func (r *Repository) dbTradeToModel(row db.Trade) models.Trade {
	return models.Trade{
		ID:           row.ID,
		SeasonID:     row.SeasonID,
		FromUserID:   row.FromUserID,
		ToUserID:     row.ToUserID,
		Status:       models.TradeStatus(row.Status),
		ProposalText: sqlutil.FromSqlStringPtr(row.ProposalText),
		ResponseText: sqlutil.FromSqlStringPtr(row.ResponseText),
		CreatedAt:    row.CreatedAt,
		ResolvedAt:   sqlutil.FromSqlTime(row.ResolvedAt),
	}
}

func (r *Repository) dbTradePlayerToModel(row db.TradePlayer) models.TradePlayer {
	return models.TradePlayer{
		ID:         row.ID,
		TradeID:    row.TradeID,
		PlayerID:   row.PlayerID,
		FromTeamID: row.FromTeamID,
		ToTeamID:   row.ToTeamID,
	}
}
