package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

const defaultPageSize = 50

// GetPendingTradesForUser returns the caller's open proposals and offers
// in the current season, legs included.
func (a *App) GetPendingTradesForUser(ctx context.Context, userID uuid.UUID) ([]models.Trade, error) {
	var trades []models.Trade
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		trades, err = tx.Trades.ListPendingTradesForUser(ctx, season.ID, userID)
		if err != nil {
			return err
		}
		return a.attachLegs(ctx, tx, trades)
	})
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// GetTrades returns a page of the current season's trades, newest first.
func (a *App) GetTrades(ctx context.Context, limit, offset int32) ([]models.Trade, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	var trades []models.Trade
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		trades, err = tx.Trades.ListTrades(ctx, season.ID, limit, offset)
		if err != nil {
			return err
		}
		return a.attachLegs(ctx, tx, trades)
	})
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// GetTradeByID returns one trade with its legs.
func (a *App) GetTradeByID(ctx context.Context, tradeID uuid.UUID) (models.Trade, error) {
	var trade models.Trade
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		var err error
		trade, err = tx.Trades.GetTrade(ctx, tradeID)
		if err != nil {
			return err
		}
		trade.Players, err = tx.Trades.ListTradePlayers(ctx, tradeID)
		return err
	})
	if err != nil {
		return models.Trade{}, err
	}
	return trade, nil
}

func (a *App) attachLegs(ctx context.Context, tx league.Tx, trades []models.Trade) error {
	for i := range trades {
		legs, err := tx.Trades.ListTradePlayers(ctx, trades[i].ID)
		if err != nil {
			return err
		}
		trades[i].Players = legs
	}
	return nil
}
