// Package draftorder manages the per-season turn permutation: who
// drafts, in what order, and each drafter's queued pick.
package draftorder

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

// Direction moves a drafter toward the front ("up") or back ("down") of
// the order.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

type App struct {
	runner league.Runner
}

func NewApp(runner league.Runner) *App {
	return &App{runner: runner}
}

// ListDraftOrder returns the current season's order by turn index.
func (a *App) ListDraftOrder(ctx context.Context) ([]models.DraftOrderEntry, error) {
	var order []models.DraftOrderEntry
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		order, err = tx.DraftOrder.ListDraftOrder(ctx, season.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RegisterDrafter seats a user at the end of the current season's order.
func (a *App) RegisterDrafter(ctx context.Context, userID uuid.UUID) (league.Result, error) {
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		if season.Phase != models.SeasonPhasePreSeason {
			return league.Reject("drafters can only be registered in the pre-season")
		}
		order, err := tx.DraftOrder.ListDraftOrder(ctx, season.ID)
		if err != nil {
			return err
		}
		for _, entry := range order {
			if entry.UserID == userID {
				return league.Reject("user is already in the draft order")
			}
		}
		return tx.DraftOrder.InsertEntry(ctx, season.ID, userID, len(order)+1)
	})
	return league.AsResult(err)
}

// AdjustDraftingOrder swaps a drafter with their neighbor in the given
// direction, then renormalizes turn indexes to a dense 1..N sequence.
func (a *App) AdjustDraftingOrder(ctx context.Context, actorID, userID uuid.UUID, direction Direction) (league.Result, error) {
	if direction != DirectionUp && direction != DirectionDown {
		return league.Result{}, fmt.Errorf("invalid direction %q", direction)
	}
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeasonForUpdate(ctx)
		if err != nil {
			return err
		}
		order, err := tx.DraftOrder.ListDraftOrder(ctx, season.ID)
		if err != nil {
			return err
		}
		sort.Slice(order, func(i, j int) bool { return order[i].TurnIndex < order[j].TurnIndex })

		pos := -1
		for i, entry := range order {
			if entry.UserID == userID {
				pos = i
				break
			}
		}
		if pos == -1 {
			return league.Reject("user is not in the draft order")
		}
		swap := pos - 1
		if direction == DirectionDown {
			swap = pos + 1
		}
		if swap < 0 || swap >= len(order) {
			return league.Reject("user is already at the edge of the draft order")
		}
		order[pos], order[swap] = order[swap], order[pos]

		// Rewrite the whole permutation densely. The unique index on
		// turn_index is deferrable, so intermediate duplicates inside
		// the transaction are fine.
		for i, entry := range order {
			if err := tx.DraftOrder.UpdateTurnIndex(ctx, season.ID, entry.UserID, i+1); err != nil {
				return err
			}
		}
		return a.appendOrderEvent(ctx, tx, season.ID, actorID, order)
	})
	result, err := league.AsResult(err)
	if err == nil && result.OK {
		log.Info().
			Str("user_id", userID.String()).
			Str("direction", string(direction)).
			Msg("draft order adjusted")
	}
	return result, err
}

func (a *App) appendOrderEvent(ctx context.Context, tx league.Tx, seasonID, actorID uuid.UUID, order []models.DraftOrderEntry) error {
	userIDs := make([]string, 0, len(order))
	for _, entry := range order {
		userIDs = append(userIDs, entry.UserID.String())
	}
	payload, err := json.Marshal(events.DraftOrderPayload{
		ActorID: actorID.String(),
		UserIDs: userIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal draft order payload: %w", err)
	}
	_, err = tx.Events.Append(ctx, events.LeagueEvent{
		SeasonID: seasonID,
		Type:     events.EventTypeDraftOrderUpdate,
		ActorID:  actorID,
		Payload:  payload,
	})
	return err
}
