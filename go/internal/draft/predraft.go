package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

// SetPreDraft queues a pick to be auto-submitted when the user's turn
// arrives. Rejected outside the drafting phase or when the player is
// already taken.
func (a *App) SetPreDraft(ctx context.Context, userID, playerID uuid.UUID) (league.Result, error) {
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		if season.Phase != models.SeasonPhaseDrafting {
			return league.Reject("season is not in the drafting phase")
		}
		player, err := tx.Rosters.GetPlayer(ctx, playerID)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				return league.Reject("player not found")
			}
			return err
		}
		if player.TeamID != nil {
			return league.Reject("player is already on a team")
		}
		ok, err := tx.DraftOrder.SetPreDraft(ctx, season.ID, userID, &playerID)
		if err != nil {
			return err
		}
		if !ok {
			return league.Reject("you are not in the draft order")
		}
		return a.appendPreDraftEvent(ctx, tx, season.ID, userID, &playerID)
	})
	return league.AsResult(err)
}

// ClearPreDraft removes the user's queued pick, if any.
func (a *App) ClearPreDraft(ctx context.Context, userID uuid.UUID) (league.Result, error) {
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		ok, err := tx.DraftOrder.SetPreDraft(ctx, season.ID, userID, nil)
		if err != nil {
			return err
		}
		if !ok {
			return league.Reject("you are not in the draft order")
		}
		return a.appendPreDraftEvent(ctx, tx, season.ID, userID, nil)
	})
	return league.AsResult(err)
}

// GetPreDraft returns the user's queued pick, or nil when none is set.
func (a *App) GetPreDraft(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	var queued *uuid.UUID
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		entry, err := tx.DraftOrder.GetEntry(ctx, season.ID, userID)
		if err != nil {
			return err
		}
		queued = entry.PreDraftPlayerID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queued, nil
}

func (a *App) appendPreDraftEvent(ctx context.Context, tx league.Tx, seasonID, userID uuid.UUID, playerID *uuid.UUID) error {
	var pid *string
	if playerID != nil {
		s := playerID.String()
		pid = &s
	}
	payload, err := json.Marshal(events.PreDraftPayload{
		UserID:   userID.String(),
		PlayerID: pid,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal pre-draft payload: %w", err)
	}
	if _, err := tx.Events.Append(ctx, events.LeagueEvent{
		SeasonID: seasonID,
		Type:     events.EventTypePreDraftUpdate,
		ActorID:  userID,
		Payload:  payload,
	}); err != nil {
		return err
	}
	log.Debug().Str("user_id", userID.String()).Msg("pre-draft updated")
	return nil
}
