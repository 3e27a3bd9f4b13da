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
)

// SetPlayerStarred toggles the star on a player owned by the caller.
// Starring unstars every other player on the team first, so at most one
// player per team is starred without relying on a database constraint.
func (a *App) SetPlayerStarred(ctx context.Context, userID, playerID uuid.UUID) (league.Result, error) {
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		player, err := tx.Rosters.GetPlayerForUpdate(ctx, playerID)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				return league.Reject("player not found")
			}
			return err
		}
		team, err := tx.Rosters.GetTeamByOwner(ctx, userID)
		if err != nil {
			return fmt.Errorf("caller has no team: %w", err)
		}
		if player.TeamID == nil || *player.TeamID != team.ID {
			return league.Reject("player is not on your team")
		}

		starred := !player.IsStarred
		if starred {
			if err := tx.Rosters.UnstarTeamPlayers(ctx, team.ID); err != nil {
				return err
			}
		}
		if err := tx.Rosters.SetPlayerStarred(ctx, playerID, starred); err != nil {
			return err
		}

		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(events.PlayerStarPayload{
			UserID:    userID.String(),
			PlayerID:  playerID.String(),
			IsStarred: starred,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal player star payload: %w", err)
		}
		if _, err := tx.Events.Append(ctx, events.LeagueEvent{
			SeasonID: season.ID,
			Type:     events.EventTypePlayerStarUpdate,
			ActorID:  userID,
			Payload:  payload,
		}); err != nil {
			return err
		}
		log.Debug().
			Str("player_id", playerID.String()).
			Bool("is_starred", starred).
			Msg("player star toggled")
		return nil
	})
	return league.AsResult(err)
}
