// Package season manages the singleton season record: phase
// transitions, the advisory draft timer, and admin overrides of the
// draft cursor.
package season

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

type App struct {
	runner league.Runner
	clock  clockwork.Clock
}

func NewApp(runner league.Runner, clock clockwork.Clock) *App {
	return &App{
		runner: runner,
		clock:  clock,
	}
}

// CreateSeason creates a fresh season in the pre-season phase.
func (a *App) CreateSeason(ctx context.Context, settings models.SeasonSettings) (models.Season, error) {
	if settings.TeamSize <= 0 || settings.LineupSize <= 0 || settings.LineupSize > settings.TeamSize {
		return models.Season{}, fmt.Errorf("invalid season settings: team_size=%d lineup_size=%d", settings.TeamSize, settings.LineupSize)
	}
	var created models.Season
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		var err error
		created, err = tx.Seasons.CreateSeason(ctx, settings)
		return err
	})
	if err != nil {
		return models.Season{}, err
	}
	log.Info().Str("season_id", created.ID.String()).Msg("season created")
	return created, nil
}

// GetCurrentSeason returns the active season.
func (a *App) GetCurrentSeason(ctx context.Context) (models.Season, error) {
	var current models.Season
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		var err error
		current, err = tx.Seasons.GetCurrentSeason(ctx)
		return err
	})
	if err != nil {
		return models.Season{}, err
	}
	return current, nil
}

// SetSeasonState moves the season to a new phase. Entering the drafting
// phase from pre-season wipes every roster and lineup and seats the
// first drafter; leaving drafting clears the draft cursor. Other
// transitions are a plain phase write.
func (a *App) SetSeasonState(ctx context.Context, actorID uuid.UUID, newPhase models.SeasonPhase) (league.Result, error) {
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeasonForUpdate(ctx)
		if err != nil {
			return err
		}

		var drafterID *uuid.UUID
		if newPhase == models.SeasonPhaseDrafting {
			if season.Phase == models.SeasonPhasePreSeason {
				if err := tx.Rosters.WipeRosters(ctx); err != nil {
					return err
				}
				if err := tx.Rosters.ClearTeamCaptains(ctx); err != nil {
					return err
				}
			}
			order, err := tx.DraftOrder.ListDraftOrder(ctx, season.ID)
			if err != nil {
				return err
			}
			if len(order) == 0 {
				return league.Reject("cannot start drafting with an empty draft order")
			}
			drafterID = &order[0].UserID
		}

		if err := tx.Seasons.UpdatePhase(ctx, season.ID, newPhase); err != nil {
			return err
		}
		if err := tx.Seasons.SetCurrentDrafter(ctx, season.ID, drafterID); err != nil {
			return err
		}
		return a.appendStateEvent(ctx, tx, season.ID, actorID, newPhase, drafterID)
	})
	result, err := league.AsResult(err)
	if err == nil && result.OK {
		log.Info().
			Str("actor_id", actorID.String()).
			Str("phase", string(newPhase)).
			Msg("season phase changed")
	}
	return result, err
}

// SetCurrentDraftingUser is the admin override of the draft cursor,
// allowed only while drafting and only for seated drafters.
func (a *App) SetCurrentDraftingUser(ctx context.Context, actorID, userID uuid.UUID) (league.Result, error) {
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeasonForUpdate(ctx)
		if err != nil {
			return err
		}
		if season.Phase != models.SeasonPhaseDrafting {
			return league.Reject("season is not in the drafting phase")
		}
		if _, err := tx.DraftOrder.GetEntry(ctx, season.ID, userID); err != nil {
			return league.Reject("user is not in the draft order")
		}
		if err := tx.Seasons.SetCurrentDrafter(ctx, season.ID, &userID); err != nil {
			return err
		}
		return a.appendStateEvent(ctx, tx, season.ID, actorID, season.Phase, &userID)
	})
	return league.AsResult(err)
}

// StartDraftTimer starts the advisory pick timer. The timer never forces
// a pick; clients render it as a countdown.
func (a *App) StartDraftTimer(ctx context.Context, durationSec int) error {
	return a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeasonForUpdate(ctx)
		if err != nil {
			return err
		}
		now := a.clock.Now()
		return tx.Seasons.UpdateTimer(ctx, season.ID, &now, nil, durationSec)
	})
}

// PauseDraftTimer records the pause time, keeping the start time intact.
func (a *App) PauseDraftTimer(ctx context.Context) error {
	return a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeasonForUpdate(ctx)
		if err != nil {
			return err
		}
		now := a.clock.Now()
		return tx.Seasons.UpdateTimer(ctx, season.ID, season.TimerStartedAt, &now, season.TimerDurationSec)
	})
}

// ResetDraftTimer clears both timestamps.
func (a *App) ResetDraftTimer(ctx context.Context) error {
	return a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeasonForUpdate(ctx)
		if err != nil {
			return err
		}
		return tx.Seasons.UpdateTimer(ctx, season.ID, nil, nil, season.TimerDurationSec)
	})
}

func (a *App) appendStateEvent(ctx context.Context, tx league.Tx, seasonID, actorID uuid.UUID, phase models.SeasonPhase, drafterID *uuid.UUID) error {
	var drafter *string
	if drafterID != nil {
		s := drafterID.String()
		drafter = &s
	}
	payload, err := json.Marshal(events.SeasonStatePayload{
		ActorID:          actorID.String(),
		Phase:            string(phase),
		CurrentDrafterID: drafter,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal season state payload: %w", err)
	}
	_, err = tx.Events.Append(ctx, events.LeagueEvent{
		SeasonID: seasonID,
		Type:     events.EventTypeSeasonStateUpdate,
		ActorID:  actorID,
		Payload:  payload,
	})
	return err
}
