// Package draft implements the snake-draft engine: pick validation and
// execution, turn advancement, queued pre-draft resolution, and the
// starred-player toggle.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

// App executes draft operations. Every mutation runs inside a single
// transaction via the runner so a concurrent reader never observes a
// half-applied pick.
type App struct {
	runner league.Runner
	clock  clockwork.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

func NewApp(runner league.Runner, clock clockwork.Clock) *App {
	src := rand.NewSource(time.Now().UnixNano())
	return &App{
		runner: runner,
		clock:  clock,
		rng:    rand.New(src),
	}
}

// ValidateDraftPick runs the pick preconditions without mutating anything.
func (a *App) ValidateDraftPick(ctx context.Context, userID, playerID uuid.UUID) (league.Result, error) {
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		_, _, _, err = a.validatePick(ctx, tx, season, userID, playerID, false)
		return err
	})
	return league.AsResult(err)
}

// DraftPlayer validates and executes a pick, advances the turn, and
// resolves queued pre-drafts for subsequent drafters, all in one
// transaction.
func (a *App) DraftPlayer(ctx context.Context, userID, playerID uuid.UUID) (league.Result, error) {
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		return a.runPickChain(ctx, tx, userID, playerID)
	})
	result, err := league.AsResult(err)
	if err != nil {
		log.Error().Err(err).
			Str("user_id", userID.String()).
			Str("player_id", playerID.String()).
			Msg("draft pick failed")
		return league.Result{}, err
	}
	if !result.OK {
		log.Info().
			Str("user_id", userID.String()).
			Str("player_id", playerID.String()).
			Str("reason", result.Reason).
			Msg("draft pick rejected")
	}
	return result, nil
}

// runPickChain executes the requested pick, then walks the draft order
// resolving queued picks as an explicit worklist: each resolved pick
// advances the turn, and resolution continues until the current drafter
// has no usable queue entry.
func (a *App) runPickChain(ctx context.Context, tx league.Tx, userID, playerID uuid.UUID) error {
	season, err := tx.Seasons.GetCurrentSeasonForUpdate(ctx)
	if err != nil {
		return err
	}
	next, err := a.executePick(ctx, tx, season, userID, playerID, false)
	if err != nil {
		return err
	}

	for next.PreDraftPlayerID != nil {
		queued := *next.PreDraftPlayerID
		player, err := tx.Rosters.GetPlayer(ctx, queued)
		if err != nil && !errors.Is(err, league.ErrNotFound) {
			return err
		}
		if errors.Is(err, league.ErrNotFound) || player.TeamID != nil {
			// Queue entry went stale; clear it and leave the turn
			// with this drafter.
			if _, err := tx.DraftOrder.SetPreDraft(ctx, season.ID, next.UserID, nil); err != nil {
				return err
			}
			log.Warn().
				Str("user_id", next.UserID.String()).
				Str("player_id", queued.String()).
				Msg("queued pre-draft no longer available, cleared")
			return nil
		}

		season, err = tx.Seasons.GetCurrentSeasonForUpdate(ctx)
		if err != nil {
			return err
		}
		following, err := a.executePick(ctx, tx, season, next.UserID, queued, true)
		if err != nil {
			var rej *league.Rejection
			if !errors.As(err, &rej) {
				return err
			}
			if _, cerr := tx.DraftOrder.SetPreDraft(ctx, season.ID, next.UserID, nil); cerr != nil {
				return cerr
			}
			log.Warn().
				Str("user_id", next.UserID.String()).
				Str("player_id", queued.String()).
				Str("reason", rej.Reason).
				Msg("auto-draft rejected, cleared queued pick")
			return nil
		}
		next = following
	}
	return nil
}

// validatePick runs the ordered pick preconditions. It returns the
// player, the drafter's team and its current roster count for reuse by
// executePick. A missing team is a data-integrity failure, not a
// rejection.
func (a *App) validatePick(ctx context.Context, tx league.Tx, season models.Season, userID, playerID uuid.UUID, lock bool) (models.Player, models.Team, int64, error) {
	if season.Phase != models.SeasonPhaseDrafting {
		return models.Player{}, models.Team{}, 0, league.Reject("season is not in the drafting phase")
	}
	if season.CurrentDrafterID == nil || *season.CurrentDrafterID != userID {
		return models.Player{}, models.Team{}, 0, league.Reject("it is not your turn to draft")
	}

	var (
		player models.Player
		err    error
	)
	if lock {
		player, err = tx.Rosters.GetPlayerForUpdate(ctx, playerID)
	} else {
		player, err = tx.Rosters.GetPlayer(ctx, playerID)
	}
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return models.Player{}, models.Team{}, 0, league.Reject("player not found")
		}
		return models.Player{}, models.Team{}, 0, err
	}
	if player.TeamID != nil {
		return models.Player{}, models.Team{}, 0, league.Reject("player is already on a team")
	}

	team, err := tx.Rosters.GetTeamByOwner(ctx, userID)
	if err != nil {
		return models.Player{}, models.Team{}, 0, fmt.Errorf("drafter has no team: %w", err)
	}
	count, err := tx.Rosters.CountTeamPlayers(ctx, team.ID)
	if err != nil {
		return models.Player{}, models.Team{}, 0, err
	}
	if count >= int64(season.Settings.TeamSize) {
		return models.Player{}, models.Team{}, 0, league.Reject("team roster is full")
	}
	return player, team, count, nil
}

// executePick applies one validated pick and advances the turn. It
// returns the draft order entry of the next drafter so the caller can
// resolve that drafter's queued pick.
func (a *App) executePick(ctx context.Context, tx league.Tx, season models.Season, userID, playerID uuid.UUID, autoDraft bool) (models.DraftOrderEntry, error) {
	player, team, count, err := a.validatePick(ctx, tx, season, userID, playerID, true)
	if err != nil {
		return models.DraftOrderEntry{}, err
	}

	claimed, err := tx.Rosters.AssignFreeAgent(ctx, playerID, team.ID)
	if err != nil {
		return models.DraftOrderEntry{}, err
	}
	if !claimed {
		return models.DraftOrderEntry{}, league.Reject("player is already on a team")
	}

	// First pick on a team is starred as the default priority player.
	if count == 0 {
		if err := tx.Rosters.SetPlayerStarred(ctx, playerID, true); err != nil {
			return models.DraftOrderEntry{}, err
		}
	}

	if team.CaptainID == nil && player.CharacterID != nil {
		character, err := tx.Rosters.GetCharacter(ctx, *player.CharacterID)
		if err != nil {
			return models.DraftOrderEntry{}, err
		}
		if character.CaptainEligible {
			if err := tx.Rosters.SetTeamCaptain(ctx, team.ID, &playerID); err != nil {
				return models.DraftOrderEntry{}, err
			}
		}
	}

	if err := a.assignLineupSlot(ctx, tx, season, team.ID, playerID); err != nil {
		return models.DraftOrderEntry{}, err
	}

	pickNumber, err := tx.Events.CountByType(ctx, season.ID, events.EventTypeDraftUpdate)
	if err != nil {
		return models.DraftOrderEntry{}, err
	}
	payload, err := json.Marshal(events.DraftPickPayload{
		UserID:     userID.String(),
		TeamID:     team.ID.String(),
		PlayerID:   playerID.String(),
		PlayerName: player.Name,
		PickNumber: int(pickNumber) + 1,
		AutoDraft:  autoDraft,
		PickedAt:   a.clock.Now(),
	})
	if err != nil {
		return models.DraftOrderEntry{}, fmt.Errorf("failed to marshal draft pick payload: %w", err)
	}
	if _, err := tx.Events.Append(ctx, events.LeagueEvent{
		SeasonID: season.ID,
		Type:     events.EventTypeDraftUpdate,
		ActorID:  userID,
		Payload:  payload,
	}); err != nil {
		return models.DraftOrderEntry{}, err
	}

	// Nobody may keep an already-taken player queued.
	if err := tx.DraftOrder.ClearPreDraftForPlayer(ctx, season.ID, playerID); err != nil {
		return models.DraftOrderEntry{}, err
	}

	next, err := a.advanceTurn(ctx, tx, season)
	if err != nil {
		return models.DraftOrderEntry{}, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("player_id", playerID.String()).
		Int("pick_number", int(pickNumber)+1).
		Bool("auto_draft", autoDraft).
		Msg("draft pick executed")
	return next, nil
}

// advanceTurn recomputes the current drafter from the absolute count of
// assigned players: round = P/N, position = P%N, odd rounds reverse the
// order. Recomputing from totals rather than incrementing a cursor keeps
// the draft self-healing after any out-of-order commit.
func (a *App) advanceTurn(ctx context.Context, tx league.Tx, season models.Season) (models.DraftOrderEntry, error) {
	order, err := tx.DraftOrder.ListDraftOrder(ctx, season.ID)
	if err != nil {
		return models.DraftOrderEntry{}, err
	}
	if len(order) == 0 {
		return models.DraftOrderEntry{}, fmt.Errorf("draft order for season %s is empty", season.ID)
	}
	assigned, err := tx.Rosters.CountAssignedPlayers(ctx)
	if err != nil {
		return models.DraftOrderEntry{}, err
	}

	n := int64(len(order))
	round := assigned / n
	pos := assigned % n
	idx := pos
	if round%2 == 1 {
		idx = n - 1 - pos
	}
	next := order[idx]
	if err := tx.Seasons.SetCurrentDrafter(ctx, season.ID, &next.UserID); err != nil {
		return models.DraftOrderEntry{}, err
	}
	return next, nil
}

// assignLineupSlot places the player into a still-unused fielding
// position and batting-order number chosen uniformly at random. When the
// lineup is already full the player stays rostered without a slot.
func (a *App) assignLineupSlot(ctx context.Context, tx league.Tx, season models.Season, teamID, playerID uuid.UUID) error {
	teammates, err := tx.Rosters.ListTeamPlayers(ctx, teamID)
	if err != nil {
		return err
	}

	usedPositions := make(map[models.FieldingPosition]bool)
	usedOrders := make(map[int]bool)
	inLineup := 0
	for i := range teammates {
		p := &teammates[i]
		if p.ID == playerID || !p.InLineup() {
			continue
		}
		usedPositions[*p.Position] = true
		usedOrders[*p.BattingOrder] = true
		inLineup++
	}
	if inLineup >= season.Settings.LineupSize {
		return nil
	}

	var freePositions []models.FieldingPosition
	for _, pos := range models.FieldingPositions {
		if !usedPositions[pos] {
			freePositions = append(freePositions, pos)
		}
	}
	var freeOrders []int
	for i := 1; i <= season.Settings.LineupSize; i++ {
		if !usedOrders[i] {
			freeOrders = append(freeOrders, i)
		}
	}
	if len(freePositions) == 0 || len(freeOrders) == 0 {
		return nil
	}

	a.mu.Lock()
	position := freePositions[a.rng.Intn(len(freePositions))]
	order := freeOrders[a.rng.Intn(len(freeOrders))]
	a.mu.Unlock()
	return tx.Rosters.SetLineupSlot(ctx, playerID, &position, &order)
}
