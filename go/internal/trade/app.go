// Package trade implements the trade engine: proposal validation,
// settlement on acceptance, and the pending -> terminal state machine.
package trade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

// App executes trade operations through the transaction runner.
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

type CreateTradeRequest struct {
	FromUserID    uuid.UUID   `json:"from_user_id"`
	ToUserID      uuid.UUID   `json:"to_user_id"`
	FromPlayerIDs []uuid.UUID `json:"from_player_ids"`
	ToPlayerIDs   []uuid.UUID `json:"to_player_ids"`
	ProposalText  *string     `json:"proposal_text,omitempty"`
}

func (r CreateTradeRequest) Validate() error {
	if r.FromUserID == uuid.Nil {
		return fmt.Errorf("from_user_id is required")
	}
	if r.ToUserID == uuid.Nil {
		return fmt.Errorf("to_user_id is required")
	}
	return nil
}

// CreateTradeResponse carries the new trade id when the proposal was
// accepted for processing.
type CreateTradeResponse struct {
	league.Result
	TradeID *uuid.UUID `json:"trade_id,omitempty"`
}

// ValidateTradeRequest runs the proposal preconditions without mutating
// anything.
func (a *App) ValidateTradeRequest(ctx context.Context, req CreateTradeRequest) (league.Result, error) {
	if err := req.Validate(); err != nil {
		return league.Result{}, err
	}
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		_, _, err := a.validateTrade(ctx, tx, req, uuid.Nil)
		return err
	})
	return league.AsResult(err)
}

// CreateTradeRequest validates the proposal and atomically creates the
// trade row, one leg per player, and the proposed event.
func (a *App) CreateTradeRequest(ctx context.Context, req CreateTradeRequest) (CreateTradeResponse, error) {
	if err := req.Validate(); err != nil {
		return CreateTradeResponse{}, err
	}
	var tradeID uuid.UUID
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		fromTeam, toTeam, err := a.validateTrade(ctx, tx, req, uuid.Nil)
		if err != nil {
			return err
		}
		season, err := tx.Seasons.GetCurrentSeason(ctx)
		if err != nil {
			return err
		}
		created, err := tx.Trades.CreateTrade(ctx, models.Trade{
			SeasonID:     season.ID,
			FromUserID:   req.FromUserID,
			ToUserID:     req.ToUserID,
			ProposalText: req.ProposalText,
		})
		if err != nil {
			return err
		}
		tradeID = created.ID
		for _, playerID := range req.FromPlayerIDs {
			if err := tx.Trades.AddTradePlayer(ctx, models.TradePlayer{
				TradeID:    created.ID,
				PlayerID:   playerID,
				FromTeamID: fromTeam.ID,
				ToTeamID:   toTeam.ID,
			}); err != nil {
				return err
			}
		}
		for _, playerID := range req.ToPlayerIDs {
			if err := tx.Trades.AddTradePlayer(ctx, models.TradePlayer{
				TradeID:    created.ID,
				PlayerID:   playerID,
				FromTeamID: toTeam.ID,
				ToTeamID:   fromTeam.ID,
			}); err != nil {
				return err
			}
		}
		return a.appendTradeEvent(ctx, tx, season.ID, events.EventTypeTradeProposed, req.FromUserID, created, append(req.FromPlayerIDs, req.ToPlayerIDs...))
	})
	result, err := league.AsResult(err)
	if err != nil {
		return CreateTradeResponse{}, err
	}
	resp := CreateTradeResponse{Result: result}
	if result.OK {
		resp.TradeID = &tradeID
		log.Info().
			Str("trade_id", tradeID.String()).
			Str("from_user_id", req.FromUserID.String()).
			Str("to_user_id", req.ToUserID.String()).
			Msg("trade proposed")
	}
	return resp, nil
}

// AcceptTrade settles a pending trade: it re-runs full validation against
// current rosters, then reassigns every player and clears their lineup
// slots. Only the recipient may accept. The accepted event is best-effort
// after commit.
func (a *App) AcceptTrade(ctx context.Context, tradeID, userID uuid.UUID, responseText *string) (league.Result, error) {
	var (
		settled   models.Trade
		playerIDs []uuid.UUID
	)
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		trade, err := tx.Trades.GetTradeForUpdate(ctx, tradeID)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				return league.Reject("trade not found")
			}
			return err
		}
		if trade.Status != models.TradeStatusPending {
			return league.Reject("trade is not pending")
		}
		if trade.ToUserID != userID {
			return league.Reject("only the trade recipient can accept")
		}

		legs, err := tx.Trades.ListTradePlayers(ctx, tradeID)
		if err != nil {
			return err
		}
		fromTeam, err := tx.Rosters.GetTeamByOwner(ctx, trade.FromUserID)
		if err != nil {
			return fmt.Errorf("trade proposer has no team: %w", err)
		}
		req := CreateTradeRequest{
			FromUserID: trade.FromUserID,
			ToUserID:   trade.ToUserID,
		}
		for _, leg := range legs {
			if leg.FromTeamID == fromTeam.ID {
				req.FromPlayerIDs = append(req.FromPlayerIDs, leg.PlayerID)
			} else {
				req.ToPlayerIDs = append(req.ToPlayerIDs, leg.PlayerID)
			}
			playerIDs = append(playerIDs, leg.PlayerID)
		}
		// Rosters may have changed since the proposal; the re-check here
		// is the authoritative guard.
		if _, _, err := a.validateTrade(ctx, tx, req, tradeID); err != nil {
			return err
		}

		ok, err := tx.Trades.Resolve(ctx, tradeID, models.TradeStatusAccepted, responseText)
		if err != nil {
			return err
		}
		if !ok {
			return league.Reject("trade is not pending")
		}
		for _, leg := range legs {
			// TransferPlayer also clears the lineup slot and star.
			if err := tx.Rosters.TransferPlayer(ctx, leg.PlayerID, leg.ToTeamID); err != nil {
				return err
			}
		}
		settled = trade
		return nil
	})
	result, err := league.AsResult(err)
	if err != nil || !result.OK {
		return result, err
	}

	a.emitTradeEvent(ctx, events.EventTypeTradeAccepted, userID, settled, playerIDs)
	log.Info().
		Str("trade_id", tradeID.String()).
		Str("user_id", userID.String()).
		Msg("trade accepted")
	return result, nil
}

// DenyTrade resolves a pending trade without moving players. The proposer
// withdrawing yields cancelled; the recipient declining yields denied.
func (a *App) DenyTrade(ctx context.Context, tradeID, userID uuid.UUID, responseText *string) (league.Result, error) {
	var (
		resolved  models.Trade
		status    models.TradeStatus
		playerIDs []uuid.UUID
	)
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		trade, err := tx.Trades.GetTradeForUpdate(ctx, tradeID)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				return league.Reject("trade not found")
			}
			return err
		}
		if trade.Status != models.TradeStatusPending {
			return league.Reject("trade is not pending")
		}
		switch userID {
		case trade.FromUserID:
			status = models.TradeStatusCancelled
		case trade.ToUserID:
			status = models.TradeStatusDenied
		default:
			return league.Reject("you are not part of this trade")
		}

		ok, err := tx.Trades.Resolve(ctx, tradeID, status, responseText)
		if err != nil {
			return err
		}
		if !ok {
			return league.Reject("trade is not pending")
		}
		legs, err := tx.Trades.ListTradePlayers(ctx, tradeID)
		if err != nil {
			return err
		}
		for _, leg := range legs {
			playerIDs = append(playerIDs, leg.PlayerID)
		}
		resolved = trade
		return nil
	})
	result, err := league.AsResult(err)
	if err != nil || !result.OK {
		return result, err
	}

	eventType := events.EventTypeTradeDenied
	if status == models.TradeStatusCancelled {
		eventType = events.EventTypeTradeCancelled
	}
	a.emitTradeEvent(ctx, eventType, userID, resolved, playerIDs)
	log.Info().
		Str("trade_id", tradeID.String()).
		Str("user_id", userID.String()).
		Str("status", string(status)).
		Msg("trade resolved without settlement")
	return result, nil
}

// validateTrade runs the ordered proposal checks. excludeTradeID skips
// the trade being re-validated when scanning for pending conflicts.
func (a *App) validateTrade(ctx context.Context, tx league.Tx, req CreateTradeRequest, excludeTradeID uuid.UUID) (models.Team, models.Team, error) {
	season, err := tx.Seasons.GetCurrentSeason(ctx)
	if err != nil {
		return models.Team{}, models.Team{}, err
	}
	if season.Phase != models.SeasonPhasePlaying {
		return models.Team{}, models.Team{}, league.Reject("season is not in the playing phase")
	}
	if req.FromUserID == req.ToUserID {
		return models.Team{}, models.Team{}, league.Reject("cannot trade with yourself")
	}
	fromTeam, err := tx.Rosters.GetTeamByOwner(ctx, req.FromUserID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return models.Team{}, models.Team{}, league.Reject("proposing user has no team")
		}
		return models.Team{}, models.Team{}, err
	}
	toTeam, err := tx.Rosters.GetTeamByOwner(ctx, req.ToUserID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return models.Team{}, models.Team{}, league.Reject("receiving user has no team")
		}
		return models.Team{}, models.Team{}, err
	}

	if err := a.checkSidePlayers(ctx, tx, req.FromPlayerIDs, fromTeam); err != nil {
		return models.Team{}, models.Team{}, err
	}
	if err := a.checkSidePlayers(ctx, tx, req.ToPlayerIDs, toTeam); err != nil {
		return models.Team{}, models.Team{}, err
	}
	if len(req.FromPlayerIDs)+len(req.ToPlayerIDs) == 0 {
		return models.Team{}, models.Team{}, league.Reject("trade must include at least one player")
	}

	pendingLegs, err := tx.Trades.ListPendingTradePlayersForUsers(ctx, season.ID, excludeTradeID, []uuid.UUID{req.FromUserID, req.ToUserID})
	if err != nil {
		return models.Team{}, models.Team{}, err
	}
	reserved := make(map[uuid.UUID]bool, len(pendingLegs))
	for _, leg := range pendingLegs {
		reserved[leg.PlayerID] = true
	}
	for _, playerID := range append(append([]uuid.UUID{}, req.FromPlayerIDs...), req.ToPlayerIDs...) {
		if reserved[playerID] {
			return models.Team{}, models.Team{}, league.Reject("player is already part of a pending trade")
		}
	}

	fromCount, err := tx.Rosters.CountTeamPlayers(ctx, fromTeam.ID)
	if err != nil {
		return models.Team{}, models.Team{}, err
	}
	toCount, err := tx.Rosters.CountTeamPlayers(ctx, toTeam.ID)
	if err != nil {
		return models.Team{}, models.Team{}, err
	}
	fromAfter := int(fromCount) - len(req.FromPlayerIDs) + len(req.ToPlayerIDs)
	toAfter := int(toCount) - len(req.ToPlayerIDs) + len(req.FromPlayerIDs)
	if fromAfter < season.Settings.LineupSize || toAfter < season.Settings.LineupSize {
		return models.Team{}, models.Team{}, league.Reject("trade would leave a team below the minimum roster size")
	}
	if fromAfter > season.Settings.TeamSize || toAfter > season.Settings.TeamSize {
		return models.Team{}, models.Team{}, league.Reject("trade would put a team over the roster limit")
	}
	return fromTeam, toTeam, nil
}

// checkSidePlayers verifies ownership and captain protection for one
// side of the trade.
func (a *App) checkSidePlayers(ctx context.Context, tx league.Tx, playerIDs []uuid.UUID, team models.Team) error {
	for _, playerID := range playerIDs {
		player, err := tx.Rosters.GetPlayer(ctx, playerID)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				return league.Reject("player not found")
			}
			return err
		}
		if player.TeamID == nil || *player.TeamID != team.ID {
			return league.Reject("player %s is not on the offering team", player.Name)
		}
		if team.CaptainID != nil && *team.CaptainID == playerID {
			return league.Reject("team captain %s cannot be traded", player.Name)
		}
	}
	return nil
}

func (a *App) appendTradeEvent(ctx context.Context, tx league.Tx, seasonID uuid.UUID, eventType events.EventType, actorID uuid.UUID, trade models.Trade, playerIDs []uuid.UUID) error {
	payload, err := a.marshalTradePayload(eventType, actorID, trade, playerIDs)
	if err != nil {
		return err
	}
	if _, err := tx.Events.Append(ctx, events.LeagueEvent{
		SeasonID: seasonID,
		Type:     eventType,
		ActorID:  actorID,
		Payload:  payload,
	}); err != nil {
		return err
	}
	return nil
}

// emitTradeEvent appends a trade event in its own transaction after the
// settlement committed. Failures are logged and swallowed so auxiliary
// logging cannot undo a settled trade.
func (a *App) emitTradeEvent(ctx context.Context, eventType events.EventType, actorID uuid.UUID, trade models.Trade, playerIDs []uuid.UUID) {
	err := a.runner.RunTx(ctx, func(tx league.Tx) error {
		return a.appendTradeEvent(ctx, tx, trade.SeasonID, eventType, actorID, trade, playerIDs)
	})
	if err != nil {
		log.Warn().Err(err).
			Str("trade_id", trade.ID.String()).
			Str("event_type", string(eventType)).
			Msg("failed to append trade event")
	}
}

func (a *App) marshalTradePayload(eventType events.EventType, actorID uuid.UUID, trade models.Trade, playerIDs []uuid.UUID) ([]byte, error) {
	ids := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		ids = append(ids, id.String())
	}
	payload, err := json.Marshal(events.TradePayload{
		TradeID:    trade.ID.String(),
		ActorID:    actorID.String(),
		FromUserID: trade.FromUserID.String(),
		ToUserID:   trade.ToUserID.String(),
		PlayerIDs:  ids,
		OccurredAt: a.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return payload, nil
}
