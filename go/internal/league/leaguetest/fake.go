// Package leaguetest provides an in-memory implementation of the league
// storage contracts for engine tests. RunTx snapshots the whole state
// and restores it when the callback fails, mirroring transactional
// rollback.
package leaguetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

type Store struct {
	mu sync.Mutex

	Seasons    map[uuid.UUID]models.Season
	CurrentID  uuid.UUID
	Characters map[uuid.UUID]models.Character
	Players    map[uuid.UUID]models.Player
	Teams      map[uuid.UUID]models.Team
	Order      map[uuid.UUID][]models.DraftOrderEntry
	Trades     map[uuid.UUID]models.Trade
	TradeLegs  map[uuid.UUID][]models.TradePlayer
	Events     []events.LeagueEvent
	Users      map[uuid.UUID]models.User

	now time.Time
}

func NewStore() *Store {
	return &Store{
		Seasons:    make(map[uuid.UUID]models.Season),
		Characters: make(map[uuid.UUID]models.Character),
		Players:    make(map[uuid.UUID]models.Player),
		Teams:      make(map[uuid.UUID]models.Team),
		Order:      make(map[uuid.UUID][]models.DraftOrderEntry),
		Trades:     make(map[uuid.UUID]models.Trade),
		TradeLegs:  make(map[uuid.UUID][]models.TradePlayer),
		Users:      make(map[uuid.UUID]models.User),
		now:        time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}

// RunTx implements league.Runner with snapshot-and-restore semantics.
func (s *Store) RunTx(ctx context.Context, fn func(tx league.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.clone()
	err := fn(league.Tx{
		Seasons:    s,
		Rosters:    s,
		DraftOrder: s,
		Trades:     s,
		Events:     s,
		Users:      s,
	})
	if err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *Store) clone() *Store {
	c := NewStore()
	c.CurrentID = s.CurrentID
	for k, v := range s.Seasons {
		c.Seasons[k] = v
	}
	for k, v := range s.Characters {
		c.Characters[k] = v
	}
	for k, v := range s.Players {
		c.Players[k] = v
	}
	for k, v := range s.Teams {
		c.Teams[k] = v
	}
	for k, v := range s.Order {
		c.Order[k] = append([]models.DraftOrderEntry(nil), v...)
	}
	for k, v := range s.Trades {
		c.Trades[k] = v
	}
	for k, v := range s.TradeLegs {
		c.TradeLegs[k] = append([]models.TradePlayer(nil), v...)
	}
	c.Events = append([]events.LeagueEvent(nil), s.Events...)
	for k, v := range s.Users {
		c.Users[k] = v
	}
	return c
}

func (s *Store) restore(snapshot *Store) {
	s.Seasons = snapshot.Seasons
	s.CurrentID = snapshot.CurrentID
	s.Characters = snapshot.Characters
	s.Players = snapshot.Players
	s.Teams = snapshot.Teams
	s.Order = snapshot.Order
	s.Trades = snapshot.Trades
	s.TradeLegs = snapshot.TradeLegs
	s.Events = snapshot.Events
	s.Users = snapshot.Users
}

// --- league.SeasonStore ---

func (s *Store) CreateSeason(ctx context.Context, settings models.SeasonSettings) (models.Season, error) {
	season := models.Season{
		ID:        uuid.New(),
		Phase:     models.SeasonPhasePreSeason,
		Settings:  settings,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.Seasons[season.ID] = season
	s.CurrentID = season.ID
	return season, nil
}

func (s *Store) GetCurrentSeason(ctx context.Context) (models.Season, error) {
	season, ok := s.Seasons[s.CurrentID]
	if !ok {
		return models.Season{}, fmt.Errorf("current season: %w", league.ErrNotFound)
	}
	return season, nil
}

func (s *Store) GetCurrentSeasonForUpdate(ctx context.Context) (models.Season, error) {
	return s.GetCurrentSeason(ctx)
}

func (s *Store) UpdatePhase(ctx context.Context, seasonID uuid.UUID, phase models.SeasonPhase) error {
	season, ok := s.Seasons[seasonID]
	if !ok {
		return fmt.Errorf("season %s: %w", seasonID, league.ErrNotFound)
	}
	season.Phase = phase
	s.Seasons[seasonID] = season
	return nil
}

func (s *Store) SetCurrentDrafter(ctx context.Context, seasonID uuid.UUID, drafterID *uuid.UUID) error {
	season, ok := s.Seasons[seasonID]
	if !ok {
		return fmt.Errorf("season %s: %w", seasonID, league.ErrNotFound)
	}
	season.CurrentDrafterID = drafterID
	s.Seasons[seasonID] = season
	return nil
}

func (s *Store) UpdateTimer(ctx context.Context, seasonID uuid.UUID, startedAt, pausedAt *time.Time, durationSec int) error {
	season, ok := s.Seasons[seasonID]
	if !ok {
		return fmt.Errorf("season %s: %w", seasonID, league.ErrNotFound)
	}
	season.TimerStartedAt = startedAt
	season.TimerPausedAt = pausedAt
	season.TimerDurationSec = durationSec
	s.Seasons[seasonID] = season
	return nil
}

// --- league.RosterStore ---

func (s *Store) GetPlayer(ctx context.Context, id uuid.UUID) (models.Player, error) {
	player, ok := s.Players[id]
	if !ok {
		return models.Player{}, fmt.Errorf("player %s: %w", id, league.ErrNotFound)
	}
	return player, nil
}

func (s *Store) GetPlayerForUpdate(ctx context.Context, id uuid.UUID) (models.Player, error) {
	return s.GetPlayer(ctx, id)
}

func (s *Store) GetCharacter(ctx context.Context, id uuid.UUID) (models.Character, error) {
	character, ok := s.Characters[id]
	if !ok {
		return models.Character{}, fmt.Errorf("character %s: %w", id, league.ErrNotFound)
	}
	return character, nil
}

func (s *Store) GetTeam(ctx context.Context, id uuid.UUID) (models.Team, error) {
	team, ok := s.Teams[id]
	if !ok {
		return models.Team{}, fmt.Errorf("team %s: %w", id, league.ErrNotFound)
	}
	return team, nil
}

func (s *Store) GetTeamByOwner(ctx context.Context, ownerID uuid.UUID) (models.Team, error) {
	for _, team := range s.Teams {
		if team.OwnerID == ownerID {
			return team, nil
		}
	}
	return models.Team{}, fmt.Errorf("team for owner %s: %w", ownerID, league.ErrNotFound)
}

func (s *Store) ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	var out []models.Player
	for _, player := range s.Players {
		if player.TeamID != nil && *player.TeamID == teamID {
			out = append(out, player)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *Store) CountTeamPlayers(ctx context.Context, teamID uuid.UUID) (int64, error) {
	players, _ := s.ListTeamPlayers(ctx, teamID)
	return int64(len(players)), nil
}

func (s *Store) AssignFreeAgent(ctx context.Context, playerID, teamID uuid.UUID) (bool, error) {
	player, ok := s.Players[playerID]
	if !ok || player.TeamID != nil {
		return false, nil
	}
	player.TeamID = &teamID
	s.Players[playerID] = player
	return true, nil
}

func (s *Store) SetLineupSlot(ctx context.Context, playerID uuid.UUID, position *models.FieldingPosition, battingOrder *int) error {
	player, ok := s.Players[playerID]
	if !ok {
		return fmt.Errorf("player %s: %w", playerID, league.ErrNotFound)
	}
	player.Position = position
	player.BattingOrder = battingOrder
	s.Players[playerID] = player
	return nil
}

func (s *Store) SetPlayerStarred(ctx context.Context, playerID uuid.UUID, starred bool) error {
	player, ok := s.Players[playerID]
	if !ok {
		return fmt.Errorf("player %s: %w", playerID, league.ErrNotFound)
	}
	player.IsStarred = starred
	s.Players[playerID] = player
	return nil
}

func (s *Store) UnstarTeamPlayers(ctx context.Context, teamID uuid.UUID) error {
	for id, player := range s.Players {
		if player.TeamID != nil && *player.TeamID == teamID {
			player.IsStarred = false
			s.Players[id] = player
		}
	}
	return nil
}

func (s *Store) SetTeamCaptain(ctx context.Context, teamID uuid.UUID, captainID *uuid.UUID) error {
	team, ok := s.Teams[teamID]
	if !ok {
		return fmt.Errorf("team %s: %w", teamID, league.ErrNotFound)
	}
	team.CaptainID = captainID
	s.Teams[teamID] = team
	return nil
}

func (s *Store) TransferPlayer(ctx context.Context, playerID, teamID uuid.UUID) error {
	player, ok := s.Players[playerID]
	if !ok {
		return fmt.Errorf("player %s: %w", playerID, league.ErrNotFound)
	}
	player.TeamID = &teamID
	player.Position = nil
	player.BattingOrder = nil
	player.IsStarred = false
	s.Players[playerID] = player
	return nil
}

func (s *Store) WipeRosters(ctx context.Context) error {
	for id, player := range s.Players {
		player.TeamID = nil
		player.Position = nil
		player.BattingOrder = nil
		player.IsStarred = false
		s.Players[id] = player
	}
	return nil
}

func (s *Store) ClearTeamCaptains(ctx context.Context) error {
	for id, team := range s.Teams {
		team.CaptainID = nil
		s.Teams[id] = team
	}
	return nil
}

func (s *Store) CountAssignedPlayers(ctx context.Context) (int64, error) {
	var count int64
	for _, player := range s.Players {
		if player.TeamID != nil {
			count++
		}
	}
	return count, nil
}

// --- league.DraftOrderStore ---

func (s *Store) ListDraftOrder(ctx context.Context, seasonID uuid.UUID) ([]models.DraftOrderEntry, error) {
	order := append([]models.DraftOrderEntry(nil), s.Order[seasonID]...)
	sort.Slice(order, func(i, j int) bool { return order[i].TurnIndex < order[j].TurnIndex })
	return order, nil
}

func (s *Store) GetEntry(ctx context.Context, seasonID, userID uuid.UUID) (models.DraftOrderEntry, error) {
	for _, entry := range s.Order[seasonID] {
		if entry.UserID == userID {
			return entry, nil
		}
	}
	return models.DraftOrderEntry{}, fmt.Errorf("draft order entry for user %s: %w", userID, league.ErrNotFound)
}

func (s *Store) InsertEntry(ctx context.Context, seasonID, userID uuid.UUID, turnIndex int) error {
	s.Order[seasonID] = append(s.Order[seasonID], models.DraftOrderEntry{
		UserID:    userID,
		SeasonID:  seasonID,
		TurnIndex: turnIndex,
	})
	return nil
}

func (s *Store) UpdateTurnIndex(ctx context.Context, seasonID, userID uuid.UUID, turnIndex int) error {
	for i, entry := range s.Order[seasonID] {
		if entry.UserID == userID {
			s.Order[seasonID][i].TurnIndex = turnIndex
			return nil
		}
	}
	return fmt.Errorf("draft order entry for user %s: %w", userID, league.ErrNotFound)
}

func (s *Store) SetPreDraft(ctx context.Context, seasonID, userID uuid.UUID, playerID *uuid.UUID) (bool, error) {
	for i, entry := range s.Order[seasonID] {
		if entry.UserID == userID {
			s.Order[seasonID][i].PreDraftPlayerID = playerID
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ClearPreDraftForPlayer(ctx context.Context, seasonID, playerID uuid.UUID) error {
	for i, entry := range s.Order[seasonID] {
		if entry.PreDraftPlayerID != nil && *entry.PreDraftPlayerID == playerID {
			s.Order[seasonID][i].PreDraftPlayerID = nil
		}
	}
	return nil
}

// --- league.TradeStore ---

func (s *Store) CreateTrade(ctx context.Context, trade models.Trade) (models.Trade, error) {
	if trade.ID == uuid.Nil {
		trade.ID = uuid.New()
	}
	trade.Status = models.TradeStatusPending
	trade.CreatedAt = s.now
	s.Trades[trade.ID] = trade
	return trade, nil
}

func (s *Store) AddTradePlayer(ctx context.Context, leg models.TradePlayer) error {
	if leg.ID == uuid.Nil {
		leg.ID = uuid.New()
	}
	s.TradeLegs[leg.TradeID] = append(s.TradeLegs[leg.TradeID], leg)
	return nil
}

func (s *Store) GetTrade(ctx context.Context, id uuid.UUID) (models.Trade, error) {
	trade, ok := s.Trades[id]
	if !ok {
		return models.Trade{}, fmt.Errorf("trade %s: %w", id, league.ErrNotFound)
	}
	return trade, nil
}

func (s *Store) GetTradeForUpdate(ctx context.Context, id uuid.UUID) (models.Trade, error) {
	return s.GetTrade(ctx, id)
}

func (s *Store) ListTradePlayers(ctx context.Context, tradeID uuid.UUID) ([]models.TradePlayer, error) {
	return append([]models.TradePlayer(nil), s.TradeLegs[tradeID]...), nil
}

func (s *Store) ListPendingTradesForUser(ctx context.Context, seasonID, userID uuid.UUID) ([]models.Trade, error) {
	var out []models.Trade
	for _, trade := range s.Trades {
		if trade.SeasonID == seasonID && trade.Status == models.TradeStatusPending &&
			(trade.FromUserID == userID || trade.ToUserID == userID) {
			out = append(out, trade)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *Store) ListTrades(ctx context.Context, seasonID uuid.UUID, limit, offset int32) ([]models.Trade, error) {
	var all []models.Trade
	for _, trade := range s.Trades {
		if trade.SeasonID == seasonID {
			all = append(all, trade)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	if int(offset) >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if int(limit) < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *Store) Resolve(ctx context.Context, id uuid.UUID, status models.TradeStatus, responseText *string) (bool, error) {
	trade, ok := s.Trades[id]
	if !ok || trade.Status != models.TradeStatusPending {
		return false, nil
	}
	trade.Status = status
	trade.ResponseText = responseText
	resolvedAt := s.now
	trade.ResolvedAt = &resolvedAt
	s.Trades[id] = trade
	return true, nil
}

func (s *Store) ListPendingTradePlayersForUsers(ctx context.Context, seasonID, excludeTradeID uuid.UUID, userIDs []uuid.UUID) ([]models.TradePlayer, error) {
	involved := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		involved[id] = true
	}
	var out []models.TradePlayer
	for _, trade := range s.Trades {
		if trade.SeasonID != seasonID || trade.Status != models.TradeStatusPending || trade.ID == excludeTradeID {
			continue
		}
		if !involved[trade.FromUserID] && !involved[trade.ToUserID] {
			continue
		}
		out = append(out, s.TradeLegs[trade.ID]...)
	}
	return out, nil
}

// --- league.EventStore ---

func (s *Store) Append(ctx context.Context, event events.LeagueEvent) (events.LeagueEvent, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = s.now
	s.Events = append(s.Events, event)
	return event, nil
}

func (s *Store) CountByType(ctx context.Context, seasonID uuid.UUID, eventType events.EventType) (int64, error) {
	var count int64
	for _, event := range s.Events {
		if event.SeasonID == seasonID && event.Type == eventType {
			count++
		}
	}
	return count, nil
}

func (s *Store) FetchUnsent(ctx context.Context, limit int32) ([]events.LeagueEvent, error) {
	var out []events.LeagueEvent
	for _, event := range s.Events {
		if event.SentAt == nil {
			out = append(out, event)
			if int32(len(out)) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *Store) MarkSent(ctx context.Context, id uuid.UUID) error {
	for i, event := range s.Events {
		if event.ID == id {
			sentAt := s.now
			s.Events[i].SentAt = &sentAt
			return nil
		}
	}
	return fmt.Errorf("league event %s: %w", id, league.ErrNotFound)
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (events.LeagueEvent, error) {
	for _, event := range s.Events {
		if event.ID == id {
			return event, nil
		}
	}
	return events.LeagueEvent{}, fmt.Errorf("league event %s: %w", id, league.ErrNotFound)
}

func (s *Store) ListSeasonEvents(ctx context.Context, seasonID uuid.UUID, limit, offset int32) ([]events.LeagueEvent, error) {
	var out []events.LeagueEvent
	for i := len(s.Events) - 1; i >= 0; i-- {
		if s.Events[i].SeasonID == seasonID {
			out = append(out, s.Events[i])
		}
	}
	if int(offset) >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if int(limit) < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// --- league.UserStore ---

func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = s.now
	s.Users[user.ID] = user
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, ok := s.Users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", id, league.ErrNotFound)
	}
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, user := range s.Users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
