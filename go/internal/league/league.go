// Package league defines the storage contracts shared by the season,
// draft, and trade services. Implementations live in internal/store;
// services receive a Runner and never touch the database directly, so
// every mutating operation can run inside a single transaction.
package league

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

// SeasonStore manages the singleton season row and its draft cursor.
type SeasonStore interface {
	CreateSeason(ctx context.Context, settings models.SeasonSettings) (models.Season, error)
	GetCurrentSeason(ctx context.Context) (models.Season, error)
	// GetCurrentSeasonForUpdate row-locks the season so concurrent picks
	// and phase changes serialize on it.
	GetCurrentSeasonForUpdate(ctx context.Context) (models.Season, error)
	UpdatePhase(ctx context.Context, seasonID uuid.UUID, phase models.SeasonPhase) error
	SetCurrentDrafter(ctx context.Context, seasonID uuid.UUID, drafterID *uuid.UUID) error
	UpdateTimer(ctx context.Context, seasonID uuid.UUID, startedAt, pausedAt *time.Time, durationSec int) error
}

// RosterStore manages teams, players, and lineup slots.
type RosterStore interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (models.Player, error)
	GetPlayerForUpdate(ctx context.Context, id uuid.UUID) (models.Player, error)
	GetCharacter(ctx context.Context, id uuid.UUID) (models.Character, error)
	GetTeam(ctx context.Context, id uuid.UUID) (models.Team, error)
	GetTeamByOwner(ctx context.Context, ownerID uuid.UUID) (models.Team, error)
	ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	CountTeamPlayers(ctx context.Context, teamID uuid.UUID) (int64, error)
	// AssignFreeAgent claims a player for a team only if the player is
	// still unowned. Returns false when another pick got there first.
	AssignFreeAgent(ctx context.Context, playerID, teamID uuid.UUID) (bool, error)
	SetLineupSlot(ctx context.Context, playerID uuid.UUID, position *models.FieldingPosition, battingOrder *int) error
	SetPlayerStarred(ctx context.Context, playerID uuid.UUID, starred bool) error
	UnstarTeamPlayers(ctx context.Context, teamID uuid.UUID) error
	SetTeamCaptain(ctx context.Context, teamID uuid.UUID, captainID *uuid.UUID) error
	TransferPlayer(ctx context.Context, playerID, teamID uuid.UUID) error
	WipeRosters(ctx context.Context) error
	ClearTeamCaptains(ctx context.Context) error
	CountAssignedPlayers(ctx context.Context) (int64, error)
}

// DraftOrderStore manages the per-season turn permutation and queued
// pre-draft picks.
type DraftOrderStore interface {
	ListDraftOrder(ctx context.Context, seasonID uuid.UUID) ([]models.DraftOrderEntry, error)
	GetEntry(ctx context.Context, seasonID, userID uuid.UUID) (models.DraftOrderEntry, error)
	InsertEntry(ctx context.Context, seasonID, userID uuid.UUID, turnIndex int) error
	UpdateTurnIndex(ctx context.Context, seasonID, userID uuid.UUID, turnIndex int) error
	// SetPreDraft returns false when the user has no seat in the order.
	SetPreDraft(ctx context.Context, seasonID, userID uuid.UUID, playerID *uuid.UUID) (bool, error)
	ClearPreDraftForPlayer(ctx context.Context, seasonID, playerID uuid.UUID) error
}

// TradeStore manages trade proposals and their player legs.
type TradeStore interface {
	CreateTrade(ctx context.Context, trade models.Trade) (models.Trade, error)
	AddTradePlayer(ctx context.Context, leg models.TradePlayer) error
	GetTrade(ctx context.Context, id uuid.UUID) (models.Trade, error)
	GetTradeForUpdate(ctx context.Context, id uuid.UUID) (models.Trade, error)
	ListTradePlayers(ctx context.Context, tradeID uuid.UUID) ([]models.TradePlayer, error)
	ListPendingTradesForUser(ctx context.Context, seasonID, userID uuid.UUID) ([]models.Trade, error)
	ListTrades(ctx context.Context, seasonID uuid.UUID, limit, offset int32) ([]models.Trade, error)
	// Resolve flips a PENDING trade to a terminal status. Returns false
	// when the trade was already resolved by a concurrent call.
	Resolve(ctx context.Context, id uuid.UUID, status models.TradeStatus, responseText *string) (bool, error)
	ListPendingTradePlayersForUsers(ctx context.Context, seasonID, excludeTradeID uuid.UUID, userIDs []uuid.UUID) ([]models.TradePlayer, error)
}

// EventStore is the append-only league event log. Rows double as the
// transactional outbox: sent_at is NULL until a publisher delivers them.
type EventStore interface {
	Append(ctx context.Context, event events.LeagueEvent) (events.LeagueEvent, error)
	CountByType(ctx context.Context, seasonID uuid.UUID, eventType events.EventType) (int64, error)
	FetchUnsent(ctx context.Context, limit int32) ([]events.LeagueEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (events.LeagueEvent, error)
	ListSeasonEvents(ctx context.Context, seasonID uuid.UUID, limit, offset int32) ([]events.LeagueEvent, error)
}

// UserStore manages league member accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Tx bundles every store bound to one open transaction.
type Tx struct {
	Seasons    SeasonStore
	Rosters    RosterStore
	DraftOrder DraftOrderStore
	Trades     TradeStore
	Events     EventStore
	Users      UserStore
}

// Runner executes fn inside a single database transaction. fn receives
// stores bound to that transaction; returning an error rolls it back.
type Runner interface {
	RunTx(ctx context.Context, fn func(tx Tx) error) error
}
