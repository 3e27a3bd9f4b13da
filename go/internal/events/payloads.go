package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType names the live-update events consumed by connected clients.
// Clients treat these as refresh hints and re-fetch state; payloads carry
// the acting user and affected entity, not authoritative state.
type EventType string

const (
	EventTypeDraftUpdate       EventType = "draft-update"
	EventTypePreDraftUpdate    EventType = "pre-draft-update"
	EventTypeDraftOrderUpdate  EventType = "draft-order-update"
	EventTypeSeasonStateUpdate EventType = "season-state-update"
	EventTypePlayerStarUpdate  EventType = "player-star-update"
	EventTypeTradeProposed     EventType = "trade-proposed"
	EventTypeTradeAccepted     EventType = "trade-accepted"
	EventTypeTradeDenied       EventType = "trade-denied"
	EventTypeTradeCancelled    EventType = "trade-cancelled"
)

// DraftPickPayload is the payload for a draft-update event.
type DraftPickPayload struct {
	UserID     string    `json:"user_id"`
	TeamID     string    `json:"team_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	PickNumber int       `json:"pick_number"`
	AutoDraft  bool      `json:"auto_draft"`
	PickedAt   time.Time `json:"picked_at"`
}

// PreDraftPayload is the payload for a pre-draft-update event.
type PreDraftPayload struct {
	UserID   string  `json:"user_id"`
	PlayerID *string `json:"player_id,omitempty"` // nil when cleared
}

// DraftOrderPayload is the payload for a draft-order-update event.
type DraftOrderPayload struct {
	ActorID string   `json:"actor_id"`
	UserIDs []string `json:"user_ids"` // new order by turn index
}

// SeasonStatePayload is the payload for a season-state-update event.
type SeasonStatePayload struct {
	ActorID          string  `json:"actor_id"`
	Phase            string  `json:"phase"`
	CurrentDrafterID *string `json:"current_drafter_id,omitempty"`
}

// PlayerStarPayload is the payload for a player-star-update event.
type PlayerStarPayload struct {
	UserID    string `json:"user_id"`
	PlayerID  string `json:"player_id"`
	IsStarred bool   `json:"is_starred"`
}

// TradePayload is the payload for trade-proposed, trade-accepted,
// trade-denied and trade-cancelled events.
type TradePayload struct {
	TradeID    string    `json:"trade_id"`
	ActorID    string    `json:"actor_id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	PlayerIDs  []string  `json:"player_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LeagueEvent is a persisted event log entry. Unsent entries (SentAt == nil)
// form the publish backlog for the outbox relay.
type LeagueEvent struct {
	ID        uuid.UUID `json:"id"`
	SeasonID  uuid.UUID `json:"season_id"`
	Type      EventType `json:"type"`
	ActorID   uuid.UUID `json:"actor_id"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}
