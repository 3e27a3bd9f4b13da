package models

import (
	"time"

	"github.com/google/uuid"
)

// TradeStatus defines the trade state machine:
// pending -> accepted | denied | cancelled, all terminal.
type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "PENDING"
	TradeStatusAccepted  TradeStatus = "ACCEPTED"
	TradeStatusDenied    TradeStatus = "DENIED"
	TradeStatusCancelled TradeStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are allowed.
func (s TradeStatus) Terminal() bool {
	return s == TradeStatusAccepted || s == TradeStatusDenied || s == TradeStatusCancelled
}

// Trade is a proposed multi-player swap between two users' teams. Immutable
// once terminal.
type Trade struct {
	ID           uuid.UUID     `json:"id"`
	SeasonID     uuid.UUID     `json:"season_id"`
	FromUserID   uuid.UUID     `json:"from_user_id"`
	ToUserID     uuid.UUID     `json:"to_user_id"`
	Status       TradeStatus   `json:"status"`
	ProposalText *string       `json:"proposal_text,omitempty"`
	ResponseText *string       `json:"response_text,omitempty"`
	Players      []TradePlayer `json:"players,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	ResolvedAt   *time.Time    `json:"resolved_at,omitempty"`
}

// TradePlayer is one player changing hands within a trade; direction is
// encoded by FromTeamID -> ToTeamID.
type TradePlayer struct {
	ID         uuid.UUID `json:"id"`
	TradeID    uuid.UUID `json:"trade_id"`
	PlayerID   uuid.UUID `json:"player_id"`
	FromTeamID uuid.UUID `json:"from_team_id"`
	ToTeamID   uuid.UUID `json:"to_team_id"`
}
