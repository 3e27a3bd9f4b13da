package models

import (
	"time"

	"github.com/google/uuid"
)

// FieldingPosition is one of the nine defensive positions.
type FieldingPosition string

const (
	PositionPitcher     FieldingPosition = "P"
	PositionCatcher     FieldingPosition = "C"
	PositionFirstBase   FieldingPosition = "1B"
	PositionSecondBase  FieldingPosition = "2B"
	PositionThirdBase   FieldingPosition = "3B"
	PositionShortstop   FieldingPosition = "SS"
	PositionLeftField   FieldingPosition = "LF"
	PositionCenterField FieldingPosition = "CF"
	PositionRightField  FieldingPosition = "RF"
)

// FieldingPositions is the fixed position set, each usable by at most one
// player per team.
var FieldingPositions = []FieldingPosition{
	PositionPitcher,
	PositionCatcher,
	PositionFirstBase,
	PositionSecondBase,
	PositionThirdBase,
	PositionShortstop,
	PositionLeftField,
	PositionCenterField,
	PositionRightField,
}

// Character is the immutable stats character a player is built from. It
// determines captain eligibility.
type Character struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	CaptainEligible bool      `json:"captain_eligible"`
}

// Player belongs to at most one team; TeamID == nil means free agent.
// Position and BattingOrder are both nil until the player is slotted into a
// lineup, and are nulled again when the player changes teams.
type Player struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	CharacterID  *uuid.UUID        `json:"character_id,omitempty"`
	TeamID       *uuid.UUID        `json:"team_id,omitempty"`
	Position     *FieldingPosition `json:"position,omitempty"`
	BattingOrder *int              `json:"batting_order,omitempty"`
	IsStarred    bool              `json:"is_starred"`
	CreatedAt    time.Time         `json:"created_at"`
}

// InLineup reports whether the player holds a lineup slot.
func (p *Player) InLineup() bool {
	return p.Position != nil && p.BattingOrder != nil
}
