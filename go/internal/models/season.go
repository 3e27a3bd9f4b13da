package models

import (
	"time"

	"github.com/google/uuid"
)

// SeasonPhase defines where the league is in its yearly cycle.
type SeasonPhase string

const (
	SeasonPhasePreSeason  SeasonPhase = "PRE_SEASON"
	SeasonPhaseDrafting   SeasonPhase = "DRAFTING"
	SeasonPhasePlaying    SeasonPhase = "PLAYING"
	SeasonPhasePostSeason SeasonPhase = "POST_SEASON"
)

// SeasonSettings holds JSONB configuration for a season.
type SeasonSettings struct {
	TeamSize   int `json:"team_size"`   // max roster size per team
	LineupSize int `json:"lineup_size"` // starting lineup slots, <= TeamSize
}

// DefaultSeasonSettings returns the standard roster dimensions.
func DefaultSeasonSettings() SeasonSettings {
	return SeasonSettings{
		TeamSize:   10,
		LineupSize: 9,
	}
}

// Season represents the single active season record.
// CurrentDrafterID is non-nil iff Phase == SeasonPhaseDrafting.
type Season struct {
	ID               uuid.UUID      `json:"id"`
	Phase            SeasonPhase    `json:"phase"`
	CurrentDrafterID *uuid.UUID     `json:"current_drafter_id,omitempty"`
	Settings         SeasonSettings `json:"settings"`
	TimerStartedAt   *time.Time     `json:"timer_started_at,omitempty"`
	TimerPausedAt    *time.Time     `json:"timer_paused_at,omitempty"`
	TimerDurationSec int            `json:"timer_duration_sec"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
