package models

import (
	"github.com/google/uuid"
)

// DraftOrderEntry is one participant's slot in a season's draft order.
// TurnIndex values form a dense 1..N permutation per season and are
// reassigned after any swap. PreDraftPlayerID is a queued pick that is
// consumed, invalidated, or explicitly unset.
type DraftOrderEntry struct {
	UserID           uuid.UUID  `json:"user_id"`
	SeasonID         uuid.UUID  `json:"season_id"`
	TurnIndex        int        `json:"turn_index"`
	PreDraftPlayerID *uuid.UUID `json:"pre_draft_player_id,omitempty"`
}
