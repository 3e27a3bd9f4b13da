package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is owned by exactly one user. CaptainID references one of the team's
// own players; once set it is only cleared by a roster wipe.
type Team struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	Name      string     `json:"name"`
	CaptainID *uuid.UUID `json:"captain_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
