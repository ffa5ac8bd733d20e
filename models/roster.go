package models

import "time"

// RosterEntry links a competitor to the participant they play for. A
// competitor plays for at most one participant per competition.
type RosterEntry struct {
	ID            int       `json:"id" db:"id"`
	CompetitionID int       `json:"competition_id" db:"competition_id"`
	ParticipantID int       `json:"participant_id" db:"participant_id"`
	CompetitorID  int       `json:"competitor_id" db:"competitor_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
