package models

import "time"

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchFinished  MatchStatus = "finished"
	MatchCanceled  MatchStatus = "canceled"
)

// IsClosed reports whether the match accepts no further events or results.
func (s MatchStatus) IsClosed() bool {
	return s == MatchFinished || s == MatchCanceled
}

// Slot identifies one side of a match.
type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

const (
	StageGroupPrefix = "group "
	StageFinal       = "final"
	StageSemifinal   = "semifinal"
	StageQuarter     = "quarterfinal"
)

type Match struct {
	ID                  int         `json:"id" db:"id"`
	CompetitionID       int         `json:"competition_id" db:"competition_id"`
	Round               int         `json:"round" db:"round"`
	OrderInRound        int         `json:"order_in_round" db:"order_in_round"`
	Stage               string      `json:"stage,omitempty" db:"stage"`
	SlotA               *int        `json:"slot_a,omitempty" db:"slot_a"`
	SlotB               *int        `json:"slot_b,omitempty" db:"slot_b"`
	Status              MatchStatus `json:"status" db:"status"`
	ScoreA              *int        `json:"score_a,omitempty" db:"score_a"`
	ScoreB              *int        `json:"score_b,omitempty" db:"score_b"`
	WinnerParticipantID *int        `json:"winner_participant_id,omitempty" db:"winner_participant_id"`
	IsBye               bool        `json:"is_bye" db:"is_bye"`
	NextMatchID         *int        `json:"next_match_id,omitempty" db:"next_match_id"`
	WinnerToSlot        *Slot       `json:"winner_to_slot,omitempty" db:"winner_to_slot"`
	FinishedAt          *time.Time  `json:"finished_at,omitempty" db:"finished_at"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
}

func (m *Match) HasBothSlots() bool {
	return m.SlotA != nil && m.SlotB != nil
}

// Side returns the slot a participant occupies in the match.
func (m *Match) Side(participantID int) (Slot, bool) {
	if m.SlotA != nil && *m.SlotA == participantID {
		return SlotA, true
	}
	if m.SlotB != nil && *m.SlotB == participantID {
		return SlotB, true
	}
	return "", false
}

// Opponent returns the participant on the other side, if any.
func (m *Match) Opponent(participantID int) *int {
	side, ok := m.Side(participantID)
	if !ok {
		return nil
	}
	if side == SlotA {
		return m.SlotB
	}
	return m.SlotA
}

// IsGroupStage reports whether the match belongs to a group of a group stage.
func (m *Match) IsGroupStage() bool {
	return len(m.Stage) > len(StageGroupPrefix) && m.Stage[:len(StageGroupPrefix)] == StageGroupPrefix
}
