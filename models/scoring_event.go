package models

import "time"

type EventKind string

const (
	EventNormal     EventKind = "normal"
	EventPenalty    EventKind = "penalty"
	EventOwnAction  EventKind = "own_action"
	EventFreeAction EventKind = "free_action"
)

func (k EventKind) IsValid() bool {
	switch k {
	case EventNormal, EventPenalty, EventOwnAction, EventFreeAction:
		return true
	}
	return false
}

// ScoringEvent is one entry of the per-match ledger. The XP and achievement
// columns record exactly what the event granted so it can be reversed.
type ScoringEvent struct {
	ID                      int       `json:"id" db:"id"`
	MatchID                 int       `json:"match_id" db:"match_id"`
	ScoringCompetitorID     int       `json:"scoring_competitor_id" db:"scoring_competitor_id"`
	BenefitingParticipantID int       `json:"benefiting_participant_id" db:"benefiting_participant_id"`
	Minute                  *int      `json:"minute,omitempty" db:"minute"`
	Kind                    EventKind `json:"kind" db:"kind"`
	AssistCompetitorID      *int      `json:"assist_competitor_id,omitempty" db:"assist_competitor_id"`
	ScorerXP                int       `json:"scorer_xp" db:"scorer_xp"`
	ScorerAchievements      []string  `json:"scorer_achievements" db:"scorer_achievements"`
	AssistXP                int       `json:"assist_xp" db:"assist_xp"`
	AssistAchievements      []string  `json:"assist_achievements" db:"assist_achievements"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
}

type CardSeverity string

const (
	CardMinor CardSeverity = "minor"
	CardMajor CardSeverity = "major"
)

func (s CardSeverity) IsValid() bool {
	return s == CardMinor || s == CardMajor
}

type CardEvent struct {
	ID            int          `json:"id" db:"id"`
	MatchID       int          `json:"match_id" db:"match_id"`
	CompetitorID  int          `json:"competitor_id" db:"competitor_id"`
	ParticipantID int          `json:"participant_id" db:"participant_id"`
	Severity      CardSeverity `json:"severity" db:"severity"`
	Minute        *int         `json:"minute,omitempty" db:"minute"`
	XP            int          `json:"xp" db:"xp"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}
