package models

import "time"

type Standing struct {
	ParticipantID int       `json:"participant_id" db:"participant_id"`
	CompetitionID int       `json:"competition_id" db:"competition_id"`
	GamesPlayed   int       `json:"games_played" db:"games_played"`
	Wins          int       `json:"wins" db:"wins"`
	Draws         int       `json:"draws" db:"draws"`
	Losses        int       `json:"losses" db:"losses"`
	ScoreFor      int       `json:"score_for" db:"score_for"`
	ScoreAgainst  int       `json:"score_against" db:"score_against"`
	Points        int       `json:"points" db:"points"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Participant *Participant `json:"participant,omitempty" db:"-"`
}

func (s Standing) ScoreDifference() int {
	return s.ScoreFor - s.ScoreAgainst
}

// StandingDelta is the change a single finalized match applies to a standing.
type StandingDelta struct {
	ParticipantID int `json:"participant_id"`
	GamesPlayed   int `json:"games_played"`
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	ScoreFor      int `json:"score_for"`
	ScoreAgainst  int `json:"score_against"`
	Points        int `json:"points"`
}

func (s *Standing) Apply(d StandingDelta) {
	s.GamesPlayed += d.GamesPlayed
	s.Wins += d.Wins
	s.Draws += d.Draws
	s.Losses += d.Losses
	s.ScoreFor += d.ScoreFor
	s.ScoreAgainst += d.ScoreAgainst
	s.Points += d.Points
}
