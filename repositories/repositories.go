package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Dosada05/tournament-progression/models"
)

var (
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrStandingNotFound    = errors.New("standing not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrEventNotFound       = errors.New("scoring event not found")
	ErrCardNotFound        = errors.New("card event not found")
	ErrCompetitorNotFound  = errors.New("competitor not found")
	ErrProgressNotFound    = errors.New("competitor progress not found")
	ErrRosterNotFound      = errors.New("roster entry not found")

	// ErrMatchNotOpen is returned when a conditional match transition finds
	// the match already in a closed state.
	ErrMatchNotOpen = errors.New("match is not open")
	// ErrScheduleAlreadyStamped is returned when another transaction stamped
	// the schedule first.
	ErrScheduleAlreadyStamped = errors.New("schedule already generated")

	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrDuplicate        = errors.New("record already exists")
	ErrCheckViolation   = errors.New("record violates a check constraint")
)

type CompetitionRepository interface {
	Create(ctx context.Context, c *models.Competition) error
	GetByID(ctx context.Context, id int) (*models.Competition, error)
	// GetForUpdate locks the competition row until the transaction ends.
	GetForUpdate(ctx context.Context, id int) (*models.Competition, error)
	List(ctx context.Context, status *models.CompetitionStatus) ([]*models.Competition, error)
	// MarkScheduleGenerated stamps the schedule only if it was never stamped.
	MarkScheduleGenerated(ctx context.Context, id int, totalRounds int, at time.Time) error
	UpdateStatus(ctx context.Context, id int, status models.CompetitionStatus) error
	// SetChampion records the winner and completes the competition.
	SetChampion(ctx context.Context, id int, participantID int) error
}

type ParticipantRepository interface {
	// Create inserts the participant together with a zeroed standing.
	Create(ctx context.Context, p *models.Participant) error
	GetByID(ctx context.Context, id int) (*models.Participant, error)
	ListByCompetition(ctx context.Context, competitionID int) ([]*models.Participant, error)
	GetStanding(ctx context.Context, participantID int) (*models.Standing, error)
	ApplyStandingDelta(ctx context.Context, delta models.StandingDelta) error
	// ListStandings returns standings ranked by points, score difference,
	// score for and participant id.
	ListStandings(ctx context.Context, competitionID int) ([]*models.Standing, error)
}

type MatchRepository interface {
	Create(ctx context.Context, m *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	GetForUpdate(ctx context.Context, id int) (*models.Match, error)
	ListByCompetition(ctx context.Context, competitionID int) ([]*models.Match, error)
	CountByCompetition(ctx context.Context, competitionID int) (int, error)
	UpdateNextMatchInfo(ctx context.Context, matchID int, nextMatchID *int, winnerToSlot *models.Slot) error
	SetSlot(ctx context.Context, matchID int, slot models.Slot, participantID int) error
	// MarkLive moves a scheduled match to live. Other states are left as is.
	MarkLive(ctx context.Context, matchID int) error
	// Finish closes an open match with its result, or returns ErrMatchNotOpen.
	Finish(ctx context.Context, matchID int, scoreA, scoreB int, winnerID *int, at time.Time) error
	// CancelBye closes an unplayed bye match, recording who advanced.
	CancelBye(ctx context.Context, matchID int, advancedID int) error
}

type ScoringEventRepository interface {
	Create(ctx context.Context, e *models.ScoringEvent) error
	GetByID(ctx context.Context, id int) (*models.ScoringEvent, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.ScoringEvent, error)
	ListByCompetition(ctx context.Context, competitionID int) ([]*models.ScoringEvent, error)
	// UpdateLedger rewrites the XP and achievement columns of an event.
	UpdateLedger(ctx context.Context, e *models.ScoringEvent) error
	Delete(ctx context.Context, id int) error
}

type CardRepository interface {
	Create(ctx context.Context, c *models.CardEvent) error
	GetByID(ctx context.Context, id int) (*models.CardEvent, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.CardEvent, error)
	ListByCompetition(ctx context.Context, competitionID int) ([]*models.CardEvent, error)
	Delete(ctx context.Context, id int) error
}

type CompetitorRepository interface {
	// Create inserts the competitor together with empty progress.
	Create(ctx context.Context, c *models.Competitor) error
	GetByID(ctx context.Context, id int) (*models.Competitor, error)
	GetProgress(ctx context.Context, competitorID int) (*models.CompetitorProgress, error)
	GetProgressForUpdate(ctx context.Context, competitorID int) (*models.CompetitorProgress, error)
	SaveProgress(ctx context.Context, p *models.CompetitorProgress) error
}

type RosterRepository interface {
	// Add fills CompetitionID from the participant. A competitor already on
	// any roster of that competition yields ErrDuplicate.
	Add(ctx context.Context, e *models.RosterEntry) error
	FindInCompetition(ctx context.Context, competitionID, competitorID int) (*models.RosterEntry, error)
	IsMember(ctx context.Context, competitorID, participantID int) (bool, error)
	ListCompetitors(ctx context.Context, participantID int) ([]int, error)
	ListByCompetition(ctx context.Context, competitionID int) ([]*models.RosterEntry, error)
}

// Repositories groups every repository bound to the same executor.
type Repositories struct {
	Competitions CompetitionRepository
	Participants ParticipantRepository
	Matches      MatchRepository
	Events       ScoringEventRepository
	Cards        CardRepository
	Competitors  CompetitorRepository
	Rosters      RosterRepository
}

// Store hands out repositories and runs units of work atomically. If fn
// returns an error or panics, nothing it wrote is kept.
type Store interface {
	Repos() Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
