package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-progression/models"
)

var (
	ErrNotEnoughParticipants = errors.New("at least two participants are required")
	ErrInvalidGroupSettings  = errors.New("invalid group settings")
	ErrUnsupportedFormat     = errors.New("unsupported competition format")
)

type Params struct {
	Competition  *models.Competition
	Participants []*models.Participant
}

// BracketMatch is a match before it is persisted. Links between matches use
// UIDs because database ids are not known yet.
type BracketMatch struct {
	UID          string
	Round        int
	OrderInRound int
	Stage        string

	SlotA *int
	SlotB *int

	IsBye bool

	NextUID      *string
	WinnerToSlot models.Slot
}

type Schedule struct {
	Matches     []*BracketMatch
	TotalRounds int
}

type Generator interface {
	Generate(ctx context.Context, params Params) (*Schedule, error)

	Name() string
}

// ForFormat returns the generator for a competition format.
func ForFormat(format models.CompetitionFormat) (Generator, error) {
	switch format {
	case models.FormatRoundRobin:
		return NewRoundRobinGenerator(), nil
	case models.FormatSingleElimination:
		return NewSingleEliminationGenerator(), nil
	case models.FormatGroupStageKnockout:
		return NewGroupKnockoutGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func participantIDs(participants []*models.Participant) []int {
	ids := make([]int, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}
	return ids
}

func intPtr(v int) *int {
	return &v
}
