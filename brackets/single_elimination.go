package brackets

import (
	"context"
	"fmt"
	"math"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate pairs participants sequentially in round one. A trailing unpaired
// participant gets a bye match with an open second slot. Later rounds are
// created empty and filled as winners advance.
func (g *SingleEliminationGenerator) Generate(ctx context.Context, params Params) (*Schedule, error) {
	ids := participantIDs(params.Participants)
	n := len(ids)
	if n < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrNotEnoughParticipants, n)
	}

	seeds := make([]*int, n)
	for i, id := range ids {
		seeds[i] = intPtr(id)
	}

	rounds := knockoutRounds(n, seeds, 0)
	totalRounds := int(math.Ceil(math.Log2(float64(n))))
	if len(rounds) != totalRounds {
		return nil, fmt.Errorf("internal error: built %d rounds for %d participants, expected %d", len(rounds), n, totalRounds)
	}

	return &Schedule{Matches: flatten(rounds), TotalRounds: totalRounds}, nil
}
