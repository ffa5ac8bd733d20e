package brackets

import (
	"context"
	"fmt"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate pairs every participant with every other participant once using
// the circle method, so nobody plays twice in the same round.
func (g *RoundRobinGenerator) Generate(ctx context.Context, params Params) (*Schedule, error) {
	ids := participantIDs(params.Participants)
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrNotEnoughParticipants, len(ids))
	}

	rounds := circleRounds(ids)
	matches := make([]*BracketMatch, 0, len(ids)*(len(ids)-1)/2)
	for r, pairs := range rounds {
		for i, p := range pairs {
			matches = append(matches, &BracketMatch{
				UID:          fmt.Sprintf("R%dM%d", r+1, i+1),
				Round:        r + 1,
				OrderInRound: i + 1,
				SlotA:        intPtr(p[0]),
				SlotB:        intPtr(p[1]),
			})
		}
	}

	return &Schedule{Matches: matches, TotalRounds: len(rounds)}, nil
}

// circleRounds fixes the first position and rotates the rest one step per
// round. An odd field gets an empty seat; whoever meets it sits the round out.
func circleRounds(ids []int) [][][2]int {
	seats := make([]*int, 0, len(ids)+1)
	for _, id := range ids {
		seats = append(seats, intPtr(id))
	}
	padded := len(seats)%2 == 1
	if padded {
		seats = append(seats, nil)
	}

	n := len(seats)
	rounds := make([][][2]int, 0, n-1)
	for r := 0; r < n-1; r++ {
		pairs := make([][2]int, 0, n/2)
		for i := 0; i < n/2; i++ {
			home, away := seats[i], seats[n-1-i]
			if home == nil || away == nil {
				continue
			}
			if !padded && r%2 == 1 {
				home, away = away, home
			}
			pairs = append(pairs, [2]int{*home, *away})
		}
		rounds = append(rounds, pairs)

		tail := seats[n-1]
		copy(seats[2:], seats[1:n-1])
		seats[1] = tail
	}
	return rounds
}
