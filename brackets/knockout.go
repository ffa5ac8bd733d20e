package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-progression/models"
)

// StageName labels a knockout round by how many participants enter it.
func StageName(matchesInRound int) string {
	switch entrants := matchesInRound * 2; entrants {
	case 2:
		return models.StageFinal
	case 4:
		return models.StageSemifinal
	case 8:
		return models.StageQuarter
	default:
		return fmt.Sprintf("round of %d", entrants)
	}
}

// NextSlot maps the index of a match in its round to the index of the match
// its winner feeds in the following round, and the side it lands on.
func NextSlot(index int) (int, models.Slot) {
	if index%2 == 0 {
		return index / 2, models.SlotA
	}
	return index / 2, models.SlotB
}

// RoundSizes returns the match count of each knockout round for the given
// number of entrants: ceil(n/2), then ceil(previous/2) until one remains.
func RoundSizes(entrants int) []int {
	if entrants < 2 {
		return nil
	}
	sizes := []int{(entrants + 1) / 2}
	for sizes[len(sizes)-1] > 1 {
		prev := sizes[len(sizes)-1]
		sizes = append(sizes, (prev+1)/2)
	}
	return sizes
}

// knockoutRounds builds an elimination tree. The first round is filled from
// firstRound (nil entries stay open); later rounds start empty and are linked
// to their feeders through NextUID and WinnerToSlot.
func knockoutRounds(entrants int, firstRound []*int, roundOffset int) [][]*BracketMatch {
	sizes := RoundSizes(entrants)
	rounds := make([][]*BracketMatch, len(sizes))

	for r, size := range sizes {
		round := roundOffset + r + 1
		stage := StageName(size)
		rounds[r] = make([]*BracketMatch, size)
		for i := 0; i < size; i++ {
			bm := &BracketMatch{
				UID:          fmt.Sprintf("R%dM%d", round, i+1),
				Round:        round,
				OrderInRound: i + 1,
				Stage:        stage,
			}
			if r == 0 && firstRound != nil {
				bm.SlotA = firstRound[2*i]
				if 2*i+1 < len(firstRound) {
					bm.SlotB = firstRound[2*i+1]
				}
				bm.IsBye = bm.SlotA != nil && bm.SlotB == nil
			}
			rounds[r][i] = bm
		}
	}

	for r := 0; r+1 < len(rounds); r++ {
		for i, bm := range rounds[r] {
			next, slot := NextSlot(i)
			uid := rounds[r+1][next].UID
			bm.NextUID = &uid
			bm.WinnerToSlot = slot
		}
	}
	return rounds
}

func flatten(rounds [][]*BracketMatch) []*BracketMatch {
	var out []*BracketMatch
	for _, round := range rounds {
		out = append(out, round...)
	}
	return out
}
