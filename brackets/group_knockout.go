package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-progression/models"
)

const maxGroups = 26

type GroupKnockoutGenerator struct{}

func NewGroupKnockoutGenerator() Generator {
	return &GroupKnockoutGenerator{}
}

func (g *GroupKnockoutGenerator) Name() string {
	return "GroupStageKnockout"
}

// GroupLabel returns the stage label of the i-th group: "group A", "group B"...
func GroupLabel(i int) string {
	return models.StageGroupPrefix + string(rune('A'+i))
}

// SplitGroups deals participants into groups by registration index modulo
// the group count.
func SplitGroups(ids []int, groupCount int) [][]int {
	groups := make([][]int, groupCount)
	for i, id := range ids {
		groups[i%groupCount] = append(groups[i%groupCount], id)
	}
	return groups
}

// ValidateGroups checks group settings against the participant count.
func ValidateGroups(participants int, s models.GroupSettings) error {
	if s.GroupCount < 1 || s.GroupCount > maxGroups {
		return fmt.Errorf("%w: group count must be between 1 and %d", ErrInvalidGroupSettings, maxGroups)
	}
	if participants < 2*s.GroupCount {
		return fmt.Errorf("%w: %d groups need at least %d participants, found %d",
			ErrInvalidGroupSettings, s.GroupCount, 2*s.GroupCount, participants)
	}
	smallest := participants / s.GroupCount
	if s.QualifiersPerGroup < 1 || s.QualifiersPerGroup >= smallest {
		return fmt.Errorf("%w: qualifiers per group must be between 1 and %d", ErrInvalidGroupSettings, smallest-1)
	}
	if s.GroupCount*s.QualifiersPerGroup < 2 {
		return fmt.Errorf("%w: the knockout stage needs at least two qualifiers", ErrInvalidGroupSettings)
	}
	return nil
}

// Generate plays a round robin inside each group, then appends empty
// knockout rounds for the qualifiers. Group round r of every group shares
// round number r; knockout rounds follow the longest group schedule.
func (g *GroupKnockoutGenerator) Generate(ctx context.Context, params Params) (*Schedule, error) {
	ids := participantIDs(params.Participants)
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrNotEnoughParticipants, len(ids))
	}
	settings := params.Competition.Groups
	if err := ValidateGroups(len(ids), settings); err != nil {
		return nil, err
	}

	var matches []*BracketMatch
	groupRounds := 0
	for gi, group := range SplitGroups(ids, settings.GroupCount) {
		label := GroupLabel(gi)
		rounds := circleRounds(group)
		if len(rounds) > groupRounds {
			groupRounds = len(rounds)
		}
		for r, pairs := range rounds {
			for i, p := range pairs {
				matches = append(matches, &BracketMatch{
					UID:          fmt.Sprintf("%c-R%dM%d", 'A'+gi, r+1, i+1),
					Round:        r + 1,
					OrderInRound: i + 1,
					Stage:        label,
					SlotA:        intPtr(p[0]),
					SlotB:        intPtr(p[1]),
				})
			}
		}
	}

	qualifiers := settings.GroupCount * settings.QualifiersPerGroup
	knockout := knockoutRounds(qualifiers, nil, groupRounds)
	matches = append(matches, flatten(knockout)...)

	return &Schedule{Matches: matches, TotalRounds: groupRounds + len(knockout)}, nil
}
