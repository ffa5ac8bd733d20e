package progression

import "github.com/Dosada05/tournament-progression/models"

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// StatField names a cumulative counter of models.CompetitorStats.
type StatField string

const (
	StatScored            StatField = "scored"
	StatAssisted          StatField = "assisted"
	StatCardsMinor        StatField = "cards_minor"
	StatCardsMajor        StatField = "cards_major"
	StatGamesPlayed       StatField = "games_played"
	StatWins              StatField = "wins"
	StatPenaltiesScored   StatField = "penalties_scored"
	StatFreeActionsScored StatField = "free_actions_scored"
)

func statValue(s models.CompetitorStats, f StatField) int {
	switch f {
	case StatScored:
		return s.Scored
	case StatAssisted:
		return s.Assisted
	case StatCardsMinor:
		return s.CardsMinor
	case StatCardsMajor:
		return s.CardsMajor
	case StatGamesPlayed:
		return s.GamesPlayed
	case StatWins:
		return s.Wins
	case StatPenaltiesScored:
		return s.PenaltiesScored
	case StatFreeActionsScored:
		return s.FreeActionsScored
	}
	return 0
}

// InMatch aggregates what a competitor did in the match being processed.
type InMatch struct {
	ScoredInMatch            int  `json:"scored_in_match"`
	AssistedInMatch          int  `json:"assisted_in_match"`
	ReceivedMajorCardInMatch bool `json:"received_major_card_in_match"`
	WonCompetition           bool `json:"won_competition"`
	// TopScorer marks the leader of the scorer ranking of a competition
	// that just completed.
	TopScorer bool `json:"top_scorer"`
}

type InMatchKind string

const (
	InMatchMultiScore      InMatchKind = "multi_score"
	InMatchSuperMultiScore InMatchKind = "super_multi_score"
	InMatchCleanExcellence InMatchKind = "clean_excellence"
	InMatchFairPlay        InMatchKind = "fair_play"
	InMatchGentleman       InMatchKind = "gentleman"
	InMatchCompetitionWon  InMatchKind = "competition_won"
	InMatchTopScorer       InMatchKind = "top_scorer"
)

// Condition is a closed set of predicates; see Qualifies for the
// interpretation of each variant.
type Condition interface {
	isCondition()
}

type ThresholdCondition struct {
	Field StatField
	Min   int
}

type CompositeThreshold struct {
	Fields []StatField
	Mins   []int
}

type InMatchCondition struct {
	Kind InMatchKind
}

func (ThresholdCondition) isCondition() {}
func (CompositeThreshold) isCondition() {}
func (InMatchCondition) isCondition()   {}

type AchievementDefinition struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	XPReward    int       `json:"xp_reward"`
	Rarity      Rarity    `json:"rarity"`
	Condition   Condition `json:"-"`
}

var catalog = []AchievementDefinition{
	{ID: "first_score", Name: "First Score", Description: "Score for the first time", XPReward: 50, Rarity: RarityCommon, Condition: ThresholdCondition{StatScored, 1}},
	{ID: "scorer_5", Name: "Scorer", Description: "Score 5 times", XPReward: 100, Rarity: RarityCommon, Condition: ThresholdCondition{StatScored, 5}},
	{ID: "scorer_10", Name: "Sharpshooter", Description: "Score 10 times", XPReward: 250, Rarity: RarityRare, Condition: ThresholdCondition{StatScored, 10}},
	{ID: "multi_score", Name: "Multi Score", Description: "Score 3 times in one match", XPReward: 200, Rarity: RarityRare, Condition: InMatchCondition{InMatchMultiScore}},
	{ID: "super_multi_score", Name: "Super Multi Score", Description: "Score 4 times in one match", XPReward: 400, Rarity: RarityEpic, Condition: InMatchCondition{InMatchSuperMultiScore}},
	{ID: "first_assist", Name: "First Assist", Description: "Assist for the first time", XPReward: 50, Rarity: RarityCommon, Condition: ThresholdCondition{StatAssisted, 1}},
	{ID: "playmaker", Name: "Playmaker", Description: "Assist 5 times", XPReward: 150, Rarity: RarityRare, Condition: ThresholdCondition{StatAssisted, 5}},
	{ID: "maestro", Name: "Maestro", Description: "Assist 10 times", XPReward: 300, Rarity: RarityEpic, Condition: ThresholdCondition{StatAssisted, 10}},
	{ID: "debut", Name: "Debut", Description: "Play your first match", XPReward: 25, Rarity: RarityCommon, Condition: ThresholdCondition{StatGamesPlayed, 1}},
	{ID: "regular", Name: "Regular", Description: "Play 5 matches", XPReward: 75, Rarity: RarityCommon, Condition: ThresholdCondition{StatGamesPlayed, 5}},
	{ID: "veteran", Name: "Veteran", Description: "Play 10 matches", XPReward: 150, Rarity: RarityRare, Condition: ThresholdCondition{StatGamesPlayed, 10}},
	{ID: "legend", Name: "Legend", Description: "Play 20 matches", XPReward: 300, Rarity: RarityEpic, Condition: ThresholdCondition{StatGamesPlayed, 20}},
	{ID: "first_win", Name: "First Win", Description: "Win a match", XPReward: 50, Rarity: RarityCommon, Condition: ThresholdCondition{StatWins, 1}},
	{ID: "winner", Name: "Winner", Description: "Win 5 matches", XPReward: 100, Rarity: RarityRare, Condition: ThresholdCondition{StatWins, 5}},
	{ID: "champion", Name: "Champion", Description: "Win a competition", XPReward: 1000, Rarity: RarityLegendary, Condition: InMatchCondition{InMatchCompetitionWon}},
	{ID: "top_scorer", Name: "Top Scorer", Description: "Finish a competition as its top scorer", XPReward: 500, Rarity: RarityLegendary, Condition: InMatchCondition{InMatchTopScorer}},
	{ID: "fair_play", Name: "Fair Play", Description: "Play 5 matches without a card", XPReward: 100, Rarity: RarityRare, Condition: InMatchCondition{InMatchFairPlay}},
	{ID: "gentleman", Name: "Gentleman", Description: "Play 10 matches without a major card", XPReward: 150, Rarity: RarityRare, Condition: InMatchCondition{InMatchGentleman}},
	{ID: "clean_excellence", Name: "Clean Excellence", Description: "Score and assist in a match without a major card", XPReward: 250, Rarity: RarityEpic, Condition: InMatchCondition{InMatchCleanExcellence}},
	{ID: "complete_player", Name: "Complete Player", Description: "Reach 5 scores and 5 assists", XPReward: 300, Rarity: RarityEpic, Condition: CompositeThreshold{Fields: []StatField{StatScored, StatAssisted}, Mins: []int{5, 5}}},
	{ID: "free_action_master", Name: "Free Action Master", Description: "Score 3 free actions", XPReward: 200, Rarity: RarityRare, Condition: ThresholdCondition{StatFreeActionsScored, 3}},
	{ID: "penalty_expert", Name: "Penalty Expert", Description: "Score 5 penalties", XPReward: 150, Rarity: RarityRare, Condition: ThresholdCondition{StatPenaltiesScored, 5}},
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, def := range catalog {
		idx[def.ID] = i
	}
	return idx
}()

// Catalog returns a copy of the achievement registry in evaluation order.
func Catalog() []AchievementDefinition {
	out := make([]AchievementDefinition, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(id string) (AchievementDefinition, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return AchievementDefinition{}, false
	}
	return catalog[i], true
}

// Qualifies reports whether the state satisfies the definition's condition.
func Qualifies(def AchievementDefinition, stats models.CompetitorStats, match InMatch) bool {
	switch c := def.Condition.(type) {
	case ThresholdCondition:
		return statValue(stats, c.Field) >= c.Min
	case CompositeThreshold:
		if len(c.Fields) == 0 || len(c.Fields) != len(c.Mins) {
			return false
		}
		for i, f := range c.Fields {
			if statValue(stats, f) < c.Mins[i] {
				return false
			}
		}
		return true
	case InMatchCondition:
		switch c.Kind {
		case InMatchMultiScore:
			return match.ScoredInMatch >= 3
		case InMatchSuperMultiScore:
			return match.ScoredInMatch >= 4
		case InMatchCleanExcellence:
			return match.ScoredInMatch > 0 && match.AssistedInMatch > 0 && !match.ReceivedMajorCardInMatch
		case InMatchFairPlay:
			return stats.GamesPlayed >= 5 && stats.CardsMinor == 0 && stats.CardsMajor == 0
		case InMatchGentleman:
			return stats.GamesPlayed >= 10 && stats.CardsMajor == 0
		case InMatchCompetitionWon:
			return match.WonCompetition
		case InMatchTopScorer:
			return match.TopScorer
		}
	}
	return false
}

// Evaluate returns the catalog entries whose conditions hold and whose ids
// are not in alreadyUnlocked, in catalog order.
func Evaluate(stats models.CompetitorStats, match InMatch, alreadyUnlocked []string) []AchievementDefinition {
	unlocked := make(map[string]struct{}, len(alreadyUnlocked))
	for _, id := range alreadyUnlocked {
		unlocked[id] = struct{}{}
	}

	var out []AchievementDefinition
	for _, def := range catalog {
		if _, ok := unlocked[def.ID]; ok {
			continue
		}
		if Qualifies(def, stats, match) {
			out = append(out, def)
		}
	}
	return out
}

// TotalReward sums the XP rewards of the given definitions.
func TotalReward(defs []AchievementDefinition) int {
	total := 0
	for _, d := range defs {
		total += d.XPReward
	}
	return total
}

func IDs(defs []AchievementDefinition) []string {
	ids := make([]string, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	return ids
}
