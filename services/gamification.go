package services

import (
	"context"
	"slices"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/progression"
	"github.com/Dosada05/tournament-progression/repositories"
)

// GamificationSummary reports what one operation did to a competitor.
type GamificationSummary struct {
	CompetitorID    int                                 `json:"competitor_id"`
	XPGained        int                                 `json:"xp_gained"`
	Level           progression.LevelInfo               `json:"level"`
	NewAchievements []progression.AchievementDefinition `json:"new_achievements"`
}

// lockProgress locks the progress rows of the given competitors in ascending
// id order. Every ledger and finalize path goes through it so two
// transactions touching the same competitors cannot deadlock.
func lockProgress(ctx context.Context, repos repositories.Repositories, competitorIDs ...int) (map[int]*models.CompetitorProgress, error) {
	ids := slices.Clone(competitorIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	locked := make(map[int]*models.CompetitorProgress, len(ids))
	for _, id := range ids {
		p, err := repos.Competitors.GetProgressForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = p
	}
	return locked, nil
}

// inMatchStats aggregates a competitor's activity in one match.
func inMatchStats(competitorID int, events []*models.ScoringEvent, cards []*models.CardEvent) progression.InMatch {
	var im progression.InMatch
	for _, e := range events {
		if e.ScoringCompetitorID == competitorID {
			im.ScoredInMatch++
		}
		if e.AssistCompetitorID != nil && *e.AssistCompetitorID == competitorID {
			im.AssistedInMatch++
		}
	}
	for _, c := range cards {
		if c.CompetitorID == competitorID && c.Severity == models.CardMajor {
			im.ReceivedMajorCardInMatch = true
		}
	}
	return im
}

// award evaluates the catalog against the already mutated stats, records the
// new achievements and applies baseXP plus their rewards. It returns the XP
// delta actually applied after the zero floor.
func award(p *models.CompetitorProgress, baseXP int, match progression.InMatch) (int, []progression.AchievementDefinition) {
	unlocked := progression.Evaluate(p.Stats, match, p.Achievements)
	p.Achievements = append(p.Achievements, progression.IDs(unlocked)...)
	applied := p.AddXP(baseXP + progression.TotalReward(unlocked))
	return applied, unlocked
}

// revoke undoes an award recorded as appliedXP plus achievement ids. Each
// achievement is checked against the current state: one that still holds is
// kept together with its reward, the rest are removed.
func revoke(p *models.CompetitorProgress, appliedXP int, achievementIDs []string, match progression.InMatch) (removed, kept []progression.AchievementDefinition) {
	p.RevertXP(appliedXP)

	for _, id := range achievementIDs {
		if !p.HasAchievement(id) {
			continue
		}
		def, ok := progression.Lookup(id)
		if ok && progression.Qualifies(def, p.Stats, match) {
			p.AddXP(def.XPReward)
			kept = append(kept, def)
			continue
		}
		p.RemoveAchievement(id)
		removed = append(removed, def)
	}
	return removed, kept
}

// adoptAchievements moves kept achievements onto the competitor's latest
// remaining event of the match, so reversing that event re-checks them. It
// returns the event to persist, or nil when the competitor has no other event
// in the match and the achievements rest on finished matches.
func adoptAchievements(competitorID int, kept []progression.AchievementDefinition, remaining []*models.ScoringEvent) *models.ScoringEvent {
	if len(kept) == 0 {
		return nil
	}
	for i := len(remaining) - 1; i >= 0; i-- {
		e := remaining[i]
		switch {
		case e.ScoringCompetitorID == competitorID:
			e.ScorerAchievements = append(e.ScorerAchievements, progression.IDs(kept)...)
			e.ScorerXP += progression.TotalReward(kept)
			return e
		case e.AssistCompetitorID != nil && *e.AssistCompetitorID == competitorID:
			e.AssistAchievements = append(e.AssistAchievements, progression.IDs(kept)...)
			e.AssistXP += progression.TotalReward(kept)
			return e
		}
	}
	return nil
}

func summarize(p *models.CompetitorProgress, applied int, unlocked []progression.AchievementDefinition) GamificationSummary {
	if unlocked == nil {
		unlocked = []progression.AchievementDefinition{}
	}
	return GamificationSummary{
		CompetitorID:    p.CompetitorID,
		XPGained:        applied,
		Level:           progression.LevelOf(p.XP),
		NewAchievements: unlocked,
	}
}

func decrementFloor(v *int) {
	if *v > 0 {
		*v--
	}
}
