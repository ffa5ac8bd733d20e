package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Dosada05/tournament-progression/models"
)

func lineNames(lines []CompetitorLine) []string {
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		names = append(names, l.Name)
	}
	return names
}

func hasAchievement(gain GamificationSummary, id string) bool {
	for _, a := range gain.NewAchievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

func TestGetStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c, ps := env.scheduled(t, roundRobin(), 3)
	ana := env.competitor(t, "Ana", ps[0].ID)
	bea := env.competitor(t, "Bea", ps[0].ID)
	cat := env.competitor(t, "Cat", ps[1].ID)
	env.competitor(t, "Dan", ps[2].ID)
	m := env.matchBetween(t, c.ID, ps[0].ID, ps[1].ID)

	events := []RecordEventInput{
		{ScoringCompetitorID: ana.ID, BenefitingParticipantID: ps[0].ID, Kind: models.EventNormal, AssistCompetitorID: &bea.ID},
		{ScoringCompetitorID: ana.ID, BenefitingParticipantID: ps[0].ID, Kind: models.EventPenalty},
		{ScoringCompetitorID: cat.ID, BenefitingParticipantID: ps[0].ID, Kind: models.EventOwnAction},
	}
	for _, in := range events {
		in.MatchID = m.ID
		if _, err := env.scoring.RecordEvent(ctx, in); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}
	if _, err := env.scoring.RecordCard(ctx, RecordCardInput{
		MatchID: m.ID, CompetitorID: cat.ID, ParticipantID: ps[1].ID, Severity: models.CardMinor,
	}); err != nil {
		t.Fatalf("RecordCard: %v", err)
	}
	env.finalizeFor(t, m, ps[0].ID, 3, 0)

	stats, err := env.competitions.GetStats(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	boards := []struct {
		name  string
		lines []CompetitorLine
		want  []string
	}{
		{"top scorers", stats.TopScorers, []string{"Ana", "Bea", "Cat", "Dan"}},
		{"top assisters", stats.TopAssisters, []string{"Bea", "Ana", "Cat", "Dan"}},
		{"fair play", stats.FairPlay, []string{"Ana", "Bea", "Dan", "Cat"}},
		{"top xp", stats.TopXP, []string{"Ana", "Bea", "Cat", "Dan"}},
	}
	for _, b := range boards {
		t.Run(b.name, func(t *testing.T) {
			if !sameStrings(lineNames(b.lines), b.want) {
				t.Fatalf("order = %v, want %v", lineNames(b.lines), b.want)
			}
		})
	}

	top := stats.TopScorers[0]
	if top.Scored != 2 || top.GamesPlayed != 1 || top.ParticipantName != "P1" {
		t.Fatalf("top scorer line = %+v", top)
	}
	if stats.TopScorers[2].Scored != 0 {
		t.Fatalf("own action counted for the scorer: %+v", stats.TopScorers[2])
	}

	s := stats.Summary
	if s.TotalScores != 3 || s.TotalMatches != 1 || s.TotalCompetitors != 4 || s.AvgScoresPerMatch != 3 {
		t.Fatalf("summary = %+v", s)
	}
	if s.TotalMinorCards != 1 || s.TotalMajorCards != 0 {
		t.Fatalf("cards = %d minor, %d major", s.TotalMinorCards, s.TotalMajorCards)
	}
	if s.ScoresByKind[models.EventNormal] != 1 || s.ScoresByKind[models.EventPenalty] != 1 || s.ScoresByKind[models.EventOwnAction] != 1 {
		t.Fatalf("scores by kind = %v", s.ScoresByKind)
	}

	if _, err := env.competitions.GetStats(ctx, 424242); !errors.Is(err, ErrCompetitionNotFound) {
		t.Fatalf("unknown competition error = %v", err)
	}
}

func TestRankLinesCapsAndBreaksTies(t *testing.T) {
	var lines []CompetitorLine
	for i := 12; i >= 1; i-- {
		lines = append(lines, CompetitorLine{CompetitorID: i, Name: fmt.Sprintf("C%02d", i)})
	}
	lines = append(lines, CompetitorLine{CompetitorID: 99, Name: "C03"})
	lines[5].Scored = 1

	ranked := rankLines(lines, byScored)
	if len(ranked) != leaderboardSize {
		t.Fatalf("len = %d, want %d", len(ranked), leaderboardSize)
	}
	want := []int{7, 1, 2, 3, 99, 4, 5, 6, 8, 9}
	for i, id := range want {
		if ranked[i].CompetitorID != id {
			t.Fatalf("rank %d = competitor %d, want %d (%v)", i, ranked[i].CompetitorID, id, lineNames(ranked))
		}
	}
}

func TestTopScorerAwardedWhenCompetitionCompletes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c, ps := env.scheduled(t, roundRobin(), 2)
	ana := env.competitor(t, "Ana", ps[0].ID)
	cat := env.competitor(t, "Cat", ps[1].ID)
	m := env.matchBetween(t, c.ID, ps[0].ID, ps[1].ID)

	for _, scorer := range []struct{ competitor, participant int }{{ana.ID, ps[0].ID}, {ana.ID, ps[0].ID}, {cat.ID, ps[1].ID}} {
		if _, err := env.scoring.RecordEvent(ctx, RecordEventInput{
			MatchID: m.ID, ScoringCompetitorID: scorer.competitor, BenefitingParticipantID: scorer.participant, Kind: models.EventNormal,
		}); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}

	res := env.finalizeFor(t, m, ps[0].ID, 2, 1)
	for _, gain := range res.CompetitorGains {
		want := gain.CompetitorID == ana.ID
		if hasAchievement(gain, "top_scorer") != want {
			t.Fatalf("competitor %d top scorer award = %v, want %v", gain.CompetitorID, !want, want)
		}
	}
	if p := env.progress(t, ana.ID); !p.HasAchievement("top_scorer") {
		t.Fatalf("ana achievements = %v", p.Achievements)
	}
	if p := env.progress(t, cat.ID); p.HasAchievement("top_scorer") {
		t.Fatalf("cat achievements = %v", p.Achievements)
	}
}

func TestTopScorerAwardedOutsideLastMatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c, ps := env.scheduled(t, roundRobin(), 3)
	ana := env.competitor(t, "Ana", ps[0].ID)
	cat := env.competitor(t, "Cat", ps[1].ID)

	first := env.matchBetween(t, c.ID, ps[0].ID, ps[1].ID)
	if _, err := env.scoring.RecordEvent(ctx, RecordEventInput{
		MatchID: first.ID, ScoringCompetitorID: ana.ID, BenefitingParticipantID: ps[0].ID, Kind: models.EventNormal,
	}); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	env.finalizeFor(t, first, ps[0].ID, 1, 0)
	if res := env.finalizeFor(t, env.matchBetween(t, c.ID, ps[0].ID, ps[2].ID), ps[0].ID, 1, 0); len(res.CompetitorGains) != 1 {
		t.Fatalf("gains before completion = %+v", res.CompetitorGains)
	}

	last := env.finalizeFor(t, env.matchBetween(t, c.ID, ps[1].ID, ps[2].ID), ps[1].ID, 1, 0)
	if len(last.CompetitorGains) != 2 {
		t.Fatalf("gains = %+v, want cat and ana", last.CompetitorGains)
	}
	award := last.CompetitorGains[1]
	if award.CompetitorID != ana.ID || award.XPGained != 500 || !hasAchievement(award, "top_scorer") {
		t.Fatalf("top scorer gain = %+v", award)
	}
	if hasAchievement(last.CompetitorGains[0], "top_scorer") || last.CompetitorGains[0].CompetitorID != cat.ID {
		t.Fatalf("cat gain = %+v", last.CompetitorGains[0])
	}

	overview, err := env.competitions.GetOverview(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if overview.Competition.Status != models.CompetitionCompleted {
		t.Fatalf("status = %s, want completed", overview.Competition.Status)
	}
}
