package services

import (
	"cmp"
	"context"
	"math"
	"slices"
	"strings"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/repositories"
)

const leaderboardSize = 10

// CompetitorLine is one competitor's activity within a single competition.
// XP is the competitor's overall total.
type CompetitorLine struct {
	CompetitorID    int    `json:"competitor_id"`
	Name            string `json:"name"`
	ParticipantID   int    `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	Scored          int    `json:"scored"`
	Assisted        int    `json:"assisted"`
	CardsMinor      int    `json:"cards_minor"`
	CardsMajor      int    `json:"cards_major"`
	GamesPlayed     int    `json:"games_played"`
	XP              int    `json:"xp"`
}

type StatsSummary struct {
	TotalScores       int                      `json:"total_scores"`
	TotalMatches      int                      `json:"total_matches"`
	TotalCompetitors  int                      `json:"total_competitors"`
	AvgScoresPerMatch float64                  `json:"avg_scores_per_match"`
	TotalMinorCards   int                      `json:"total_minor_cards"`
	TotalMajorCards   int                      `json:"total_major_cards"`
	ScoresByKind      map[models.EventKind]int `json:"scores_by_kind"`
}

// CompetitionStats holds the leaderboards of a competition, each capped at
// ten lines.
type CompetitionStats struct {
	CompetitionID int              `json:"competition_id"`
	TopScorers    []CompetitorLine `json:"top_scorers"`
	TopAssisters  []CompetitorLine `json:"top_assisters"`
	FairPlay      []CompetitorLine `json:"fair_play"`
	TopXP         []CompetitorLine `json:"top_xp"`
	Summary       StatsSummary     `json:"summary"`
}

// statsData is the raw ledger of one competition.
type statsData struct {
	participants []*models.Participant
	matches      []*models.Match
	events       []*models.ScoringEvent
	cards        []*models.CardEvent
	roster       []*models.RosterEntry
	competitors  map[int]*models.Competitor
	progress     map[int]*models.CompetitorProgress
}

// loadCompetitors resolves the names and progress of every roster entry.
func (d *statsData) loadCompetitors(ctx context.Context, repos repositories.Repositories, withProgress bool) error {
	d.competitors = make(map[int]*models.Competitor, len(d.roster))
	d.progress = make(map[int]*models.CompetitorProgress, len(d.roster))
	for _, e := range d.roster {
		c, err := repos.Competitors.GetByID(ctx, e.CompetitorID)
		if err != nil {
			return err
		}
		d.competitors[c.ID] = c
		if !withProgress {
			continue
		}
		p, err := repos.Competitors.GetProgress(ctx, c.ID)
		if err != nil {
			return err
		}
		d.progress[c.ID] = p
	}
	return nil
}

// lines aggregates the ledger per rostered competitor. Own actions count in
// the summary but not on the scorer's line.
func (d *statsData) lines() []CompetitorLine {
	participantNames := make(map[int]string, len(d.participants))
	for _, p := range d.participants {
		participantNames[p.ID] = p.Name
	}
	played := make(map[int]int)
	for _, m := range d.matches {
		if m.Status != models.MatchFinished || !m.HasBothSlots() {
			continue
		}
		played[*m.SlotA]++
		played[*m.SlotB]++
	}

	byCompetitor := make(map[int]*CompetitorLine, len(d.roster))
	lines := make([]*CompetitorLine, 0, len(d.roster))
	for _, e := range d.roster {
		line := &CompetitorLine{
			CompetitorID:    e.CompetitorID,
			ParticipantID:   e.ParticipantID,
			ParticipantName: participantNames[e.ParticipantID],
			GamesPlayed:     played[e.ParticipantID],
		}
		if c, ok := d.competitors[e.CompetitorID]; ok {
			line.Name = c.Name
		}
		if p, ok := d.progress[e.CompetitorID]; ok {
			line.XP = p.XP
		}
		byCompetitor[e.CompetitorID] = line
		lines = append(lines, line)
	}

	for _, e := range d.events {
		if line, ok := byCompetitor[e.ScoringCompetitorID]; ok && e.Kind != models.EventOwnAction {
			line.Scored++
		}
		if e.AssistCompetitorID == nil {
			continue
		}
		if line, ok := byCompetitor[*e.AssistCompetitorID]; ok {
			line.Assisted++
		}
	}
	for _, c := range d.cards {
		line, ok := byCompetitor[c.CompetitorID]
		if !ok {
			continue
		}
		if c.Severity == models.CardMajor {
			line.CardsMajor++
		} else {
			line.CardsMinor++
		}
	}

	out := make([]CompetitorLine, len(lines))
	for i, l := range lines {
		out[i] = *l
	}
	return out
}

func (d *statsData) summary() StatsSummary {
	s := StatsSummary{
		TotalScores:      len(d.events),
		TotalCompetitors: len(d.roster),
		ScoresByKind:     make(map[models.EventKind]int),
	}
	for _, m := range d.matches {
		if m.Status == models.MatchFinished {
			s.TotalMatches++
		}
	}
	for _, e := range d.events {
		s.ScoresByKind[e.Kind]++
	}
	for _, c := range d.cards {
		if c.Severity == models.CardMajor {
			s.TotalMajorCards++
		} else {
			s.TotalMinorCards++
		}
	}
	if s.TotalMatches > 0 {
		s.AvgScoresPerMatch = math.Round(float64(s.TotalScores)/float64(s.TotalMatches)*100) / 100
	}
	return s
}

func buildCompetitionStats(competitionID int, d *statsData) *CompetitionStats {
	lines := d.lines()
	return &CompetitionStats{
		CompetitionID: competitionID,
		TopScorers:    rankLines(lines, byScored),
		TopAssisters:  rankLines(lines, byAssisted),
		FairPlay:      rankLines(lines, byFairPlay),
		TopXP:         rankLines(lines, byXP),
		Summary:       d.summary(),
	}
}

func byScored(a, b CompetitorLine) int {
	return cmp.Or(cmp.Compare(b.Scored, a.Scored), cmp.Compare(b.Assisted, a.Assisted))
}

func byAssisted(a, b CompetitorLine) int {
	return cmp.Or(cmp.Compare(b.Assisted, a.Assisted), cmp.Compare(b.Scored, a.Scored))
}

func byFairPlay(a, b CompetitorLine) int {
	return cmp.Or(
		cmp.Compare(a.CardsMajor, b.CardsMajor),
		cmp.Compare(a.CardsMinor, b.CardsMinor),
		cmp.Compare(b.GamesPlayed, a.GamesPlayed),
	)
}

func byXP(a, b CompetitorLine) int {
	return cmp.Compare(b.XP, a.XP)
}

// rankLines sorts by order, then name, then competitor id, and keeps the
// first ten lines.
func rankLines(lines []CompetitorLine, order func(a, b CompetitorLine) int) []CompetitorLine {
	ranked := slices.Clone(lines)
	slices.SortFunc(ranked, func(a, b CompetitorLine) int {
		return cmp.Or(order(a, b), strings.Compare(a.Name, b.Name), cmp.Compare(a.CompetitorID, b.CompetitorID))
	})
	return ranked[:min(len(ranked), leaderboardSize)]
}

// findTopScorer returns the leader of the scorer ranking of a competition,
// if anyone scored. Reads run sequentially so it is safe inside a
// transaction.
func findTopScorer(ctx context.Context, repos repositories.Repositories, competitionID int) (*int, error) {
	d := &statsData{}
	var err error
	if d.events, err = repos.Events.ListByCompetition(ctx, competitionID); err != nil {
		return nil, err
	}
	if d.roster, err = repos.Rosters.ListByCompetition(ctx, competitionID); err != nil {
		return nil, err
	}
	if err := d.loadCompetitors(ctx, repos, false); err != nil {
		return nil, err
	}
	ranked := rankLines(d.lines(), byScored)
	if len(ranked) == 0 || ranked[0].Scored == 0 {
		return nil, nil
	}
	return intPtr(ranked[0].CompetitorID), nil
}
