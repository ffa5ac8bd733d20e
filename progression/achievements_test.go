package progression

import (
	"testing"

	"github.com/Dosada05/tournament-progression/models"
)

func ids(defs []AchievementDefinition) map[string]bool {
	out := make(map[string]bool, len(defs))
	for _, d := range defs {
		out[d.ID] = true
	}
	return out
}

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name  string
		stats models.CompetitorStats
		match InMatch
		want  []string
		never []string
	}{
		{
			name:  "first score",
			stats: models.CompetitorStats{Scored: 1},
			match: InMatch{ScoredInMatch: 1},
			want:  []string{"first_score"},
			never: []string{"scorer_5", "multi_score"},
		},
		{
			name:  "multi score",
			stats: models.CompetitorStats{Scored: 3},
			match: InMatch{ScoredInMatch: 3},
			want:  []string{"first_score", "multi_score"},
			never: []string{"super_multi_score"},
		},
		{
			name:  "super multi score",
			stats: models.CompetitorStats{Scored: 4},
			match: InMatch{ScoredInMatch: 4},
			want:  []string{"multi_score", "super_multi_score"},
		},
		{
			name:  "composite needs both",
			stats: models.CompetitorStats{Scored: 9, Assisted: 4},
			never: []string{"complete_player"},
		},
		{
			name:  "composite met",
			stats: models.CompetitorStats{Scored: 5, Assisted: 5},
			want:  []string{"complete_player", "scorer_5", "playmaker"},
		},
		{
			name:  "clean excellence",
			stats: models.CompetitorStats{Scored: 1, Assisted: 1},
			match: InMatch{ScoredInMatch: 1, AssistedInMatch: 1},
			want:  []string{"clean_excellence"},
		},
		{
			name:  "clean excellence spoiled by major card",
			stats: models.CompetitorStats{Scored: 1, Assisted: 1, CardsMajor: 1},
			match: InMatch{ScoredInMatch: 1, AssistedInMatch: 1, ReceivedMajorCardInMatch: true},
			never: []string{"clean_excellence"},
		},
		{
			name:  "fair play",
			stats: models.CompetitorStats{GamesPlayed: 5},
			want:  []string{"fair_play", "debut", "regular"},
			never: []string{"gentleman"},
		},
		{
			name:  "fair play lost to a minor card",
			stats: models.CompetitorStats{GamesPlayed: 10, CardsMinor: 1},
			want:  []string{"gentleman", "veteran"},
			never: []string{"fair_play"},
		},
		{
			name:  "champion",
			stats: models.CompetitorStats{GamesPlayed: 3, Wins: 3},
			match: InMatch{WonCompetition: true},
			want:  []string{"champion", "first_win"},
			never: []string{"top_scorer"},
		},
		{
			name:  "top scorer",
			stats: models.CompetitorStats{Scored: 4, GamesPlayed: 3},
			match: InMatch{TopScorer: true},
			want:  []string{"top_scorer"},
			never: []string{"champion"},
		},
		{
			name:  "specialists",
			stats: models.CompetitorStats{Scored: 8, FreeActionsScored: 3, PenaltiesScored: 5},
			want:  []string{"free_action_master", "penalty_expert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Evaluate(tt.stats, tt.match, nil))
			for _, id := range tt.want {
				if !got[id] {
					t.Fatalf("expected %q to unlock, got %v", id, got)
				}
			}
			for _, id := range tt.never {
				if got[id] {
					t.Fatalf("did not expect %q to unlock", id)
				}
			}
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	stats := models.CompetitorStats{Scored: 5, Assisted: 5, GamesPlayed: 12, Wins: 6}
	match := InMatch{ScoredInMatch: 4, AssistedInMatch: 1}

	first := Evaluate(stats, match, nil)
	if len(first) == 0 {
		t.Fatal("expected unlocks on first evaluation")
	}

	again := Evaluate(stats, match, nil)
	if len(again) != len(first) {
		t.Fatalf("evaluation not deterministic: %d vs %d", len(again), len(first))
	}
	for i := range first {
		if first[i].ID != again[i].ID {
			t.Fatalf("order differs at %d: %s vs %s", i, first[i].ID, again[i].ID)
		}
	}

	second := Evaluate(stats, match, IDs(first))
	if len(second) != 0 {
		t.Fatalf("expected empty diff, got %v", IDs(second))
	}
}

func TestEvaluateSkipsUnlocked(t *testing.T) {
	got := Evaluate(models.CompetitorStats{Scored: 1}, InMatch{ScoredInMatch: 1}, []string{"first_score"})
	for _, def := range got {
		if def.ID == "first_score" {
			t.Fatal("first_score re-emitted")
		}
	}
}

func TestCatalogIntegrity(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Catalog() {
		if seen[def.ID] {
			t.Fatalf("duplicate achievement id %q", def.ID)
		}
		seen[def.ID] = true
		if def.XPReward <= 0 {
			t.Fatalf("achievement %q has no reward", def.ID)
		}
		if def.Condition == nil {
			t.Fatalf("achievement %q has no condition", def.ID)
		}
		if _, ok := Lookup(def.ID); !ok {
			t.Fatalf("lookup failed for %q", def.ID)
		}
	}
	if _, ok := Lookup("missing"); ok {
		t.Fatal("lookup of unknown id succeeded")
	}
}

func TestScoreXP(t *testing.T) {
	tests := map[models.EventKind]int{
		models.EventNormal:     30,
		models.EventPenalty:    20,
		models.EventFreeAction: 40,
		models.EventOwnAction:  -10,
	}
	for kind, want := range tests {
		if got := ScoreXP(kind); got != want {
			t.Fatalf("ScoreXP(%s) = %d, want %d", kind, got, want)
		}
	}
}
