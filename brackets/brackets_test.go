package brackets

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Dosada05/tournament-progression/models"
)

func makeParticipants(n int) []*models.Participant {
	out := make([]*models.Participant, n)
	for i := range out {
		out[i] = &models.Participant{ID: i + 1}
	}
	return out
}

func TestRoundRobinProperties(t *testing.T) {
	for n := 2; n <= 12; n++ {
		sched, err := NewRoundRobinGenerator().Generate(context.Background(), Params{
			Competition:  &models.Competition{Format: models.FormatRoundRobin},
			Participants: makeParticipants(n),
		})
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}

		if want := n * (n - 1) / 2; len(sched.Matches) != want {
			t.Fatalf("n=%d: got %d matches, want %d", n, len(sched.Matches), want)
		}

		wantRounds := n - 1
		if n%2 == 1 {
			wantRounds = n
		}
		if sched.TotalRounds != wantRounds {
			t.Fatalf("n=%d: total rounds = %d, want %d", n, sched.TotalRounds, wantRounds)
		}

		pairs := map[[2]int]int{}
		perRound := map[int]map[int]bool{}
		for _, m := range sched.Matches {
			a, b := *m.SlotA, *m.SlotB
			if a == b {
				t.Fatalf("n=%d: participant %d plays itself", n, a)
			}
			if a > b {
				a, b = b, a
			}
			pairs[[2]int{a, b}]++

			if perRound[m.Round] == nil {
				perRound[m.Round] = map[int]bool{}
			}
			for _, id := range []int{a, b} {
				if perRound[m.Round][id] {
					t.Fatalf("n=%d: participant %d plays twice in round %d", n, id, m.Round)
				}
				perRound[m.Round][id] = true
			}
		}
		for a := 1; a <= n; a++ {
			for b := a + 1; b <= n; b++ {
				if pairs[[2]int{a, b}] != 1 {
					t.Fatalf("n=%d: pair %d-%d appears %d times", n, a, b, pairs[[2]int{a, b}])
				}
			}
		}
		if len(perRound) != wantRounds {
			t.Fatalf("n=%d: %d distinct rounds used, want %d", n, len(perRound), wantRounds)
		}
	}
}

func TestRoundRobinRejectsSingleParticipant(t *testing.T) {
	_, err := NewRoundRobinGenerator().Generate(context.Background(), Params{
		Competition:  &models.Competition{},
		Participants: makeParticipants(1),
	})
	if !errors.Is(err, ErrNotEnoughParticipants) {
		t.Fatalf("expected ErrNotEnoughParticipants, got %v", err)
	}
}

func TestSingleEliminationRoundSizes(t *testing.T) {
	for n := 2; n <= 33; n++ {
		sched, err := NewSingleEliminationGenerator().Generate(context.Background(), Params{
			Competition:  &models.Competition{Format: models.FormatSingleElimination},
			Participants: makeParticipants(n),
		})
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}

		wantRounds := int(math.Ceil(math.Log2(float64(n))))
		if sched.TotalRounds != wantRounds {
			t.Fatalf("n=%d: total rounds = %d, want %d", n, sched.TotalRounds, wantRounds)
		}

		counts := map[int]int{}
		for _, m := range sched.Matches {
			counts[m.Round]++
		}
		if counts[1] != (n+1)/2 {
			t.Fatalf("n=%d: round 1 has %d matches, want %d", n, counts[1], (n+1)/2)
		}
		for r := 1; r < wantRounds; r++ {
			if want := (counts[r] + 1) / 2; counts[r+1] != want {
				t.Fatalf("n=%d: round %d has %d matches, want %d", n, r+1, counts[r+1], want)
			}
		}
		if counts[wantRounds] != 1 {
			t.Fatalf("n=%d: final round has %d matches", n, counts[wantRounds])
		}
	}
}

func TestSingleEliminationByeAndLinks(t *testing.T) {
	sched, err := NewSingleEliminationGenerator().Generate(context.Background(), Params{
		Competition:  &models.Competition{Format: models.FormatSingleElimination},
		Participants: makeParticipants(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byUID := map[string]*BracketMatch{}
	for _, m := range sched.Matches {
		byUID[m.UID] = m
	}

	bye := byUID["R1M3"]
	if bye == nil || !bye.IsBye || bye.SlotA == nil || *bye.SlotA != 5 || bye.SlotB != nil {
		t.Fatalf("expected trailing bye for participant 5, got %+v", bye)
	}

	first := byUID["R1M1"]
	if first.NextUID == nil || *first.NextUID != "R2M1" || first.WinnerToSlot != models.SlotA {
		t.Fatalf("R1M1 should feed R2M1 slot A, got %v %s", first.NextUID, first.WinnerToSlot)
	}
	second := byUID["R1M2"]
	if second.NextUID == nil || *second.NextUID != "R2M1" || second.WinnerToSlot != models.SlotB {
		t.Fatalf("R1M2 should feed R2M1 slot B, got %v %s", second.NextUID, second.WinnerToSlot)
	}
	if *bye.NextUID != "R2M2" || bye.WinnerToSlot != models.SlotA {
		t.Fatalf("bye should feed R2M2 slot A, got %v %s", *bye.NextUID, bye.WinnerToSlot)
	}

	for _, m := range sched.Matches {
		if m.Round > 1 && (m.SlotA != nil || m.SlotB != nil) {
			t.Fatalf("later round match %s should start empty", m.UID)
		}
	}
	final := byUID["R3M1"]
	if final.Stage != models.StageFinal || final.NextUID != nil {
		t.Fatalf("unexpected final %+v", final)
	}
}

func TestGroupKnockout(t *testing.T) {
	comp := &models.Competition{
		Format: models.FormatGroupStageKnockout,
		Groups: models.GroupSettings{GroupCount: 2, QualifiersPerGroup: 2},
	}
	sched, err := NewGroupKnockoutGenerator().Generate(context.Background(), Params{
		Competition:  comp,
		Participants: makeParticipants(8),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	group, knockout := 0, 0
	for _, m := range sched.Matches {
		if m.Stage == GroupLabel(0) || m.Stage == GroupLabel(1) {
			group++
			if m.Round > 3 {
				t.Fatalf("group match in round %d", m.Round)
			}
			continue
		}
		knockout++
		if m.Round <= 3 {
			t.Fatalf("knockout match %s in group round %d", m.UID, m.Round)
		}
		if m.SlotA != nil || m.SlotB != nil {
			t.Fatalf("knockout match %s should start empty", m.UID)
		}
	}
	if group != 12 {
		t.Fatalf("got %d group matches, want 12", group)
	}
	if knockout != 3 {
		t.Fatalf("got %d knockout matches, want 3", knockout)
	}
	if sched.TotalRounds != 5 {
		t.Fatalf("total rounds = %d, want 5", sched.TotalRounds)
	}
}

func TestValidateGroups(t *testing.T) {
	tests := []struct {
		name         string
		participants int
		settings     models.GroupSettings
		ok           bool
	}{
		{"valid", 8, models.GroupSettings{GroupCount: 2, QualifiersPerGroup: 2}, true},
		{"too few participants", 3, models.GroupSettings{GroupCount: 2, QualifiersPerGroup: 1}, false},
		{"qualifiers fill the group", 6, models.GroupSettings{GroupCount: 2, QualifiersPerGroup: 3}, false},
		{"single qualifier overall", 4, models.GroupSettings{GroupCount: 1, QualifiersPerGroup: 1}, false},
		{"zero groups", 4, models.GroupSettings{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroups(tt.participants, tt.settings)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidGroupSettings) {
				t.Fatalf("expected ErrInvalidGroupSettings, got %v", err)
			}
		})
	}
}

func TestGroupTablesAndQualifiers(t *testing.T) {
	score := func(v int) *int { return &v }
	m := func(stage string, a, b, sa, sb int) *models.Match {
		return &models.Match{
			Stage: stage, SlotA: &a, SlotB: &b,
			Status: models.MatchFinished, ScoreA: score(sa), ScoreB: score(sb),
		}
	}
	matches := []*models.Match{
		m("group A", 1, 3, 2, 0),
		m("group A", 1, 5, 1, 1),
		m("group A", 3, 5, 0, 3),
		m("group B", 2, 4, 0, 1),
		m("group B", 2, 6, 2, 2),
		m("group B", 4, 6, 0, 0),
	}

	tables := GroupTables(matches, models.DefaultScoringRule())
	a := tables["group A"]
	if a[0].ParticipantID != 5 || a[1].ParticipantID != 1 {
		t.Fatalf("unexpected group A order: %+v", a)
	}
	b := tables["group B"]
	if b[0].ParticipantID != 4 {
		t.Fatalf("unexpected group B order: %+v", b)
	}

	got := QualifierOrder(tables, 2, 2)
	want := []int{5, 4, 1, 6}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	layout := SeedLayout(got)
	if layout[0] != 5 || layout[1] != 6 || layout[2] != 4 || layout[3] != 1 {
		t.Fatalf("unexpected seed layout %v", layout)
	}
}
