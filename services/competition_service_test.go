package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Dosada05/tournament-progression/models"
)

func TestCreateCompetitionValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateCompetitionInput
	}{
		{"empty name", CreateCompetitionInput{Name: " ", Format: models.FormatRoundRobin}},
		{"unknown format", CreateCompetitionInput{Name: "X", Format: "swiss"}},
		{"elimination with draws", CreateCompetitionInput{Name: "X", Format: models.FormatSingleElimination, Rule: &models.ScoringRule{PointsWin: 3, PointsDraw: 1, DrawsAllowed: true}}},
		{"draw above win", CreateCompetitionInput{Name: "X", Format: models.FormatRoundRobin, Rule: &models.ScoringRule{PointsWin: 1, PointsDraw: 2}}},
		{"negative points", CreateCompetitionInput{Name: "X", Format: models.FormatRoundRobin, Rule: &models.ScoringRule{PointsWin: 3, PointsLoss: -1}}},
		{"groups missing", CreateCompetitionInput{Name: "X", Format: models.FormatGroupStageKnockout}},
		{"single qualifier", CreateCompetitionInput{Name: "X", Format: models.FormatGroupStageKnockout, Groups: &models.GroupSettings{GroupCount: 1, QualifiersPerGroup: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.competitions.CreateCompetition(ctx, tt.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("error = %v, want validation error", err)
			}
		})
	}
}

func TestSingleEliminationDefaultsToNoDraws(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.competition(t, singleElimination(), 0)
	if c.Rule.DrawsAllowed {
		t.Fatalf("single elimination rule allows draws")
	}
	if c.Status != models.CompetitionDraft {
		t.Fatalf("status = %s, want draft", c.Status)
	}
}

func TestGenerateRoundRobinSchedule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c, _ := env.competition(t, roundRobin(), 4)

	res, err := env.schedules.GenerateSchedule(ctx, c.ID)
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	if len(res.Matches) != 6 || res.TotalRounds != 3 {
		t.Fatalf("got %d matches over %d rounds, want 6 over 3", len(res.Matches), res.TotalRounds)
	}

	got, err := env.competitions.GetCompetition(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCompetition: %v", err)
	}
	if got.Status != models.CompetitionActive || got.TotalRounds != 3 || !got.ScheduleGenerated() {
		t.Fatalf("competition = %+v, want active with 3 rounds", got)
	}

	if _, err := env.schedules.GenerateSchedule(ctx, c.ID); !errors.Is(err, ErrScheduleAlreadyGenerated) || !errors.Is(err, ErrConflict) {
		t.Fatalf("second generation error = %v, want conflict", err)
	}
	if n := len(env.listMatches(t, c.ID)); n != 6 {
		t.Fatalf("matches after second generation = %d, want 6", n)
	}
	if env.notifier.count(EventScheduleGenerated) != 1 {
		t.Fatalf("schedule notifications = %d, want 1", env.notifier.count(EventScheduleGenerated))
	}
}

func TestGenerateScheduleErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, _ := env.competition(t, roundRobin(), 1)
	if _, err := env.schedules.GenerateSchedule(ctx, c.ID); !errors.Is(err, ErrNotEnoughParticipants) || !errors.Is(err, ErrValidation) {
		t.Fatalf("one participant error = %v, want validation", err)
	}
	if _, err := env.schedules.GenerateSchedule(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown competition error = %v, want not found", err)
	}

	g, _ := env.competition(t, groupKnockout(3, 1), 5)
	if _, err := env.schedules.GenerateSchedule(ctx, g.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("invalid groups error = %v, want validation", err)
	}
	if n := len(env.listMatches(t, g.ID)); n != 0 {
		t.Fatalf("failed generation left %d matches", n)
	}
}

func TestGenerateScheduleConcurrently(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.competition(t, roundRobin(), 6)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.schedules.GenerateSchedule(context.Background(), c.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, ErrConflict):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("%d generations succeeded, want 1", ok)
	}
	if n := len(env.listMatches(t, c.ID)); n != 15 {
		t.Fatalf("matches = %d, want 15", n)
	}
}

func TestAddParticipantAfterScheduleIsRejected(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.scheduled(t, roundRobin(), 2)
	if _, err := env.competitions.AddParticipant(context.Background(), c.ID, "Late"); !errors.Is(err, ErrState) {
		t.Fatalf("error = %v, want state error", err)
	}
}

func TestGetOverview(t *testing.T) {
	env := newTestEnv(t)
	c, ps := env.scheduled(t, roundRobin(), 3)

	overview, err := env.competitions.GetOverview(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if overview.Competition.ID != c.ID || len(overview.Participants) != 3 || len(overview.Matches) != 3 || len(overview.Standings) != 3 {
		t.Fatalf("overview = %+v", overview)
	}
	for _, st := range overview.Standings {
		if st.Participant == nil {
			t.Fatalf("standing %d has no participant attached", st.ParticipantID)
		}
	}
	if overview.Participants[0].ID != ps[0].ID {
		t.Fatalf("participants not in registration order")
	}

	if _, err := env.competitions.GetOverview(context.Background(), 4242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown competition error = %v, want not found", err)
	}
}
