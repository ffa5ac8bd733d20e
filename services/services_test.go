package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/repositories/memstore"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Publish(_ int, eventType string, _ interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
}

func (n *recordingNotifier) count(eventType string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e == eventType {
			c++
		}
	}
	return c
}

type testEnv struct {
	store        *memstore.Store
	notifier     *recordingNotifier
	competitions CompetitionService
	schedules    ScheduleService
	matches      MatchService
	scoring      ScoringService
	progression  ProgressionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New()
	notifier := &recordingNotifier{}
	return &testEnv{
		store:        store,
		notifier:     notifier,
		competitions: NewCompetitionService(store, logger),
		schedules:    NewScheduleService(store, notifier, logger),
		matches:      NewMatchService(store, notifier, logger),
		scoring:      NewScoringService(store, notifier, logger),
		progression:  NewProgressionService(store, logger),
	}
}

// competition creates a competition with n participants named P1..Pn.
func (e *testEnv) competition(t *testing.T, input CreateCompetitionInput, n int) (*models.Competition, []*models.Participant) {
	t.Helper()
	ctx := context.Background()
	if input.Name == "" {
		input.Name = "Test Cup"
	}
	c, err := e.competitions.CreateCompetition(ctx, input)
	if err != nil {
		t.Fatalf("CreateCompetition: %v", err)
	}
	ps := make([]*models.Participant, 0, n)
	for i := 1; i <= n; i++ {
		p, err := e.competitions.AddParticipant(ctx, c.ID, fmt.Sprintf("P%d", i))
		if err != nil {
			t.Fatalf("AddParticipant: %v", err)
		}
		ps = append(ps, p)
	}
	return c, ps
}

func (e *testEnv) scheduled(t *testing.T, input CreateCompetitionInput, n int) (*models.Competition, []*models.Participant) {
	t.Helper()
	c, ps := e.competition(t, input, n)
	if _, err := e.schedules.GenerateSchedule(context.Background(), c.ID); err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	return c, ps
}

func (e *testEnv) competitor(t *testing.T, name string, participantID int) *models.Competitor {
	t.Helper()
	ctx := context.Background()
	c, err := e.progression.CreateCompetitor(ctx, name)
	if err != nil {
		t.Fatalf("CreateCompetitor: %v", err)
	}
	if _, err := e.progression.AddRosterEntry(ctx, participantID, c.ID); err != nil {
		t.Fatalf("AddRosterEntry: %v", err)
	}
	return c
}

func (e *testEnv) listMatches(t *testing.T, competitionID int) []*models.Match {
	t.Helper()
	ms, err := e.store.Repos().Matches.ListByCompetition(context.Background(), competitionID)
	if err != nil {
		t.Fatalf("ListByCompetition: %v", err)
	}
	return ms
}

func (e *testEnv) matchAt(t *testing.T, competitionID, round, order int) *models.Match {
	t.Helper()
	for _, m := range e.listMatches(t, competitionID) {
		if m.Round == round && m.OrderInRound == order && !m.IsGroupStage() {
			return m
		}
	}
	t.Fatalf("no match at round %d order %d", round, order)
	return nil
}

func (e *testEnv) matchBetween(t *testing.T, competitionID, a, b int) *models.Match {
	t.Helper()
	for _, m := range e.listMatches(t, competitionID) {
		if !m.HasBothSlots() {
			continue
		}
		if (*m.SlotA == a && *m.SlotB == b) || (*m.SlotA == b && *m.SlotB == a) {
			return m
		}
	}
	t.Fatalf("no match between %d and %d", a, b)
	return nil
}

// finalizeFor finalizes m so that participant pid scores forP and its
// opponent scores against.
func (e *testEnv) finalizeFor(t *testing.T, m *models.Match, pid, forP, against int) *FinalizeResult {
	t.Helper()
	a, b := forP, against
	if *m.SlotA != pid {
		a, b = against, forP
	}
	res, err := e.matches.FinalizeMatch(context.Background(), m.ID, &a, &b)
	if err != nil {
		t.Fatalf("FinalizeMatch(%d): %v", m.ID, err)
	}
	return res
}

func (e *testEnv) standing(t *testing.T, participantID int) *models.Standing {
	t.Helper()
	st, err := e.store.Repos().Participants.GetStanding(context.Background(), participantID)
	if err != nil {
		t.Fatalf("GetStanding: %v", err)
	}
	return st
}

func (e *testEnv) progress(t *testing.T, competitorID int) *models.CompetitorProgress {
	t.Helper()
	p, err := e.store.Repos().Competitors.GetProgress(context.Background(), competitorID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	return p
}

func roundRobin() CreateCompetitionInput {
	return CreateCompetitionInput{Format: models.FormatRoundRobin}
}

func singleElimination() CreateCompetitionInput {
	return CreateCompetitionInput{Format: models.FormatSingleElimination}
}

func groupKnockout(groups, qualifiers int) CreateCompetitionInput {
	return CreateCompetitionInput{
		Format: models.FormatGroupStageKnockout,
		Groups: &models.GroupSettings{GroupCount: groups, QualifiersPerGroup: qualifiers},
	}
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
