package services

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/repositories"
)

// lockRecorder records the order in which progress rows are locked.
type lockRecorder struct {
	repositories.CompetitorRepository
	mu    *sync.Mutex
	order *[]int
}

func (r lockRecorder) GetProgressForUpdate(ctx context.Context, competitorID int) (*models.CompetitorProgress, error) {
	r.mu.Lock()
	*r.order = append(*r.order, competitorID)
	r.mu.Unlock()
	return r.CompetitorRepository.GetProgressForUpdate(ctx, competitorID)
}

type lockRecordingStore struct {
	repositories.Store
	mu    sync.Mutex
	order []int
}

func (s *lockRecordingStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repositories.Repositories) error) error {
	return s.Store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		repos.Competitors = lockRecorder{CompetitorRepository: repos.Competitors, mu: &s.mu, order: &s.order}
		return fn(ctx, repos)
	})
}

func (s *lockRecordingStore) take() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.order
	s.order = nil
	return order
}

func TestLockProgressOrdersAndDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	var ids []int
	for _, name := range []string{"Ana", "Bea", "Cat"} {
		c, err := env.progression.CreateCompetitor(ctx, name)
		if err != nil {
			t.Fatalf("CreateCompetitor: %v", err)
		}
		ids = append(ids, c.ID)
	}

	rec := &lockRecordingStore{Store: env.store}
	err := rec.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		locked, err := lockProgress(ctx, repos, ids[2], ids[0], ids[2], ids[1])
		if err != nil {
			return err
		}
		if len(locked) != 3 {
			t.Fatalf("locked %d rows, want 3", len(locked))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}
	if got := rec.take(); !slices.Equal(got, ids) {
		t.Fatalf("lock order = %v, want %v", got, ids)
	}
}

func TestLedgerLocksProgressInIDOrder(t *testing.T) {
	f := newLedgerFixture(t)
	rec := &lockRecordingStore{Store: f.env.store}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoring := NewScoringService(rec, nil, logger)
	ctx := context.Background()

	want := []int{f.ana, f.bea}
	if f.ana > f.bea {
		want = []int{f.bea, f.ana}
	}

	res, err := scoring.RecordEvent(ctx, RecordEventInput{
		MatchID: f.match.ID, ScoringCompetitorID: f.bea, BenefitingParticipantID: f.p1,
		Kind: models.EventNormal, AssistCompetitorID: &f.ana,
	})
	if err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	if got := rec.take(); !slices.Equal(got, want) {
		t.Fatalf("record lock order = %v, want %v", got, want)
	}

	if _, err := scoring.ReverseEvent(ctx, res.Event.ID); err != nil {
		t.Fatalf("ReverseEvent: %v", err)
	}
	if got := rec.take(); !slices.Equal(got, want) {
		t.Fatalf("reverse lock order = %v, want %v", got, want)
	}
}

func TestRevertXP(t *testing.T) {
	tests := []struct {
		name     string
		xp, debt int
		applied  int
		wantXP   int
		wantDebt int
	}{
		{"covered credit", 100, 0, 80, 20, 0},
		{"uncovered credit", 30, 0, 80, 0, 50},
		{"penalty refund", 10, 0, -20, 30, 0},
		{"penalty refund pays debt", 0, 50, -20, 0, 30},
		{"refund exceeds debt", 0, 15, -20, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.CompetitorProgress{XP: tt.xp, XPDebt: tt.debt}
			p.RevertXP(tt.applied)
			if p.XP != tt.wantXP || p.XPDebt != tt.wantDebt {
				t.Fatalf("xp %d debt %d, want %d and %d", p.XP, p.XPDebt, tt.wantXP, tt.wantDebt)
			}
		})
	}
}
