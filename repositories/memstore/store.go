// Package memstore is an in-memory repositories.Store. Transactions run on a
// copy of the data that replaces the live data only when the unit of work
// succeeds.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/repositories"
)

type state struct {
	nextID       int
	competitions map[int]models.Competition
	participants map[int]models.Participant
	standings    map[int]models.Standing
	matches      map[int]models.Match
	events       map[int]models.ScoringEvent
	cards        map[int]models.CardEvent
	competitors  map[int]models.Competitor
	progress     map[int]models.CompetitorProgress
	roster       map[int]models.RosterEntry
}

func newState() *state {
	return &state{
		competitions: make(map[int]models.Competition),
		participants: make(map[int]models.Participant),
		standings:    make(map[int]models.Standing),
		matches:      make(map[int]models.Match),
		events:       make(map[int]models.ScoringEvent),
		cards:        make(map[int]models.CardEvent),
		competitors:  make(map[int]models.Competitor),
		progress:     make(map[int]models.CompetitorProgress),
		roster:       make(map[int]models.RosterEntry),
	}
}

func copyMap[K comparable, V any](src map[K]V, clone func(V) V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		if clone != nil {
			v = clone(v)
		}
		dst[k] = v
	}
	return dst
}

func cloneEvent(e models.ScoringEvent) models.ScoringEvent {
	e.ScorerAchievements = append([]string(nil), e.ScorerAchievements...)
	e.AssistAchievements = append([]string(nil), e.AssistAchievements...)
	return e
}

func cloneProgress(p models.CompetitorProgress) models.CompetitorProgress {
	p.Achievements = append([]string{}, p.Achievements...)
	return p
}

func (s *state) clone() *state {
	return &state{
		nextID:       s.nextID,
		competitions: copyMap(s.competitions, nil),
		participants: copyMap(s.participants, nil),
		standings:    copyMap(s.standings, nil),
		matches:      copyMap(s.matches, nil),
		events:       copyMap(s.events, cloneEvent),
		cards:        copyMap(s.cards, nil),
		competitors:  copyMap(s.competitors, nil),
		progress:     copyMap(s.progress, cloneProgress),
		roster:       copyMap(s.roster, nil),
	}
}

func (s *state) id() int {
	s.nextID++
	return s.nextID
}

type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time

	faultsMu sync.Mutex
	faults   map[string]error
}

func New() *Store {
	return &Store{st: newState(), now: time.Now, faults: make(map[string]error)}
}

// FailOn makes the named operation (for example "Participants.ApplyStandingDelta")
// return err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.faultsMu.Lock()
	defer s.faultsMu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	s.faultsMu.Lock()
	defer s.faultsMu.Unlock()
	return s.faults[op]
}

// view binds repositories to either the live state (each call locks the
// store) or to a transaction's working copy (the store is already locked).
type view struct {
	store *Store
	tx    *state
}

func (v *view) with(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func (s *Store) repos(v *view) repositories.Repositories {
	return repositories.Repositories{
		Competitions: &competitionRepo{v},
		Participants: &participantRepo{v},
		Matches:      &matchRepo{v},
		Events:       &eventRepo{v},
		Cards:        &cardRepo{v},
		Competitors:  &competitorRepo{v},
		Rosters:      &rosterRepo{v},
	}
}

func (s *Store) Repos() repositories.Repositories {
	return s.repos(&view{store: s})
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repositories.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.st.clone()
	if err := fn(ctx, s.repos(&view{store: s, tx: work})); err != nil {
		return err
	}
	s.st = work
	return nil
}
