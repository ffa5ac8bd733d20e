package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/repositories"
)

type competitionRepo struct{ v *view }

func (r *competitionRepo) Create(_ context.Context, c *models.Competition) error {
	if err := r.v.store.fault("Competitions.Create"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		c.ID = st.id()
		c.CreatedAt = r.v.store.now()
		st.competitions[c.ID] = *c
		return nil
	})
}

func (r *competitionRepo) GetByID(_ context.Context, id int) (*models.Competition, error) {
	var out *models.Competition
	err := r.v.with(func(st *state) error {
		c, ok := st.competitions[id]
		if !ok {
			return repositories.ErrCompetitionNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *competitionRepo) GetForUpdate(ctx context.Context, id int) (*models.Competition, error) {
	return r.GetByID(ctx, id)
}

func (r *competitionRepo) List(_ context.Context, status *models.CompetitionStatus) ([]*models.Competition, error) {
	out := make([]*models.Competition, 0)
	err := r.v.with(func(st *state) error {
		for _, c := range st.competitions {
			if status != nil && c.Status != *status {
				continue
			}
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *competitionRepo) MarkScheduleGenerated(_ context.Context, id int, totalRounds int, at time.Time) error {
	if err := r.v.store.fault("Competitions.MarkScheduleGenerated"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		c, ok := st.competitions[id]
		if !ok || c.ScheduleGeneratedAt != nil {
			return repositories.ErrScheduleAlreadyStamped
		}
		c.ScheduleGeneratedAt = &at
		c.TotalRounds = totalRounds
		c.Status = models.CompetitionActive
		st.competitions[id] = c
		return nil
	})
}

func (r *competitionRepo) UpdateStatus(_ context.Context, id int, status models.CompetitionStatus) error {
	return r.v.with(func(st *state) error {
		c, ok := st.competitions[id]
		if !ok {
			return repositories.ErrCompetitionNotFound
		}
		c.Status = status
		st.competitions[id] = c
		return nil
	})
}

func (r *competitionRepo) SetChampion(_ context.Context, id int, participantID int) error {
	return r.v.with(func(st *state) error {
		c, ok := st.competitions[id]
		if !ok {
			return repositories.ErrCompetitionNotFound
		}
		c.ChampionParticipantID = &participantID
		c.Status = models.CompetitionCompleted
		st.competitions[id] = c
		return nil
	})
}

type participantRepo struct{ v *view }

func (r *participantRepo) Create(_ context.Context, p *models.Participant) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.competitions[p.CompetitionID]; !ok {
			return repositories.ErrInvalidReference
		}
		p.ID = st.id()
		p.CreatedAt = r.v.store.now()
		st.participants[p.ID] = *p
		st.standings[p.ID] = models.Standing{
			ParticipantID: p.ID,
			CompetitionID: p.CompetitionID,
			UpdatedAt:     p.CreatedAt,
		}
		return nil
	})
}

func (r *participantRepo) GetByID(_ context.Context, id int) (*models.Participant, error) {
	var out *models.Participant
	err := r.v.with(func(st *state) error {
		p, ok := st.participants[id]
		if !ok {
			return repositories.ErrParticipantNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *participantRepo) ListByCompetition(_ context.Context, competitionID int) ([]*models.Participant, error) {
	out := make([]*models.Participant, 0)
	err := r.v.with(func(st *state) error {
		for _, p := range st.participants {
			if p.CompetitionID == competitionID {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *participantRepo) GetStanding(_ context.Context, participantID int) (*models.Standing, error) {
	var out *models.Standing
	err := r.v.with(func(st *state) error {
		s, ok := st.standings[participantID]
		if !ok {
			return repositories.ErrStandingNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *participantRepo) ApplyStandingDelta(_ context.Context, d models.StandingDelta) error {
	if err := r.v.store.fault("Participants.ApplyStandingDelta"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		s, ok := st.standings[d.ParticipantID]
		if !ok {
			return repositories.ErrStandingNotFound
		}
		s.Apply(d)
		s.UpdatedAt = r.v.store.now()
		st.standings[d.ParticipantID] = s
		return nil
	})
}

func (r *participantRepo) ListStandings(_ context.Context, competitionID int) ([]*models.Standing, error) {
	out := make([]*models.Standing, 0)
	err := r.v.with(func(st *state) error {
		for _, s := range st.standings {
			if s.CompetitionID == competitionID {
				s := s
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ScoreDifference() != b.ScoreDifference() {
			return a.ScoreDifference() > b.ScoreDifference()
		}
		if a.ScoreFor != b.ScoreFor {
			return a.ScoreFor > b.ScoreFor
		}
		return a.ParticipantID < b.ParticipantID
	})
	return out, err
}

type matchRepo struct{ v *view }

func (r *matchRepo) Create(_ context.Context, m *models.Match) error {
	if err := r.v.store.fault("Matches.Create"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		if _, ok := st.competitions[m.CompetitionID]; !ok {
			return repositories.ErrInvalidReference
		}
		m.ID = st.id()
		m.CreatedAt = r.v.store.now()
		st.matches[m.ID] = *m
		return nil
	})
}

func (r *matchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	var out *models.Match
	err := r.v.with(func(st *state) error {
		m, ok := st.matches[id]
		if !ok {
			return repositories.ErrMatchNotFound
		}
		out = &m
		return nil
	})
	return out, err
}

func (r *matchRepo) GetForUpdate(ctx context.Context, id int) (*models.Match, error) {
	return r.GetByID(ctx, id)
}

func (r *matchRepo) ListByCompetition(_ context.Context, competitionID int) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	err := r.v.with(func(st *state) error {
		for _, m := range st.matches {
			if m.CompetitionID == competitionID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		if a.Stage != b.Stage {
			return a.Stage < b.Stage
		}
		if a.OrderInRound != b.OrderInRound {
			return a.OrderInRound < b.OrderInRound
		}
		return a.ID < b.ID
	})
	return out, err
}

func (r *matchRepo) CountByCompetition(_ context.Context, competitionID int) (int, error) {
	count := 0
	err := r.v.with(func(st *state) error {
		for _, m := range st.matches {
			if m.CompetitionID == competitionID {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *matchRepo) update(id int, fn func(m *models.Match) error) error {
	return r.v.with(func(st *state) error {
		m, ok := st.matches[id]
		if !ok {
			return repositories.ErrMatchNotFound
		}
		if err := fn(&m); err != nil {
			return err
		}
		st.matches[id] = m
		return nil
	})
}

func (r *matchRepo) UpdateNextMatchInfo(_ context.Context, matchID int, nextMatchID *int, winnerToSlot *models.Slot) error {
	return r.update(matchID, func(m *models.Match) error {
		m.NextMatchID = nextMatchID
		m.WinnerToSlot = winnerToSlot
		return nil
	})
}

func (r *matchRepo) SetSlot(_ context.Context, matchID int, slot models.Slot, participantID int) error {
	if err := r.v.store.fault("Matches.SetSlot"); err != nil {
		return err
	}
	return r.update(matchID, func(m *models.Match) error {
		if m.Status != models.MatchScheduled {
			return repositories.ErrMatchNotOpen
		}
		id := participantID
		if slot == models.SlotB {
			m.SlotB = &id
		} else {
			m.SlotA = &id
		}
		return nil
	})
}

func (r *matchRepo) MarkLive(_ context.Context, matchID int) error {
	return r.update(matchID, func(m *models.Match) error {
		if m.Status == models.MatchScheduled {
			m.Status = models.MatchLive
		}
		return nil
	})
}

func (r *matchRepo) Finish(_ context.Context, matchID int, scoreA, scoreB int, winnerID *int, at time.Time) error {
	if err := r.v.store.fault("Matches.Finish"); err != nil {
		return err
	}
	return r.update(matchID, func(m *models.Match) error {
		if m.Status.IsClosed() {
			return repositories.ErrMatchNotOpen
		}
		m.Status = models.MatchFinished
		m.ScoreA = &scoreA
		m.ScoreB = &scoreB
		m.WinnerParticipantID = winnerID
		m.FinishedAt = &at
		return nil
	})
}

func (r *matchRepo) CancelBye(_ context.Context, matchID int, advancedID int) error {
	return r.update(matchID, func(m *models.Match) error {
		if m.Status != models.MatchScheduled {
			return repositories.ErrMatchNotOpen
		}
		m.Status = models.MatchCanceled
		m.WinnerParticipantID = &advancedID
		return nil
	})
}

type eventRepo struct{ v *view }

func (r *eventRepo) Create(_ context.Context, e *models.ScoringEvent) error {
	if err := r.v.store.fault("Events.Create"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		if _, ok := st.matches[e.MatchID]; !ok {
			return repositories.ErrInvalidReference
		}
		e.ID = st.id()
		e.CreatedAt = r.v.store.now()
		st.events[e.ID] = cloneEvent(*e)
		return nil
	})
}

func (r *eventRepo) GetByID(_ context.Context, id int) (*models.ScoringEvent, error) {
	var out *models.ScoringEvent
	err := r.v.with(func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return repositories.ErrEventNotFound
		}
		e = cloneEvent(e)
		out = &e
		return nil
	})
	return out, err
}

func (r *eventRepo) ListByMatch(_ context.Context, matchID int) ([]*models.ScoringEvent, error) {
	out := make([]*models.ScoringEvent, 0)
	err := r.v.with(func(st *state) error {
		for _, e := range st.events {
			if e.MatchID == matchID {
				e := cloneEvent(e)
				out = append(out, &e)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *eventRepo) ListByCompetition(_ context.Context, competitionID int) ([]*models.ScoringEvent, error) {
	out := make([]*models.ScoringEvent, 0)
	err := r.v.with(func(st *state) error {
		for _, e := range st.events {
			if m, ok := st.matches[e.MatchID]; ok && m.CompetitionID == competitionID {
				e := cloneEvent(e)
				out = append(out, &e)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *eventRepo) UpdateLedger(_ context.Context, e *models.ScoringEvent) error {
	return r.v.with(func(st *state) error {
		stored, ok := st.events[e.ID]
		if !ok {
			return repositories.ErrEventNotFound
		}
		stored.ScorerXP = e.ScorerXP
		stored.ScorerAchievements = append([]string(nil), e.ScorerAchievements...)
		stored.AssistXP = e.AssistXP
		stored.AssistAchievements = append([]string(nil), e.AssistAchievements...)
		st.events[e.ID] = stored
		return nil
	})
}

func (r *eventRepo) Delete(_ context.Context, id int) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.events[id]; !ok {
			return repositories.ErrEventNotFound
		}
		delete(st.events, id)
		return nil
	})
}

type cardRepo struct{ v *view }

func (r *cardRepo) Create(_ context.Context, c *models.CardEvent) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.matches[c.MatchID]; !ok {
			return repositories.ErrInvalidReference
		}
		c.ID = st.id()
		c.CreatedAt = r.v.store.now()
		st.cards[c.ID] = *c
		return nil
	})
}

func (r *cardRepo) GetByID(_ context.Context, id int) (*models.CardEvent, error) {
	var out *models.CardEvent
	err := r.v.with(func(st *state) error {
		c, ok := st.cards[id]
		if !ok {
			return repositories.ErrCardNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *cardRepo) ListByMatch(_ context.Context, matchID int) ([]*models.CardEvent, error) {
	out := make([]*models.CardEvent, 0)
	err := r.v.with(func(st *state) error {
		for _, c := range st.cards {
			if c.MatchID == matchID {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *cardRepo) ListByCompetition(_ context.Context, competitionID int) ([]*models.CardEvent, error) {
	out := make([]*models.CardEvent, 0)
	err := r.v.with(func(st *state) error {
		for _, c := range st.cards {
			if m, ok := st.matches[c.MatchID]; ok && m.CompetitionID == competitionID {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *cardRepo) Delete(_ context.Context, id int) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.cards[id]; !ok {
			return repositories.ErrCardNotFound
		}
		delete(st.cards, id)
		return nil
	})
}

type competitorRepo struct{ v *view }

func (r *competitorRepo) Create(_ context.Context, c *models.Competitor) error {
	return r.v.with(func(st *state) error {
		c.ID = st.id()
		c.CreatedAt = r.v.store.now()
		st.competitors[c.ID] = *c
		st.progress[c.ID] = models.CompetitorProgress{
			CompetitorID: c.ID,
			Achievements: []string{},
			UpdatedAt:    c.CreatedAt,
		}
		return nil
	})
}

func (r *competitorRepo) GetByID(_ context.Context, id int) (*models.Competitor, error) {
	var out *models.Competitor
	err := r.v.with(func(st *state) error {
		c, ok := st.competitors[id]
		if !ok {
			return repositories.ErrCompetitorNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *competitorRepo) GetProgress(_ context.Context, competitorID int) (*models.CompetitorProgress, error) {
	var out *models.CompetitorProgress
	err := r.v.with(func(st *state) error {
		p, ok := st.progress[competitorID]
		if !ok {
			return repositories.ErrProgressNotFound
		}
		p = cloneProgress(p)
		out = &p
		return nil
	})
	return out, err
}

func (r *competitorRepo) GetProgressForUpdate(ctx context.Context, competitorID int) (*models.CompetitorProgress, error) {
	return r.GetProgress(ctx, competitorID)
}

func (r *competitorRepo) SaveProgress(_ context.Context, p *models.CompetitorProgress) error {
	if err := r.v.store.fault("Competitors.SaveProgress"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		if _, ok := st.progress[p.CompetitorID]; !ok {
			return repositories.ErrProgressNotFound
		}
		if p.XP < 0 || p.XPDebt < 0 {
			return repositories.ErrCheckViolation
		}
		saved := cloneProgress(*p)
		saved.UpdatedAt = r.v.store.now()
		st.progress[p.CompetitorID] = saved
		return nil
	})
}

type rosterRepo struct{ v *view }

func (r *rosterRepo) Add(_ context.Context, e *models.RosterEntry) error {
	return r.v.with(func(st *state) error {
		participant, ok := st.participants[e.ParticipantID]
		if !ok {
			return repositories.ErrInvalidReference
		}
		if _, ok := st.competitors[e.CompetitorID]; !ok {
			return repositories.ErrInvalidReference
		}
		for _, existing := range st.roster {
			if existing.CompetitionID == participant.CompetitionID && existing.CompetitorID == e.CompetitorID {
				return repositories.ErrDuplicate
			}
		}
		e.CompetitionID = participant.CompetitionID
		e.ID = st.id()
		e.CreatedAt = r.v.store.now()
		st.roster[e.ID] = *e
		return nil
	})
}

func (r *rosterRepo) FindInCompetition(_ context.Context, competitionID, competitorID int) (*models.RosterEntry, error) {
	var found *models.RosterEntry
	err := r.v.with(func(st *state) error {
		for _, e := range st.roster {
			if e.CompetitionID == competitionID && e.CompetitorID == competitorID {
				entry := e
				found = &entry
				return nil
			}
		}
		return repositories.ErrRosterNotFound
	})
	return found, err
}

func (r *rosterRepo) IsMember(_ context.Context, competitorID, participantID int) (bool, error) {
	member := false
	err := r.v.with(func(st *state) error {
		for _, e := range st.roster {
			if e.CompetitorID == competitorID && e.ParticipantID == participantID {
				member = true
				return nil
			}
		}
		return nil
	})
	return member, err
}

func (r *rosterRepo) ListCompetitors(_ context.Context, participantID int) ([]int, error) {
	ids := make([]int, 0)
	err := r.v.with(func(st *state) error {
		for _, e := range st.roster {
			if e.ParticipantID == participantID {
				ids = append(ids, e.CompetitorID)
			}
		}
		return nil
	})
	sort.Ints(ids)
	return ids, err
}

func (r *rosterRepo) ListByCompetition(_ context.Context, competitionID int) ([]*models.RosterEntry, error) {
	out := make([]*models.RosterEntry, 0)
	err := r.v.with(func(st *state) error {
		for _, e := range st.roster {
			if e.CompetitionID == competitionID {
				e := e
				out = append(out, &e)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CompetitorID < out[j].CompetitorID })
	return out, err
}
