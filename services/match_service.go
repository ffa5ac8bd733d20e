package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/Dosada05/tournament-progression/brackets"
	"github.com/Dosada05/tournament-progression/metrics"
	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/progression"
	"github.com/Dosada05/tournament-progression/repositories"
	"go.opentelemetry.io/otel/attribute"
)

type FinalizeResult struct {
	Match           *models.Match          `json:"match"`
	StandingsDelta  []models.StandingDelta `json:"standings_delta"`
	AdvancedByes    []*models.Match        `json:"advanced_byes,omitempty"`
	ChampionID      *int                   `json:"champion_participant_id,omitempty"`
	CompetitorGains []GamificationSummary  `json:"competitor_gains"`
}

type TournamentWinnerPayload struct {
	CompetitionID int  `json:"competition_id"`
	ParticipantID int  `json:"participant_id"`
	IsAutoWin     bool `json:"is_auto_win"`
}

type MatchService interface {
	// FinalizeMatch closes a match with its result. Scores are optional but
	// must be supplied together; recorded scoring events take precedence.
	FinalizeMatch(ctx context.Context, matchID int, scoreA, scoreB *int) (*FinalizeResult, error)
	AdvanceByes(ctx context.Context, competitionID int) ([]*models.Match, error)
	SeedKnockout(ctx context.Context, competitionID int) ([]*models.Match, error)
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
}

type matchService struct {
	store    repositories.Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewMatchService(store repositories.Store, notifier Notifier, logger *slog.Logger) MatchService {
	return &matchService{
		store:    store,
		notifier: notifierOrNop(notifier),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	m, err := s.store.Repos().Matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "get match")
	}
	return m, nil
}

func validateScores(scoreA, scoreB *int) error {
	if (scoreA == nil) != (scoreB == nil) {
		return fmt.Errorf("%w: got only one score", ErrInvalidScores)
	}
	if scoreA != nil && (*scoreA < 0 || *scoreB < 0) {
		return fmt.Errorf("%w: got %d-%d", ErrInvalidScores, *scoreA, *scoreB)
	}
	return nil
}

// eventScore counts scoring events per benefiting side.
func eventScore(m *models.Match, events []*models.ScoringEvent) (int, int) {
	a, b := 0, 0
	for _, e := range events {
		switch side, _ := m.Side(e.BenefitingParticipantID); side {
		case models.SlotA:
			a++
		case models.SlotB:
			b++
		}
	}
	return a, b
}

// isKnockoutMatch reports whether the match belongs to an elimination bracket.
func isKnockoutMatch(c *models.Competition, m *models.Match) bool {
	return m.NextMatchID != nil || (c.Format.HasKnockout() && !m.IsGroupStage())
}

func standingDeltas(rule models.ScoringRule, a, b, scoreA, scoreB int) []models.StandingDelta {
	da := models.StandingDelta{ParticipantID: a, GamesPlayed: 1, ScoreFor: scoreA, ScoreAgainst: scoreB}
	db := models.StandingDelta{ParticipantID: b, GamesPlayed: 1, ScoreFor: scoreB, ScoreAgainst: scoreA}
	switch {
	case scoreA > scoreB:
		da.Wins, da.Points = 1, rule.PointsWin
		db.Losses, db.Points = 1, rule.PointsLoss
	case scoreB > scoreA:
		db.Wins, db.Points = 1, rule.PointsWin
		da.Losses, da.Points = 1, rule.PointsLoss
	default:
		da.Draws, da.Points = 1, rule.PointsDraw
		db.Draws, db.Points = 1, rule.PointsDraw
	}
	return []models.StandingDelta{da, db}
}

func (s *matchService) FinalizeMatch(ctx context.Context, matchID int, scoreA, scoreB *int) (result *FinalizeResult, err error) {
	ctx, span := startSpan(ctx, "MatchService.FinalizeMatch", attribute.Int("match.id", matchID))
	defer func() { endSpan(span, err) }()

	if err = validateScores(scoreA, scoreB); err != nil {
		return nil, err
	}

	var competitionID int
	var outcome string
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		peek, err := repos.Matches.GetByID(ctx, matchID)
		if err != nil {
			return err
		}
		// Competition before match: the same lock order as generation and seeding.
		competition, err := repos.Competitions.GetForUpdate(ctx, peek.CompetitionID)
		if err != nil {
			return err
		}
		competitionID = competition.ID
		m, err := repos.Matches.GetForUpdate(ctx, matchID)
		if err != nil {
			return err
		}

		switch m.Status {
		case models.MatchFinished:
			return ErrMatchAlreadyFinished
		case models.MatchCanceled:
			return ErrMatchCanceled
		}
		if competition.Status == models.CompetitionCanceled {
			return ErrCompetitionClosed
		}
		if !m.HasBothSlots() {
			return ErrSlotsNotFilled
		}

		events, err := repos.Events.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}
		cards, err := repos.Cards.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}

		a, b := 0, 0
		switch {
		case len(events) > 0:
			a, b = eventScore(m, events)
			if scoreA != nil && (*scoreA != a || *scoreB != b) {
				s.logger.Warn("explicit score differs from scoring events, using events",
					slog.Int("match_id", m.ID),
					slog.String("explicit", fmt.Sprintf("%d-%d", *scoreA, *scoreB)),
					slog.String("events", fmt.Sprintf("%d-%d", a, b)),
				)
			}
		case scoreA != nil:
			a, b = *scoreA, *scoreB
		}

		knockout := isKnockoutMatch(competition, m)
		if a == b && (knockout || !competition.Rule.DrawsAllowed) {
			return fmt.Errorf("%w: match %d ended %d-%d", ErrDrawNotAllowed, m.ID, a, b)
		}

		var winnerID *int
		switch {
		case a > b:
			winnerID = intPtr(*m.SlotA)
			outcome = "win"
		case b > a:
			winnerID = intPtr(*m.SlotB)
			outcome = "win"
		default:
			outcome = "draw"
		}

		if err := repos.Matches.Finish(ctx, m.ID, a, b, winnerID, s.now()); err != nil {
			if errors.Is(err, repositories.ErrMatchNotOpen) {
				return ErrMatchAlreadyFinished
			}
			return err
		}

		deltas := standingDeltas(competition.Rule, *m.SlotA, *m.SlotB, a, b)
		for _, d := range deltas {
			if err := repos.Participants.ApplyStandingDelta(ctx, d); err != nil {
				return fmt.Errorf("failed to update standing of participant %d: %w", d.ParticipantID, err)
			}
		}

		var championID *int
		if knockout && m.NextMatchID == nil {
			championID = winnerID
		}

		result = &FinalizeResult{StandingsDelta: deltas}

		completed := false
		switch {
		case championID != nil:
			if err := repos.Competitions.SetChampion(ctx, competition.ID, *championID); err != nil {
				return err
			}
			result.ChampionID = championID
			completed = true
		case m.NextMatchID != nil:
			if err := advanceWinner(ctx, repos, m, *winnerID); err != nil {
				return err
			}
			resolved, champion, err := resolveByes(ctx, repos, competition.ID)
			if err != nil {
				return err
			}
			result.AdvancedByes = resolved
			result.ChampionID = champion
			completed = champion != nil
		case competition.Format == models.FormatRoundRobin:
			if completed, err = completeWhenPlayed(ctx, repos, competition.ID); err != nil {
				return err
			}
		}

		var topScorerID *int
		if completed {
			if topScorerID, err = findTopScorer(ctx, repos, competition.ID); err != nil {
				return err
			}
		}
		result.CompetitorGains, err = s.rewardRosters(ctx, repos, m, winnerID, championID, topScorerID, events, cards)
		if err != nil {
			return err
		}

		finished, err := repos.Matches.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		result.Match = finished
		return nil
	})
	if err != nil {
		err = handleRepositoryError(err, "finalize match")
		return nil, err
	}

	metrics.MatchesFinalized.WithLabelValues(outcome).Inc()
	metrics.ByesResolved.Add(float64(len(result.AdvancedByes)))
	for _, g := range result.CompetitorGains {
		metrics.RecordAchievements(progression.IDs(g.NewAchievements))
	}

	s.logger.Info("match finalized",
		slog.Int("match_id", matchID),
		slog.Int("competition_id", competitionID),
		slog.Int("score_a", *result.Match.ScoreA),
		slog.Int("score_b", *result.Match.ScoreB),
	)
	s.notifier.Publish(competitionID, EventMatchFinalized, result)
	if result.ChampionID != nil {
		s.notifier.Publish(competitionID, EventCompetitionWon, TournamentWinnerPayload{
			CompetitionID: competitionID,
			ParticipantID: *result.ChampionID,
		})
	}
	return result, nil
}

// rewardRosters credits every roster member of both sides with the match:
// games played, wins, result XP and achievements. topScorerID, set when the
// match completed the competition, also receives the top scorer award.
func (s *matchService) rewardRosters(
	ctx context.Context,
	repos repositories.Repositories,
	m *models.Match,
	winnerID, championID, topScorerID *int,
	events []*models.ScoringEvent,
	cards []*models.CardEvent,
) ([]GamificationSummary, error) {
	sides := []int{*m.SlotA, *m.SlotB}
	rosters := make([][]int, len(sides))
	var all []int
	for i, pid := range sides {
		competitorIDs, err := repos.Rosters.ListCompetitors(ctx, pid)
		if err != nil {
			return nil, err
		}
		rosters[i] = competitorIDs
		all = append(all, competitorIDs...)
	}
	toLock := all
	if topScorerID != nil {
		toLock = append(slices.Clone(all), *topScorerID)
	}
	locked, err := lockProgress(ctx, repos, toLock...)
	if err != nil {
		return nil, err
	}

	gains := make([]GamificationSummary, 0, len(all))
	for i, pid := range sides {
		won := winnerID != nil && *winnerID == pid
		drew := winnerID == nil
		for _, cid := range rosters[i] {
			p := locked[cid]
			p.Stats.GamesPlayed++
			if won {
				p.Stats.Wins++
			}
			im := inMatchStats(cid, events, cards)
			im.WonCompetition = championID != nil && *championID == pid
			im.TopScorer = topScorerID != nil && *topScorerID == cid
			applied, unlocked := award(p, progression.ResultXP(won, drew), im)
			if err := repos.Competitors.SaveProgress(ctx, p); err != nil {
				return nil, fmt.Errorf("failed to save progress of competitor %d: %w", cid, err)
			}
			gains = append(gains, summarize(p, applied, unlocked))
		}
	}

	if topScorerID != nil && !slices.Contains(all, *topScorerID) {
		gain, err := awardTopScorer(ctx, repos, locked[*topScorerID])
		if err != nil {
			return nil, err
		}
		gains = append(gains, gain)
	}
	return gains, nil
}

// awardTopScorer grants the top scorer achievement to a locked progress row.
func awardTopScorer(ctx context.Context, repos repositories.Repositories, p *models.CompetitorProgress) (GamificationSummary, error) {
	applied, unlocked := award(p, 0, progression.InMatch{TopScorer: true})
	if err := repos.Competitors.SaveProgress(ctx, p); err != nil {
		return GamificationSummary{}, fmt.Errorf("failed to save progress of competitor %d: %w", p.CompetitorID, err)
	}
	return summarize(p, applied, unlocked), nil
}

func advanceWinner(ctx context.Context, repos repositories.Repositories, m *models.Match, winnerID int) error {
	if m.WinnerToSlot == nil {
		return fmt.Errorf("match %d links to match %d without a slot", m.ID, *m.NextMatchID)
	}
	if err := repos.Matches.SetSlot(ctx, *m.NextMatchID, *m.WinnerToSlot, winnerID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotOpen) {
			return fmt.Errorf("%w: next match %d is no longer open", ErrState, *m.NextMatchID)
		}
		return err
	}
	return nil
}

// completeWhenPlayed completes the competition once no match is open and
// reports whether it did.
func completeWhenPlayed(ctx context.Context, repos repositories.Repositories, competitionID int) (bool, error) {
	matches, err := repos.Matches.ListByCompetition(ctx, competitionID)
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		if !m.Status.IsClosed() {
			return false, nil
		}
	}
	if err := repos.Competitions.UpdateStatus(ctx, competitionID, models.CompetitionCompleted); err != nil {
		return false, err
	}
	return true, nil
}

// loneSlot returns the participant of a match with exactly one filled slot
// and the side that is empty.
func loneSlot(m *models.Match) (int, models.Slot, bool) {
	switch {
	case m.SlotA != nil && m.SlotB == nil:
		return *m.SlotA, models.SlotB, true
	case m.SlotA == nil && m.SlotB != nil:
		return *m.SlotB, models.SlotA, true
	}
	return 0, "", false
}

// resolveByes advances the participant of every match whose empty slot has
// no feeder, until none is left. A bye without a next match crowns the
// competition champion.
func resolveByes(ctx context.Context, repos repositories.Repositories, competitionID int) ([]*models.Match, *int, error) {
	resolved := make([]*models.Match, 0)
	var championID *int

	for {
		matches, err := repos.Matches.ListByCompetition(ctx, competitionID)
		if err != nil {
			return nil, nil, err
		}

		fed := make(map[int]map[models.Slot]bool)
		for _, m := range matches {
			if m.NextMatchID == nil || m.WinnerToSlot == nil {
				continue
			}
			if fed[*m.NextMatchID] == nil {
				fed[*m.NextMatchID] = make(map[models.Slot]bool)
			}
			fed[*m.NextMatchID][*m.WinnerToSlot] = true
		}

		progressed := false
		for _, m := range matches {
			if m.Status != models.MatchScheduled || m.IsGroupStage() {
				continue
			}
			pid, empty, ok := loneSlot(m)
			if !ok || fed[m.ID][empty] {
				continue
			}

			if m.NextMatchID != nil {
				if err := advanceWinner(ctx, repos, m, pid); err != nil {
					return nil, nil, err
				}
			} else {
				if err := repos.Competitions.SetChampion(ctx, competitionID, pid); err != nil {
					return nil, nil, err
				}
				championID = intPtr(pid)
			}
			if err := repos.Matches.CancelBye(ctx, m.ID, pid); err != nil {
				return nil, nil, err
			}
			updated, err := repos.Matches.GetByID(ctx, m.ID)
			if err != nil {
				return nil, nil, err
			}
			resolved = append(resolved, updated)
			progressed = true
			// Feeders changed; rescan from a fresh listing.
			break
		}
		if !progressed {
			return resolved, championID, nil
		}
	}
}

func (s *matchService) AdvanceByes(ctx context.Context, competitionID int) (resolved []*models.Match, err error) {
	ctx, span := startSpan(ctx, "MatchService.AdvanceByes", attribute.Int("competition.id", competitionID))
	defer func() { endSpan(span, err) }()

	var championID *int
	var topScorer *GamificationSummary
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		c, err := repos.Competitions.GetForUpdate(ctx, competitionID)
		if err != nil {
			return err
		}
		if !c.ScheduleGenerated() {
			return ErrScheduleNotGenerated
		}
		resolved, championID, err = resolveByes(ctx, repos, competitionID)
		if err != nil || championID == nil {
			return err
		}

		topScorerID, err := findTopScorer(ctx, repos, competitionID)
		if err != nil || topScorerID == nil {
			return err
		}
		locked, err := lockProgress(ctx, repos, *topScorerID)
		if err != nil {
			return err
		}
		gain, err := awardTopScorer(ctx, repos, locked[*topScorerID])
		if err != nil {
			return err
		}
		topScorer = &gain
		return nil
	})
	if err != nil {
		err = handleRepositoryError(err, "advance byes")
		return nil, err
	}

	metrics.ByesResolved.Add(float64(len(resolved)))
	if topScorer != nil {
		metrics.RecordAchievements(progression.IDs(topScorer.NewAchievements))
		s.logger.Info("top scorer awarded", slog.Int("competition_id", competitionID), slog.Int("competitor_id", topScorer.CompetitorID))
	}
	if len(resolved) > 0 {
		s.logger.Info("byes advanced", slog.Int("competition_id", competitionID), slog.Int("count", len(resolved)))
		s.notifier.Publish(competitionID, EventByesAdvanced, resolved)
	}
	if championID != nil {
		s.notifier.Publish(competitionID, EventCompetitionWon, TournamentWinnerPayload{
			CompetitionID: competitionID,
			ParticipantID: *championID,
			IsAutoWin:     true,
		})
	}
	return resolved, nil
}

// SeedKnockout fills the first knockout round of a group competition from
// the final group tables.
func (s *matchService) SeedKnockout(ctx context.Context, competitionID int) (seeded []*models.Match, err error) {
	ctx, span := startSpan(ctx, "MatchService.SeedKnockout", attribute.Int("competition.id", competitionID))
	defer func() { endSpan(span, err) }()

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		c, err := repos.Competitions.GetForUpdate(ctx, competitionID)
		if err != nil {
			return err
		}
		if c.Format != models.FormatGroupStageKnockout {
			return fmt.Errorf("%w: competition %d has no group stage", ErrValidation, competitionID)
		}
		if !c.ScheduleGenerated() {
			return ErrScheduleNotGenerated
		}

		matches, err := repos.Matches.ListByCompetition(ctx, competitionID)
		if err != nil {
			return err
		}

		var firstRound []*models.Match
		firstKnockoutRound := 0
		for _, m := range matches {
			if m.IsGroupStage() {
				if !m.Status.IsClosed() {
					return fmt.Errorf("%w: match %d is still %s", ErrGroupStageIncomplete, m.ID, m.Status)
				}
				continue
			}
			if firstKnockoutRound == 0 || m.Round < firstKnockoutRound {
				firstKnockoutRound = m.Round
			}
		}
		for _, m := range matches {
			if !m.IsGroupStage() && m.Round == firstKnockoutRound {
				if m.SlotA != nil || m.SlotB != nil {
					return ErrKnockoutAlreadySeeded
				}
				firstRound = append(firstRound, m)
			}
		}
		sort.Slice(firstRound, func(i, j int) bool { return firstRound[i].OrderInRound < firstRound[j].OrderInRound })

		tables := brackets.GroupTables(matches, c.Rule)
		qualifiers := brackets.QualifierOrder(tables, c.Groups.GroupCount, c.Groups.QualifiersPerGroup)
		layout := brackets.SeedLayout(qualifiers)
		if (len(layout)+1)/2 != len(firstRound) {
			return fmt.Errorf("%d qualifiers do not fit %d knockout matches", len(layout), len(firstRound))
		}

		for i, pid := range layout {
			slot := models.SlotA
			if i%2 == 1 {
				slot = models.SlotB
			}
			if err := repos.Matches.SetSlot(ctx, firstRound[i/2].ID, slot, pid); err != nil {
				return err
			}
		}

		if _, _, err := resolveByes(ctx, repos, competitionID); err != nil {
			return err
		}

		seeded = make([]*models.Match, 0, len(firstRound))
		for _, m := range firstRound {
			updated, err := repos.Matches.GetByID(ctx, m.ID)
			if err != nil {
				return err
			}
			seeded = append(seeded, updated)
		}
		return nil
	})
	if err != nil {
		err = handleRepositoryError(err, "seed knockout")
		return nil, err
	}

	s.logger.Info("knockout seeded", slog.Int("competition_id", competitionID), slog.Int("matches", len(seeded)))
	s.notifier.Publish(competitionID, EventKnockoutSeeded, seeded)
	return seeded, nil
}
