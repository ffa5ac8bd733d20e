package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-progression/brackets"
	"github.com/Dosada05/tournament-progression/metrics"
	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/repositories"
	"go.opentelemetry.io/otel/attribute"
)

type ScheduleResult struct {
	Matches     []*models.Match `json:"matches"`
	TotalRounds int             `json:"total_rounds"`
}

type ScheduleService interface {
	GenerateSchedule(ctx context.Context, competitionID int) (*ScheduleResult, error)
}

type scheduleService struct {
	store    repositories.Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewScheduleService(store repositories.Store, notifier Notifier, logger *slog.Logger) ScheduleService {
	return &scheduleService{
		store:    store,
		notifier: notifierOrNop(notifier),
		logger:   logger,
		now:      time.Now,
	}
}

// GenerateSchedule builds the schedule for the competition's format and
// persists it. The competition row stays locked for the whole unit of work,
// and the schedule stamp only succeeds once, so two concurrent calls cannot
// both produce matches.
func (s *scheduleService) GenerateSchedule(ctx context.Context, competitionID int) (result *ScheduleResult, err error) {
	ctx, span := startSpan(ctx, "ScheduleService.GenerateSchedule", attribute.Int("competition.id", competitionID))
	defer func() { endSpan(span, err) }()

	var format models.CompetitionFormat
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		competition, err := repos.Competitions.GetForUpdate(ctx, competitionID)
		if err != nil {
			return err
		}
		format = competition.Format
		if competition.ScheduleGenerated() {
			return ErrScheduleAlreadyGenerated
		}
		existing, err := repos.Matches.CountByCompetition(ctx, competitionID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: competition %d already has %d matches", ErrScheduleAlreadyGenerated, competitionID, existing)
		}
		if competition.Status == models.CompetitionCanceled || competition.Status == models.CompetitionCompleted {
			return ErrCompetitionClosed
		}

		participants, err := repos.Participants.ListByCompetition(ctx, competitionID)
		if err != nil {
			return err
		}
		if len(participants) < 2 {
			return fmt.Errorf("%w (found %d)", ErrNotEnoughParticipants, len(participants))
		}

		generator, err := brackets.ForFormat(competition.Format)
		if err != nil {
			return translateBracketError(err)
		}
		schedule, err := generator.Generate(ctx, brackets.Params{Competition: competition, Participants: participants})
		if err != nil {
			return translateBracketError(err)
		}
		s.logger.Info("schedule generated",
			slog.Int("competition_id", competitionID),
			slog.String("generator", generator.Name()),
			slog.Int("participants", len(participants)),
			slog.Int("matches", len(schedule.Matches)),
			slog.Int("total_rounds", schedule.TotalRounds),
		)

		matches, err := persistSchedule(ctx, repos, competitionID, schedule)
		if err != nil {
			return err
		}

		if err := repos.Competitions.MarkScheduleGenerated(ctx, competitionID, schedule.TotalRounds, s.now()); err != nil {
			if errors.Is(err, repositories.ErrScheduleAlreadyStamped) {
				return ErrScheduleAlreadyGenerated
			}
			return err
		}

		result = &ScheduleResult{Matches: matches, TotalRounds: schedule.TotalRounds}
		return nil
	})
	if err != nil {
		err = handleRepositoryError(err, "generate schedule")
		return nil, err
	}

	metrics.SchedulesGenerated.WithLabelValues(string(format)).Inc()
	s.notifier.Publish(competitionID, EventScheduleGenerated, result)
	return result, nil
}

// persistSchedule inserts the generated matches in two passes: first every
// match, then the links between them, since links need database ids.
func persistSchedule(ctx context.Context, repos repositories.Repositories, competitionID int, schedule *brackets.Schedule) ([]*models.Match, error) {
	idByUID := make(map[string]int, len(schedule.Matches))
	created := make([]*models.Match, 0, len(schedule.Matches))

	for _, bm := range schedule.Matches {
		m := &models.Match{
			CompetitionID: competitionID,
			Round:         bm.Round,
			OrderInRound:  bm.OrderInRound,
			Stage:         bm.Stage,
			SlotA:         bm.SlotA,
			SlotB:         bm.SlotB,
			Status:        models.MatchScheduled,
			IsBye:         bm.IsBye,
		}
		if err := repos.Matches.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("failed to create match %s: %w", bm.UID, err)
		}
		idByUID[bm.UID] = m.ID
		created = append(created, m)
	}

	for i, bm := range schedule.Matches {
		if bm.NextUID == nil {
			continue
		}
		nextID, ok := idByUID[*bm.NextUID]
		if !ok {
			return nil, fmt.Errorf("match %s links to unknown match %s", bm.UID, *bm.NextUID)
		}
		slot := bm.WinnerToSlot
		if err := repos.Matches.UpdateNextMatchInfo(ctx, created[i].ID, intPtr(nextID), &slot); err != nil {
			return nil, fmt.Errorf("failed to link match %s to %s: %w", bm.UID, *bm.NextUID, err)
		}
		created[i].NextMatchID = intPtr(nextID)
		created[i].WinnerToSlot = &slot
	}
	return created, nil
}
