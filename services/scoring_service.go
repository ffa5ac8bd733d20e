package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-progression/metrics"
	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/progression"
	"github.com/Dosada05/tournament-progression/repositories"
	"go.opentelemetry.io/otel/attribute"
)

type RecordEventInput struct {
	MatchID                 int              `json:"-"`
	ScoringCompetitorID     int              `json:"scoring_competitor_id"`
	BenefitingParticipantID int              `json:"benefiting_participant_id"`
	Kind                    models.EventKind `json:"kind"`
	Minute                  *int             `json:"minute,omitempty"`
	AssistCompetitorID      *int             `json:"assist_competitor_id,omitempty"`
}

type RecordEventResult struct {
	Event  *models.ScoringEvent `json:"event"`
	Scorer GamificationSummary  `json:"scorer"`
	Assist *GamificationSummary `json:"assist,omitempty"`
}

type RecordCardInput struct {
	MatchID       int                 `json:"-"`
	CompetitorID  int                 `json:"competitor_id"`
	ParticipantID int                 `json:"participant_id"`
	Severity      models.CardSeverity `json:"severity"`
	Minute        *int                `json:"minute,omitempty"`
}

type RecordCardResult struct {
	Card       *models.CardEvent   `json:"card"`
	Competitor GamificationSummary `json:"competitor"`
}

// ReverseResult describes the progress left after a ledger entry is undone.
type ReverseResult struct {
	Competitors []ReversedProgress `json:"competitors"`
}

type ReversedProgress struct {
	CompetitorID        int                   `json:"competitor_id"`
	XP                  int                   `json:"xp"`
	Level               progression.LevelInfo `json:"level"`
	RevokedAchievements []string              `json:"revoked_achievements"`
}

type MatchLedger struct {
	Events []*models.ScoringEvent `json:"events"`
	Cards  []*models.CardEvent    `json:"cards"`
}

type ScoringService interface {
	RecordEvent(ctx context.Context, input RecordEventInput) (*RecordEventResult, error)
	ReverseEvent(ctx context.Context, eventID int) (*ReverseResult, error)
	RecordCard(ctx context.Context, input RecordCardInput) (*RecordCardResult, error)
	ReverseCard(ctx context.Context, cardID int) (*ReverseResult, error)
	ListMatchEvents(ctx context.Context, matchID int) (*MatchLedger, error)
}

type scoringService struct {
	store    repositories.Store
	notifier Notifier
	logger   *slog.Logger
}

func NewScoringService(store repositories.Store, notifier Notifier, logger *slog.Logger) ScoringService {
	return &scoringService{store: store, notifier: notifierOrNop(notifier), logger: logger}
}

// openMatch locks the match and checks that it still accepts ledger entries.
func openMatch(ctx context.Context, repos repositories.Repositories, matchID int) (*models.Match, error) {
	m, err := repos.Matches.GetForUpdate(ctx, matchID)
	if err != nil {
		return nil, err
	}
	switch m.Status {
	case models.MatchFinished:
		return nil, ErrMatchAlreadyFinished
	case models.MatchCanceled:
		return nil, ErrMatchCanceled
	}
	if !m.HasBothSlots() {
		return nil, ErrSlotsNotFilled
	}
	return m, nil
}

func requireMember(ctx context.Context, repos repositories.Repositories, competitorID, participantID int) error {
	if _, err := repos.Competitors.GetByID(ctx, competitorID); err != nil {
		return err
	}
	member, err := repos.Rosters.IsMember(ctx, competitorID, participantID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("%w: competitor %d, participant %d", ErrNotOnRoster, competitorID, participantID)
	}
	return nil
}

func validateEventInput(input RecordEventInput) error {
	if !input.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, input.Kind)
	}
	if input.Minute != nil && *input.Minute < 0 {
		return fmt.Errorf("%w: minute must be non-negative", ErrInvalidEvent)
	}
	if input.AssistCompetitorID != nil && *input.AssistCompetitorID == input.ScoringCompetitorID {
		return fmt.Errorf("%w: scorer cannot assist themselves", ErrInvalidEvent)
	}
	return nil
}

func (s *scoringService) RecordEvent(ctx context.Context, input RecordEventInput) (result *RecordEventResult, err error) {
	ctx, span := startSpan(ctx, "ScoringService.RecordEvent",
		attribute.Int("match.id", input.MatchID),
		attribute.String("event.kind", string(input.Kind)),
	)
	defer func() { endSpan(span, err) }()

	if err = validateEventInput(input); err != nil {
		return nil, err
	}

	var competitionID int
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		m, err := openMatch(ctx, repos, input.MatchID)
		if err != nil {
			return err
		}
		competitionID = m.CompetitionID

		if _, ok := m.Side(input.BenefitingParticipantID); !ok {
			return fmt.Errorf("%w: participant %d is not in match %d", ErrInvalidEvent, input.BenefitingParticipantID, m.ID)
		}
		scorerTeam := input.BenefitingParticipantID
		if input.Kind == models.EventOwnAction {
			scorerTeam = *m.Opponent(input.BenefitingParticipantID)
		}
		if err := requireMember(ctx, repos, input.ScoringCompetitorID, scorerTeam); err != nil {
			return err
		}
		if input.AssistCompetitorID != nil {
			if err := requireMember(ctx, repos, *input.AssistCompetitorID, scorerTeam); err != nil {
				return err
			}
		}

		if err := repos.Matches.MarkLive(ctx, m.ID); err != nil {
			return err
		}

		events, err := repos.Events.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}
		cards, err := repos.Cards.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}

		event := &models.ScoringEvent{
			MatchID:                 m.ID,
			ScoringCompetitorID:     input.ScoringCompetitorID,
			BenefitingParticipantID: input.BenefitingParticipantID,
			Minute:                  input.Minute,
			Kind:                    input.Kind,
			AssistCompetitorID:      input.AssistCompetitorID,
		}
		withEvent := append(append([]*models.ScoringEvent{}, events...), event)

		ids := []int{input.ScoringCompetitorID}
		if input.AssistCompetitorID != nil {
			ids = append(ids, *input.AssistCompetitorID)
		}
		locked, err := lockProgress(ctx, repos, ids...)
		if err != nil {
			return err
		}

		scorer := locked[input.ScoringCompetitorID]
		scorer.Stats.Scored++
		switch input.Kind {
		case models.EventPenalty:
			scorer.Stats.PenaltiesScored++
		case models.EventFreeAction:
			scorer.Stats.FreeActionsScored++
		}
		applied, unlocked := award(scorer, progression.ScoreXP(input.Kind), inMatchStats(scorer.CompetitorID, withEvent, cards))
		event.ScorerXP = applied
		event.ScorerAchievements = progression.IDs(unlocked)
		result = &RecordEventResult{Scorer: summarize(scorer, applied, unlocked)}

		var assist *models.CompetitorProgress
		if input.AssistCompetitorID != nil {
			assist = locked[*input.AssistCompetitorID]
			assist.Stats.Assisted++
			applied, unlocked := award(assist, progression.XPAssist, inMatchStats(assist.CompetitorID, withEvent, cards))
			event.AssistXP = applied
			event.AssistAchievements = progression.IDs(unlocked)
			summary := summarize(assist, applied, unlocked)
			result.Assist = &summary
		}

		if err := repos.Events.Create(ctx, event); err != nil {
			return err
		}
		if err := repos.Competitors.SaveProgress(ctx, scorer); err != nil {
			return err
		}
		if assist != nil {
			if err := repos.Competitors.SaveProgress(ctx, assist); err != nil {
				return err
			}
		}
		result.Event = event
		return nil
	})
	if err != nil {
		err = handleRepositoryError(err, "record scoring event")
		return nil, err
	}

	metrics.LedgerOperations.WithLabelValues("event", "record").Inc()
	metrics.RecordAchievements(progression.IDs(result.Scorer.NewAchievements))
	if result.Assist != nil {
		metrics.RecordAchievements(progression.IDs(result.Assist.NewAchievements))
	}
	s.logger.Info("scoring event recorded",
		slog.Int("event_id", result.Event.ID),
		slog.Int("match_id", input.MatchID),
		slog.String("kind", string(input.Kind)),
		slog.Int("scorer_xp", result.Event.ScorerXP),
	)
	s.notifier.Publish(competitionID, EventScoreRecorded, result)
	return result, nil
}

// ReverseEvent removes an event from the ledger and undoes exactly what it
// applied to the scorer and the assisting competitor.
func (s *scoringService) ReverseEvent(ctx context.Context, eventID int) (result *ReverseResult, err error) {
	ctx, span := startSpan(ctx, "ScoringService.ReverseEvent", attribute.Int("event.id", eventID))
	defer func() { endSpan(span, err) }()

	var competitionID int
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		event, err := repos.Events.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		m, err := openMatch(ctx, repos, event.MatchID)
		if err != nil {
			return err
		}
		competitionID = m.CompetitionID

		events, err := repos.Events.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}
		remaining := make([]*models.ScoringEvent, 0, len(events))
		for _, e := range events {
			if e.ID != event.ID {
				remaining = append(remaining, e)
			}
		}
		cards, err := repos.Cards.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}

		ids := []int{event.ScoringCompetitorID}
		if event.AssistCompetitorID != nil {
			ids = append(ids, *event.AssistCompetitorID)
		}
		locked, err := lockProgress(ctx, repos, ids...)
		if err != nil {
			return err
		}
		result = &ReverseResult{}

		scorer := locked[event.ScoringCompetitorID]
		decrementFloor(&scorer.Stats.Scored)
		switch event.Kind {
		case models.EventPenalty:
			decrementFloor(&scorer.Stats.PenaltiesScored)
		case models.EventFreeAction:
			decrementFloor(&scorer.Stats.FreeActionsScored)
		}
		revoked, kept := revoke(scorer, event.ScorerXP, event.ScorerAchievements, inMatchStats(scorer.CompetitorID, remaining, cards))
		if err := repos.Competitors.SaveProgress(ctx, scorer); err != nil {
			return err
		}
		if adopter := adoptAchievements(scorer.CompetitorID, kept, remaining); adopter != nil {
			if err := repos.Events.UpdateLedger(ctx, adopter); err != nil {
				return err
			}
		}
		result.Competitors = append(result.Competitors, reversed(scorer, revoked))

		if event.AssistCompetitorID != nil {
			assist := locked[*event.AssistCompetitorID]
			decrementFloor(&assist.Stats.Assisted)
			revoked, kept := revoke(assist, event.AssistXP, event.AssistAchievements, inMatchStats(assist.CompetitorID, remaining, cards))
			if err := repos.Competitors.SaveProgress(ctx, assist); err != nil {
				return err
			}
			if adopter := adoptAchievements(assist.CompetitorID, kept, remaining); adopter != nil {
				if err := repos.Events.UpdateLedger(ctx, adopter); err != nil {
					return err
				}
			}
			result.Competitors = append(result.Competitors, reversed(assist, revoked))
		}

		return repos.Events.Delete(ctx, event.ID)
	})
	if err != nil {
		err = handleRepositoryError(err, "reverse scoring event")
		return nil, err
	}

	metrics.LedgerOperations.WithLabelValues("event", "reverse").Inc()
	for _, c := range result.Competitors {
		for _, id := range c.RevokedAchievements {
			metrics.AchievementsRevoked.WithLabelValues(id).Inc()
		}
	}
	s.logger.Info("scoring event reversed", slog.Int("event_id", eventID))
	s.notifier.Publish(competitionID, EventScoreReversed, map[string]int{"event_id": eventID})
	return result, nil
}

func reversed(p *models.CompetitorProgress, revoked []progression.AchievementDefinition) ReversedProgress {
	return ReversedProgress{
		CompetitorID:        p.CompetitorID,
		XP:                  p.XP,
		Level:               progression.LevelOf(p.XP),
		RevokedAchievements: progression.IDs(revoked),
	}
}

func (s *scoringService) RecordCard(ctx context.Context, input RecordCardInput) (result *RecordCardResult, err error) {
	ctx, span := startSpan(ctx, "ScoringService.RecordCard",
		attribute.Int("match.id", input.MatchID),
		attribute.String("card.severity", string(input.Severity)),
	)
	defer func() { endSpan(span, err) }()

	if !input.Severity.IsValid() {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrInvalidCard, input.Severity)
	}
	if input.Minute != nil && *input.Minute < 0 {
		return nil, fmt.Errorf("%w: minute must be non-negative", ErrInvalidCard)
	}

	var competitionID int
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		m, err := openMatch(ctx, repos, input.MatchID)
		if err != nil {
			return err
		}
		competitionID = m.CompetitionID
		if _, ok := m.Side(input.ParticipantID); !ok {
			return fmt.Errorf("%w: participant %d is not in match %d", ErrInvalidCard, input.ParticipantID, m.ID)
		}
		if err := requireMember(ctx, repos, input.CompetitorID, input.ParticipantID); err != nil {
			return err
		}
		if err := repos.Matches.MarkLive(ctx, m.ID); err != nil {
			return err
		}

		p, err := repos.Competitors.GetProgressForUpdate(ctx, input.CompetitorID)
		if err != nil {
			return err
		}
		if input.Severity == models.CardMajor {
			p.Stats.CardsMajor++
		} else {
			p.Stats.CardsMinor++
		}
		applied := p.AddXP(progression.CardXP(input.Severity))

		card := &models.CardEvent{
			MatchID:       m.ID,
			CompetitorID:  input.CompetitorID,
			ParticipantID: input.ParticipantID,
			Severity:      input.Severity,
			Minute:        input.Minute,
			XP:            applied,
		}
		if err := repos.Cards.Create(ctx, card); err != nil {
			return err
		}
		if err := repos.Competitors.SaveProgress(ctx, p); err != nil {
			return err
		}
		result = &RecordCardResult{Card: card, Competitor: summarize(p, applied, nil)}
		return nil
	})
	if err != nil {
		err = handleRepositoryError(err, "record card")
		return nil, err
	}

	metrics.LedgerOperations.WithLabelValues("card", "record").Inc()
	s.logger.Info("card recorded", slog.Int("card_id", result.Card.ID), slog.String("severity", string(input.Severity)))
	s.notifier.Publish(competitionID, EventCardRecorded, result)
	return result, nil
}

func (s *scoringService) ReverseCard(ctx context.Context, cardID int) (result *ReverseResult, err error) {
	ctx, span := startSpan(ctx, "ScoringService.ReverseCard", attribute.Int("card.id", cardID))
	defer func() { endSpan(span, err) }()

	var competitionID int
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		card, err := repos.Cards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		m, err := openMatch(ctx, repos, card.MatchID)
		if err != nil {
			return err
		}
		competitionID = m.CompetitionID

		p, err := repos.Competitors.GetProgressForUpdate(ctx, card.CompetitorID)
		if err != nil {
			return err
		}
		if card.Severity == models.CardMajor {
			decrementFloor(&p.Stats.CardsMajor)
		} else {
			decrementFloor(&p.Stats.CardsMinor)
		}
		p.RevertXP(card.XP)
		if err := repos.Competitors.SaveProgress(ctx, p); err != nil {
			return err
		}
		result = &ReverseResult{Competitors: []ReversedProgress{reversed(p, nil)}}
		return repos.Cards.Delete(ctx, card.ID)
	})
	if err != nil {
		err = handleRepositoryError(err, "reverse card")
		return nil, err
	}

	metrics.LedgerOperations.WithLabelValues("card", "reverse").Inc()
	s.logger.Info("card reversed", slog.Int("card_id", cardID))
	s.notifier.Publish(competitionID, EventCardReversed, map[string]int{"card_id": cardID})
	return result, nil
}

func (s *scoringService) ListMatchEvents(ctx context.Context, matchID int) (*MatchLedger, error) {
	repos := s.store.Repos()
	if _, err := repos.Matches.GetByID(ctx, matchID); err != nil {
		return nil, handleRepositoryError(err, "list match events")
	}
	events, err := repos.Events.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "list match events")
	}
	cards, err := repos.Cards.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "list match events")
	}
	return &MatchLedger{Events: events, Cards: cards}, nil
}
