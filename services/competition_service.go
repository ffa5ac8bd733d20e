package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/tournament-progression/brackets"
	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/repositories"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

type CreateCompetitionInput struct {
	Name   string                   `json:"name"`
	Format models.CompetitionFormat `json:"format"`
	Rule   *models.ScoringRule      `json:"scoring_rule,omitempty"`
	Groups *models.GroupSettings    `json:"group_settings,omitempty"`
}

// CompetitionOverview is everything a client needs to render a competition.
type CompetitionOverview struct {
	Competition  *models.Competition   `json:"competition"`
	Participants []*models.Participant `json:"participants"`
	Matches      []*models.Match       `json:"matches"`
	Standings    []*models.Standing    `json:"standings"`
}

type CompetitionService interface {
	CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error)
	GetCompetition(ctx context.Context, id int) (*models.Competition, error)
	ListCompetitions(ctx context.Context, status *models.CompetitionStatus) ([]*models.Competition, error)
	AddParticipant(ctx context.Context, competitionID int, name string) (*models.Participant, error)
	GetOverview(ctx context.Context, competitionID int) (*CompetitionOverview, error)
	GetStandings(ctx context.Context, competitionID int) ([]*models.Standing, error)
	GetStats(ctx context.Context, competitionID int) (*CompetitionStats, error)
}

type competitionService struct {
	store  repositories.Store
	logger *slog.Logger
}

func NewCompetitionService(store repositories.Store, logger *slog.Logger) CompetitionService {
	return &competitionService{store: store, logger: logger}
}

// ValidateScoringRule checks a rule against the competition format. Points
// are non-negative and ordered win >= draw >= loss; single elimination never
// allows draws.
func ValidateScoringRule(format models.CompetitionFormat, rule models.ScoringRule) error {
	if rule.PointsWin < 0 || rule.PointsDraw < 0 || rule.PointsLoss < 0 {
		return fmt.Errorf("%w: points must be non-negative", ErrInvalidScoringRule)
	}
	if rule.PointsWin < rule.PointsDraw || rule.PointsDraw < rule.PointsLoss {
		return fmt.Errorf("%w: points must satisfy win >= draw >= loss", ErrInvalidScoringRule)
	}
	if format == models.FormatSingleElimination && rule.DrawsAllowed {
		return fmt.Errorf("%w: single elimination cannot allow draws", ErrInvalidScoringRule)
	}
	return nil
}

func (s *competitionService) CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: competition name is required", ErrValidation)
	}
	if !input.Format.IsValid() {
		return nil, fmt.Errorf("%w: unknown format %q", ErrValidation, input.Format)
	}

	rule := models.DefaultScoringRule()
	if input.Format == models.FormatSingleElimination {
		rule.DrawsAllowed = false
	}
	if input.Rule != nil {
		rule = *input.Rule
	}
	if err := ValidateScoringRule(input.Format, rule); err != nil {
		return nil, err
	}

	var groups models.GroupSettings
	if input.Format == models.FormatGroupStageKnockout {
		if input.Groups == nil {
			return nil, fmt.Errorf("%w: group settings are required for %s", ErrValidation, input.Format)
		}
		groups = *input.Groups
		if groups.GroupCount < 1 || groups.QualifiersPerGroup < 1 || groups.GroupCount*groups.QualifiersPerGroup < 2 {
			return nil, fmt.Errorf("%w: group count and qualifiers per group must allow at least two qualifiers", ErrValidation)
		}
	}

	c := &models.Competition{
		Name:   name,
		Format: input.Format,
		Status: models.CompetitionDraft,
		Rule:   rule,
		Groups: groups,
	}
	if err := s.store.Repos().Competitions.Create(ctx, c); err != nil {
		return nil, handleRepositoryError(err, "create competition")
	}
	s.logger.Info("competition created", slog.Int("competition_id", c.ID), slog.String("format", string(c.Format)))
	return c, nil
}

func (s *competitionService) GetCompetition(ctx context.Context, id int) (*models.Competition, error) {
	c, err := s.store.Repos().Competitions.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get competition")
	}
	return c, nil
}

func (s *competitionService) ListCompetitions(ctx context.Context, status *models.CompetitionStatus) ([]*models.Competition, error) {
	list, err := s.store.Repos().Competitions.List(ctx, status)
	if err != nil {
		return nil, handleRepositoryError(err, "list competitions")
	}
	return list, nil
}

// AddParticipant registers a participant. Registration closes once the
// schedule exists.
func (s *competitionService) AddParticipant(ctx context.Context, competitionID int, name string) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrValidation)
	}

	var p *models.Participant
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		c, err := repos.Competitions.GetForUpdate(ctx, competitionID)
		if err != nil {
			return err
		}
		if c.ScheduleGenerated() || c.Status != models.CompetitionDraft {
			return fmt.Errorf("%w: registration is closed for competition %d", ErrCompetitionClosed, competitionID)
		}
		p = &models.Participant{CompetitionID: competitionID, Name: name}
		return repos.Participants.Create(ctx, p)
	})
	if err != nil {
		return nil, handleRepositoryError(err, "add participant")
	}
	return p, nil
}

func (s *competitionService) GetOverview(ctx context.Context, competitionID int) (*CompetitionOverview, error) {
	ctx, span := startSpan(ctx, "CompetitionService.GetOverview", attribute.Int("competition.id", competitionID))
	var err error
	defer func() { endSpan(span, err) }()

	repos := s.store.Repos()
	overview := &CompetitionOverview{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := repos.Competitions.GetByID(gCtx, competitionID)
		if err != nil {
			return err
		}
		overview.Competition = c
		return nil
	})
	g.Go(func() error {
		ps, err := repos.Participants.ListByCompetition(gCtx, competitionID)
		if err != nil {
			return err
		}
		overview.Participants = ps
		return nil
	})
	g.Go(func() error {
		ms, err := repos.Matches.ListByCompetition(gCtx, competitionID)
		if err != nil {
			return err
		}
		overview.Matches = ms
		return nil
	})
	g.Go(func() error {
		st, err := repos.Participants.ListStandings(gCtx, competitionID)
		if err != nil {
			return err
		}
		overview.Standings = st
		return nil
	})

	if err = g.Wait(); err != nil {
		err = handleRepositoryError(err, "load competition overview")
		return nil, err
	}
	attachParticipants(overview.Standings, overview.Participants)
	return overview, nil
}

func (s *competitionService) GetStandings(ctx context.Context, competitionID int) ([]*models.Standing, error) {
	repos := s.store.Repos()
	if _, err := repos.Competitions.GetByID(ctx, competitionID); err != nil {
		return nil, handleRepositoryError(err, "get standings")
	}
	standings, err := repos.Participants.ListStandings(ctx, competitionID)
	if err != nil {
		return nil, handleRepositoryError(err, "get standings")
	}
	participants, err := repos.Participants.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, handleRepositoryError(err, "get standings")
	}
	attachParticipants(standings, participants)
	return standings, nil
}

func (s *competitionService) GetStats(ctx context.Context, competitionID int) (*CompetitionStats, error) {
	ctx, span := startSpan(ctx, "CompetitionService.GetStats", attribute.Int("competition.id", competitionID))
	var err error
	defer func() { endSpan(span, err) }()

	repos := s.store.Repos()
	d := &statsData{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := repos.Competitions.GetByID(gCtx, competitionID)
		return err
	})
	g.Go(func() (err error) {
		d.participants, err = repos.Participants.ListByCompetition(gCtx, competitionID)
		return err
	})
	g.Go(func() (err error) {
		d.matches, err = repos.Matches.ListByCompetition(gCtx, competitionID)
		return err
	})
	g.Go(func() (err error) {
		d.events, err = repos.Events.ListByCompetition(gCtx, competitionID)
		return err
	})
	g.Go(func() (err error) {
		d.cards, err = repos.Cards.ListByCompetition(gCtx, competitionID)
		return err
	})
	g.Go(func() (err error) {
		d.roster, err = repos.Rosters.ListByCompetition(gCtx, competitionID)
		return err
	})
	if err = g.Wait(); err != nil {
		err = handleRepositoryError(err, "load competition stats")
		return nil, err
	}

	if err = d.loadCompetitors(ctx, repos, true); err != nil {
		err = handleRepositoryError(err, "load competition stats")
		return nil, err
	}
	return buildCompetitionStats(competitionID, d), nil
}

func attachParticipants(standings []*models.Standing, participants []*models.Participant) {
	byID := make(map[int]*models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}
	for _, st := range standings {
		st.Participant = byID[st.ParticipantID]
	}
}

// translateBracketError maps generator errors onto service kinds.
func translateBracketError(err error) error {
	switch {
	case errors.Is(err, brackets.ErrNotEnoughParticipants):
		return fmt.Errorf("%w (%v)", ErrNotEnoughParticipants, err)
	case errors.Is(err, brackets.ErrInvalidGroupSettings), errors.Is(err, brackets.ErrUnsupportedFormat):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	default:
		return err
	}
}
