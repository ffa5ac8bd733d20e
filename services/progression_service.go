package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/progression"
	"github.com/Dosada05/tournament-progression/repositories"
)

// CompetitorProfile is a competitor with derived level and resolved
// achievement definitions.
type CompetitorProfile struct {
	Competitor   *models.Competitor                  `json:"competitor"`
	Progress     *models.CompetitorProgress          `json:"progress"`
	Level        progression.LevelInfo               `json:"level"`
	Achievements []progression.AchievementDefinition `json:"achievements"`
}

type ProgressionService interface {
	CreateCompetitor(ctx context.Context, name string) (*models.Competitor, error)
	AddRosterEntry(ctx context.Context, participantID, competitorID int) (*models.RosterEntry, error)
	GetProgress(ctx context.Context, competitorID int) (*CompetitorProfile, error)
	LevelOf(xp int) progression.LevelInfo
	Catalog() []progression.AchievementDefinition
}

type progressionService struct {
	store  repositories.Store
	logger *slog.Logger
}

func NewProgressionService(store repositories.Store, logger *slog.Logger) ProgressionService {
	return &progressionService{store: store, logger: logger}
}

func (s *progressionService) CreateCompetitor(ctx context.Context, name string) (*models.Competitor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: competitor name is required", ErrValidation)
	}
	c := &models.Competitor{Name: name}
	if err := s.store.Repos().Competitors.Create(ctx, c); err != nil {
		return nil, handleRepositoryError(err, "create competitor")
	}
	s.logger.Info("competitor created", slog.Int("competitor_id", c.ID))
	return c, nil
}

func (s *progressionService) AddRosterEntry(ctx context.Context, participantID, competitorID int) (*models.RosterEntry, error) {
	var entry *models.RosterEntry
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		participant, err := repos.Participants.GetByID(ctx, participantID)
		if err != nil {
			return err
		}
		if _, err := repos.Competitors.GetByID(ctx, competitorID); err != nil {
			return err
		}
		existing, err := repos.Rosters.FindInCompetition(ctx, participant.CompetitionID, competitorID)
		switch {
		case err == nil && existing.ParticipantID == participantID:
			return ErrAlreadyOnRoster
		case err == nil:
			return fmt.Errorf("%w: competitor %d plays for participant %d", ErrOnAnotherRoster, competitorID, existing.ParticipantID)
		case !errors.Is(err, repositories.ErrRosterNotFound):
			return err
		}

		entry = &models.RosterEntry{ParticipantID: participantID, CompetitorID: competitorID}
		if err := repos.Rosters.Add(ctx, entry); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return ErrAlreadyOnRoster
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, "add roster entry")
	}
	return entry, nil
}

func (s *progressionService) GetProgress(ctx context.Context, competitorID int) (*CompetitorProfile, error) {
	repos := s.store.Repos()
	c, err := repos.Competitors.GetByID(ctx, competitorID)
	if err != nil {
		return nil, handleRepositoryError(err, "get progress")
	}
	p, err := repos.Competitors.GetProgress(ctx, competitorID)
	if err != nil {
		return nil, handleRepositoryError(err, "get progress")
	}

	defs := make([]progression.AchievementDefinition, 0, len(p.Achievements))
	for _, id := range p.Achievements {
		if def, ok := progression.Lookup(id); ok {
			defs = append(defs, def)
		}
	}
	return &CompetitorProfile{
		Competitor:   c,
		Progress:     p,
		Level:        progression.LevelOf(p.XP),
		Achievements: defs,
	}, nil
}

func (s *progressionService) LevelOf(xp int) progression.LevelInfo {
	return progression.LevelOf(xp)
}

func (s *progressionService) Catalog() []progression.AchievementDefinition {
	return progression.Catalog()
}
