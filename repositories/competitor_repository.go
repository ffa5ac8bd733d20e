package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/lib/pq"
)

type postgresCompetitorRepository struct {
	exec SQLExecutor
}

func (r *postgresCompetitorRepository) Create(ctx context.Context, c *models.Competitor) error {
	err := r.exec.QueryRowContext(ctx,
		`INSERT INTO competitors (name) VALUES ($1) RETURNING id, created_at`, c.Name,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return handlePQError(err)
	}

	if _, err := r.exec.ExecContext(ctx, `INSERT INTO competitor_progress (competitor_id) VALUES ($1)`, c.ID); err != nil {
		return fmt.Errorf("failed to create progress for competitor %d: %w", c.ID, handlePQError(err))
	}
	return nil
}

func (r *postgresCompetitorRepository) GetByID(ctx context.Context, id int) (*models.Competitor, error) {
	var c models.Competitor
	err := r.exec.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM competitors WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitorNotFound
		}
		return nil, fmt.Errorf("failed to scan competitor %d: %w", id, err)
	}
	return &c, nil
}

const progressQuery = `
	SELECT competitor_id, scored, assisted, cards_minor, cards_major, games_played, wins,
	       penalties_scored, free_actions_scored, xp, xp_debt, achievements, updated_at
	FROM competitor_progress
	WHERE competitor_id = $1`

func (r *postgresCompetitorRepository) scanProgress(row rowScanner) (*models.CompetitorProgress, error) {
	var p models.CompetitorProgress
	s := &p.Stats
	err := row.Scan(
		&p.CompetitorID, &s.Scored, &s.Assisted, &s.CardsMinor, &s.CardsMajor, &s.GamesPlayed, &s.Wins,
		&s.PenaltiesScored, &s.FreeActionsScored, &p.XP, &p.XPDebt, pq.Array(&p.Achievements), &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	p.Achievements = nonNilStrings(p.Achievements)
	return &p, nil
}

func (r *postgresCompetitorRepository) GetProgress(ctx context.Context, competitorID int) (*models.CompetitorProgress, error) {
	return r.scanProgress(r.exec.QueryRowContext(ctx, progressQuery, competitorID))
}

func (r *postgresCompetitorRepository) GetProgressForUpdate(ctx context.Context, competitorID int) (*models.CompetitorProgress, error) {
	return r.scanProgress(r.exec.QueryRowContext(ctx, progressQuery+` FOR UPDATE`, competitorID))
}

func (r *postgresCompetitorRepository) SaveProgress(ctx context.Context, p *models.CompetitorProgress) error {
	s := p.Stats
	query := `
		UPDATE competitor_progress SET
			scored = $1, assisted = $2, cards_minor = $3, cards_major = $4, games_played = $5,
			wins = $6, penalties_scored = $7, free_actions_scored = $8, xp = $9,
			xp_debt = $10, achievements = $11, updated_at = NOW()
		WHERE competitor_id = $12`
	result, err := r.exec.ExecContext(ctx, query,
		s.Scored, s.Assisted, s.CardsMinor, s.CardsMajor, s.GamesPlayed,
		s.Wins, s.PenaltiesScored, s.FreeActionsScored, p.XP, p.XPDebt,
		pq.Array(nonNilStrings(p.Achievements)), p.CompetitorID,
	)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrProgressNotFound)
}
