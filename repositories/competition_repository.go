package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-progression/models"
)

type postgresCompetitionRepository struct {
	exec SQLExecutor
}

const competitionColumns = `
	id, name, format, status, points_win, points_draw, points_loss, draws_allowed,
	group_count, qualifiers_per_group, total_rounds, schedule_generated_at,
	champion_participant_id, created_at`

func scanCompetition(row rowScanner) (*models.Competition, error) {
	var c models.Competition
	err := row.Scan(
		&c.ID, &c.Name, &c.Format, &c.Status,
		&c.Rule.PointsWin, &c.Rule.PointsDraw, &c.Rule.PointsLoss, &c.Rule.DrawsAllowed,
		&c.Groups.GroupCount, &c.Groups.QualifiersPerGroup,
		&c.TotalRounds, &c.ScheduleGeneratedAt, &c.ChampionParticipantID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresCompetitionRepository) Create(ctx context.Context, c *models.Competition) error {
	query := `
		INSERT INTO competitions
			(name, format, status, points_win, points_draw, points_loss, draws_allowed,
			 group_count, qualifiers_per_group)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, total_rounds, created_at`

	err := r.exec.QueryRowContext(ctx, query,
		c.Name, c.Format, c.Status,
		c.Rule.PointsWin, c.Rule.PointsDraw, c.Rule.PointsLoss, c.Rule.DrawsAllowed,
		c.Groups.GroupCount, c.Groups.QualifiersPerGroup,
	).Scan(&c.ID, &c.TotalRounds, &c.CreatedAt)
	return handlePQError(err)
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	query := `SELECT` + competitionColumns + ` FROM competitions WHERE id = $1`
	return scanCompetition(r.exec.QueryRowContext(ctx, query, id))
}

func (r *postgresCompetitionRepository) GetForUpdate(ctx context.Context, id int) (*models.Competition, error) {
	query := `SELECT` + competitionColumns + ` FROM competitions WHERE id = $1 FOR UPDATE`
	return scanCompetition(r.exec.QueryRowContext(ctx, query, id))
}

func (r *postgresCompetitionRepository) List(ctx context.Context, status *models.CompetitionStatus) ([]*models.Competition, error) {
	query := `SELECT` + competitionColumns + ` FROM competitions`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query competitions: %w", err)
	}
	defer rows.Close()

	competitions := make([]*models.Competition, 0)
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan competition row: %w", err)
		}
		competitions = append(competitions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during competition rows iteration: %w", err)
	}
	return competitions, nil
}

func (r *postgresCompetitionRepository) MarkScheduleGenerated(ctx context.Context, id int, totalRounds int, at time.Time) error {
	query := `
		UPDATE competitions
		SET schedule_generated_at = $1, total_rounds = $2, status = $3
		WHERE id = $4 AND schedule_generated_at IS NULL`
	result, err := r.exec.ExecContext(ctx, query, at, totalRounds, models.CompetitionActive, id)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrScheduleAlreadyStamped)
}

func (r *postgresCompetitionRepository) UpdateStatus(ctx context.Context, id int, status models.CompetitionStatus) error {
	result, err := r.exec.ExecContext(ctx, `UPDATE competitions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}

func (r *postgresCompetitionRepository) SetChampion(ctx context.Context, id int, participantID int) error {
	query := `UPDATE competitions SET champion_participant_id = $1, status = $2 WHERE id = $3`
	result, err := r.exec.ExecContext(ctx, query, participantID, models.CompetitionCompleted, id)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}
