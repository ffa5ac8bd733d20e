package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-progression/models"
)

type postgresParticipantRepository struct {
	exec SQLExecutor
}

func (r *postgresParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (competition_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at`
	if err := r.exec.QueryRowContext(ctx, query, p.CompetitionID, p.Name).Scan(&p.ID, &p.CreatedAt); err != nil {
		return handlePQError(err)
	}

	_, err := r.exec.ExecContext(ctx,
		`INSERT INTO standings (participant_id, competition_id) VALUES ($1, $2)`,
		p.ID, p.CompetitionID)
	if err != nil {
		return fmt.Errorf("failed to create standing for participant %d: %w", p.ID, handlePQError(err))
	}
	return nil
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	query := `SELECT id, competition_id, name, created_at FROM participants WHERE id = $1`
	var p models.Participant
	err := r.exec.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.CompetitionID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to scan participant %d: %w", id, err)
	}
	return &p, nil
}

func (r *postgresParticipantRepository) ListByCompetition(ctx context.Context, competitionID int) ([]*models.Participant, error) {
	query := `
		SELECT id, competition_id, name, created_at
		FROM participants
		WHERE competition_id = $1
		ORDER BY id ASC`
	rows, err := r.exec.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.CompetitionID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		participants = append(participants, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during participant rows iteration: %w", err)
	}
	return participants, nil
}

const standingColumns = `
	participant_id, competition_id, games_played, wins, draws, losses,
	score_for, score_against, points, updated_at`

func scanStanding(row rowScanner) (*models.Standing, error) {
	var s models.Standing
	err := row.Scan(
		&s.ParticipantID, &s.CompetitionID, &s.GamesPlayed, &s.Wins, &s.Draws, &s.Losses,
		&s.ScoreFor, &s.ScoreAgainst, &s.Points, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresParticipantRepository) GetStanding(ctx context.Context, participantID int) (*models.Standing, error) {
	query := `SELECT` + standingColumns + ` FROM standings WHERE participant_id = $1`
	return scanStanding(r.exec.QueryRowContext(ctx, query, participantID))
}

// ApplyStandingDelta increments counters in place so concurrent finalizations
// of different matches never overwrite each other.
func (r *postgresParticipantRepository) ApplyStandingDelta(ctx context.Context, d models.StandingDelta) error {
	query := `
		UPDATE standings SET
			games_played = games_played + $1,
			wins = wins + $2,
			draws = draws + $3,
			losses = losses + $4,
			score_for = score_for + $5,
			score_against = score_against + $6,
			points = points + $7,
			updated_at = NOW()
		WHERE participant_id = $8`
	result, err := r.exec.ExecContext(ctx, query,
		d.GamesPlayed, d.Wins, d.Draws, d.Losses, d.ScoreFor, d.ScoreAgainst, d.Points, d.ParticipantID)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}

func (r *postgresParticipantRepository) ListStandings(ctx context.Context, competitionID int) ([]*models.Standing, error) {
	query := `SELECT` + standingColumns + `
		FROM standings
		WHERE competition_id = $1
		ORDER BY points DESC, (score_for - score_against) DESC, score_for DESC, participant_id ASC`
	rows, err := r.exec.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		s, err := scanStanding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standing row: %w", err)
		}
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during standing rows iteration: %w", err)
	}
	return standings, nil
}
