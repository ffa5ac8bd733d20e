package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-progression/models"
)

type postgresRosterRepository struct {
	exec SQLExecutor
}

func (r *postgresRosterRepository) Add(ctx context.Context, e *models.RosterEntry) error {
	query := `
		INSERT INTO roster_entries (competition_id, participant_id, competitor_id)
		SELECT p.competition_id, p.id, $2 FROM participants p WHERE p.id = $1
		RETURNING id, competition_id, created_at`
	err := r.exec.QueryRowContext(ctx, query, e.ParticipantID, e.CompetitorID).Scan(&e.ID, &e.CompetitionID, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidReference
	}
	return handlePQError(err)
}

func (r *postgresRosterRepository) FindInCompetition(ctx context.Context, competitionID, competitorID int) (*models.RosterEntry, error) {
	query := `
		SELECT id, competition_id, participant_id, competitor_id, created_at
		FROM roster_entries
		WHERE competition_id = $1 AND competitor_id = $2`
	var e models.RosterEntry
	err := r.exec.QueryRowContext(ctx, query, competitionID, competitorID).
		Scan(&e.ID, &e.CompetitionID, &e.ParticipantID, &e.CompetitorID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRosterNotFound
		}
		return nil, fmt.Errorf("failed to find roster entry of competitor %d: %w", competitorID, err)
	}
	return &e, nil
}

func (r *postgresRosterRepository) IsMember(ctx context.Context, competitorID, participantID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM roster_entries WHERE competitor_id = $1 AND participant_id = $2)`
	if err := r.exec.QueryRowContext(ctx, query, competitorID, participantID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check roster membership: %w", err)
	}
	return exists, nil
}

func (r *postgresRosterRepository) ListCompetitors(ctx context.Context, participantID int) ([]int, error) {
	rows, err := r.exec.QueryContext(ctx,
		`SELECT competitor_id FROM roster_entries WHERE participant_id = $1 ORDER BY competitor_id ASC`, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster of participant %d: %w", participantID, err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresRosterRepository) ListByCompetition(ctx context.Context, competitionID int) ([]*models.RosterEntry, error) {
	query := `
		SELECT id, competition_id, participant_id, competitor_id, created_at
		FROM roster_entries
		WHERE competition_id = $1
		ORDER BY competitor_id ASC`
	rows, err := r.exec.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters of competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	entries := make([]*models.RosterEntry, 0)
	for rows.Next() {
		var e models.RosterEntry
		if err := rows.Scan(&e.ID, &e.CompetitionID, &e.ParticipantID, &e.CompetitorID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during roster rows iteration: %w", err)
	}
	return entries, nil
}
