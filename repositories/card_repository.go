package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-progression/models"
)

type postgresCardRepository struct {
	exec SQLExecutor
}

const cardColumns = `id, match_id, competitor_id, participant_id, severity, minute, xp, created_at`

func scanCard(row rowScanner) (*models.CardEvent, error) {
	var c models.CardEvent
	err := row.Scan(&c.ID, &c.MatchID, &c.CompetitorID, &c.ParticipantID, &c.Severity, &c.Minute, &c.XP, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresCardRepository) Create(ctx context.Context, c *models.CardEvent) error {
	query := `
		INSERT INTO card_events (match_id, competitor_id, participant_id, severity, minute, xp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.exec.QueryRowContext(ctx, query,
		c.MatchID, c.CompetitorID, c.ParticipantID, c.Severity, c.Minute, c.XP,
	).Scan(&c.ID, &c.CreatedAt)
	return handlePQError(err)
}

func (r *postgresCardRepository) GetByID(ctx context.Context, id int) (*models.CardEvent, error) {
	return scanCard(r.exec.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM card_events WHERE id = $1`, id))
}

func (r *postgresCardRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.CardEvent, error) {
	return r.list(ctx, `SELECT `+cardColumns+` FROM card_events WHERE match_id = $1 ORDER BY id ASC`, matchID)
}

func (r *postgresCardRepository) ListByCompetition(ctx context.Context, competitionID int) ([]*models.CardEvent, error) {
	query := `SELECT ` + cardColumns + `
		FROM card_events
		WHERE match_id IN (SELECT id FROM matches WHERE competition_id = $1)
		ORDER BY id ASC`
	return r.list(ctx, query, competitionID)
}

func (r *postgresCardRepository) list(ctx context.Context, query string, arg int) ([]*models.CardEvent, error) {
	rows, err := r.exec.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*models.CardEvent, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during card rows iteration: %w", err)
	}
	return cards, nil
}

func (r *postgresCardRepository) Delete(ctx context.Context, id int) error {
	result, err := r.exec.ExecContext(ctx, `DELETE FROM card_events WHERE id = $1`, id)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrCardNotFound)
}
