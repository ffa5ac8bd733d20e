package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-progression/models"
)

type postgresMatchRepository struct {
	exec SQLExecutor
}

const matchColumns = `
	id, competition_id, round, order_in_round, stage, slot_a, slot_b, status,
	score_a, score_b, winner_participant_id, is_bye, next_match_id, winner_to_slot,
	finished_at, created_at`

func scanMatch(row rowScanner) (*models.Match, error) {
	var m models.Match
	var winnerToSlot sql.NullString
	err := row.Scan(
		&m.ID, &m.CompetitionID, &m.Round, &m.OrderInRound, &m.Stage, &m.SlotA, &m.SlotB, &m.Status,
		&m.ScoreA, &m.ScoreB, &m.WinnerParticipantID, &m.IsBye, &m.NextMatchID, &winnerToSlot,
		&m.FinishedAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if winnerToSlot.Valid {
		slot := models.Slot(winnerToSlot.String)
		m.WinnerToSlot = &slot
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches
			(competition_id, round, order_in_round, stage, slot_a, slot_b, status, is_bye,
			 next_match_id, winner_to_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	err := r.exec.QueryRowContext(ctx, query,
		m.CompetitionID, m.Round, m.OrderInRound, m.Stage, m.SlotA, m.SlotB, m.Status, m.IsBye,
		m.NextMatchID, slotValue(m.WinnerToSlot),
	).Scan(&m.ID, &m.CreatedAt)
	return handlePQError(err)
}

func slotValue(s *models.Slot) interface{} {
	if s == nil {
		return nil
	}
	return string(*s)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.exec.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) GetForUpdate(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`
	return scanMatch(r.exec.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByCompetition(ctx context.Context, competitionID int) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + `
		FROM matches
		WHERE competition_id = $1
		ORDER BY round ASC, stage ASC, order_in_round ASC, id ASC`
	rows, err := r.exec.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountByCompetition(ctx context.Context, competitionID int) (int, error) {
	var count int
	err := r.exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE competition_id = $1`, competitionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches for competition %d: %w", competitionID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) UpdateNextMatchInfo(ctx context.Context, matchID int, nextMatchID *int, winnerToSlot *models.Slot) error {
	query := `UPDATE matches SET next_match_id = $1, winner_to_slot = $2 WHERE id = $3`
	result, err := r.exec.ExecContext(ctx, query, nextMatchID, slotValue(winnerToSlot), matchID)
	if err != nil {
		return fmt.Errorf("UpdateNextMatchInfo: failed to execute query for match %d: %w", matchID, handlePQError(err))
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) SetSlot(ctx context.Context, matchID int, slot models.Slot, participantID int) error {
	column := "slot_a"
	if slot == models.SlotB {
		column = "slot_b"
	}
	query := `UPDATE matches SET ` + column + ` = $1 WHERE id = $2 AND status = $3`
	result, err := r.exec.ExecContext(ctx, query, participantID, matchID, models.MatchScheduled)
	if err != nil {
		return fmt.Errorf("SetSlot: failed to execute query for match %d: %w", matchID, handlePQError(err))
	}
	return checkAffectedRows(result, ErrMatchNotOpen)
}

func (r *postgresMatchRepository) MarkLive(ctx context.Context, matchID int) error {
	_, err := r.exec.ExecContext(ctx,
		`UPDATE matches SET status = $1 WHERE id = $2 AND status = $3`,
		models.MatchLive, matchID, models.MatchScheduled)
	return handlePQError(err)
}

func (r *postgresMatchRepository) Finish(ctx context.Context, matchID int, scoreA, scoreB int, winnerID *int, at time.Time) error {
	query := `
		UPDATE matches
		SET status = $1, score_a = $2, score_b = $3, winner_participant_id = $4, finished_at = $5
		WHERE id = $6 AND status NOT IN ($7, $8)`
	result, err := r.exec.ExecContext(ctx, query,
		models.MatchFinished, scoreA, scoreB, winnerID, at,
		matchID, models.MatchFinished, models.MatchCanceled)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrMatchNotOpen)
}

func (r *postgresMatchRepository) CancelBye(ctx context.Context, matchID int, advancedID int) error {
	query := `
		UPDATE matches
		SET status = $1, winner_participant_id = $2
		WHERE id = $3 AND status = $4`
	result, err := r.exec.ExecContext(ctx, query, models.MatchCanceled, advancedID, matchID, models.MatchScheduled)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrMatchNotOpen)
}
