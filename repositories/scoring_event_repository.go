package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/lib/pq"
)

type postgresScoringEventRepository struct {
	exec SQLExecutor
}

const scoringEventColumns = `
	id, match_id, scoring_competitor_id, benefiting_participant_id, minute, kind,
	assist_competitor_id, scorer_xp, scorer_achievements, assist_xp, assist_achievements, created_at`

func scanScoringEvent(row rowScanner) (*models.ScoringEvent, error) {
	var e models.ScoringEvent
	err := row.Scan(
		&e.ID, &e.MatchID, &e.ScoringCompetitorID, &e.BenefitingParticipantID, &e.Minute, &e.Kind,
		&e.AssistCompetitorID, &e.ScorerXP, pq.Array(&e.ScorerAchievements),
		&e.AssistXP, pq.Array(&e.AssistAchievements), &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresScoringEventRepository) Create(ctx context.Context, e *models.ScoringEvent) error {
	query := `
		INSERT INTO scoring_events
			(match_id, scoring_competitor_id, benefiting_participant_id, minute, kind,
			 assist_competitor_id, scorer_xp, scorer_achievements, assist_xp, assist_achievements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	err := r.exec.QueryRowContext(ctx, query,
		e.MatchID, e.ScoringCompetitorID, e.BenefitingParticipantID, e.Minute, e.Kind,
		e.AssistCompetitorID, e.ScorerXP, pq.Array(nonNilStrings(e.ScorerAchievements)),
		e.AssistXP, pq.Array(nonNilStrings(e.AssistAchievements)),
	).Scan(&e.ID, &e.CreatedAt)
	return handlePQError(err)
}

func (r *postgresScoringEventRepository) GetByID(ctx context.Context, id int) (*models.ScoringEvent, error) {
	query := `SELECT` + scoringEventColumns + ` FROM scoring_events WHERE id = $1`
	return scanScoringEvent(r.exec.QueryRowContext(ctx, query, id))
}

func (r *postgresScoringEventRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.ScoringEvent, error) {
	query := `SELECT` + scoringEventColumns + ` FROM scoring_events WHERE match_id = $1 ORDER BY id ASC`
	return r.list(ctx, query, matchID)
}

func (r *postgresScoringEventRepository) ListByCompetition(ctx context.Context, competitionID int) ([]*models.ScoringEvent, error) {
	query := `SELECT` + scoringEventColumns + `
		FROM scoring_events
		WHERE match_id IN (SELECT id FROM matches WHERE competition_id = $1)
		ORDER BY id ASC`
	return r.list(ctx, query, competitionID)
}

func (r *postgresScoringEventRepository) list(ctx context.Context, query string, arg int) ([]*models.ScoringEvent, error) {
	rows, err := r.exec.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query scoring events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.ScoringEvent, 0)
	for rows.Next() {
		e, err := scanScoringEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scoring event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during scoring event rows iteration: %w", err)
	}
	return events, nil
}

func (r *postgresScoringEventRepository) UpdateLedger(ctx context.Context, e *models.ScoringEvent) error {
	query := `
		UPDATE scoring_events
		SET scorer_xp = $1, scorer_achievements = $2, assist_xp = $3, assist_achievements = $4
		WHERE id = $5`
	result, err := r.exec.ExecContext(ctx, query,
		e.ScorerXP, pq.Array(nonNilStrings(e.ScorerAchievements)),
		e.AssistXP, pq.Array(nonNilStrings(e.AssistAchievements)), e.ID,
	)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresScoringEventRepository) Delete(ctx context.Context, id int) error {
	result, err := r.exec.ExecContext(ctx, `DELETE FROM scoring_events WHERE id = $1`, id)
	if err != nil {
		return handlePQError(err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}
