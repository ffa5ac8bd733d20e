package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgresStore(db *sql.DB, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, logger: logger}
}

func newPostgresRepositories(exec SQLExecutor) Repositories {
	return Repositories{
		Competitions: &postgresCompetitionRepository{exec: exec},
		Participants: &postgresParticipantRepository{exec: exec},
		Matches:      &postgresMatchRepository{exec: exec},
		Events:       &postgresScoringEventRepository{exec: exec},
		Cards:        &postgresCardRepository{exec: exec},
		Competitors:  &postgresCompetitorRepository{exec: exec},
		Rosters:      &postgresRosterRepository{exec: exec},
	}
}

func (s *PostgresStore) Repos() Repositories {
	return newPostgresRepositories(s.db)
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) (txErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
				txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(ctx, newPostgresRepositories(tx))
}
