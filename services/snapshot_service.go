package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-progression/metrics"
	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/repositories"
	"github.com/Dosada05/tournament-progression/storage"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// StandingsSnapshot is the document exported for every active competition.
type StandingsSnapshot struct {
	CompetitionID int                `json:"competition_id"`
	Name          string             `json:"name"`
	Status        string             `json:"status"`
	TakenAt       time.Time          `json:"taken_at"`
	Standings     []*models.Standing `json:"standings"`
}

// SnapshotService exports read-only standings snapshots to object storage.
// It never mutates competition data.
type SnapshotService struct {
	store    repositories.Store
	uploader storage.FileUploader
	logger   *slog.Logger
	now      func() time.Time
}

func NewSnapshotService(store repositories.Store, uploader storage.FileUploader, logger *slog.Logger) *SnapshotService {
	return &SnapshotService{store: store, uploader: uploader, logger: logger, now: time.Now}
}

// SnapshotKey builds the object key of a competition snapshot.
func SnapshotKey(c *models.Competition, takenAt time.Time) string {
	return fmt.Sprintf("snapshots/%d-%s/%s-%s.json",
		c.ID, slug.Make(c.Name), takenAt.UTC().Format("20060102T150405Z"), uuid.NewString())
}

// ExportActive uploads one snapshot per active competition and returns the
// upload results. A failing competition is logged and skipped.
func (s *SnapshotService) ExportActive(ctx context.Context) ([]*storage.UploadResult, error) {
	active := models.CompetitionActive
	competitions, err := s.store.Repos().Competitions.List(ctx, &active)
	if err != nil {
		metrics.SnapshotExports.WithLabelValues("error").Inc()
		return nil, handleRepositoryError(err, "list active competitions")
	}

	results := make([]*storage.UploadResult, 0, len(competitions))
	for _, c := range competitions {
		res, err := s.export(ctx, c)
		if err != nil {
			metrics.SnapshotExports.WithLabelValues("error").Inc()
			s.logger.Error("standings snapshot failed", slog.Int("competition_id", c.ID), slog.Any("error", err))
			continue
		}
		metrics.SnapshotExports.WithLabelValues("ok").Inc()
		results = append(results, res)
	}
	return results, nil
}

func (s *SnapshotService) export(ctx context.Context, c *models.Competition) (*storage.UploadResult, error) {
	standings, err := s.store.Repos().Participants.ListStandings(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	takenAt := s.now()
	body, err := json.Marshal(StandingsSnapshot{
		CompetitionID: c.ID,
		Name:          c.Name,
		Status:        string(c.Status),
		TakenAt:       takenAt,
		Standings:     standings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.uploader.Upload(ctx, SnapshotKey(c, takenAt), "application/json", bytes.NewReader(body))
}

// Schedule registers the export as a recurring job on the scheduler.
func (s *SnapshotService) Schedule(sched gocron.Scheduler, interval time.Duration) (gocron.Job, error) {
	return sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			results, err := s.ExportActive(ctx)
			if err != nil {
				s.logger.Error("standings snapshot job failed", slog.Any("error", err))
				return
			}
			s.logger.Debug("standings snapshots exported", slog.Int("count", len(results)))
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
}
