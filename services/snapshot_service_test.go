package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/storage"
)

func TestSnapshotKey(t *testing.T) {
	c := &models.Competition{ID: 7, Name: "Spring Cup 2026"}
	at := time.Date(2026, 4, 1, 12, 30, 0, 0, time.UTC)
	key := SnapshotKey(c, at)
	prefix := "snapshots/7-spring-cup-2026/20260401T123000Z-"
	if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, ".json") {
		t.Fatalf("key = %q, want prefix %q", key, prefix)
	}
	if SnapshotKey(c, at) == key {
		t.Fatalf("snapshot keys must be unique")
	}
}

func TestExportActive(t *testing.T) {
	env := newTestEnv(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uploader := storage.NewMemoryUploader("https://cdn.example.com", logger)
	svc := NewSnapshotService(env.store, uploader, logger)

	active, ps := env.scheduled(t, roundRobin(), 2)
	env.competition(t, roundRobin(), 2)
	env.finalizeFor(t, env.matchBetween(t, active.ID, ps[0].ID, ps[1].ID), ps[1].ID, 1, 0)

	// The round robin above is now completed; a fresh one stays active.
	live, _ := env.scheduled(t, roundRobin(), 3)

	results, err := svc.ExportActive(context.Background())
	if err != nil {
		t.Fatalf("ExportActive: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("exported %d snapshots, want 1", len(results))
	}
	if !strings.HasPrefix(results[0].Location, "https://cdn.example.com/snapshots/") {
		t.Fatalf("location = %q", results[0].Location)
	}

	data, ok := uploader.Object(results[0].Key)
	if !ok {
		t.Fatalf("object %q not stored", results[0].Key)
	}
	var snap StandingsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.CompetitionID != live.ID || snap.Status != string(models.CompetitionActive) || len(snap.Standings) != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}
}
