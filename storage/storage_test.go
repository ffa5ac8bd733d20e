package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestPublicURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "snapshots/a.json", "https://cdn.example.com/snapshots/a.json"},
		{"https://cdn.example.com/", "/snapshots/a.json", "https://cdn.example.com/snapshots/a.json"},
		{"https://cdn.example.com/public", "a.json", "https://cdn.example.com/public/a.json"},
		{"", "a.json", ""},
		{"https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		if got := publicURL(tt.base, tt.key, logger); got != tt.want {
			t.Fatalf("publicURL(%q, %q) = %q, want %q", tt.base, tt.key, got, tt.want)
		}
	}
}

func TestMemoryUploader(t *testing.T) {
	u := NewMemoryUploader("https://cdn.example.com", slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	res, err := u.Upload(ctx, "snapshots/x.json", "application/json", strings.NewReader(`{"ok":true}`))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.Location != "https://cdn.example.com/snapshots/x.json" {
		t.Fatalf("location = %q", res.Location)
	}
	data, ok := u.Object("snapshots/x.json")
	if !ok || string(data) != `{"ok":true}` {
		t.Fatalf("Object = %q, %v", data, ok)
	}
	if err := u.Delete(ctx, "snapshots/x.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(u.Keys()) != 0 {
		t.Fatalf("keys after delete = %v", u.Keys())
	}
}
