package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
)

// MemoryUploader keeps objects in process memory. It backs the memory
// storage driver and tests.
type MemoryUploader struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
	logger  *slog.Logger
}

func NewMemoryUploader(baseURL string, logger *slog.Logger) *MemoryUploader {
	return &MemoryUploader{objects: make(map[string][]byte), baseURL: baseURL, logger: logger}
}

func (u *MemoryUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	u.mu.Lock()
	u.objects[key] = data
	u.mu.Unlock()
	return &UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *MemoryUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *MemoryUploader) GetPublicURL(key string) string {
	return publicURL(u.baseURL, key, u.logger)
}

// Object returns a copy of a stored object.
func (u *MemoryUploader) Object(key string) ([]byte, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	data, ok := u.objects[key]
	return bytes.Clone(data), ok
}

func (u *MemoryUploader) Keys() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	keys := make([]string, 0, len(u.objects))
	for k := range u.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
