package testutil

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/squadboard/squadboard-api/internal/storage"
)

// MemoryUploader keeps uploaded objects in memory.
type MemoryUploader struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
	// FailUpload makes every Upload return an error.
	FailUpload bool
}

// NewMemoryUploader returns an empty MemoryUploader.
func NewMemoryUploader() *MemoryUploader {
	return &MemoryUploader{Objects: map[string][]byte{}}
}

// Upload stores body under key.
func (u *MemoryUploader) Upload(_ context.Context, key, _ string, body io.Reader) (*storage.UploadResult, error) {
	if u.FailUpload {
		return nil, errors.New("upload failed")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Objects[key] = data
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

// Delete removes key.
func (u *MemoryUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.Objects, key)
	u.Deleted = append(u.Deleted, key)
	return nil
}

var _ storage.Uploader = (*MemoryUploader)(nil)
