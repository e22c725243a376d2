// Package storage uploads team and athlete images to S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/squadboard/squadboard-api/internal/apperror"
)

// MaxImageSize is the largest accepted image upload in bytes.
const MaxImageSize = 5 << 20

var (
	// ErrDisabled is returned by every operation when storage is not configured.
	ErrDisabled = apperror.Unavailable("image storage is not configured")
	// ErrUnsupportedType is returned for uploads that are not images.
	ErrUnsupportedType = apperror.Validation("unsupported image type")
	// ErrTooLarge is returned for uploads over MaxImageSize.
	ErrTooLarge = apperror.Validation("image exceeds 5MB")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadResult describes a stored object.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// Uploader stores and removes objects.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}

// ImageKey builds a fresh object key under prefix for an image of contentType.
func ImageKey(prefix, contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	return path.Join(prefix, uuid.NewString()+ext), nil
}

// UploadImage validates an image upload and stores it under prefix.
func UploadImage(ctx context.Context, u Uploader, prefix, contentType string, size int64, body io.Reader) (*UploadResult, error) {
	if size > MaxImageSize {
		return nil, ErrTooLarge
	}
	key, err := ImageKey(prefix, contentType)
	if err != nil {
		return nil, err
	}
	return u.Upload(ctx, key, contentType, io.LimitReader(body, MaxImageSize))
}

func publicURL(baseURL, key string) (string, error) {
	if baseURL == "" || key == "" {
		return "", fmt.Errorf("public url needs a base url and a key")
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(key, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid public url for key %s: %w", key, err)
	}
	return u.String(), nil
}

type disabled struct{}

// Disabled returns an Uploader that rejects every call with ErrDisabled.
func Disabled() Uploader {
	return disabled{}
}

func (disabled) Upload(context.Context, string, string, io.Reader) (*UploadResult, error) {
	return nil, ErrDisabled
}

func (disabled) Delete(context.Context, string) error {
	return ErrDisabled
}
