// Package storage provides blob storage for exhibitor logos and generated
// banners, with local-disk and S3 backends behind a single interface.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxLogoFileSize is the maximum allowed logo upload size (5 MiB).
	MaxLogoFileSize = 5 * 1024 * 1024
	// FolderLogos is the key prefix for logo objects.
	FolderLogos = "logos"
	// FolderBanners is the key prefix for generated banner objects.
	FolderBanners = "banners"
	// PlaceholderLogo is the reserved demo asset that survives demo resets.
	PlaceholderLogo = "test-logo.svg"
)

// Allowed logo MIME types and extensions.
var (
	AllowedLogoTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
	}
	AllowedLogoExtensions = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
	}
)

// Store is the blob storage collaborator. Keys are forward-slash paths such as
// logos/logo-<id>.png; Put returns a reference usable for later retrieval.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// ValidateLogoFileType returns true if the content type and extension are both
// acceptable for a logo upload.
func ValidateLogoFileType(contentType, filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := AllowedLogoExtensions[ext]; !ok {
		return false
	}
	if contentType == "" {
		return true
	}
	_, ok := AllowedLogoTypes[strings.ToLower(contentType)]
	return ok
}

// ContentTypeForFilename returns the MIME type for a logo filename extension.
func ContentTypeForFilename(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ct, ok := AllowedLogoExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// LogoKey returns a unique object key for a logo upload, keeping the original
// extension: logos/logo-<timestamp>-<uuid><ext>.
func LogoKey(originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	name := fmt.Sprintf("logo-%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
	return path.Join(FolderLogos, name)
}

// BannerKey returns a unique object key for a generated banner:
// banners/banner-<exhibitor_id>-<timestamp>-<uuid>.png. A fresh key per
// generation keeps the prior banner readable until the new one is fully
// stored.
func BannerKey(exhibitorID string) string {
	return path.Join(FolderBanners, fmt.Sprintf("banner-%s-%d-%s.png", exhibitorID, time.Now().UnixMilli(), uuid.New().String()))
}
