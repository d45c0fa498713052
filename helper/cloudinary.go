package helper

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"event_ticketing/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader stores event covers in a Cloudinary folder.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cfg config.CloudinaryConfig) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: cfg.Folder}, nil
}

func (u *CloudinaryUploader) UploadCover(ctx context.Context, file io.Reader, publicID string) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       u.folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("upload cover %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("upload cover %s: %s", publicID, result.Error.Message)
	}
	return result.SecureURL, nil
}

// RemoveCover deletes the asset behind a previously returned cover URL.
func (u *CloudinaryUploader) RemoveCover(ctx context.Context, url string) error {
	publicID := ExtractPublicID(url)
	if publicID == "" {
		return fmt.Errorf("no public id in %q", url)
	}
	result, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("remove cover %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("remove cover %s: %s", publicID, result.Error.Message)
	}
	return nil
}

// ExtractPublicID turns
// https://res.cloudinary.com/<cloud>/image/upload/v123/<folder>/<id>.<ext>
// into <folder>/<id>. It returns "" for URLs without an upload segment.
func ExtractPublicID(url string) string {
	_, rest, found := strings.Cut(url, "/upload/")
	if !found || rest == "" {
		return ""
	}
	if version, tail, ok := strings.Cut(rest, "/"); ok && isVersion(version) {
		rest = tail
	}
	return strings.TrimSuffix(rest, path.Ext(rest))
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
