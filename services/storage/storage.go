package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"lexmarket/config"
	"lexmarket/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// resourceTypes are tried in order when destroying an asset whose type is unknown.
var resourceTypes = []string{"image", "raw"}

// CloudinaryStore implements DocumentStore on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from the configured credentials.
func NewCloudinaryStore(cfg *config.Config) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	utils.GetLogger().Info("Document storage initialized", zap.String("cloudName", cfg.CloudinaryCloudName))
	return &CloudinaryStore{cld: cld}, nil
}

// Store uploads body into the scope folder. The public ID keeps the original
// base name with a random suffix so re-uploads never overwrite each other.
func (s *CloudinaryStore) Store(ctx context.Context, body io.Reader, filename, scope string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	params := uploader.UploadParams{
		Folder:       scope,
		PublicID:     fmt.Sprintf("%s-%s", base, uuid.New().String()[:8]),
		ResourceType: "auto",
	}
	result, err := s.cld.Upload.Upload(ctx, body, params)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStore: failed to upload %s: %w", filename, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryStore: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("CloudinaryStore: no public ID returned")
	}
	return result.PublicID, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, reference string) error {
	for _, rt := range resourceTypes {
		result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: reference, ResourceType: rt})
		if err != nil {
			return fmt.Errorf("CloudinaryStore: failed to delete %s: %w", reference, err)
		}
		if result.Result == "ok" {
			return nil
		}
	}
	return fmt.Errorf("CloudinaryStore: %s not found", reference)
}
