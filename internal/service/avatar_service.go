package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/repository/storage"
	"github.com/rs/zerolog/log"
)

const (
	MaxImageSize   = 5 * 1024 * 1024 // 5MB
	MinImageWidth  = 50
	MinImageHeight = 50
	AvatarSize     = 256
	JPEGQuality    = 85
)

var (
	ErrImageTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidFormat             = errors.New("invalid format. Supported: JPEG, PNG, GIF")
	ErrImageTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidImageData          = errors.New("invalid image data")
	ErrImageStorageNotConfigured = errors.New("image storage not configured")
)

// AllowedExtensions maps accepted avatar extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// AvatarService validates, resizes and stores profile pictures
type AvatarService struct {
	profileRepo domain.ProfileRepository
	storage     storage.FileRepository
}

// NewAvatarService creates a new AvatarService. storage may be nil, which
// disables uploads.
func NewAvatarService(profileRepo domain.ProfileRepository, storage storage.FileRepository) *AvatarService {
	return &AvatarService{profileRepo: profileRepo, storage: storage}
}

// IsEnabled indicates whether uploads are supported (storage configured).
func (s *AvatarService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// ValidateImage validates image format and size
func (s *AvatarService) ValidateImage(data []byte, filename string) error {
	_, err := s.validateAndDecode(data, filename)
	return err
}

func (s *AvatarService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinImageWidth || bounds.Dy() < MinImageHeight {
		return nil, ErrImageTooSmall
	}
	return img, nil
}

// UploadAvatar replaces a user's profile picture with a square JPEG crop.
// Only the owner may change their avatar.
func (s *AvatarService) UploadAvatar(ctx context.Context, actorID, userID int32, data []byte, filename string) (*domain.Profile, error) {
	if actorID != userID {
		return nil, domain.ErrForbidden
	}
	if !s.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	previous, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	var previousKey string
	if previous.AvatarKey != nil {
		previousKey = *previous.AvatarKey
	}

	square := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, square, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	objectPath := storage.GenerateObjectPath(userID, storage.KindAvatar, "avatar", ".jpg")
	key, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	profile, err := s.profileRepo.UpdateAvatar(userID, key)
	if err != nil {
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}

	if previousKey != "" && previousKey != key {
		if err := s.storage.Delete(ctx, previousKey); err != nil {
			log.Warn().Err(err).Int32("user_id", userID).Msg("Failed to delete previous avatar")
		}
	}
	return profile, nil
}

// GetContentType returns the content type for a file extension
func GetContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
